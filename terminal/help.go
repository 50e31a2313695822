package terminal

import (
	"fmt"
	"strings"
)

// HelpCategory groups related viewer keys.
type HelpCategory struct {
	Name     string
	Commands []HelpCommand
}

type HelpCommand struct {
	Key         string
	Description string
}

var helpCategories = []HelpCategory{
	{
		Name: "Selection",
		Commands: []HelpCommand{
			{"click", "Select the edge under the pointer"},
			{"tab", "Next edge (shift-tab for previous)"},
			{"f", "Jump to an edge by label"},
		},
	},
	{
		Name: "Routing",
		Commands: []HelpCommand{
			{"drag ◆", "Move the bend of the selected edge"},
			{"drag ●", "Slide an anchor along its side"},
			{"m", "Cycle orthogonal/straight/curved"},
			{"+/-", "Corner radius"},
			{"ESC", "Cancel drag"},
		},
	},
	{
		Name: "File",
		Commands: []HelpCommand{
			{"u/r", "Undo/redo"},
			{"s", "Save"},
			{"y", "Copy path data of the selected edge"},
			{"arrows", "Scroll"},
			{"q", "Quit"},
		},
	},
}

// helpWidth is the inner width of the help box.
const helpWidth = 48

// HelpLines returns the help box, one string per screen row.
func HelpLines() []string {
	rule := strings.Repeat("═", helpWidth+2)
	lines := []string{
		"╔" + rule + "╗",
		fmt.Sprintf("║ %-*s ║", helpWidth, "EDGEFLOW KEYS"),
		"╠" + rule + "╣",
	}
	for i, cat := range helpCategories {
		lines = append(lines, fmt.Sprintf("║ %-*s ║", helpWidth, cat.Name+":"))
		for _, cmd := range cat.Commands {
			lines = append(lines, fmt.Sprintf("║   %-8s %-*s ║", cmd.Key, helpWidth-11, cmd.Description))
		}
		if i < len(helpCategories)-1 {
			lines = append(lines, fmt.Sprintf("║ %-*s ║", helpWidth, ""))
		}
	}
	return append(lines, "╚"+rule+"╝")
}

// CompactHelp returns a single-line help hint.
func CompactHelp() string {
	return "tab:select f:jump m:mode +/-:radius u:undo s:save ?:help q:quit"
}
