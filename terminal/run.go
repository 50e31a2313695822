package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Run drives v on screen until the user quits.
func Run(screen tcell.Screen, v *Viewer) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.Clear()
	for {
		v.Draw(screen)
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
			continue
		}
		if v.HandleEvent(ev) {
			return nil
		}
	}
}

// RunTerminal opens the controlling terminal and runs v on it.
func RunTerminal(v *Viewer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	return Run(screen, v)
}
