package editor

import (
	"edgeflow/diagram"
)

// StructHistory keeps undo and redo stacks of deep-copied diagrams.
// Callers save the document before changing it.
type StructHistory struct {
	undo []*diagram.Diagram // oldest first
	redo []*diagram.Diagram // most recently undone last
	max  int                // Maximum number of undo states to keep

	// dropped holds the redo stack the last SaveState cleared, so Drop can
	// put it back.
	dropped []*diagram.Diagram
}

// NewStructHistory creates a new struct-based history manager
func NewStructHistory(max int) *StructHistory {
	if max <= 0 {
		max = 50
	}
	return &StructHistory{
		undo: make([]*diagram.Diagram, 0, max),
		max:  max,
	}
}

// SaveState records d as an undo point and forgets anything undone.
func (sh *StructHistory) SaveState(d *diagram.Diagram) {
	sh.undo = append(sh.undo, d.Clone())
	if len(sh.undo) > sh.max {
		sh.undo = sh.undo[1:]
	}
	sh.dropped = sh.redo
	sh.redo = nil
}

// Drop discards the most recent undo point and restores the redo states
// that saving it cleared.
func (sh *StructHistory) Drop() {
	if len(sh.undo) > 0 {
		sh.undo = sh.undo[:len(sh.undo)-1]
	}
	if sh.dropped != nil {
		sh.redo = sh.dropped
		sh.dropped = nil
	}
}

// CanUndo returns true if we can undo
func (sh *StructHistory) CanUndo() bool {
	return len(sh.undo) > 0
}

// CanRedo returns true if we can redo
func (sh *StructHistory) CanRedo() bool {
	return len(sh.redo) > 0
}

// Undo returns the previous state, remembering current for Redo.
// It returns nil when there is nothing to undo.
func (sh *StructHistory) Undo(current *diagram.Diagram) *diagram.Diagram {
	if !sh.CanUndo() {
		return nil
	}
	prev := sh.undo[len(sh.undo)-1]
	sh.undo = sh.undo[:len(sh.undo)-1]
	sh.redo = append(sh.redo, current.Clone())
	sh.dropped = nil

	// Return a clone to prevent accidental modification of history
	return prev.Clone()
}

// Redo returns the next state, remembering current for Undo.
// It returns nil when there is nothing to redo.
func (sh *StructHistory) Redo(current *diagram.Diagram) *diagram.Diagram {
	if !sh.CanRedo() {
		return nil
	}
	next := sh.redo[len(sh.redo)-1]
	sh.redo = sh.redo[:len(sh.redo)-1]
	sh.undo = append(sh.undo, current.Clone())
	sh.dropped = nil
	return next.Clone()
}

// Clear clears all history
func (sh *StructHistory) Clear() {
	sh.undo = sh.undo[:0]
	sh.redo = sh.redo[:0]
	sh.dropped = nil
}

// Stats returns the number of undo and redo states held.
func (sh *StructHistory) Stats() (undo, redo int) {
	return len(sh.undo), len(sh.redo)
}
