package editor

import (
	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/state"
)

// gesture is the pointer state machine. Exactly one is active; the draft
// of a draw gesture lives here and nowhere else.
type gesture interface {
	mode() Mode
}

// Mode names the gesture currently in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeDrawing
	ModePanning
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeDrawing:
		return "drawing"
	case ModePanning:
		return "panning"
	}
	return "unknown"
}

type idle struct{}

// dragging moves element id so that it stays at grab from the pointer.
type dragging struct {
	id   string
	grab geom.Point
}

// drawing sizes a new element from origin to the pointer. draft is nil
// until the first move.
type drawing struct {
	origin geom.Point
	kind   state.Kind
	draft  *state.Element
}

// panning shifts the view by device-space pointer deltas.
type panning struct {
	last geom.Point
}

func (idle) mode() Mode     { return ModeIdle }
func (dragging) mode() Mode { return ModeDragging }
func (drawing) mode() Mode  { return ModeDrawing }
func (panning) mode() Mode  { return ModePanning }
