package editor

import (
	"fmt"
	"strings"

	"MentorCanvas/internal/state"
)

// Tool is the active interaction mode.
type Tool int

const (
	ToolMove Tool = iota
	ToolRectangle
	ToolEllipse
	ToolText
	ToolArrow
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolMove, ToolRectangle, ToolEllipse, ToolText, ToolArrow}

func (t Tool) String() string {
	if t == ToolMove {
		return "move"
	}
	if k, ok := t.Kind(); ok {
		return k.String()
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Kind is the element kind a creation tool produces. ok is false for the
// move tool.
func (t Tool) Kind() (k state.Kind, ok bool) {
	switch t {
	case ToolRectangle:
		return state.KindRectangle, true
	case ToolEllipse:
		return state.KindEllipse, true
	case ToolText:
		return state.KindText, true
	case ToolArrow:
		return state.KindArrow, true
	}
	return 0, false
}

// ParseTool accepts a tool name as printed by String, "select" for the
// move tool, or any element kind name.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move", "select":
		return ToolMove, nil
	}
	k, err := state.ParseKind(s)
	if err != nil {
		return ToolMove, fmt.Errorf("unknown tool %q", s)
	}
	return ToolFor(k), nil
}

// ToolFor returns the creation tool for k.
func ToolFor(k state.Kind) Tool {
	switch k {
	case state.KindRectangle:
		return ToolRectangle
	case state.KindEllipse:
		return ToolEllipse
	case state.KindText:
		return ToolText
	case state.KindArrow:
		return ToolArrow
	}
	return ToolMove
}
