package ui

import (
	"fyne.io/fyne/v2"

	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/state"
)

const (
	prefGrid        = "canvas.grid"
	prefFill        = "canvas.fill"
	prefStrokeColor = "canvas.strokeColor"
	prefStrokeWidth = "canvas.strokeWidth"
)

// Settings persists canvas preferences between runs.
type Settings struct {
	prefs fyne.Preferences
}

func NewSettings(prefs fyne.Preferences) Settings { return Settings{prefs: prefs} }

func (s Settings) Grid() bool { return s.prefs.BoolWithFallback(prefGrid, true) }

func (s Settings) Style() state.Style {
	d := state.DefaultStyle
	return state.Style{
		Color:       s.prefs.StringWithFallback(prefFill, d.Color),
		StrokeColor: s.prefs.StringWithFallback(prefStrokeColor, d.StrokeColor),
		StrokeWidth: s.prefs.FloatWithFallback(prefStrokeWidth, d.StrokeWidth),
	}
}

func (s Settings) SetGrid(on bool)          { s.prefs.SetBool(prefGrid, on) }
func (s Settings) SetFill(c string)         { s.prefs.SetString(prefFill, c) }
func (s Settings) SetStrokeColor(c string)  { s.prefs.SetString(prefStrokeColor, c) }
func (s Settings) SetStrokeWidth(w float64) { s.prefs.SetFloat(prefStrokeWidth, w) }

// EditorOptions starts an editor from the saved settings.
func (s Settings) EditorOptions() []editor.Option {
	return []editor.Option{editor.WithStyle(s.Style()), editor.WithGrid(s.Grid())}
}
