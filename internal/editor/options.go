package editor

import (
	"log/slog"

	"MentorCanvas/internal/state"
)

// Option configures an Editor.
type Option func(*Editor)

// WithIDFunc replaces the id source used for committed and duplicated
// elements.
func WithIDFunc(fn state.IDFunc) Option {
	return func(e *Editor) {
		if fn != nil {
			e.ids = fn
		}
	}
}

// WithOnChange sets the scene-out callback. It receives the complete
// next scene after every change the editor makes.
func WithOnChange(fn func(state.Scene)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// WithOnRedraw sets the callback invoked whenever the canvas needs a
// repaint.
func WithOnRedraw(fn func()) Option {
	return func(e *Editor) { e.onRedraw = fn }
}

// WithOnClose sets the callback invoked when the user dismisses the
// editor.
func WithOnClose(fn func()) Option {
	return func(e *Editor) { e.onClose = fn }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPanOnEmpty makes a move-tool press on empty canvas start a pan.
func WithPanOnEmpty(on bool) Option {
	return func(e *Editor) { e.panOnEmpty = on }
}

// WithDefaultText sets the label given to new text elements.
func WithDefaultText(s string) Option {
	return func(e *Editor) { e.defaultText = s }
}

// WithStyle sets the initial style for new elements.
func WithStyle(s state.Style) Option {
	return func(e *Editor) { e.style = normalizeStyle(s) }
}

// WithGrid sets the initial grid visibility.
func WithGrid(on bool) Option {
	return func(e *Editor) { e.showGrid = on }
}
