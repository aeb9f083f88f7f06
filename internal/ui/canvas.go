// Package ui is the fyne front end: the canvas widget around the editor,
// its toolbar, the chat panel and the main window.
package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/render"
	"MentorCanvas/internal/state"
)

// CanvasWidget shows an editor and feeds it pointer input. All methods
// must be called on the fyne UI goroutine.
type CanvasWidget struct {
	widget.BaseWidget

	// OnRedraw runs after every repaint request, for status text.
	OnRedraw func()
	// ReadOnly ignores pointer and key edits; zoom still works.
	ReadOnly bool

	editor  *editor.Editor
	raster  *canvas.Raster
	surface render.Surface
}

var (
	_ fyne.Widget       = (*CanvasWidget)(nil)
	_ fyne.Draggable    = (*CanvasWidget)(nil)
	_ fyne.Scrollable   = (*CanvasWidget)(nil)
	_ fyne.Focusable    = (*CanvasWidget)(nil)
	_ desktop.Mouseable = (*CanvasWidget)(nil)
	_ desktop.Hoverable = (*CanvasWidget)(nil)
)

// NewCanvasWidget creates the widget and its editor. The widget installs
// its own redraw callback; use OnRedraw to observe repaints.
func NewCanvasWidget(scene state.Scene, opts ...editor.Option) *CanvasWidget {
	c := &CanvasWidget{}
	c.raster = canvas.NewRaster(c.draw)
	c.raster.ScaleMode = canvas.ImageScalePixels
	c.raster.SetMinSize(fyne.NewSize(300, 300))

	c.editor = editor.New(scene, append(opts, editor.WithOnRedraw(c.redraw))...)
	c.editor.AttachSurface(&c.surface)
	c.ExtendBaseWidget(c)
	return c
}

func (c *CanvasWidget) Editor() *editor.Editor { return c.editor }

// SetScene replaces what the canvas shows.
func (c *CanvasWidget) SetScene(scene state.Scene) { c.editor.SetScene(scene) }

func (c *CanvasWidget) redraw() {
	c.raster.Refresh()
	if c.OnRedraw != nil {
		c.OnRedraw()
	}
}

// draw is the raster generator; w and h are in pixels.
func (c *CanvasWidget) draw(w, h int) image.Image {
	ratio := 1.0
	if size := c.Size(); size.Width > 0 {
		ratio = float64(w) / float64(size.Width)
	}
	return c.editor.Paint(w, h, ratio)
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	return widget.NewSimpleRenderer(container.NewStack(bg, c.raster))
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || c.ReadOnly {
		return
	}
	c.requestFocus()
	c.editor.PointerDown(toPoint(e.Position))
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.editor.PointerUp()
	}
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	c.editor.PointerMove(toPoint(e.Position))
}

func (c *CanvasWidget) DragEnd() { c.editor.PointerUp() }

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}

func (c *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	c.editor.PointerMove(toPoint(e.Position))
}

// MouseOut ends any gesture so a release outside the canvas is not lost.
func (c *CanvasWidget) MouseOut() { c.editor.PointerLeave() }

func (c *CanvasWidget) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		c.editor.ZoomIn()
	} else if e.Scrolled.DY < 0 {
		c.editor.ZoomOut()
	}
}

func (c *CanvasWidget) requestFocus() {
	if cv := fyne.CurrentApp().Driver().CanvasForObject(c); cv != nil {
		cv.Focus(c)
	}
}

func (c *CanvasWidget) FocusGained() {}
func (c *CanvasWidget) FocusLost()   {}

func (c *CanvasWidget) TypedRune(r rune) {
	switch r {
	case '+', '=':
		c.editor.ZoomIn()
	case '-':
		c.editor.ZoomOut()
	case '0':
		c.editor.ResetView()
	case 'g':
		c.editor.ToggleGrid()
	}
}

func (c *CanvasWidget) TypedKey(e *fyne.KeyEvent) {
	if c.ReadOnly {
		return
	}
	switch e.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		c.editor.DeleteSelected()
	case fyne.KeyEscape:
		c.editor.PointerLeave()
	}
}
