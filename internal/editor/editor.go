// Package editor implements the canvas editing core: the tool state
// machine, selection, view control and the element actions. The scene is
// owned by the caller; the editor reads it through SetScene and hands
// every next scene back through the OnChange callback.
//
// An Editor is not safe for concurrent use. All calls are expected on
// one goroutine, in pointer-event order.
package editor

import (
	"image"
	"log/slog"

	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/render"
	"MentorCanvas/internal/state"
)

const (
	// MinDrawSize is the extent a draw gesture must exceed in at least
	// one dimension to be committed.
	MinDrawSize = 5.0
	// DuplicateOffset is how far a duplicate lands from its source.
	DuplicateOffset = 20.0
	// DefaultText labels new text elements.
	DefaultText = "New Text"
)

type Editor struct {
	scene     state.Scene
	view      geom.View
	tool      Tool
	style     state.Style
	selection string
	gesture   gesture
	showGrid  bool

	ids         state.IDFunc
	defaultText string
	panOnEmpty  bool
	onChange    func(state.Scene)
	onRedraw    func()
	onClose     func()

	renderer render.Renderer
	surface  *render.Surface
	log      *slog.Logger
}

// New returns an idle editor on scene with the move tool selected.
func New(scene state.Scene, opts ...Option) *Editor {
	e := &Editor{
		view:        geom.DefaultView(),
		tool:        ToolMove,
		style:       state.DefaultStyle,
		gesture:     idle{},
		showGrid:    true,
		ids:         state.NewID,
		defaultText: DefaultText,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scene = e.adopt(scene)
	e.log = e.log.With("component", "editor")
	e.renderer.Log = e.log
	return e
}

// SetScene is the scene-in path: the owner replaced the scene. A
// selection or drag that refers to a vanished element is dropped.
func (e *Editor) SetScene(scene state.Scene) {
	e.scene = e.adopt(scene)
	if e.selection != "" && !e.scene.Contains(e.selection) {
		e.selection = ""
	}
	if g, ok := e.gesture.(dragging); ok && !e.scene.Contains(g.id) {
		e.gesture = idle{}
	}
	e.redraw()
}

// adopt normalizes an incoming scene and makes its ids unique, so that
// hit testing and lookups agree on which element an id names.
func (e *Editor) adopt(scene state.Scene) state.Scene {
	return scene.WithUniqueIDs(e.ids).Normalized()
}

// Scene returns a copy of the scene as the editor last saw or produced it.
func (e *Editor) Scene() state.Scene { return e.scene.Clone() }

// Selection returns the selected element id.
func (e *Editor) Selection() (string, bool) { return e.selection, e.selection != "" }

// SelectedElement returns the selected element.
func (e *Editor) SelectedElement() (state.Element, bool) {
	if e.selection == "" {
		return state.Element{}, false
	}
	return e.scene.Find(e.selection)
}

// Mode reports the gesture in progress.
func (e *Editor) Mode() Mode { return e.gesture.mode() }

// Draft returns the shape being drawn, if any.
func (e *Editor) Draft() (state.Element, bool) {
	if g, ok := e.gesture.(drawing); ok && g.draft != nil {
		return *g.draft, true
	}
	return state.Element{}, false
}

func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches tools. A gesture in progress is finished first.
func (e *Editor) SetTool(t Tool) {
	e.finish()
	e.tool = t
	e.redraw()
}

func (e *Editor) Style() state.Style { return e.style }

func (e *Editor) SetFill(c string) {
	e.style.Color = c
}

func (e *Editor) SetStrokeColor(c string) {
	e.style.StrokeColor = c
}

// SetStrokeWidth sets the stroke width for new elements, at least
// state.MinStrokeWidth.
func (e *Editor) SetStrokeWidth(w float64) {
	e.style.StrokeWidth = w
	e.style = normalizeStyle(e.style)
}

func normalizeStyle(s state.Style) state.Style {
	if s.StrokeWidth < state.MinStrokeWidth {
		s.StrokeWidth = state.MinStrokeWidth
	}
	return s
}

func (e *Editor) View() geom.View { return e.view }

func (e *Editor) ZoomIn() {
	e.view = e.view.ZoomIn()
	e.redraw()
}

func (e *Editor) ZoomOut() {
	e.view = e.view.ZoomOut()
	e.redraw()
}

// ResetView returns to zoom 1 with no pan.
func (e *Editor) ResetView() {
	e.view = e.view.Reset()
	e.redraw()
}

// PanBy shifts the view by a device-space delta.
func (e *Editor) PanBy(d geom.Point) {
	e.view = e.view.PanBy(d)
	e.redraw()
}

func (e *Editor) ShowGrid() bool { return e.showGrid }

func (e *Editor) SetGrid(on bool) {
	e.showGrid = on
	e.redraw()
}

func (e *Editor) ToggleGrid() { e.SetGrid(!e.showGrid) }

// PointerDown starts a gesture at device position p.
func (e *Editor) PointerDown(p geom.Point) {
	e.finish()
	m := e.view.ToModel(p)

	kind, creating := e.tool.Kind()
	if creating {
		e.gesture = drawing{origin: m, kind: kind}
		return
	}

	id, hit := e.scene.HitTest(m)
	if !hit {
		e.selection = ""
		if e.panOnEmpty {
			e.gesture = panning{last: p}
		}
		e.redraw()
		return
	}
	el, _ := e.scene.Find(id)
	e.selection = id
	e.gesture = dragging{id: id, grab: m.Sub(el.Origin())}
	e.redraw()
}

// PointerMove advances the gesture to device position p.
func (e *Editor) PointerMove(p geom.Point) {
	switch g := e.gesture.(type) {
	case idle:
	case dragging:
		el, ok := e.scene.Find(g.id)
		if !ok {
			e.gesture = idle{}
			return
		}
		to := e.view.ToModel(p).Sub(g.grab)
		e.publish(e.scene.Replace(el.MovedTo(to)))
	case drawing:
		draft := e.draftFor(g, e.view.ToModel(p))
		g.draft = &draft
		e.gesture = g
		e.redraw()
	case panning:
		e.view = e.view.PanBy(p.Sub(g.last))
		e.gesture = panning{last: p}
		e.redraw()
	}
}

// PointerUp finishes the gesture.
func (e *Editor) PointerUp() { e.finish() }

// PointerLeave is handled exactly like PointerUp so that leaving the
// canvas never strands a gesture.
func (e *Editor) PointerLeave() { e.finish() }

func (e *Editor) draftFor(g drawing, to geom.Point) state.Element {
	r := geom.RectFromCorners(g.origin, to)
	el := state.Element{
		Kind:   g.kind,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Style:  e.style,
	}
	if g.kind == state.KindText {
		el.Text = e.defaultText
		el.Color = "transparent"
	}
	return el
}

// finish ends the current gesture: a draft large enough is committed and
// selected, anything else is dropped.
func (e *Editor) finish() {
	g := e.gesture
	e.gesture = idle{}

	switch g := g.(type) {
	case idle, dragging, panning:
	case drawing:
		if g.draft == nil {
			return
		}
		d := *g.draft
		if d.Width <= MinDrawSize && d.Height <= MinDrawSize {
			e.log.Debug("draft discarded", "kind", d.Kind, "width", d.Width, "height", d.Height)
			e.redraw()
			return
		}
		d.ID = e.ids()
		e.selection = d.ID
		e.log.Debug("element committed", "id", d.ID, "kind", d.Kind)
		e.publish(e.scene.Append(d))
	}
}

// publish adopts next as the scene and hands a copy to the owner.
func (e *Editor) publish(next state.Scene) {
	e.scene = next
	if e.onChange != nil {
		e.onChange(next.Clone())
	}
	e.redraw()
}

func (e *Editor) redraw() {
	if e.onRedraw != nil {
		e.onRedraw()
	}
}

// Frame describes what the canvas should show at the given raster size.
func (e *Editor) Frame(width, height int, pixelRatio float64) render.Frame {
	f := render.Frame{
		Scene:      e.scene,
		View:       e.view,
		Selection:  e.selection,
		ShowGrid:   e.showGrid,
		Width:      width,
		Height:     height,
		PixelRatio: pixelRatio,
	}
	if d, ok := e.Draft(); ok {
		f.Draft = &d
	}
	return f
}

// Paint renders the current frame and, when a surface is attached, keeps
// it there for Rasterize.
func (e *Editor) Paint(width, height int, pixelRatio float64) *image.RGBA {
	img := e.renderer.Render(e.Frame(width, height, pixelRatio))
	if e.surface != nil {
		e.surface.Store(img)
	}
	return img
}

// AttachSurface connects the raster surface the UI paints into.
func (e *Editor) AttachSurface(s *render.Surface) { e.surface = s }

// Close asks the owner to dismiss the editor.
func (e *Editor) Close() {
	e.finish()
	if e.onClose != nil {
		e.onClose()
	}
}
