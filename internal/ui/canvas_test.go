package ui

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/state"
)

type canvasHarness struct {
	*CanvasWidget
	published []state.Scene
}

func newCanvasHarness(t *testing.T, scene state.Scene) *canvasHarness {
	t.Helper()
	test.NewTempApp(t)
	h := &canvasHarness{}
	n := 0
	h.CanvasWidget = NewCanvasWidget(scene,
		editor.WithIDFunc(func() string { n++; return fmt.Sprintf("el-%d", n) }),
		editor.WithOnChange(func(s state.Scene) { h.published = append(h.published, s) }),
	)
	w := test.NewWindow(h.CanvasWidget)
	w.Resize(fyne.NewSize(400, 300))
	t.Cleanup(w.Close)
	return h
}

func (h *canvasHarness) last(t *testing.T) state.Scene {
	t.Helper()
	require.NotEmpty(t, h.published)
	return h.published[len(h.published)-1]
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestCanvasDrawsRectangle(t *testing.T) {
	h := newCanvasHarness(t, nil)
	h.Editor().SetTool(editor.ToolRectangle)

	h.MouseDown(mouse(10, 10))
	h.Dragged(dragTo(30, 30))
	h.Dragged(dragTo(60, 50))
	assert.Empty(t, h.published, "draft is not published")
	h.DragEnd()
	h.MouseUp(mouse(60, 50))

	require.Len(t, h.published, 1)
	el := h.last(t)[0]
	assert.Equal(t, "el-1", el.ID)
	assert.Equal(t, state.KindRectangle, el.Kind)
	assert.Equal(t, []float64{10, 10, 50, 40}, []float64{el.X, el.Y, el.Width, el.Height})
	id, ok := h.Editor().Selection()
	assert.True(t, ok)
	assert.Equal(t, "el-1", id)
}

func TestCanvasDragsElement(t *testing.T) {
	start := state.Scene{{ID: "a", Kind: state.KindEllipse, Width: 40, Height: 40, Style: state.DefaultStyle}}
	h := newCanvasHarness(t, start)

	h.MouseDown(mouse(10, 10))
	h.Dragged(dragTo(30, 25))
	h.DragEnd()

	el := h.last(t)[0]
	assert.Equal(t, "a", el.ID)
	assert.Equal(t, 20.0, el.X)
	assert.Equal(t, 15.0, el.Y)
	assert.Equal(t, 40.0, el.Width)
}

func TestCanvasMouseOutFinishesDraw(t *testing.T) {
	h := newCanvasHarness(t, nil)
	h.Editor().SetTool(editor.ToolArrow)
	h.MouseDown(mouse(0, 0))
	h.MouseMoved(mouse(100, 20))
	h.MouseOut()

	assert.Equal(t, editor.ModeIdle, h.Editor().Mode())
	require.Len(t, h.last(t), 1)
	assert.Equal(t, state.KindArrow, h.last(t)[0].Kind)
}

func TestCanvasScrollZooms(t *testing.T) {
	h := newCanvasHarness(t, nil)
	h.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})
	assert.InDelta(t, 1.2, h.Editor().View().Zoom, 1e-9)
	h.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -1}})
	assert.InDelta(t, 1.0, h.Editor().View().Zoom, 1e-9)
}

func TestCanvasReadOnlyIgnoresEdits(t *testing.T) {
	h := newCanvasHarness(t, state.Scene{{ID: "a", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}})
	h.ReadOnly = true
	h.MouseDown(mouse(10, 10))
	h.Dragged(dragTo(50, 50))
	h.DragEnd()
	h.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	assert.Empty(t, h.published)
}

func TestCanvasKeys(t *testing.T) {
	h := newCanvasHarness(t, state.Scene{{ID: "a", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}})
	h.MouseDown(mouse(5, 5))
	h.MouseUp(mouse(5, 5))
	h.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	assert.Empty(t, h.last(t))

	h.TypedRune('+')
	assert.Equal(t, 120, h.Editor().View().Percent())
	h.TypedRune('0')
	assert.Equal(t, 100, h.Editor().View().Percent())
	grid := h.Editor().ShowGrid()
	h.TypedRune('g')
	assert.Equal(t, !grid, h.Editor().ShowGrid())
}

func TestCanvasPaintsRaster(t *testing.T) {
	h := newCanvasHarness(t, state.Scene{{ID: "a", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}})
	_, ok := h.Editor().Rasterize()
	require.False(t, ok)

	img := h.draw(200, 100)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	png, ok := h.Editor().Rasterize()
	require.True(t, ok)
	assert.NotEmpty(t, png)
}

func TestCanvasOnRedraw(t *testing.T) {
	h := newCanvasHarness(t, nil)
	calls := 0
	h.OnRedraw = func() { calls++ }
	h.Editor().ZoomIn()
	h.SetScene(state.Scene{})
	assert.Equal(t, 2, calls)
}
