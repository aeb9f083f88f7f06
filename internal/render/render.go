// Package render paints canvas frames into RGBA images with the gg
// software rasterizer. Rendering is a pure function of the Frame.
package render

import (
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/state"
)

const (
	GridSpacing = 20.0 // model units
	FontSize    = 16.0 // model units, scaled by zoom

	gridLineWidth  = 0.5
	gridAlpha      = 0.3
	selectionWidth = 2.0
	selectionInset = 2.0
	handleSize     = 8.0
	arrowHead      = 10.0 // model units
)

var (
	gridColor      = gg.Hex("#e5e7eb")
	selectionColor = gg.Hex("#3b82f6")
	fallbackStroke = gg.Hex("#000000")
)

// Frame is everything a repaint depends on.
type Frame struct {
	Scene     state.Scene
	Draft     *state.Element // painted above the scene, never selected
	View      geom.View
	Selection string
	ShowGrid  bool

	// Width and Height are the raster size in pixels.
	Width, Height int
	// PixelRatio converts device units to raster pixels. Zero means 1.
	PixelRatio float64
}

var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Renderer turns frames into images. The zero value is ready to use and
// logs to slog.Default.
type Renderer struct {
	Log *slog.Logger
}

// Render paints f into a new image of f.Width × f.Height pixels.
func (r *Renderer) Render(f Frame) *image.RGBA {
	w, h := max(f.Width, 1), max(f.Height, 1)
	dc := gg.NewContext(w, h)
	defer dc.Close()

	p := painter{dc: dc, view: f.View, ratio: f.PixelRatio, width: float64(w), height: float64(h), log: r.logger()}
	if p.ratio <= 0 {
		p.ratio = 1
	}
	if src, err := fontSource(); err == nil {
		p.fonts = src
	} else {
		r.logger().Warn("font unavailable, text elements skipped", "err", err)
	}

	dc.Clear()
	if f.ShowGrid {
		p.grid()
	}
	for _, el := range f.Scene {
		p.element(el)
	}
	if f.Draft != nil {
		p.element(*f.Draft)
	}
	if f.Selection != "" {
		if el, ok := f.Scene.Find(f.Selection); ok {
			p.selection(el)
		}
	}

	// The software context always hands back its pixmap as *image.RGBA.
	return dc.Image().(*image.RGBA)
}

func (r *Renderer) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// painter maps model space through the view into raster pixels.
type painter struct {
	dc            *gg.Context
	view          geom.View
	ratio         float64
	width, height float64
	fonts         *text.FontSource
	log           *slog.Logger
	failed        bool
}

// check logs the first rasterizer failure of a frame at debug level.
func (p *painter) check(op string, err error) {
	if err == nil || p.failed {
		return
	}
	p.failed = true
	p.log.Debug("rasterizer call failed", "op", op, "err", err)
}

func (p *painter) rect(m geom.Rect) geom.Rect {
	d := p.view.RectToDevice(m)
	return geom.Rect{X: d.X * p.ratio, Y: d.Y * p.ratio, Width: d.Width * p.ratio, Height: d.Height * p.ratio}
}

// model converts a model length to raster pixels.
func (p *painter) model(l float64) float64 { return l * p.view.Zoom * p.ratio }

// device converts a device length to raster pixels.
func (p *painter) device(l float64) float64 { return l * p.ratio }

func (p *painter) grid() {
	spacing := p.model(GridSpacing)
	if spacing < 1 {
		return
	}
	c := gridColor
	c.A = gridAlpha
	p.dc.SetColor(c.Color())
	p.dc.SetLineWidth(p.device(gridLineWidth))

	offX := math.Mod(p.device(p.view.Pan.X), spacing)
	offY := math.Mod(p.device(p.view.Pan.Y), spacing)
	for x := offX; x < p.width; x += spacing {
		p.dc.DrawLine(x, 0, x, p.height)
	}
	for y := offY; y < p.height; y += spacing {
		p.dc.DrawLine(0, y, p.width, y)
	}
	p.check("stroke", p.dc.Stroke())
}

func (p *painter) element(el state.Element) {
	r := p.rect(el.Bounds())
	fill := colorOr(el.Color, gg.RGBA{})
	stroke := colorOr(el.StrokeColor, fallbackStroke)
	p.dc.SetLineWidth(p.device(math.Max(el.StrokeWidth, state.MinStrokeWidth)))

	switch el.Kind {
	case state.KindRectangle:
		p.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		p.fillStroke(fill, stroke)
	case state.KindEllipse:
		p.dc.DrawEllipse(r.X+r.Width/2, r.Y+r.Height/2, r.Width/2, r.Height/2)
		p.fillStroke(fill, stroke)
	case state.KindText:
		if p.fonts == nil || el.Text == "" {
			return
		}
		size := p.model(FontSize)
		if size < 1 {
			return
		}
		p.dc.SetFont(p.fonts.Face(size))
		p.dc.SetColor(stroke.Color())
		p.dc.DrawString(el.Text, r.X, r.Y+size)
	case state.KindArrow:
		mid := r.Y + r.Height/2
		tip := r.X + r.Width - p.model(arrowHead)
		back := r.X + r.Width - p.model(2*arrowHead)
		wing := p.model(arrowHead)
		p.dc.MoveTo(r.X, mid)
		p.dc.LineTo(tip, mid)
		p.dc.LineTo(back, mid-wing)
		p.dc.MoveTo(tip, mid)
		p.dc.LineTo(back, mid+wing)
		p.dc.SetColor(stroke.Color())
		p.check("stroke", p.dc.Stroke())
	}
}

func (p *painter) fillStroke(fill, stroke gg.RGBA) {
	if fill.A > 0 {
		p.dc.SetColor(fill.Color())
		p.check("fill", p.dc.FillPreserve())
	}
	p.dc.SetColor(stroke.Color())
	p.check("stroke", p.dc.Stroke())
}

// selection draws the dashed outline and the four corner handles.
func (p *painter) selection(el state.Element) {
	r := p.rect(el.Bounds())
	outline := r.Inset(p.device(selectionInset))

	p.dc.SetColor(selectionColor.Color())
	p.dc.SetLineWidth(p.device(selectionWidth))
	p.dc.SetDash(p.device(5), p.device(5))
	p.dc.DrawRectangle(outline.X, outline.Y, outline.Width, outline.Height)
	p.check("stroke", p.dc.Stroke())
	p.dc.ClearDash()

	hs := p.device(handleSize)
	for _, c := range r.Corners() {
		p.dc.DrawRectangle(c.X-hs/2, c.Y-hs/2, hs, hs)
		p.check("fill", p.dc.Fill())
	}
}
