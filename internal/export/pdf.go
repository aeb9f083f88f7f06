// Package export writes canvas scenes out as PNG or PDF files.
package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/jung-kurt/gofpdf"

	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/render"
	"MentorCanvas/internal/state"
)

const (
	pageMargin = 10.0     // mm
	pxToMM     = 0.264583 // one CSS pixel at 96 dpi
	arrowHead  = 10.0     // model units, as on screen
)

// PDF writes scene to path as a single A4 page.
func PDF(path string, scene state.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(f, scene); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF lays scene out on one A4 page. Scenes that do not fit at
// their natural size are scaled down to the printable area.
func WritePDF(w io.Writer, scene state.Scene) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("MentorCanvas", true)
	p.SetCreator("MentorCanvas", true)
	p.AddPage()

	if bounds, ok := scene.Bounds(); ok {
		pageW, pageH := p.GetPageSize()
		l := fitLayout(bounds, pageW-2*pageMargin, pageH-2*pageMargin)
		for _, el := range scene {
			drawElement(p, l, el)
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// layout maps model units to page millimeters.
type layout struct {
	origin geom.Point
	scale  float64
}

func fitLayout(bounds geom.Rect, availW, availH float64) layout {
	scale := pxToMM
	if bounds.Width > 0 {
		scale = math.Min(scale, availW/bounds.Width)
	}
	if bounds.Height > 0 {
		scale = math.Min(scale, availH/bounds.Height)
	}
	return layout{origin: bounds.Min(), scale: scale}
}

func (l layout) point(p geom.Point) (float64, float64) {
	return pageMargin + (p.X-l.origin.X)*l.scale, pageMargin + (p.Y-l.origin.Y)*l.scale
}

func (l layout) length(v float64) float64 { return v * l.scale }

func drawElement(p *gofpdf.Fpdf, l layout, el state.Element) {
	x, y := l.point(el.Origin())
	w, h := l.length(el.Width), l.length(el.Height)
	style := applyStyle(p, l, el.Style)

	switch el.Kind {
	case state.KindRectangle:
		p.Rect(x, y, w, h, style)
	case state.KindEllipse:
		p.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, style)
	case state.KindText:
		size := l.length(render.FontSize)
		p.SetFont("Helvetica", "", 12)
		p.SetFontUnitSize(size)
		setColor(p.SetTextColor, el.StrokeColor, gg.RGBA{A: 1})
		p.Text(x, y+size, el.Text)
	case state.KindArrow:
		// Same shape as on screen: a horizontal shaft through the middle.
		mid := y + h/2
		head := l.length(arrowHead)
		tip, back := x+w-head, x+w-2*head
		p.Line(x, mid, tip, mid)
		p.Line(tip, mid, back, mid-head)
		p.Line(tip, mid, back, mid+head)
	}
}

// applyStyle sets pen and brush and returns the gofpdf draw style. A
// transparent fill only strokes.
func applyStyle(p *gofpdf.Fpdf, l layout, s state.Style) string {
	p.SetLineWidth(math.Max(l.length(s.StrokeWidth), 0.1))
	setColor(p.SetDrawColor, s.StrokeColor, gg.RGBA{A: 1})
	fill, ok := render.ParseColor(s.Color)
	if !ok || fill.A == 0 {
		return "D"
	}
	setColor(p.SetFillColor, s.Color, fill)
	return "FD"
}

func setColor(set func(r, g, b int), s string, def gg.RGBA) gg.RGBA {
	c, ok := render.ParseColor(s)
	if !ok {
		c = def
	}
	set(channel(c.R), channel(c.G), channel(c.B))
	return c
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
