package geom

import "math"

const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 1.2
)

// View is the pan/zoom transform between model and device space:
//
//	device = model*Zoom + Pan
//	model  = (device - Pan) / Zoom
//
// The zero value is not usable; start from DefaultView.
type View struct {
	Pan  Point
	Zoom float64
}

// DefaultView is zoom 1 with no pan.
func DefaultView() View {
	return View{Zoom: 1}
}

// ToModel maps a device (pointer) position into model space.
func (v View) ToModel(p Point) Point {
	return Point{(p.X - v.Pan.X) / v.Zoom, (p.Y - v.Pan.Y) / v.Zoom}
}

// ToDevice maps a model position into device space.
func (v View) ToDevice(p Point) Point {
	return Point{p.X*v.Zoom + v.Pan.X, p.Y*v.Zoom + v.Pan.Y}
}

// RectToDevice maps a model rectangle into device space.
func (v View) RectToDevice(r Rect) Rect {
	o := v.ToDevice(r.Min())
	return Rect{X: o.X, Y: o.Y, Width: r.Width * v.Zoom, Height: r.Height * v.Zoom}
}

func (v View) ZoomIn() View {
	v.Zoom = clampZoom(v.Zoom * ZoomStep)
	return v
}

func (v View) ZoomOut() View {
	v.Zoom = clampZoom(v.Zoom / ZoomStep)
	return v
}

// Reset returns the default view.
func (v View) Reset() View {
	return DefaultView()
}

// PanBy shifts the view by a device-space delta.
func (v View) PanBy(d Point) View {
	v.Pan = v.Pan.Add(d)
	return v
}

// Percent is the zoom level rounded to a whole percentage, for status text.
func (v View) Percent() int {
	return int(math.Round(v.Zoom * 100))
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
