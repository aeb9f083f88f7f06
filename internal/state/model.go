// Package state defines the canvas scene: shape elements, their style,
// the ordered Scene they live in and the Board that owns it.
package state

import (
	"fmt"
	"strings"

	"MentorCanvas/internal/geom"
)

// Kind is the closed set of shape primitives.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindText
	KindArrow
)

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{KindRectangle, KindEllipse, KindText, KindArrow}

// String returns the wire name. The ellipse travels as "circle" so that
// directives authored for the web client keep working.
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "circle"
	case KindText:
		return "text"
	case KindArrow:
		return "arrow"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the wire names plus "ellipse".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return KindRectangle, nil
	case "circle", "ellipse":
		return KindEllipse, nil
	case "text":
		return KindText, nil
	case "arrow":
		return KindArrow, nil
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindRectangle, KindEllipse, KindText, KindArrow:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("cannot marshal %s", k)
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Style is the paint of an element. Colors are CSS-like strings
// ("#3b82f6", "transparent", "red").
type Style struct {
	Color       string  `json:"color"`
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// MinStrokeWidth is the thinnest stroke an element may carry.
const MinStrokeWidth = 1

// DefaultStyle is the palette the editor starts from.
var DefaultStyle = Style{
	Color:       "#3b82f6",
	StrokeColor: "#1e40af",
	StrokeWidth: 2,
}

// Element is one shape on the canvas. Geometry is in model units.
type Element struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text,omitempty"`
	Style
}

// Bounds is the element's axis-aligned bounding box.
func (e Element) Bounds() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Origin is the top-left corner.
func (e Element) Origin() geom.Point {
	return geom.Pt(e.X, e.Y)
}

// MovedTo returns a copy positioned at p.
func (e Element) MovedTo(p geom.Point) Element {
	e.X, e.Y = p.X, p.Y
	return e
}

// Normalized returns a copy satisfying the element invariants: no
// negative extent, stroke width of at least MinStrokeWidth, and a label
// only on text elements.
func (e Element) Normalized() Element {
	r := e.Bounds().Normalize()
	e.X, e.Y, e.Width, e.Height = r.X, r.Y, r.Width, r.Height
	if e.StrokeWidth < MinStrokeWidth {
		e.StrokeWidth = MinStrokeWidth
	}
	if e.Kind != KindText {
		e.Text = ""
	}
	return e
}
