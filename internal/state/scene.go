package state

import "MentorCanvas/internal/geom"

// Scene is the ordered element list. Later elements paint on top and win
// hit tests. Every method leaves the receiver untouched and returns a
// freshly allocated Scene, so a published Scene can be shared freely.
type Scene []Element

// Clone copies the scene into a new backing array. Nil stays nil.
func (s Scene) Clone() Scene {
	if s == nil {
		return nil
	}
	out := make(Scene, len(s))
	copy(out, s)
	return out
}

// Normalized clones the scene with every element normalized.
func (s Scene) Normalized() Scene {
	out := make(Scene, len(s))
	for i, el := range s {
		out[i] = el.Normalized()
	}
	return out
}

// WithUniqueIDs clones the scene, giving every element with an empty or
// already used id a fresh one from ids (NewID when nil). The first
// element keeps a contested id.
func (s Scene) WithUniqueIDs(ids IDFunc) Scene {
	if ids == nil {
		ids = NewID
	}
	out := s.Clone()
	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = ids()
		}
		seen[out[i].ID] = true
	}
	return out
}

// Index returns the position of id, or -1.
func (s Scene) Index(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the element with the given id.
func (s Scene) Find(id string) (Element, bool) {
	if i := s.Index(id); i >= 0 {
		return s[i], true
	}
	return Element{}, false
}

func (s Scene) Contains(id string) bool {
	return s.Index(id) >= 0
}

// Append returns the scene with el added on top.
func (s Scene) Append(el Element) Scene {
	out := make(Scene, len(s), len(s)+1)
	copy(out, s)
	return append(out, el)
}

// Replace returns the scene with the element of the same id swapped for
// el. The order is kept. An unknown id returns an unchanged clone.
func (s Scene) Replace(el Element) Scene {
	out := s.Clone()
	if i := out.Index(el.ID); i >= 0 {
		out[i] = el
	}
	return out
}

// Remove returns the scene without id.
func (s Scene) Remove(id string) Scene {
	out := make(Scene, 0, len(s))
	for _, el := range s {
		if el.ID != id {
			out = append(out, el)
		}
	}
	return out
}

// HitTest returns the id of the top-most element whose bounding box
// contains p, boundary included. Ellipses, text and arrows are tested
// against their bounds like rectangles.
func (s Scene) HitTest(p geom.Point) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if hitBounds(s[i]).Contains(p) {
			return s[i].ID, true
		}
	}
	return "", false
}

func hitBounds(el Element) geom.Rect {
	switch el.Kind {
	case KindRectangle, KindEllipse, KindText, KindArrow:
		return el.Bounds()
	}
	return geom.Rect{X: el.X, Y: el.Y}
}

// Bounds is the union of all element bounds. ok is false for an empty
// scene.
func (s Scene) Bounds() (r geom.Rect, ok bool) {
	for i, el := range s {
		if i == 0 {
			r = el.Bounds()
			continue
		}
		r = r.Union(el.Bounds())
	}
	return r, len(s) > 0
}
