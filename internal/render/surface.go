package render

import (
	"bytes"
	"image"
	"image/png"
	"sync"
)

// Surface holds the most recent frame painted for a visible canvas so it
// can be exported later. Safe for concurrent use.
type Surface struct {
	mu  sync.Mutex
	img *image.RGBA
}

// Store keeps img as the surface contents.
func (s *Surface) Store(img *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
}

// Image returns the last stored frame.
func (s *Surface) Image() (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img, s.img != nil
}

// PNG encodes the last stored frame. ok is false when nothing has been
// painted yet.
func (s *Surface) PNG() (data []byte, ok bool) {
	img, ok := s.Image()
	if !ok {
		return nil, false
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
