package ui

import (
	"errors"
	"time"

	"MentorCanvas/internal/export"
)

var errNothingPainted = errors.New("canvas has not been painted yet")

// exporter writes the canvas to timestamped files in dir.
type exporter struct {
	canvas *CanvasWidget
	dir    string
	now    func() time.Time
}

func (x exporter) png() (string, error) {
	data, ok := x.canvas.Editor().Rasterize()
	if !ok {
		return "", errNothingPainted
	}
	path := export.FileName(x.dir, "png", x.now())
	return path, export.WritePNG(path, data)
}

func (x exporter) pdf() (string, error) {
	path := export.FileName(x.dir, "pdf", x.now())
	return path, export.PDF(path, x.canvas.Editor().Scene())
}
