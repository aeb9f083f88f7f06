package editor

import (
	"MentorCanvas/internal/export"
	"MentorCanvas/internal/geom"
	"MentorCanvas/internal/state"
)

// DuplicateSelected copies the selected element DuplicateOffset units
// down and right, appends it and selects the copy. It returns the new id;
// ok is false when nothing is selected.
func (e *Editor) DuplicateSelected() (id string, ok bool) {
	src, ok := e.SelectedElement()
	if !ok {
		return "", false
	}
	clone := src.MovedTo(src.Origin().Add(geom.Pt(DuplicateOffset, DuplicateOffset)))
	clone.ID = e.ids()
	e.selection = clone.ID
	e.publish(e.scene.Append(clone))
	return clone.ID, true
}

// DeleteSelected removes the selected element and clears the selection.
func (e *Editor) DeleteSelected() bool {
	if e.selection == "" {
		return false
	}
	return e.Delete(e.selection)
}

// Delete removes element id. The selection is cleared only if it pointed
// at that element.
func (e *Editor) Delete(id string) bool {
	if !e.scene.Contains(id) {
		return false
	}
	if g, ok := e.gesture.(dragging); ok && g.id == id {
		e.gesture = idle{}
	}
	if e.selection == id {
		e.selection = ""
	}
	e.publish(e.scene.Remove(id))
	return true
}

// ClearAll empties the scene and the selection.
func (e *Editor) ClearAll() {
	e.finish()
	e.selection = ""
	e.publish(state.Scene{})
}

// Rasterize returns the attached surface as PNG. ok is false when no
// surface is attached or nothing has been painted into it.
func (e *Editor) Rasterize() (png []byte, ok bool) {
	if e.surface == nil {
		return nil, false
	}
	return e.surface.PNG()
}

// RasterizeDataURL is Rasterize encoded as a PNG data URL.
func (e *Editor) RasterizeDataURL() (string, bool) {
	png, ok := e.Rasterize()
	if !ok {
		return "", false
	}
	return export.DataURL(png), true
}
