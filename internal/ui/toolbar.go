package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/render"
)

var palette = []string{
	"#3b82f6", "#1e40af", "#ef4444", "#22c55e", "#eab308",
	"#a855f7", "#000000", "#ffffff", "transparent",
}

type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	var fill color.Color = color.Transparent
	if c, ok := render.ParseColor(s.Hex); ok {
		fill = c.Color()
	}
	rect := canvas.NewRectangle(fill)
	rect.SetMinSize(fyne.NewSize(22, 22))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Actions are the toolbar commands that reach outside the editor.
type Actions struct {
	ExportPNG func()
	ExportPDF func()
	// CopyLink is nil when there is no share link.
	CopyLink func()
}

// toolbar holds the controls whose text follows editor state.
type toolbar struct {
	object fyne.CanvasObject
	zoom   *widget.Label
	info   *widget.Label
	ed     *editor.Editor
}

func newToolbar(c *CanvasWidget, settings Settings, act Actions) *toolbar {
	ed := c.Editor()
	tb := &toolbar{ed: ed, zoom: widget.NewLabel(""), info: widget.NewLabel("")}

	names := make([]string, len(editor.Tools))
	for i, t := range editor.Tools {
		names[i] = t.String()
	}
	tools := widget.NewRadioGroup(names, func(name string) {
		if t, err := editor.ParseTool(name); err == nil {
			ed.SetTool(t)
		}
	})
	tools.Horizontal = true
	tools.Required = true
	tools.SetSelected(ed.Tool().String())

	swatches := func(set func(string)) fyne.CanvasObject {
		box := container.NewHBox()
		for _, hex := range palette {
			box.Add(newColorSwatch(hex, set))
		}
		return box
	}
	fills := swatches(func(hex string) {
		ed.SetFill(hex)
		settings.SetFill(hex)
	})
	strokes := swatches(func(hex string) {
		ed.SetStrokeColor(hex)
		settings.SetStrokeColor(hex)
	})

	width := widget.NewSlider(1, 10)
	width.Step = 1
	width.SetValue(ed.Style().StrokeWidth)
	width.OnChanged = func(v float64) {
		ed.SetStrokeWidth(v)
		settings.SetStrokeWidth(v)
	}
	widthBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), width)

	grid := widget.NewCheck("Grid", func(on bool) {
		ed.SetGrid(on)
		settings.SetGrid(on)
	})
	grid.SetChecked(ed.ShowGrid())

	items := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.ZoomInIcon(), ed.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), ed.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), ed.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() { ed.DuplicateSelected() }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { ed.DeleteSelected() }),
		widget.NewToolbarAction(theme.ContentClearIcon(), ed.ClearAll),
		widget.NewToolbarSeparator(),
	}
	if act.ExportPNG != nil {
		items = append(items, widget.NewToolbarAction(theme.MediaPhotoIcon(), act.ExportPNG))
	}
	if act.ExportPDF != nil {
		items = append(items, widget.NewToolbarAction(theme.DocumentSaveIcon(), act.ExportPDF))
	}
	if act.CopyLink != nil {
		items = append(items, widget.NewToolbarAction(theme.MailForwardIcon(), act.CopyLink))
	}
	items = append(items, widget.NewToolbarSpacer(), widget.NewToolbarAction(theme.CancelIcon(), ed.Close))

	tb.object = container.NewVBox(
		container.NewHBox(widget.NewLabel("Tool:"), tools, layout.NewSpacer(), tb.zoom, tb.info),
		container.NewHBox(
			widget.NewLabel("Fill:"), fills,
			widget.NewSeparator(),
			widget.NewLabel("Stroke:"), strokes,
			widget.NewSeparator(),
			widget.NewLabel("Width:"), widthBox,
			grid,
		),
		widget.NewToolbar(items...),
	)
	tb.refresh()
	return tb
}

// refresh updates the zoom and selection labels.
func (tb *toolbar) refresh() {
	setText(tb.zoom, fmt.Sprintf("%d%%", tb.ed.View().Percent()))
	info := fmt.Sprintf("%d elements", len(tb.ed.Scene()))
	if el, ok := tb.ed.SelectedElement(); ok {
		info = fmt.Sprintf("%s selected", el.Kind)
	}
	setText(tb.info, info)
}

func setText(l *widget.Label, s string) {
	if l.Text != s {
		l.SetText(s)
	}
}
