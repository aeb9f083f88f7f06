package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/state"
)

func TestWindowCloseAndReopen(t *testing.T) {
	a := test.NewTempApp(t)
	closed := 0
	w := NewWindow(a, Options{OnClose: func() { closed++ }})
	t.Cleanup(w.Window().Close)
	require.True(t, w.CanvasVisible())

	w.Canvas().Editor().Close()
	assert.False(t, w.CanvasVisible())
	assert.Equal(t, 1, closed)

	scene := state.Scene{{ID: "x", Kind: state.KindText, Text: "Lobby", Width: 80, Height: 20, Style: state.DefaultStyle}}
	w.ShowCanvas(scene)
	assert.True(t, w.CanvasVisible())
	assert.Equal(t, scene, w.Canvas().Editor().Scene())
}

func TestWindowReopensEarlierBlueprint(t *testing.T) {
	a := test.NewTempApp(t)
	var opened []state.Scene
	w := NewWindow(a, Options{OnOpen: func(s state.Scene) { opened = append(opened, s) }})
	t.Cleanup(w.Window().Close)

	kitchen := state.Scene{{ID: "k", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}}
	garden := state.Scene{
		{ID: "g1", Kind: state.KindEllipse, Width: 20, Height: 20, Style: state.DefaultStyle},
		{ID: "g2", Kind: state.KindEllipse, X: 30, Width: 20, Height: 20, Style: state.DefaultStyle},
	}
	w.AppendBlueprint(chat.Message{Role: chat.RoleAssistant, Content: "A kitchen"}, kitchen)
	w.OpenCanvas(kitchen)
	w.AppendBlueprint(chat.Message{Role: chat.RoleAssistant}, garden)
	w.OpenCanvas(garden)
	require.Equal(t, 2, w.Chat().Len())

	w.Canvas().Editor().Close()
	require.False(t, w.CanvasVisible())

	card := blueprintCard(t, w.Chat(), 0)
	assert.Equal(t, "1 element", card.Subtitle)
	test.Tap(card.Content.(*widget.Button))

	assert.True(t, w.CanvasVisible())
	assert.Equal(t, kitchen, w.Canvas().Editor().Scene())
	require.Len(t, opened, 3)
	assert.Equal(t, kitchen, opened[2])
	assert.Equal(t, "2 elements", blueprintCard(t, w.Chat(), 1).Subtitle)
}

func blueprintCard(t *testing.T, p *ChatPanel, i int) *widget.Card {
	t.Helper()
	entry, ok := p.history.Objects[i].(*fyne.Container)
	require.True(t, ok)
	card, ok := entry.Objects[len(entry.Objects)-1].(*widget.Card)
	require.True(t, ok)
	return card
}

func TestWindowPublishesEdits(t *testing.T) {
	a := test.NewTempApp(t)
	var got []state.Scene
	w := NewWindow(a, Options{
		IDs:      func() string { return "fixed" },
		OnChange: func(s state.Scene) { got = append(got, s) },
	})
	t.Cleanup(w.Window().Close)

	c := w.Canvas()
	c.Editor().SetTool(editor.ToolText)
	c.MouseDown(mouse(0, 0))
	c.Dragged(dragTo(90, 30))
	c.DragEnd()

	require.Len(t, got, 1)
	assert.Equal(t, "fixed", got[0][0].ID)
	assert.Equal(t, editor.DefaultText, got[0][0].Text)
}

func TestWindowChat(t *testing.T) {
	a := test.NewTempApp(t)
	var sent []string
	w := NewWindow(a, Options{OnSend: func(s string) { sent = append(sent, s) }})
	t.Cleanup(w.Window().Close)

	p := w.Chat()
	test.Type(p.entry, "  draw a kitchen  ")
	p.submit()
	p.entry.SetText("   ")
	p.submit()
	assert.Equal(t, []string{"draw a kitchen"}, sent)
	assert.Empty(t, p.entry.Text)

	w.AppendMessage(chat.Message{Role: chat.RoleUser, Content: "draw a kitchen"})
	w.AppendMessage(chat.Message{Role: chat.RoleAssistant, Content: "Here it is"})
	assert.Equal(t, 2, p.Len())
}

func TestWindowStatus(t *testing.T) {
	a := test.NewTempApp(t)
	w := NewWindow(a, Options{})
	t.Cleanup(w.Window().Close)
	w.SetStatus("Connected")
	assert.Eventually(t, func() bool { return w.StatusText() == "Connected" }, time.Second, 10*time.Millisecond)
}

func TestExporter(t *testing.T) {
	test.NewTempApp(t)
	c := NewCanvasWidget(state.Scene{{ID: "a", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}})
	dir := t.TempDir()
	x := exporter{canvas: c, dir: dir, now: func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC) }}

	_, err := x.png()
	assert.ErrorIs(t, err, errNothingPainted)

	c.draw(64, 64)
	path, err := x.png()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mentorcanvas-20261014-080000.png"), path)

	path, err = x.pdf()
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	a := test.NewTempApp(t)
	s := NewSettings(a.Preferences())
	assert.True(t, s.Grid())
	assert.Equal(t, state.DefaultStyle, s.Style())

	s.SetGrid(false)
	s.SetFill("#ef4444")
	s.SetStrokeColor("#000000")
	s.SetStrokeWidth(4)

	ed := editor.New(nil, s.EditorOptions()...)
	assert.False(t, ed.ShowGrid())
	assert.Equal(t, state.Style{Color: "#ef4444", StrokeColor: "#000000", StrokeWidth: 4}, ed.Style())
}
