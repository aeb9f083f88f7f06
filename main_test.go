package main

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/config"
	mcnet "MentorCanvas/internal/net"
	"MentorCanvas/internal/state"
)

const twoShapes = "Here you go\nCANVAS_TOOL:[" +
	`{"id":"a","type":"rectangle","x":100,"y":100,"width":40,"height":40,"color":"#fff","strokeColor":"#000","strokeWidth":1},` +
	`{"id":"b","type":"circle","x":200,"y":0,"width":30,"height":30,"color":"red","strokeColor":"black","strokeWidth":2}]`

func newTestHost(t *testing.T) *host {
	t.Helper()
	a := test.NewTempApp(t)
	h := newHost(a, &config.Config{ExportDir: t.TempDir()}, slog.Default())
	t.Cleanup(h.win.Window().Close)
	t.Cleanup(h.hub.Close)
	return h
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestHostFeedDuringDragKeepsBoardAndEditorInStep(t *testing.T) {
	h := newTestHost(t)
	start := state.Scene{{ID: "a", Kind: state.KindRectangle, Width: 40, Height: 40, Style: state.DefaultStyle}}
	h.win.OpenCanvas(start)
	require.Equal(t, h.board.Scene(), h.win.Canvas().Editor().Scene())

	c := h.win.Canvas()
	c.MouseDown(press(10, 10))
	c.Dragged(dragTo(20, 20))
	require.Equal(t, 10.0, h.board.Scene()[0].X)

	require.NoError(t, h.feed.Deliver(context.Background(), chat.Message{Role: chat.RoleAssistant, Content: twoShapes}))
	require.Eventually(t, func() bool { return h.board.Scene().Contains("b") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, h.board.Scene(), c.Editor().Scene())

	c.Dragged(dragTo(30, 30))
	c.DragEnd()

	board, edited := h.board.Scene(), c.Editor().Scene()
	assert.Equal(t, board, edited)
	require.Len(t, board, 2)
	assert.True(t, board.Contains("b"), "the delivered scene survives the drag")
	assert.Equal(t, 1, h.win.Chat().Len())
}

func TestHostReopenedBlueprintReplacesBoard(t *testing.T) {
	h := newTestHost(t)
	require.NoError(t, h.feed.Deliver(context.Background(), chat.Message{Role: chat.RoleAssistant, Content: twoShapes}))
	require.Eventually(t, func() bool { return len(h.board.Scene()) == 2 }, time.Second, 10*time.Millisecond)
	first := h.board.Scene()

	h.win.Canvas().Editor().Close()
	require.False(t, h.canvasOpen.Load())

	h.win.OpenCanvas(first)
	assert.True(t, h.canvasOpen.Load())
	assert.True(t, h.win.CanvasVisible())
	assert.Equal(t, first, h.board.Scene())
	assert.Equal(t, first, h.win.Canvas().Editor().Scene())
}

func TestHostJoinWhileCanvasClosed(t *testing.T) {
	h := newTestHost(t)
	h.win.OpenCanvas(state.Scene{{ID: "x", Kind: state.KindText, Text: "Lobby", Width: 80, Height: 20, Style: state.DefaultStyle}})
	h.win.Canvas().Editor().Close()

	srv := httptest.NewServer(h.handler())
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := mcnet.Dial(ctx, strings.TrimPrefix(srv.URL, "http://"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	frames := make(chan mcnet.Envelope, 4)
	go func() { _ = c.Listen(ctx, func(env mcnet.Envelope) { frames <- env }) }()

	var got []mcnet.Kind
	for len(got) < 2 {
		select {
		case env := <-frames:
			got = append(got, env.Type)
		case <-ctx.Done():
			t.Fatalf("received only %v", got)
		}
	}
	assert.Equal(t, []mcnet.Kind{mcnet.KindScene, mcnet.KindClose}, got)
}

func TestHostJoinWhileCanvasOpen(t *testing.T) {
	h := newTestHost(t)
	srv := httptest.NewServer(h.handler())
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := mcnet.Dial(ctx, strings.TrimPrefix(srv.URL, "http://"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	frames := make(chan mcnet.Envelope, 4)
	go func() { _ = c.Listen(ctx, func(env mcnet.Envelope) { frames <- env }) }()
	select {
	case env := <-frames:
		assert.Equal(t, mcnet.KindScene, env.Type)
	case <-ctx.Done():
		t.Fatal("no initial scene")
	}
	select {
	case env := <-frames:
		t.Fatalf("unexpected %s frame", env.Type)
	case <-time.After(100 * time.Millisecond):
	}
}
