package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"fyne.io/fyne/v2"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/config"
	mcnet "MentorCanvas/internal/net"
	"MentorCanvas/internal/state"
	"MentorCanvas/internal/ui"
)

// host owns the board and window of a hosting session and fans every
// change out to connected viewers.
type host struct {
	board        *state.Board
	hub          *mcnet.Hub
	feed         *chat.Feed
	win          *ui.Window
	link         string
	conversation string
	canvasOpen   atomic.Bool
	log          *slog.Logger
}

func newHost(a fyne.App, cfg *config.Config, log *slog.Logger) *host {
	h := &host{
		board:        state.NewBoard(log),
		hub:          mcnet.NewHub(log),
		conversation: state.NewID(),
		log:          log,
	}
	ip, err := mcnet.GetOutgoingIP()
	if err != nil {
		log.Warn("no outgoing address", "err", err)
		ip = "127.0.0.1"
	}
	h.link = mcnet.ShareLink(ip, cfg.Port)
	h.canvasOpen.Store(true)

	// The board is left out of the feed: directive scenes reach it through
	// the window's OnOpen, on the UI goroutine, together with the editor.
	h.feed = &chat.Feed{
		Store:    chat.NewMemoryStore(),
		Log:      log,
		OnCanvas: h.showBlueprint,
		OnText:   h.showText,
	}

	// Every replacement goes out to viewers, whoever made it.
	h.board.Subscribe(func(c state.Change) {
		h.hub.Broadcast(mcnet.SceneEnvelope(c.Scene), nil)
	})
	h.hub.OnJoin = h.join
	h.hub.OnEnvelope = h.receive

	h.win = ui.NewWindow(a, ui.Options{
		Title:      "MentorCanvas",
		ShareLink:  h.link,
		ExportDir:  cfg.ExportDir,
		PanOnEmpty: cfg.PanOnEmpty,
		Log:        log,
		OnChange: func(s state.Scene) {
			h.board.Replace(s, state.OriginEditor)
		},
		OnSend:  h.send,
		OnOpen:  h.open,
		OnClose: h.closeCanvas,
	})
	return h
}

// handler serves the viewer feed.
func (h *host) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(mcnet.Path, h.hub)
	return mux
}

// showBlueprint runs on the feed goroutine.
func (h *host) showBlueprint(msg chat.Message, scene state.Scene) {
	h.hub.Broadcast(mcnet.BlueprintEnvelope(msg, scene), nil)
	fyne.Do(func() {
		h.win.AppendBlueprint(msg, scene)
		h.win.OpenCanvas(scene)
	})
}

func (h *host) showText(msg chat.Message) {
	h.hub.Broadcast(mcnet.ChatEnvelope(msg), nil)
	fyne.Do(func() { h.win.AppendMessage(msg) })
}

// open runs on the UI goroutine right before the editor takes scene.
func (h *host) open(scene state.Scene) {
	h.canvasOpen.Store(true)
	h.board.Replace(scene, state.OriginFeed)
}

func (h *host) closeCanvas() {
	h.canvasOpen.Store(false)
	h.hub.Broadcast(mcnet.Envelope{Type: mcnet.KindClose}, nil)
}

// join brings a new viewer up to date, closed canvas included.
func (h *host) join(p *mcnet.Peer) {
	if err := p.Send(mcnet.SceneEnvelope(h.board.Scene())); err != nil {
		h.log.Warn("initial scene not sent", "peer", p.Addr(), "err", err)
		return
	}
	if h.canvasOpen.Load() {
		return
	}
	if err := p.Send(mcnet.Envelope{Type: mcnet.KindClose}); err != nil {
		h.log.Warn("canvas state not sent", "peer", p.Addr(), "err", err)
	}
}

func (h *host) receive(from *mcnet.Peer, env mcnet.Envelope) {
	if env.Type != mcnet.KindChat {
		h.log.Debug("ignoring viewer frame", "peer", from.Addr(), "type", env.Type)
		return
	}
	msg := *env.Message
	msg.ConversationID = h.conversation
	if err := h.feed.Converse(context.Background(), msg); err != nil {
		h.log.Error("viewer message failed", "peer", from.Addr(), "err", err)
	}
}

func (h *host) send(text string) {
	msg := chat.Message{ConversationID: h.conversation, Content: text}
	go func() {
		if err := h.feed.Converse(context.Background(), msg); err != nil {
			h.log.Error("message failed", "err", err)
			h.win.SetStatus("Message failed: " + err.Error())
		}
	}()
}
