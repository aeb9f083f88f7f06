package net

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Peer is one websocket connection. Writes are serialized.
type Peer struct {
	conn *websocket.Conn
	addr string
	mu   sync.Mutex
}

func newPeer(conn *websocket.Conn) *Peer {
	conn.SetReadLimit(maxMessageSize)
	return &Peer{conn: conn, addr: conn.RemoteAddr().String()}
}

func (p *Peer) Addr() string { return p.addr }

// Send writes env as a single JSON text frame.
func (p *Peer) Send(env Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(env)
}

func (p *Peer) close() error {
	p.mu.Lock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = p.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	p.mu.Unlock()
	return p.conn.Close()
}

// readLoop hands every valid frame to fn until the connection ends or a
// close envelope arrives. A normal closure returns nil.
func readLoop(conn *websocket.Conn, log *slog.Logger, fn func(Envelope)) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		env, err := Decode(data)
		if err != nil {
			log.Warn("dropping frame", "err", err)
			continue
		}
		fn(env)
		if env.Type == KindClose {
			return nil
		}
	}
}

// Hub is the host side of the feed: it accepts viewers over websocket,
// hands their frames to OnEnvelope and fans frames out with Broadcast.
type Hub struct {
	// OnEnvelope receives every frame a peer sends. It runs on the
	// peer's read goroutine.
	OnEnvelope func(from *Peer, env Envelope)
	// OnJoin runs once per peer after the upgrade, before frames are read.
	OnJoin func(p *Peer)

	mu       sync.RWMutex
	peers    map[string]*Peer
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		peers: make(map[string]*Peer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Viewers are desktop clients on the LAN, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With("component", "hub"),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := newPeer(conn)
	h.add(p)
	defer h.remove(p)

	if h.OnJoin != nil {
		h.OnJoin(p)
	}
	err = readLoop(conn, h.log, func(env Envelope) {
		if env.Type != KindClose && h.OnEnvelope != nil {
			h.OnEnvelope(p, env)
		}
	})
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		h.log.Debug("peer read ended", "peer", p.addr, "err", err)
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	h.peers[p.addr] = p
	n := len(h.peers)
	h.mu.Unlock()
	h.log.Info("viewer connected", "peer", p.addr, "peers", n)
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	_, ok := h.peers[p.addr]
	delete(h.peers, p.addr)
	h.mu.Unlock()
	if ok {
		_ = p.conn.Close()
		h.log.Info("viewer left", "peer", p.addr)
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast sends env to every peer except the optional sender. Peers
// that fail to receive are dropped.
func (h *Hub) Broadcast(env Envelope, except *Peer) {
	h.mu.RLock()
	targets := make([]*Peer, 0, len(h.peers))
	for _, p := range h.peers {
		if p != except {
			targets = append(targets, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range targets {
		if err := p.Send(env); err != nil {
			h.log.Warn("broadcast failed", "peer", p.addr, "type", env.Type, "err", err)
			h.remove(p)
		}
	}
}

// Close sends a close envelope and disconnects every peer.
func (h *Hub) Close() {
	h.Broadcast(Envelope{Type: KindClose}, nil)
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[string]*Peer)
	h.mu.Unlock()
	for _, p := range peers {
		_ = p.close()
	}
}
