package net

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gorilla/websocket"
)

// Client is a viewer's connection to a host hub.
type Client struct {
	peer *Peer
	log  *slog.Logger
}

// Dial connects to the hub at addr ("host:port").
func Dial(ctx context.Context, addr string, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	log = log.With("component", "feed-client", "host", addr)
	log.Info("connected to host")
	return &Client{peer: newPeer(conn), log: log}, nil
}

func (c *Client) Send(env Envelope) error {
	if err := c.peer.Send(env); err != nil {
		return fmt.Errorf("send %s: %w", env.Type, err)
	}
	return nil
}

// Listen blocks, calling fn for each frame from the host, until the host
// closes, the connection fails or ctx is done.
func (c *Client) Listen(ctx context.Context, fn func(Envelope)) error {
	stop := context.AfterFunc(ctx, func() { _ = c.peer.conn.Close() })
	defer stop()
	err := readLoop(c.peer.conn, c.log, fn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (c *Client) Close() error {
	return c.peer.close()
}
