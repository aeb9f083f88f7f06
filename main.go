package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/config"
	mcnet "MentorCanvas/internal/net"
	"MentorCanvas/internal/state"
	"MentorCanvas/internal/ui"
)

const browseTimeout = 3 * time.Second

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)
	gg.SetLogger(log)

	switch {
	case len(os.Args) > 1 && strings.HasPrefix(os.Args[1], mcnet.Scheme):
		runViewer(cfg, log, os.Args[1])
	case len(os.Args) > 1 && os.Args[1] == "view":
		runViewer(cfg, log, cfg.Feed)
	case cfg.Feed != "":
		runViewer(cfg, log, cfg.Feed)
	default:
		runHost(cfg, log)
	}
}

func runHost(cfg *config.Config, log *slog.Logger) {
	log.Info("starting as host", "port", cfg.Port)
	h := newHost(ui.NewApp(), cfg, log)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		log.Error("failed to start feed server", "port", cfg.Port, "err", err)
		os.Exit(1)
	}
	srv := &http.Server{Handler: h.handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("feed server stopped", "err", err)
		}
	}()

	if cfg.Advertise {
		if server, err := mcnet.Advertise(cfg.Port); err != nil {
			log.Warn("mDNS advertise failed", "err", err)
		} else {
			defer server.Shutdown()
		}
	}

	h.win.SetStatus("Hosting at " + h.link)
	h.win.ShowAndRun()

	h.hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func runViewer(cfg *config.Config, log *slog.Logger, link string) {
	log.Info("starting as viewer", "link", link)
	board := state.NewBoard(log)
	var client atomic.Pointer[mcnet.Client]

	win := ui.NewWindow(ui.NewApp(), ui.Options{
		Title:      "MentorCanvas (viewer)",
		ReadOnly:   true,
		ExportDir:  cfg.ExportDir,
		PanOnEmpty: cfg.PanOnEmpty,
		Log:        log,
		OnSend: func(text string) {
			c := client.Load()
			if c == nil {
				return
			}
			msg := chat.Message{ID: state.NewID(), Role: chat.RoleUser, Content: text, CreatedAt: time.Now()}
			go func() {
				if err := c.Send(mcnet.ChatEnvelope(msg)); err != nil {
					log.Warn("chat not sent", "err", err)
				}
			}()
		},
	})
	board.Subscribe(func(c state.Change) {
		fyne.Do(func() { win.ShowCanvas(c.Scene) })
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		c, err := connect(ctx, log, link)
		if err != nil {
			win.SetStatus(fmt.Sprintf("Connection failed: %v", err))
			return
		}
		client.Store(c)
		defer c.Close()
		win.SetStatus("Connected to host")

		err = c.Listen(ctx, func(env mcnet.Envelope) {
			switch env.Type {
			case mcnet.KindScene:
				board.Replace(env.Elements, state.OriginRemote)
			case mcnet.KindChat:
				msg, scene := *env.Message, env.Elements
				if env.Blueprint {
					fyne.Do(func() { win.AppendBlueprint(msg, scene) })
					return
				}
				fyne.Do(func() { win.AppendMessage(msg) })
			case mcnet.KindClose:
				fyne.Do(win.HideCanvas)
			}
		})
		client.Store(nil)
		if err != nil {
			win.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
			return
		}
		win.SetStatus("Host ended the session")
	}()

	win.ShowAndRun()
}

// connect dials link, or the first host found over mDNS when link is empty.
func connect(ctx context.Context, log *slog.Logger, link string) (*mcnet.Client, error) {
	addr := ""
	if link != "" {
		var err error
		if addr, err = mcnet.ParseShareLink(link); err != nil {
			return nil, err
		}
	} else {
		found := make(chan string, 1)
		err := mcnet.Browse(browseTimeout, func(a string) {
			select {
			case found <- a:
			default:
			}
		})
		if err != nil {
			return nil, fmt.Errorf("browse: %w", err)
		}
		select {
		case addr = <-found:
		default:
			return nil, errors.New("no host found on the local network")
		}
	}
	return mcnet.Dial(ctx, addr, log)
}
