package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"MentorCanvas/internal/directive"
	"MentorCanvas/internal/state"
)

// Feed routes incoming messages. A message with a valid canvas directive
// replaces the board scene; everything else is plain text.
type Feed struct {
	// Board receives directive scenes. Leave it nil when OnCanvas applies
	// the scene itself.
	Board *state.Board
	Store Store

	// OnCanvas runs after a directive replaced the scene. The message
	// content has the directive stripped.
	OnCanvas func(msg Message, scene state.Scene)
	// OnText runs for every message that did not open the canvas.
	OnText func(msg Message)

	// Generator answers user messages in Converse. Nil means no replies.
	Generator   Generator
	Personality string

	IDs state.IDFunc
	Log *slog.Logger
	Now func() time.Time
}

// Deliver processes one message. Only a failing Store returns an error;
// a malformed directive is logged and the message is treated as text.
func (f *Feed) Deliver(ctx context.Context, msg Message) error {
	log := f.logger()
	if msg.ID == "" {
		msg.ID = f.newID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = f.now()
	}
	if f.Store != nil {
		if err := f.Store.Append(ctx, msg); err != nil {
			return fmt.Errorf("store message %s: %w", msg.ID, err)
		}
	}

	scene, err := directive.Extract(msg.Content, f.IDs)
	switch {
	case err == nil:
		if f.Board != nil {
			f.Board.Replace(scene, state.OriginFeed)
		}
		log.Info("canvas directive received", "message", msg.ID, "elements", len(scene))
		if f.OnCanvas != nil {
			shown := msg
			shown.Content = directive.Strip(msg.Content)
			f.OnCanvas(shown, scene)
		}
		return nil
	case errors.Is(err, directive.ErrMalformed):
		log.Warn("failed to parse canvas data", "message", msg.ID, "err", err)
	}
	if f.OnText != nil {
		f.OnText(msg)
	}
	return nil
}

// Converse delivers a user message and, with a Generator configured,
// the reply generated from the conversation so far.
func (f *Feed) Converse(ctx context.Context, msg Message) error {
	msg.Role = RoleUser
	if err := f.Deliver(ctx, msg); err != nil {
		return err
	}
	if f.Generator == nil {
		return nil
	}
	history := []Message{msg}
	if f.Store != nil {
		var err error
		if history, err = f.Store.List(ctx, msg.ConversationID); err != nil {
			return fmt.Errorf("load conversation %s: %w", msg.ConversationID, err)
		}
	}
	reply, err := f.Generator.Generate(ctx, f.Personality, history)
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}
	return f.Deliver(ctx, Message{
		ConversationID: msg.ConversationID,
		Role:           RoleAssistant,
		Personality:    f.Personality,
		Content:        reply,
	})
}

func (f *Feed) logger() *slog.Logger {
	if f.Log != nil {
		return f.Log.With("component", "feed")
	}
	return slog.Default().With("component", "feed")
}

func (f *Feed) newID() string {
	if f.IDs != nil {
		return f.IDs()
	}
	return state.NewID()
}

func (f *Feed) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
