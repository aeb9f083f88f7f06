package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/state"
)

// Path is the HTTP path the hub is served on.
const Path = "/feed"

// Kind names an envelope type on the wire.
type Kind string

const (
	// KindChat carries one chat message, and its canvas when Blueprint is
	// set.
	KindChat Kind = "chat"
	// KindScene carries the host's full scene after a replacement.
	KindScene Kind = "scene"
	// KindClose tells the other side the canvas was closed.
	KindClose Kind = "close"
)

var ErrUnknownKind = errors.New("unknown envelope type")

// Envelope is the single frame exchanged over the feed socket.
type Envelope struct {
	Type     Kind          `json:"type"`
	Message  *chat.Message `json:"message,omitempty"`
	Elements state.Scene   `json:"elements,omitempty"`
	// Blueprint marks a chat message that opened a canvas.
	Blueprint bool `json:"blueprint,omitempty"`
}

func ChatEnvelope(msg chat.Message) Envelope {
	return Envelope{Type: KindChat, Message: &msg}
}

// BlueprintEnvelope carries msg together with the scene it opened.
func BlueprintEnvelope(msg chat.Message, scene state.Scene) Envelope {
	return Envelope{Type: KindChat, Message: &msg, Elements: scene.Clone(), Blueprint: true}
}

func SceneEnvelope(scene state.Scene) Envelope {
	return Envelope{Type: KindScene, Elements: scene.Clone()}
}

// Decode parses and validates one frame.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	switch env.Type {
	case KindChat:
		if env.Message == nil {
			return Envelope{}, fmt.Errorf("chat envelope without message")
		}
		env.Elements = env.Elements.Normalized()
	case KindScene:
		env.Elements = env.Elements.Normalized()
	case KindClose:
	default:
		return Envelope{}, fmt.Errorf("%w %q", ErrUnknownKind, env.Type)
	}
	return env, nil
}
