// Package chat carries the conversation side of the application: the
// message type, the collaborators that persist messages and generate
// replies, and the Feed that turns canvas directives into scenes.
package chat

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Personality    string    `json:"personality,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store persists and retrieves messages.
type Store interface {
	Append(ctx context.Context, msg Message) error
	List(ctx context.Context, conversationID string) ([]Message, error)
}

// Generator produces the next assistant reply for a conversation. Retry
// and backoff against the model API belong to the implementation.
type Generator interface {
	Generate(ctx context.Context, personality string, history []Message) (string, error)
}
