// ABOUTME: Message and Conversation models for the append-only chat log
// ABOUTME: Turns are never edited or removed once persisted
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role values for a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// Conversation is an ordered, append-only sequence of turns.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages,omitempty"`
}

// NewMessage creates a new Message with validation.
func NewMessage(conversationID, role, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("message content cannot be empty")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, errors.New("message role must be user or assistant")
	}
	return &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Timestamp:      time.Now().UTC(),
	}, nil
}
