// ABOUTME: Tests for message construction and validation
// ABOUTME: Verifies role and content checks plus generated identifiers

package models

import (
	"testing"
	"time"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("conv-1", RoleUser, "hello")
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}

	if msg.ID == "" {
		t.Error("ID should be generated")
	}
	if msg.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %q, want conv-1", msg.ConversationID)
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want hello", msg.Content)
	}
	if time.Since(msg.Timestamp) > time.Minute {
		t.Errorf("Timestamp = %v, want recent", msg.Timestamp)
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a, err := NewMessage("conv-1", RoleUser, "one")
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	b, err := NewMessage("conv-1", RoleUser, "two")
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	if a.ID == b.ID {
		t.Error("Message IDs should be unique")
	}
}

func TestNewMessage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		content string
	}{
		{"empty content", RoleUser, ""},
		{"whitespace content", RoleUser, "   "},
		{"unknown role", "moderator", "hello"},
		{"empty role", "", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMessage("conv-1", tt.role, tt.content); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
