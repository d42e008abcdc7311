// ABOUTME: Conversation persistence operations
// ABOUTME: Conversations are created lazily on the first message of a turn
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// EnsureConversation creates the conversation row if it does not exist yet.
func (s *Store) EnsureConversation(conversationID string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO conversations (id, created_at) VALUES (?, ?)",
		conversationID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure conversation: %w", err)
	}
	return nil
}

// GetConversation returns a conversation by id, or nil when not found.
func (s *Store) GetConversation(conversationID string) (*models.Conversation, error) {
	var (
		conv  models.Conversation
		title sql.NullString
	)
	err := s.db.QueryRow(
		"SELECT id, title, created_at FROM conversations WHERE id = ?",
		conversationID,
	).Scan(&conv.ID, &title, &conv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	if title.Valid {
		conv.Title = title.String
	}
	return &conv, nil
}

// ListConversations returns all conversations, most recently created first.
func (s *Store) ListConversations() ([]models.Conversation, error) {
	rows, err := s.db.Query(
		"SELECT id, title, created_at FROM conversations ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var conversations []models.Conversation
	for rows.Next() {
		var (
			conv  models.Conversation
			title sql.NullString
		)
		if err := rows.Scan(&conv.ID, &title, &conv.CreatedAt); err != nil {
			return nil, err
		}
		if title.Valid {
			conv.Title = title.String
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// UpdateTitle sets the conversation title.
func (s *Store) UpdateTitle(conversationID, title string) error {
	_, err := s.db.Exec(
		"UPDATE conversations SET title = ? WHERE id = ?",
		title, conversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation title: %w", err)
	}
	return nil
}
