// ABOUTME: Message persistence: the append-only conversation log
// ABOUTME: History reads return turns in chronological order
package store

import (
	"fmt"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// AppendMessage appends one turn to the conversation log. Messages are never
// edited or removed once written.
func (s *Store) AppendMessage(msg *models.Message) error {
	_, err := s.db.Exec(
		"INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// History returns all turns of a conversation in chronological order.
func (s *Store) History(conversationID string) ([]models.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, conversation_id, role, content, timestamp
		 FROM messages
		 WHERE conversation_id = ?
		 ORDER BY timestamp ASC, id ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
