// ABOUTME: Conversation memory window formatting for prompt assembly
// ABOUTME: Extracts a bounded slice of prior turns as "Role: content" lines
package core

import (
	"strings"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// DefaultMemoryWindow is the number of prior turns included in the prompt.
const DefaultMemoryWindow = 5

// Window formats the last maxMessages turns of history as newline-joined
// "Role: content" lines in chronological order. The caller passes the history
// excluding the turn currently being answered. Empty history or a zero window
// yields an empty string, which the prompt assembler treats as "no memory".
func Window(history []models.Message, maxMessages int) string {
	if len(history) == 0 || maxMessages <= 0 {
		return ""
	}

	recent := history
	if len(recent) > maxMessages {
		recent = recent[len(recent)-maxMessages:]
	}

	lines := make([]string, 0, len(recent))
	for _, msg := range recent {
		lines = append(lines, capitalizeRole(msg.Role)+": "+msg.Content)
	}

	return strings.Join(lines, "\n")
}

// capitalizeRole maps a role to its display form ("user" -> "User").
func capitalizeRole(role string) string {
	switch role {
	case models.RoleUser:
		return "User"
	case models.RoleAssistant:
		return "Assistant"
	}
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
