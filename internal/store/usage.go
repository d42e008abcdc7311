// ABOUTME: Token usage persistence and aggregation
// ABOUTME: Records per-response token counts and dollar cost
package store

import (
	"fmt"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// UsageTotals aggregates token and cost accounting across responses.
type UsageTotals struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"`
	Responses        int     `json:"responses"`
}

// SaveUsage records the token accounting for one generated response.
func (s *Store) SaveUsage(rec *models.UsageRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO token_usage (conversation_id, prompt_tokens, completion_tokens, total_tokens, cost, estimated, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ConversationID, rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens, rec.Cost, rec.Estimated, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save usage record: %w", err)
	}
	return nil
}

// GetUsageTotals sums usage across every recorded response. Pass a
// conversation ID to scope the totals to a single conversation, or the
// empty string for the whole store.
func (s *Store) GetUsageTotals(conversationID string) (*UsageTotals, error) {
	query := `SELECT COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(completion_tokens), 0),
	                 COALESCE(SUM(total_tokens), 0), COALESCE(SUM(cost), 0), COUNT(*)
	          FROM token_usage`
	args := []any{}
	if conversationID != "" {
		query += " WHERE conversation_id = ?"
		args = append(args, conversationID)
	}

	var totals UsageTotals
	err := s.db.QueryRow(query, args...).Scan(
		&totals.PromptTokens, &totals.CompletionTokens, &totals.TotalTokens, &totals.Cost, &totals.Responses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}
	return &totals, nil
}
