// ABOUTME: UsageRecord is the accounting entry for one generation call
// ABOUTME: TotalTokens is always derived from prompt + completion, never trusted
package models

import "time"

// UsageRecord captures the token consumption and derived cost of a single
// successful generation call. Estimated is true when the provider omitted
// token counts and the record was produced by the word-count estimator.
type UsageRecord struct {
	ConversationID   string    `json:"conversation_id"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	Cost             float64   `json:"cost"`
	Estimated        bool      `json:"estimated"`
	CreatedAt        time.Time `json:"created_at"`
}

// Generation is the result of one Response Generator call. Token counts are
// optional: HasUsage reports whether the provider returned them.
type Generation struct {
	Text             string `json:"text"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	HasUsage         bool   `json:"-"`
}
