// ABOUTME: Usage accountant converting token counts into monetary cost
// ABOUTME: Includes a deterministic word-count estimator for missing provider counts
package core

import (
	"strings"
	"time"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// PriceTable holds per-token prices in USD.
type PriceTable struct {
	InputPerToken  float64
	OutputPerToken float64
}

// DefaultPrices matches the provider's published per-1M-token pricing.
var DefaultPrices = PriceTable{
	InputPerToken:  0.075 / 1_000_000,
	OutputPerToken: 0.30 / 1_000_000,
}

// estimateTokensPerWord is the multiplier used when the provider omits token
// counts. Roughly 1.3 tokens per whitespace-separated word.
const estimateTokensPerWord = 1.3

// Account produces a UsageRecord from provider-reported token counts.
// TotalTokens is always derived as prompt + completion rather than trusted
// from the provider.
func Account(promptTokens, completionTokens int, prices PriceTable) models.UsageRecord {
	if promptTokens < 0 {
		promptTokens = 0
	}
	if completionTokens < 0 {
		completionTokens = 0
	}
	return models.UsageRecord{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Cost:             float64(promptTokens)*prices.InputPerToken + float64(completionTokens)*prices.OutputPerToken,
		CreatedAt:        time.Now().UTC(),
	}
}

// Estimate produces a UsageRecord from the prompt and completion text when
// the provider did not return token counts. The record is flagged Estimated
// so downstream accounting never silently treats it as exact.
func Estimate(prompt, completion string, prices PriceTable) models.UsageRecord {
	rec := Account(estimateTokens(prompt), estimateTokens(completion), prices)
	rec.Estimated = true
	return rec
}

// estimateTokens approximates the token count of text by word count.
func estimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * estimateTokensPerWord)
}
