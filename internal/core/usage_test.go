// ABOUTME: Tests for token and cost accounting
// ABOUTME: Verifies derived totals, pricing math, and the fallback estimator

package core

import (
	"math"
	"testing"
)

func TestAccount(t *testing.T) {
	prices := PriceTable{InputPerToken: 0.075 / 1_000_000, OutputPerToken: 0.30 / 1_000_000}

	rec := Account(1000, 500, prices)

	if rec.PromptTokens != 1000 {
		t.Errorf("PromptTokens = %d, want 1000", rec.PromptTokens)
	}
	if rec.CompletionTokens != 500 {
		t.Errorf("CompletionTokens = %d, want 500", rec.CompletionTokens)
	}
	if rec.TotalTokens != 1500 {
		t.Errorf("TotalTokens = %d, want 1500", rec.TotalTokens)
	}
	if rec.Estimated {
		t.Error("Account record should not be flagged estimated")
	}

	wantCost := 0.000225
	if math.Abs(rec.Cost-wantCost) > 1e-12 {
		t.Errorf("Cost = %v, want %v", rec.Cost, wantCost)
	}
}

func TestAccount_NegativeCountsClamped(t *testing.T) {
	rec := Account(-10, -5, DefaultPrices)

	if rec.PromptTokens != 0 || rec.CompletionTokens != 0 || rec.TotalTokens != 0 {
		t.Errorf("Negative counts should clamp to zero, got %+v", rec)
	}
	if rec.Cost != 0 {
		t.Errorf("Cost = %v, want 0", rec.Cost)
	}
}

func TestEstimate(t *testing.T) {
	// 4 words * 1.3 = 5.2 -> 5 tokens; 2 words * 1.3 = 2.6 -> 2 tokens.
	rec := Estimate("one two three four", "five six", DefaultPrices)

	if rec.PromptTokens != 5 {
		t.Errorf("PromptTokens = %d, want 5", rec.PromptTokens)
	}
	if rec.CompletionTokens != 2 {
		t.Errorf("CompletionTokens = %d, want 2", rec.CompletionTokens)
	}
	if rec.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", rec.TotalTokens)
	}
	if !rec.Estimated {
		t.Error("Estimate record should be flagged estimated")
	}
}

func TestEstimate_EmptyText(t *testing.T) {
	rec := Estimate("", "", DefaultPrices)

	if rec.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0", rec.TotalTokens)
	}
	if rec.Cost != 0 {
		t.Errorf("Cost = %v, want 0", rec.Cost)
	}
}
