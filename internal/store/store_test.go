// ABOUTME: Tests for the SQLite persistence layer
// ABOUTME: Round-trips conversations, messages, settings, usage, and indexed chunks in memory

package store

import (
	"math"
	"testing"
	"time"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	s := New(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEnsureConversation_Idempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureConversation("conv-1"); err != nil {
		t.Fatalf("EnsureConversation() error = %v", err)
	}
	if err := s.EnsureConversation("conv-1"); err != nil {
		t.Fatalf("EnsureConversation() second call error = %v", err)
	}

	conv, err := s.GetConversation("conv-1")
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if conv == nil {
		t.Fatal("Expected conversation, got nil")
	}
	if conv.ID != "conv-1" {
		t.Errorf("ID = %q, want conv-1", conv.ID)
	}
}

func TestGetConversation_NotFound(t *testing.T) {
	s := newTestStore(t)

	conv, err := s.GetConversation("missing")
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if conv != nil {
		t.Errorf("Expected nil for missing conversation, got %+v", conv)
	}
}

func TestUpdateTitle(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureConversation("conv-1"); err != nil {
		t.Fatalf("EnsureConversation() error = %v", err)
	}
	if err := s.UpdateTitle("conv-1", "Billing question"); err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}

	conv, err := s.GetConversation("conv-1")
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if conv.Title != "Billing question" {
		t.Errorf("Title = %q, want %q", conv.Title, "Billing question")
	}
}

func TestMessages_AppendAndHistory(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureConversation("conv-1"); err != nil {
		t.Fatalf("EnsureConversation() error = %v", err)
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := []*models.Message{
		{ID: "m1", ConversationID: "conv-1", Role: models.RoleUser, Content: "hello", Timestamp: base},
		{ID: "m2", ConversationID: "conv-1", Role: models.RoleAssistant, Content: "hi there", Timestamp: base.Add(time.Second)},
		{ID: "m3", ConversationID: "conv-1", Role: models.RoleUser, Content: "a question", Timestamp: base.Add(2 * time.Second)},
	}
	for _, m := range msgs {
		if err := s.AppendMessage(m); err != nil {
			t.Fatalf("AppendMessage(%s) error = %v", m.ID, err)
		}
	}

	history, err := s.History("conv-1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("History length = %d, want 3", len(history))
	}
	for i, want := range msgs {
		if history[i].ID != want.ID {
			t.Errorf("History[%d].ID = %q, want %q", i, history[i].ID, want.ID)
		}
		if history[i].Content != want.Content {
			t.Errorf("History[%d].Content = %q, want %q", i, history[i].Content, want.Content)
		}
		if history[i].Role != want.Role {
			t.Errorf("History[%d].Role = %q, want %q", i, history[i].Role, want.Role)
		}
	}
}

func TestHistory_EmptyConversation(t *testing.T) {
	s := newTestStore(t)

	history, err := s.History("missing")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History length = %d, want 0", len(history))
	}
}

func TestSettings_SeededDefaults(t *testing.T) {
	s := newTestStore(t)

	for _, key := range []string{"welcome_message", "fallback_message", "tone_instructions"} {
		value, err := s.GetSetting(key)
		if err != nil {
			t.Fatalf("GetSetting(%q) error = %v", key, err)
		}
		if value == "" {
			t.Errorf("Default setting %q should be seeded", key)
		}
	}
}

func TestSettings_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("welcome_message", "Hi from tests"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	value, err := s.GetSetting("welcome_message")
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if value != "Hi from tests" {
		t.Errorf("Setting = %q, want %q", value, "Hi from tests")
	}

	missing, err := s.GetSetting("no_such_key")
	if err != nil {
		t.Fatalf("GetSetting(missing) error = %v", err)
	}
	if missing != "" {
		t.Errorf("Missing setting = %q, want empty", missing)
	}
}

func TestUsage_SaveAndTotals(t *testing.T) {
	s := newTestStore(t)

	if err := s.EnsureConversation("conv-1"); err != nil {
		t.Fatalf("EnsureConversation() error = %v", err)
	}

	records := []*models.UsageRecord{
		{ConversationID: "conv-1", PromptTokens: 1000, CompletionTokens: 500, TotalTokens: 1500, Cost: 0.000225, CreatedAt: time.Now().UTC()},
		{ConversationID: "conv-1", PromptTokens: 200, CompletionTokens: 100, TotalTokens: 300, Cost: 0.000045, Estimated: true, CreatedAt: time.Now().UTC()},
	}
	for _, rec := range records {
		if err := s.SaveUsage(rec); err != nil {
			t.Fatalf("SaveUsage() error = %v", err)
		}
	}

	totals, err := s.GetUsageTotals("conv-1")
	if err != nil {
		t.Fatalf("GetUsageTotals() error = %v", err)
	}
	if totals.TotalTokens != 1800 {
		t.Errorf("TotalTokens = %d, want 1800", totals.TotalTokens)
	}
	if totals.Responses != 2 {
		t.Errorf("Responses = %d, want 2", totals.Responses)
	}
	if math.Abs(totals.Cost-0.00027) > 1e-9 {
		t.Errorf("Cost = %v, want 0.00027", totals.Cost)
	}

	all, err := s.GetUsageTotals("")
	if err != nil {
		t.Fatalf("GetUsageTotals(all) error = %v", err)
	}
	if all.TotalTokens != totals.TotalTokens {
		t.Errorf("Global totals = %d, want %d", all.TotalTokens, totals.TotalTokens)
	}
}

func TestIndexedChunks_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	chunks := []models.Chunk{
		{ID: "chunk_0", Text: "first chunk", Ordinal: 0},
		{ID: "chunk_1", Text: "second chunk", Ordinal: 1},
	}
	vectors := [][]float64{
		{0.1, -0.5, 1.0},
		{0.0, 2.5, -3.25},
	}

	count, err := s.CountIndexedChunks("kb")
	if err != nil {
		t.Fatalf("CountIndexedChunks() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("Initial count = %d, want 0", count)
	}

	for i, chunk := range chunks {
		if err := s.SaveIndexedChunk("kb", chunk, vectors[i]); err != nil {
			t.Fatalf("SaveIndexedChunk() error = %v", err)
		}
	}

	count, err = s.CountIndexedChunks("kb")
	if err != nil {
		t.Fatalf("CountIndexedChunks() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	gotChunks, gotVectors, err := s.LoadIndexedChunks("kb")
	if err != nil {
		t.Fatalf("LoadIndexedChunks() error = %v", err)
	}
	if len(gotChunks) != 2 || len(gotVectors) != 2 {
		t.Fatalf("Loaded %d chunks, %d vectors, want 2 each", len(gotChunks), len(gotVectors))
	}
	for i := range chunks {
		if gotChunks[i] != chunks[i] {
			t.Errorf("Chunk %d = %+v, want %+v", i, gotChunks[i], chunks[i])
		}
		for j := range vectors[i] {
			if gotVectors[i][j] != vectors[i][j] {
				t.Errorf("Vector %d[%d] = %v, want %v", i, j, gotVectors[i][j], vectors[i][j])
			}
		}
	}
}

func TestIndexedChunks_SaveReplaces(t *testing.T) {
	s := newTestStore(t)

	chunk := models.Chunk{ID: "chunk_0", Text: "old text", Ordinal: 0}
	if err := s.SaveIndexedChunk("kb", chunk, []float64{1}); err != nil {
		t.Fatalf("SaveIndexedChunk() error = %v", err)
	}

	chunk.Text = "new text"
	if err := s.SaveIndexedChunk("kb", chunk, []float64{2}); err != nil {
		t.Fatalf("SaveIndexedChunk() replace error = %v", err)
	}

	gotChunks, gotVectors, err := s.LoadIndexedChunks("kb")
	if err != nil {
		t.Fatalf("LoadIndexedChunks() error = %v", err)
	}
	if len(gotChunks) != 1 {
		t.Fatalf("Count after replace = %d, want 1", len(gotChunks))
	}
	if gotChunks[0].Text != "new text" {
		t.Errorf("Text = %q, want %q", gotChunks[0].Text, "new text")
	}
	if gotVectors[0][0] != 2 {
		t.Errorf("Vector = %v, want [2]", gotVectors[0])
	}
}

func TestIndexedChunks_Delete(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveIndexedChunk("kb", models.Chunk{ID: "chunk_0", Text: "x", Ordinal: 0}, []float64{1}); err != nil {
		t.Fatalf("SaveIndexedChunk() error = %v", err)
	}
	if err := s.DeleteIndexedChunks("kb"); err != nil {
		t.Fatalf("DeleteIndexedChunks() error = %v", err)
	}

	count, err := s.CountIndexedChunks("kb")
	if err != nil {
		t.Fatalf("CountIndexedChunks() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count after delete = %d, want 0", count)
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vectors := [][]float64{
		{},
		{0},
		{1.5, -2.25, 3.125},
		{math.MaxFloat64, math.SmallestNonzeroFloat64},
	}

	for _, v := range vectors {
		got := blobToVector(vectorToBlob(v))
		if len(got) != len(v) {
			t.Fatalf("Round trip length = %d, want %d", len(got), len(v))
		}
		for i := range v {
			if got[i] != v[i] {
				t.Errorf("Round trip [%d] = %v, want %v", i, got[i], v[i])
			}
		}
	}
}
