// ABOUTME: ChatService orchestrates one chat turn end to end
// ABOUTME: Escalation gate, concurrent retrieval, generation, accounting, persistence
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/deepneuralai/chatbot-backend/internal/models"
	"github.com/google/uuid"
)

// FallbackReply is the fixed apologetic reply returned when the generation
// call fails. The turn still completes; no usage record is produced.
const FallbackReply = "Sorry, an error occurred. Please try again."

// turnState tracks the lifecycle of one chat turn for structured logging.
type turnState string

const (
	stateReceived  turnState = "received"
	stateEscalated turnState = "escalated"
	stateRetrieved turnState = "retrieved"
	stateGenerated turnState = "generated"
	statePersisted turnState = "persisted"
	stateFailed    turnState = "failed"
)

// ConversationStore is the persistence collaborator as seen by the
// orchestrator: append-only turn and usage sinks plus settings reads.
type ConversationStore interface {
	EnsureConversation(conversationID string) error
	AppendMessage(msg *models.Message) error
	History(conversationID string) ([]models.Message, error)
	UpdateTitle(conversationID, title string) error
	SaveUsage(rec *models.UsageRecord) error
	GetSetting(key string) (string, error)
}

// Retriever answers nearest-neighbor queries against the knowledge index.
type Retriever interface {
	Query(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
}

// Generator is the LLM call. Token counts on the result are optional.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*models.Generation, error)
}

// Request is the chat boundary input consumed from the routing layer.
type Request struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Response is the chat boundary output.
type Response struct {
	Reply          string `json:"reply"`
	NeedsHuman     bool   `json:"needs_human"`
	ConversationID string `json:"conversation_id"`
}

// ChatService sequences escalation detection, retrieval, prompt assembly,
// generation, usage accounting, and persistence for each incoming message.
type ChatService struct {
	store     ConversationStore
	retriever Retriever
	generator Generator
	logger    *slog.Logger

	topK         int
	memoryWindow int
	prices       PriceTable
}

// ChatOption configures a ChatService.
type ChatOption func(*ChatService)

// WithTopK sets how many knowledge chunks are retrieved per turn.
func WithTopK(k int) ChatOption {
	return func(s *ChatService) { s.topK = k }
}

// WithMemoryWindow sets how many prior turns are included in the prompt.
func WithMemoryWindow(n int) ChatOption {
	return func(s *ChatService) { s.memoryWindow = n }
}

// WithPrices sets the token price table for usage accounting.
func WithPrices(p PriceTable) ChatOption {
	return func(s *ChatService) { s.prices = p }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ChatOption {
	return func(s *ChatService) { s.logger = l }
}

// NewChatService creates a ChatService. The retriever must be backed by an
// index that is already built; the service never triggers a build itself.
func NewChatService(store ConversationStore, retriever Retriever, generator Generator, opts ...ChatOption) *ChatService {
	s := &ChatService{
		store:        store,
		retriever:    retriever,
		generator:    generator,
		logger:       slog.Default(),
		topK:         5,
		memoryWindow: DefaultMemoryWindow,
		prices:       DefaultPrices,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Respond processes one chat turn. Collaborator failures are absorbed here:
// retrieval degradation continues with empty context, and a generation failure
// returns the fixed fallback reply instead of an error. Only persistence
// failures on the inbound path surface as errors.
func (s *ChatService) Respond(ctx context.Context, req Request) (*Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New("message is required")
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	s.logTransition(conversationID, stateReceived)

	if err := s.store.EnsureConversation(conversationID); err != nil {
		s.logTransition(conversationID, stateFailed)
		return nil, fmt.Errorf("failed to ensure conversation: %w", err)
	}

	userMsg, err := models.NewMessage(conversationID, models.RoleUser, message)
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendMessage(userMsg); err != nil {
		s.logTransition(conversationID, stateFailed)
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	if IsEscalation(message) {
		s.logger.Info("escalation triggered",
			"conversation_id", conversationID,
			"message", message,
			"timestamp", time.Now().UTC().Format(time.RFC3339),
			"reason", EscalationReason,
			"needs_human", true,
		)
		s.appendAssistantReply(conversationID, HandoffMessage)
		s.logTransition(conversationID, stateEscalated)
		return &Response{
			Reply:          HandoffMessage,
			NeedsHuman:     true,
			ConversationID: conversationID,
		}, nil
	}

	// The memory read and the index query are independent read-only fetches;
	// generation waits for both.
	var (
		wg        sync.WaitGroup
		firstTurn bool
		memoryCtx string
		results   []models.SearchResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		h, herr := s.store.History(conversationID)
		if herr != nil {
			// firstTurn stays false: with history unknown, skipping the title
			// beats overwriting one a prior turn already derived.
			s.logger.Warn("failed to load conversation history, proceeding without memory",
				"conversation_id", conversationID, "error", herr)
			return
		}
		firstTurn = len(h) <= 1
		// The just-appended user message is the turn being answered; it never
		// belongs to the memory window.
		if len(h) > 0 {
			memoryCtx = Window(h[:len(h)-1], s.memoryWindow)
		}
	}()
	go func() {
		defer wg.Done()
		r, qerr := s.retriever.Query(ctx, message, s.topK)
		if qerr != nil {
			s.logger.Warn("knowledge retrieval degraded, proceeding without context",
				"conversation_id", conversationID, "error", qerr)
			return
		}
		results = r
	}()
	wg.Wait()

	s.logTransition(conversationID, stateRetrieved)

	tone, err := s.store.GetSetting("tone_instructions")
	if err != nil {
		s.logger.Warn("failed to read tone_instructions setting", "error", err)
	}
	fallback, err := s.store.GetSetting("fallback_message")
	if err != nil {
		s.logger.Warn("failed to read fallback_message setting", "error", err)
	}

	prompt := Assemble(tone, joinResults(results), memoryCtx, message)

	gen, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("generation failed", "conversation_id", conversationID, "error", err)
		reply := fallback
		if reply == "" {
			reply = FallbackReply
		}
		s.appendAssistantReply(conversationID, reply)
		s.logTransition(conversationID, stateFailed)
		return &Response{
			Reply:          reply,
			NeedsHuman:     false,
			ConversationID: conversationID,
		}, nil
	}

	s.logTransition(conversationID, stateGenerated)

	var rec models.UsageRecord
	if gen.HasUsage {
		rec = Account(gen.PromptTokens, gen.CompletionTokens, s.prices)
	} else {
		rec = Estimate(prompt, gen.Text, s.prices)
	}
	rec.ConversationID = conversationID
	if err := s.store.SaveUsage(&rec); err != nil {
		s.logger.Warn("failed to save usage record", "conversation_id", conversationID, "error", err)
	}

	// First user turn of the conversation gets a derived title.
	if firstTurn {
		if err := s.store.UpdateTitle(conversationID, DeriveTitle(message)); err != nil {
			s.logger.Warn("failed to save conversation title", "conversation_id", conversationID, "error", err)
		}
	}

	s.appendAssistantReply(conversationID, gen.Text)
	s.logTransition(conversationID, statePersisted)

	return &Response{
		Reply:          gen.Text,
		NeedsHuman:     false,
		ConversationID: conversationID,
	}, nil
}

// appendAssistantReply persists an assistant turn, logging rather than
// failing the turn when the write does not succeed.
func (s *ChatService) appendAssistantReply(conversationID, content string) {
	msg, err := models.NewMessage(conversationID, models.RoleAssistant, content)
	if err != nil {
		return
	}
	if err := s.store.AppendMessage(msg); err != nil {
		s.logger.Warn("failed to store assistant message", "conversation_id", conversationID, "error", err)
	}
}

func (s *ChatService) logTransition(conversationID string, state turnState) {
	s.logger.Debug("chat turn state", "conversation_id", conversationID, "state", string(state))
}

// joinResults concatenates retrieved chunk texts in rank order.
func joinResults(results []models.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Content)
	}
	return strings.Join(parts, "\n\n")
}
