// ABOUTME: HTTP handlers for the chat, conversation and welcome endpoints
// ABOUTME: Translates JSON requests into chat service calls
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/deepneuralai/chatbot-backend/internal/core"
	"github.com/deepneuralai/chatbot-backend/internal/models"
	"github.com/deepneuralai/chatbot-backend/internal/store"
)

// ConversationReader covers the read paths the handlers need from storage.
type ConversationReader interface {
	GetConversation(conversationID string) (*models.Conversation, error)
	ListConversations() ([]models.Conversation, error)
	History(conversationID string) ([]models.Message, error)
	GetSetting(key string) (string, error)
	GetUsageTotals(conversationID string) (*store.UsageTotals, error)
}

type APIHandler struct {
	chatService *core.ChatService
	reader      ConversationReader
	logger      *slog.Logger
}

func NewAPIHandler(cs *core.ChatService, reader ConversationReader, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{chatService: cs, reader: reader, logger: logger}
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	NeedsHuman     bool   `json:"needs_human"`
	ConversationID string `json:"conversation_id"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	resp, err := h.chatService.Respond(r.Context(), core.Request{
		Message:        req.Message,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		h.logger.Error("chat request failed", "error", err)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Reply:          resp.Reply,
		NeedsHuman:     resp.NeedsHuman,
		ConversationID: resp.ConversationID,
	})
}

type ConversationResponse struct {
	ID       string           `json:"conversation_id"`
	Title    string           `json:"title"`
	Messages []models.Message `json:"messages"`
}

func (h *APIHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.reader.GetConversation(conversationID)
	if err != nil {
		h.logger.Error("failed to load conversation", "conversation_id", conversationID, "error", err)
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	if conv == nil {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	messages, err := h.reader.History(conversationID)
	if err != nil {
		h.logger.Error("failed to load history", "conversation_id", conversationID, "error", err)
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	writeJSON(w, http.StatusOK, ConversationResponse{
		ID:       conv.ID,
		Title:    conv.Title,
		Messages: messages,
	})
}

func (h *APIHandler) ListConversationsHandler(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.reader.ListConversations()
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		http.Error(w, "Failed to list conversations", http.StatusInternalServerError)
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}

	writeJSON(w, http.StatusOK, conversations)
}

// UsageHandler reports aggregate token and cost totals, optionally scoped to
// one conversation via the conversation_id query parameter.
func (h *APIHandler) UsageHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversation_id")

	totals, err := h.reader.GetUsageTotals(conversationID)
	if err != nil {
		h.logger.Error("failed to aggregate usage", "conversation_id", conversationID, "error", err)
		http.Error(w, "Failed to aggregate usage", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

func (h *APIHandler) WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	message, err := h.reader.GetSetting("welcome_message")
	if err != nil {
		h.logger.Error("failed to load welcome message", "error", err)
		http.Error(w, "Failed to load welcome message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, WelcomeResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
