// ABOUTME: MCP tool handler implementations for the chatbot backend
// ABOUTME: Translates tool calls into retriever queries and chat turns
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/deepneuralai/chatbot-backend/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	chatService *core.ChatService
	retriever   core.Retriever
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 5)
	if topK < 1 {
		topK = 1
	}

	results, err := h.retriever.Query(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	payload, err := json.MarshalIndent(map[string]interface{}{
		"query":   query,
		"results": results,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	conversationID := request.GetString("conversation_id", "")

	resp, err := h.chatService.Respond(ctx, core.Request{
		Message:        message,
		ConversationID: conversationID,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat turn failed: %v", err)), nil
	}

	payload, err := json.MarshalIndent(map[string]interface{}{
		"reply":           resp.Reply,
		"needs_human":     resp.NeedsHuman,
		"conversation_id": resp.ConversationID,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
