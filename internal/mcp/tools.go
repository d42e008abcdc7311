// ABOUTME: MCP tool definitions and registration for the chatbot backend
// ABOUTME: Exposes knowledge search and full chat turns over MCP
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/deepneuralai/chatbot-backend/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, chatService *core.ChatService, retriever core.Retriever) *Handlers {
	handlers := &Handlers{
		chatService: chatService,
		retriever:   retriever,
	}

	// 1. search_knowledge - semantic search over the knowledge base
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the knowledge base for chunks relevant to a query using semantic similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for knowledge retrieval",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledge)

	// 2. ask - run a full chat turn through the backend
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Ask the support chatbot a question. Runs the full pipeline: retrieval, conversation memory, generation and persistence.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "User message to answer",
				},
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional conversation ID to continue an existing conversation",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.Ask)

	return handlers
}
