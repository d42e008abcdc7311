// ABOUTME: Tests for OpenAI client construction and configuration
// ABOUTME: Verifies defaulting and key validation without network calls

package llm

import (
	"testing"
	"time"
)

func TestNewClientWithConfig_RequiresKey(t *testing.T) {
	if _, err := NewClientWithConfig(&ClientConfig{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %q, want %q", client.chatModel, DefaultChatModel)
	}
	if string(client.embeddingModel) != DefaultEmbeddingModel {
		t.Errorf("embeddingModel = %q, want %q", client.embeddingModel, DefaultEmbeddingModel)
	}
	if client.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.timeout)
	}
	if client.maxRetries != 3 {
		t.Errorf("maxRetries = %d, want 3", client.maxRetries)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("key")

	if cfg.APIKey != "key" {
		t.Errorf("APIKey = %q, want key", cfg.APIKey)
	}
	if cfg.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %q, want %q", cfg.ChatModel, DefaultChatModel)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
}
