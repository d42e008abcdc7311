// ABOUTME: Centralized configuration for the chatbot backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the chatbot backend
type Config struct {
	// Server settings
	Port   int
	DBPath string

	// Knowledge base settings
	DocumentPath string
	IndexName    string
	ChunkSize    int
	ChunkOverlap int

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Chat settings
	TopK         int
	MemoryWindow int
	InputPrice   float64
	OutputPrice  float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		Port:           getEnvInt("PORT", 8000),
		DBPath:         getEnv("CHATBOT_DB_PATH", "chatbot.db"),
		DocumentPath:   getEnv("CHATBOT_DOCUMENT_PATH", "data/document.md"),
		IndexName:      getEnv("CHATBOT_INDEX_NAME", "knowledge_base"),
		ChunkSize:      getEnvInt("CHATBOT_CHUNK_SIZE", 400),
		ChunkOverlap:   getEnvInt("CHATBOT_CHUNK_OVERLAP", 75),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("CHATBOT_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("CHATBOT_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		TopK:           getEnvInt("CHATBOT_TOP_K", 5),
		MemoryWindow:   getEnvInt("CHATBOT_MEMORY_WINDOW", 5),
		InputPrice:     getEnvFloat("CHATBOT_INPUT_PRICE_PER_1M", 0.075),
		OutputPrice:    getEnvFloat("CHATBOT_OUTPUT_PRICE_PER_1M", 0.30),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be 1-65535, got %d", c.Port)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("CHATBOT_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHATBOT_CHUNK_OVERLAP must be 0 to chunk size-1, got %d", c.ChunkOverlap)
	}
	if c.TopK < 1 {
		return fmt.Errorf("CHATBOT_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MemoryWindow < 0 {
		return fmt.Errorf("CHATBOT_MEMORY_WINDOW must be non-negative, got %d", c.MemoryWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
