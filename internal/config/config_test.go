// ABOUTME: Tests for environment-based configuration loading
// ABOUTME: Verifies defaults, overrides, and validation bounds

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.ChunkSize != 400 {
		t.Errorf("ChunkSize = %d, want 400", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 75 {
		t.Errorf("ChunkOverlap = %d, want 75", cfg.ChunkOverlap)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.MemoryWindow != 5 {
		t.Errorf("MemoryWindow = %d, want 5", cfg.MemoryWindow)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.IndexName != "knowledge_base" {
		t.Errorf("IndexName = %q, want knowledge_base", cfg.IndexName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHATBOT_CHUNK_SIZE", "200")
	t.Setenv("CHATBOT_CHUNK_OVERLAP", "50")
	t.Setenv("CHATBOT_TOP_K", "3")
	t.Setenv("OPENAI_TIMEOUT", "45s")
	t.Setenv("CHATBOT_INPUT_PRICE_PER_1M", "0.15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ChunkSize != 200 {
		t.Errorf("ChunkSize = %d, want 200", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 50 {
		t.Errorf("ChunkOverlap = %d, want 50", cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
	if cfg.InputPrice != 0.15 {
		t.Errorf("InputPrice = %v, want 0.15", cfg.InputPrice)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("OPENAI_TIMEOUT", "eventually")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want default 8000 for unparseable value", cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s for unparseable value", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"overlap equals chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"zero top k", func(c *Config) { c.TopK = 0 }, true},
		{"negative memory window", func(c *Config) { c.MemoryWindow = -1 }, true},
		{"zero memory window ok", func(c *Config) { c.MemoryWindow = 0 }, false},
		{"too many retries", func(c *Config) { c.MaxRetries = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
