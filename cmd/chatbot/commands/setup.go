// ABOUTME: Shared backend bootstrap for the serve, ingest and mcp commands
// ABOUTME: Wires config, logging, storage, the LLM client and the knowledge index
package commands

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/deepneuralai/chatbot-backend/internal/config"
	"github.com/deepneuralai/chatbot-backend/internal/core"
	"github.com/deepneuralai/chatbot-backend/internal/index"
	"github.com/deepneuralai/chatbot-backend/internal/llm"
	"github.com/deepneuralai/chatbot-backend/internal/models"
	"github.com/deepneuralai/chatbot-backend/internal/store"
)

// backend bundles the wired components a command needs to run.
type backend struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *store.Store
	index       *index.Index
	chatService *core.ChatService
}

func (b *backend) close() {
	if err := b.store.Close(); err != nil {
		b.logger.Warn("failed to close store", "error", err)
	}
}

// setupBackend loads configuration and wires every component. The knowledge
// index is built before returning so the first chat request never waits on
// embedding calls.
func setupBackend(ctx context.Context) (*backend, error) {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	slog.SetDefault(logger)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	st := store.New(db)

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	idx := index.New(cfg.IndexName, client, st, logger)
	chunks, err := loadDocumentChunks(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if err := idx.Build(ctx, chunks); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to build knowledge index: %w", err)
	}

	chatService := core.NewChatService(st, idx, client,
		core.WithTopK(cfg.TopK),
		core.WithMemoryWindow(cfg.MemoryWindow),
		core.WithPrices(core.PriceTable{
			InputPerToken:  cfg.InputPrice / 1_000_000,
			OutputPerToken: cfg.OutputPrice / 1_000_000,
		}),
		core.WithLogger(logger),
	)

	return &backend{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		index:       idx,
		chatService: chatService,
	}, nil
}

// loadDocumentChunks reads and chunks the knowledge document. A missing
// document is only an error when no persisted index exists to fall back on;
// Build makes that call, so here it degrades to zero chunks with a warning.
func loadDocumentChunks(cfg *config.Config) ([]models.Chunk, error) {
	data, err := os.ReadFile(cfg.DocumentPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("knowledge document not found, relying on persisted index",
				"path", cfg.DocumentPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read knowledge document: %w", err)
	}

	chunks, err := core.Chunk(string(data), cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk knowledge document: %w", err)
	}
	return chunks, nil
}

// newLogger builds the process-wide structured logger honoring the global
// quiet and verbose flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
