// ABOUTME: Serve command runs the HTTP API server
// ABOUTME: Builds the knowledge index before listening, shuts down gracefully
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepneuralai/chatbot-backend/internal/api"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Builds or loads the knowledge index, then serves the chat API.
The index build is idempotent: a persisted index is loaded as-is
without re-embedding the knowledge document.`,
		RunE: runServe,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := setupBackend(ctx)
	if err != nil {
		return err
	}
	defer b.close()

	handler := api.NewAPIHandler(b.chatService, b.store, b.logger)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", b.cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		b.logger.Info("server starting", "addr", srv.Addr, "index", b.index.Name(), "chunks", b.index.Len())
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		b.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		b.logger.Info("server exited gracefully")

	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
