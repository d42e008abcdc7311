// ABOUTME: Ingest command re-indexes the knowledge document
// ABOUTME: Drops the persisted index and re-embeds every chunk
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepneuralai/chatbot-backend/internal/core"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Re-index the knowledge document",
		Long: `Re-index the knowledge document

Drops any persisted knowledge index, re-chunks the document and embeds
every chunk from scratch. Use after the knowledge document changes.`,
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := setupBackend(ctx)
	if err != nil {
		return err
	}
	defer b.close()

	data, err := os.ReadFile(b.cfg.DocumentPath)
	if err != nil {
		return fmt.Errorf("failed to read knowledge document %s: %w", b.cfg.DocumentPath, err)
	}

	chunks, err := core.Chunk(string(data), b.cfg.ChunkSize, b.cfg.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("failed to chunk knowledge document: %w", err)
	}

	if err := b.index.Rebuild(ctx, chunks); err != nil {
		return fmt.Errorf("failed to rebuild knowledge index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingestion complete. Indexed %d chunks into %q.\n",
			b.index.Len(), b.index.Name())
	}
	return nil
}
