// ABOUTME: Knowledge index with idempotent build and cosine-similarity query
// ABOUTME: Embeddings persist in the store; the in-memory copy is read-only after build
package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// Embedder converts text to a fixed-length vector. Failures are non-fatal at
// query time; the index degrades to empty results instead of erroring.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ChunkStore persists (chunk, vector) pairs under a logical index name so a
// build can be reused across restarts without re-embedding.
type ChunkStore interface {
	CountIndexedChunks(indexName string) (int, error)
	SaveIndexedChunk(indexName string, chunk models.Chunk, vector []float64) error
	LoadIndexedChunks(indexName string) ([]models.Chunk, [][]float64, error)
	DeleteIndexedChunks(indexName string) error
}

// ErrNotBuilt is returned by Query before a successful Build.
var ErrNotBuilt = errors.New("knowledge index has not been built")

type entry struct {
	chunk  models.Chunk
	vector []float64
}

// Index is the shared knowledge index. Build runs once at startup; after that
// the entry slice is read-only, so concurrent queries need no locking.
type Index struct {
	name     string
	embedder Embedder
	store    ChunkStore
	logger   *slog.Logger

	mu      sync.Mutex // guards build; at most one build in flight per index
	entries []entry
	ready   bool
}

// New creates an Index for the given logical name.
func New(name string, embedder Embedder, store ChunkStore, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{
		name:     name,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Name returns the logical index name.
func (idx *Index) Name() string {
	return idx.name
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.entries)
}

// Build makes the index ready to serve queries. It is idempotent: when
// persisted chunks for this index name already exist they are loaded as-is
// and no embedding call is made. Concurrent builders serialize on the index
// lock; the second one observes the ready index and returns without building.
func (idx *Index) Build(ctx context.Context, chunks []models.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.ready {
		return nil
	}

	count, err := idx.store.CountIndexedChunks(idx.name)
	if err != nil {
		return fmt.Errorf("failed to check persisted index %q: %w", idx.name, err)
	}
	if count > 0 {
		if err := idx.loadPersisted(); err != nil {
			return err
		}
		idx.logger.Info("loaded existing knowledge index",
			"index", idx.name, "chunks", len(idx.entries))
		idx.ready = true
		return nil
	}

	if len(chunks) == 0 {
		return fmt.Errorf("cannot build index %q from zero chunks", idx.name)
	}

	entries := make([]entry, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := idx.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			// Mirror of the query-time degradation policy: a chunk that cannot
			// be embedded is dropped rather than failing the whole build.
			idx.logger.Warn("skipping chunk, embedding failed",
				"index", idx.name, "chunk_id", chunk.ID, "error", err)
			continue
		}
		if err := idx.store.SaveIndexedChunk(idx.name, chunk, vector); err != nil {
			return fmt.Errorf("failed to persist chunk %s: %w", chunk.ID, err)
		}
		entries = append(entries, entry{chunk: chunk, vector: vector})
	}

	if len(entries) == 0 {
		return fmt.Errorf("index %q build produced no embedded chunks", idx.name)
	}

	idx.entries = entries
	idx.ready = true
	idx.logger.Info("built knowledge index", "index", idx.name, "chunks", len(entries))
	return nil
}

// Rebuild drops any persisted chunks for this index and builds fresh.
func (idx *Index) Rebuild(ctx context.Context, chunks []models.Chunk) error {
	idx.mu.Lock()
	if err := idx.store.DeleteIndexedChunks(idx.name); err != nil {
		idx.mu.Unlock()
		return fmt.Errorf("failed to drop persisted index %q: %w", idx.name, err)
	}
	idx.entries = nil
	idx.ready = false
	idx.mu.Unlock()

	return idx.Build(ctx, chunks)
}

// Query embeds the query text and returns the topK most similar chunks in
// descending similarity order, ties broken by ascending chunk ordinal. When
// the embedding provider fails the query degrades to an empty result set with
// a nil error so a chat turn can proceed without retrieved context.
func (idx *Index) Query(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	idx.mu.Lock()
	ready := idx.ready
	idx.mu.Unlock()
	if !ready {
		return nil, ErrNotBuilt
	}
	if topK < 1 {
		topK = 1
	}

	queryVector, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		idx.logger.Warn("query embedding failed, returning empty results",
			"index", idx.name, "error", err)
		return []models.SearchResult{}, nil
	}

	results := make([]models.SearchResult, 0, len(idx.entries))
	for _, e := range idx.entries {
		results = append(results, models.SearchResult{
			ChunkID:    e.chunk.ID,
			Ordinal:    e.chunk.Ordinal,
			Content:    e.chunk.Text,
			Similarity: CosineSimilarity(queryVector, e.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Ordinal < results[j].Ordinal
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// loadPersisted fills the in-memory entries from the store.
func (idx *Index) loadPersisted() error {
	chunks, vectors, err := idx.store.LoadIndexedChunks(idx.name)
	if err != nil {
		return fmt.Errorf("failed to load persisted index %q: %w", idx.name, err)
	}
	entries := make([]entry, 0, len(chunks))
	for i, chunk := range chunks {
		entries = append(entries, entry{chunk: chunk, vector: vectors[i]})
	}
	idx.entries = entries
	return nil
}

// CosineSimilarity calculates cosine similarity between two vectors: 1.0 for
// identical direction, 0.0 for orthogonal or mismatched input.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
