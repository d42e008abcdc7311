// ABOUTME: Knowledge-base chunk persistence with embedding vectors
// ABOUTME: Vectors are stored as little-endian float64 blobs
package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// CountIndexedChunks returns how many chunks are persisted for an index.
func (s *Store) CountIndexedChunks(indexName string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM kb_chunks WHERE index_name = ?", indexName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count indexed chunks: %w", err)
	}
	return count, nil
}

// SaveIndexedChunk persists one chunk and its embedding vector. Re-saving a
// chunk ID replaces the previous row.
func (s *Store) SaveIndexedChunk(indexName string, chunk models.Chunk, vector []float64) error {
	_, err := s.db.Exec(
		`INSERT INTO kb_chunks (index_name, chunk_id, ordinal, content, vector)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(index_name, chunk_id) DO UPDATE SET
		   ordinal = excluded.ordinal,
		   content = excluded.content,
		   vector = excluded.vector`,
		indexName, chunk.ID, chunk.Ordinal, chunk.Text, vectorToBlob(vector),
	)
	if err != nil {
		return fmt.Errorf("failed to save indexed chunk %s: %w", chunk.ID, err)
	}
	return nil
}

// LoadIndexedChunks returns every persisted chunk for an index together with
// its embedding vector, ordered by ordinal.
func (s *Store) LoadIndexedChunks(indexName string) ([]models.Chunk, [][]float64, error) {
	rows, err := s.db.Query(
		"SELECT chunk_id, ordinal, content, vector FROM kb_chunks WHERE index_name = ? ORDER BY ordinal ASC",
		indexName,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load indexed chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		chunks  []models.Chunk
		vectors [][]float64
	)
	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.Ordinal, &chunk.Text, &blob); err != nil {
			return nil, nil, err
		}
		chunks = append(chunks, chunk)
		vectors = append(vectors, blobToVector(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return chunks, vectors, nil
}

// DeleteIndexedChunks removes every persisted chunk for an index.
func (s *Store) DeleteIndexedChunks(indexName string) error {
	_, err := s.db.Exec("DELETE FROM kb_chunks WHERE index_name = ?", indexName)
	if err != nil {
		return fmt.Errorf("failed to delete indexed chunks: %w", err)
	}
	return nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
