// ABOUTME: Chunk represents a bounded span of source text prepared for embedding
// ABOUTME: Chunks are derived deterministically from a document and never mutated
package models

// Chunk is a single span of the knowledge document. The ID is stable for a
// given document and chunking parameters, which keeps index builds reproducible.
type Chunk struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Ordinal int    `json:"ordinal"`
}

// SearchResult is one knowledge-index hit for a query. Similarity is 1.0 for
// an identical vector and 0.0 for an orthogonal one.
type SearchResult struct {
	ChunkID    string  `json:"chunk_id"`
	Ordinal    int     `json:"ordinal"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}
