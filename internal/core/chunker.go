// ABOUTME: Chunker splits a raw document into overlapping spans for embedding
// ABOUTME: Prefers sentence or line breaks over hard cuts to keep chunks readable
package core

import (
	"fmt"
	"strings"

	"github.com/deepneuralai/chatbot-backend/internal/models"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 400
	DefaultChunkOverlap = 75
)

// Chunk splits text into overlapping chunks of at most chunkSize characters.
// For every window that does not reach the end of the text it scans backward
// for the last sentence terminator ('.') or newline and breaks there instead,
// provided the break point lies at or beyond half the window. The next window
// starts overlap characters before the previous chunk's end, so adjacent
// chunks share context. Whitespace at chunk edges is trimmed.
//
// The function is pure and deterministic: identical inputs always yield an
// identical chunk sequence. Empty text yields an empty sequence.
func Chunk(text string, chunkSize, overlap int) ([]models.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSize, overlap)
	}

	runes := []rune(text)
	length := len(runes)

	chunks := []models.Chunk{}
	ordinal := 0

	for start := 0; start < length; {
		end := start + chunkSize
		sliceEnd := end
		if sliceEnd > length {
			sliceEnd = length
		}

		// Only windows that stop short of the end get a soft break; the final
		// chunk always runs to the end of the text.
		if end < length {
			if bp := lastBreak(runes[start:sliceEnd]); bp > chunkSize/2 {
				end = start + bp + 1
				sliceEnd = end
			}
		}

		chunks = append(chunks, models.Chunk{
			ID:      fmt.Sprintf("chunk_%d", ordinal),
			Text:    strings.TrimSpace(string(runes[start:sliceEnd])),
			Ordinal: ordinal,
		})
		ordinal++

		next := end - overlap
		if next <= start {
			// A soft break close to the window midpoint combined with a large
			// overlap could stall the scan; fall forward to the chunk end.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// lastBreak returns the index of the last '.' or '\n' in window, or -1.
func lastBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '\n' {
			return i
		}
	}
	return -1
}
