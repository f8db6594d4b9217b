package knowledge

import (
	"errors"
	"strings"
)

// DefaultChunkSize is the word count per chunk used for ingestion.
const DefaultChunkSize = 500

// ErrInvalidChunkSize reports a non-positive chunk size, which is a
// configuration mistake rather than a degenerate input.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// SplitChunks groups the whitespace-delimited words of text into runs
// of chunkSize words, preserving order. The last chunk may be shorter.
// Empty text yields no chunks. The function is pure.
func SplitChunks(text string, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	chunks := make([]string, 0, (len(words)+chunkSize-1)/chunkSize)
	for i := 0; i < len(words); i += chunkSize {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks, nil
}
