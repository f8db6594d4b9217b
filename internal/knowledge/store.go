package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Chunk is one embedded slice of a source document. Chunks are
// immutable once stored and are never evicted within a session.
type Chunk struct {
	Title     string    `json:"title"`
	Seq       int       `json:"seq"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"-"`
}

// Hit annotates a chunk with its similarity to a query.
type Hit struct {
	Chunk
	Score float64 `json:"score"`
}

// Retriever is the read-only capability handed to personas.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]Hit, error)
}

// Searcher ranks stored chunks against a query vector. The default is
// a brute-force scan; an indexed nearest-neighbor structure can be
// swapped in without touching the Store contract.
type Searcher interface {
	Search(query []float64, chunks []Chunk, k int) []Hit
}

// Store holds embedded document chunks and answers similarity queries.
// Writes happen during ingestion; queries take a read lock so they are
// safe against concurrent readers.
type Store struct {
	mu       sync.RWMutex
	chunks   []Chunk
	embedder Embedder
	searcher Searcher
	size     int
}

// NewStore builds an empty store around the given embedder, using the
// brute-force searcher and chunkSize words per chunk.
func NewStore(embedder Embedder, chunkSize int) (*Store, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	return &Store{
		embedder: embedder,
		searcher: FlatSearcher{},
		size:     chunkSize,
	}, nil
}

// Len reports the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Add splits text into chunks, embeds each one and appends them under
// the given title. It returns the number of chunks added.
func (s *Store) Add(ctx context.Context, title, text string) (int, error) {
	parts, err := SplitChunks(text, s.size)
	if err != nil {
		return 0, err
	}

	added := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		vec, err := s.embedder.Embed(ctx, part)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %q: %w", i, title, err)
		}
		added = append(added, Chunk{Title: title, Seq: i, Content: part, Embedding: vec})
	}

	s.mu.Lock()
	s.chunks = append(s.chunks, added...)
	s.mu.Unlock()
	return len(added), nil
}

// Query embeds text and returns the top k chunks by cosine similarity,
// ties broken by insertion order. k is clamped to the store size; an
// empty store yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Hit, error) {
	s.mu.RLock()
	chunks := s.chunks
	s.mu.RUnlock()

	if len(chunks) == 0 || k <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.searcher.Search(vec, chunks, k), nil
}

// FlatSearcher ranks by brute-force cosine similarity. Linear scan is
// fine at the corpus scale this system targets (hundreds of chunks).
type FlatSearcher struct{}

// Search implements Searcher.
func (FlatSearcher) Search(query []float64, chunks []Chunk, k int) []Hit {
	hits := make([]Hit, 0, len(chunks))
	for _, c := range chunks {
		hits = append(hits, Hit{Chunk: c, Score: cosineSimilarity(query, c.Embedding)})
	}

	// Stable keeps insertion order for equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (normA * normB)
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}
