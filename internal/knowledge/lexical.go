package knowledge

import (
	"context"
	"hash/fnv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LexicalEmbedder is the offline fallback: a deterministic hashed
// bag-of-words projection. It has none of the semantics of a learned
// model but it keeps retrieval ranking meaningful for word-overlap
// queries, which is enough for the scripted-backend development mode.
type LexicalEmbedder struct {
	dims int
}

// NewLexicalEmbedder builds a fallback embedder with the given vector
// width (256 when dims <= 0).
func NewLexicalEmbedder(dims int) *LexicalEmbedder {
	if dims <= 0 {
		dims = 256
	}
	return &LexicalEmbedder{dims: dims}
}

// Embed implements Embedder. Same text always produces the same
// vector; vectors are L2-normalized so cosine ranking behaves.
func (e *LexicalEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, e.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[int(h.Sum32())%e.dims]++
	}

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}
	return vec, nil
}

// Dimensions implements Embedder.
func (e *LexicalEmbedder) Dimensions() int { return e.dims }

// Name implements Embedder.
func (e *LexicalEmbedder) Name() string { return "lexical" }
