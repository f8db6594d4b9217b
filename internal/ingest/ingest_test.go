package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/knowledge"
)

func TestEnsureSamplesSeedsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EnsureSamples(dir))

	seeded, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	assert.Len(t, seeded, 3)
}

func TestEnsureSamplesNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	own := filepath.Join(dir, "my_notes.txt")
	require.NoError(t, os.WriteFile(own, []byte("keep me"), 0o644))

	require.NoError(t, EnsureSamples(dir))

	// The directory already held a document, so no samples land.
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(own)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestLoadDirectoryIngestsEveryDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EnsureSamples(dir))

	store, err := knowledge.NewStore(knowledge.NewLexicalEmbedder(0), 500)
	require.NoError(t, err)

	report, err := LoadDirectory(context.Background(), store, dir, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Documents)
	assert.GreaterOrEqual(t, report.Chunks, 3)
	assert.Equal(t, report.Chunks, store.Len())

	hits, err := store.Query(context.Background(), "breach of contract remedies", 2)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "contract_law", hits[0].Title)
}

func TestLoadDirectoryEmptyDirIsNoOp(t *testing.T) {
	store, err := knowledge.NewStore(knowledge.NewLexicalEmbedder(0), 500)
	require.NoError(t, err)

	report, err := LoadDirectory(context.Background(), store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, report.Documents)
	assert.Zero(t, store.Len())
}
