// Package ingest loads plain-text legal documents into the knowledge
// store. Text extraction from PDFs happens upstream; this package only
// consumes (title, content) pairs from .txt files.
package ingest

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/knowledge"
)

//go:embed samples/*.txt
var sampleFS embed.FS

// Report summarizes one ingestion run.
type Report struct {
	Documents int
	Chunks    int
}

// EnsureSamples writes the bundled sample corpus into dir when dir
// holds no .txt documents yet, so a fresh checkout has something to
// retrieve against. Existing files are never overwritten.
func EnsureSamples(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create documents dir: %w", err)
	}

	existing, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	return fs.WalkDir(sampleFS, "samples", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := sampleFS.ReadFile(path)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.Base(path))
		if _, statErr := os.Stat(target); statErr == nil {
			return nil
		}
		return os.WriteFile(target, content, 0o644)
	})
}

// LoadDirectory ingests every .txt file in dir into the store, using
// the file name (without extension) as document title.
func LoadDirectory(ctx context.Context, store *knowledge.Store, dir string, logger *zap.Logger) (Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return Report{}, fmt.Errorf("scan documents dir: %w", err)
	}

	var report Report
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return report, fmt.Errorf("read %s: %w", path, err)
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		added, err := store.Add(ctx, title, string(content))
		if err != nil {
			return report, fmt.Errorf("ingest %q: %w", title, err)
		}

		logger.Info("document ingested",
			zap.String("title", title), zap.Int("chunks", added))
		report.Documents++
		report.Chunks += added
	}
	return report, nil
}
