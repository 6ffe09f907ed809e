// Package fs loads the corpus from a local directory tree.
//
// Files are discovered recursively and dispatched to extractors by
// extension. A file that fails extraction is reported and skipped; the
// rest of the corpus still loads.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/extractors"
)

// Ensure Loader implements the port.
var _ driven.CorpusLoader = (*Loader)(nil)

// Config holds configuration for the corpus loader.
type Config struct {
	// Dir is the corpus directory. Created if it does not exist.
	Dir string

	// Registry dispatches files to extractors by extension.
	Registry *extractors.Registry

	// Logger records per-file progress and failures.
	Logger *zap.Logger
}

// Loader walks a directory and turns supported files into content units.
type Loader struct {
	dir      string
	registry *extractors.Registry
	log      *zap.Logger
}

// New creates a corpus loader rooted at cfg.Dir, creating the directory
// when missing so a fresh install has somewhere to drop files.
func New(cfg Config) (*Loader, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("corpus dir: %w", domain.ErrInvalidInput)
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("extractor registry: %w", domain.ErrInvalidInput)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create corpus dir: %w", err)
	}

	return &Loader{
		dir:      cfg.Dir,
		registry: cfg.Registry,
		log:      cfg.Logger,
	}, nil
}

// Dir returns the corpus directory.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadAll walks the corpus directory in lexical order and extracts every
// supported file. It returns the units and the file names that loaded,
// in walk order. A file whose extraction fails is logged and excluded
// from both.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.ContentUnit, []string, error) {
	l.log.Info("scanning corpus directory", zap.String("dir", l.dir))

	var (
		units   []domain.ContentUnit
		sources []string
	)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		extractor, ok := l.registry.ForExtension(filepath.Ext(name))
		if !ok {
			l.log.Debug("skipping unsupported file", zap.String("file", name))
			return nil
		}

		fileUnits, err := extractor.Extract(ctx, path, name)
		if err != nil {
			l.log.Error("failed to load file", zap.String("file", name), zap.Error(err))
			return nil
		}

		units = append(units, fileUnits...)
		sources = append(sources, name)
		l.log.Info("loaded file", zap.String("file", name), zap.Int("units", len(fileUnits)))
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk corpus dir: %w", err)
	}

	l.log.Info("corpus loaded", zap.Int("files", len(sources)), zap.Int("units", len(units)))
	return units, sources, nil
}
