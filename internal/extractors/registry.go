package extractors

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Registry maps file extensions to extractors. Extensions are matched
// case-insensitively and always carry a leading dot.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// Register adds an extractor for each extension it reports.
// A later registration for the same extension wins.
func (r *Registry) Register(e driven.Extractor) {
	if e == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range e.Extensions() {
		ext = normaliseExt(ext)
		if ext == "" {
			continue
		}
		r.extractors[ext] = e
	}
}

// ForExtension returns the extractor registered for ext, if any.
func (r *Registry) ForExtension(ext string) (driven.Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[normaliseExt(ext)]
	return e, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// normaliseExt lowercases an extension and ensures the leading dot.
func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
