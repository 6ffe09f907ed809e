package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// stubExtractor is a minimal extractor for registry tests.
type stubExtractor struct {
	exts []string
}

func (s *stubExtractor) Extensions() []string { return s.exts }

func (s *stubExtractor) Extract(context.Context, string, string) ([]domain.ContentUnit, error) {
	return nil, nil
}

var _ driven.Extractor = (*stubExtractor)(nil)

// TestRegistry_Register tests registration and case-insensitive lookup.
func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	text := &stubExtractor{exts: []string{".txt"}}
	images := &stubExtractor{exts: []string{".png", "JPG", ".JPEG"}}

	r.Register(text)
	r.Register(images)

	got, ok := r.ForExtension(".txt")
	require.True(t, ok)
	assert.Same(t, text, got)

	for _, ext := range []string{".png", ".PNG", ".jpg", "jpeg", ".Jpeg"} {
		got, ok := r.ForExtension(ext)
		require.True(t, ok, "extension %q should resolve", ext)
		assert.Same(t, images, got)
	}

	_, ok = r.ForExtension(".mp4")
	assert.False(t, ok)
}

// TestRegistry_LastRegistrationWins tests that re-registering an extension replaces the extractor.
func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &stubExtractor{exts: []string{".txt"}}
	second := &stubExtractor{exts: []string{".txt"}}

	r.Register(first)
	r.Register(second)

	got, ok := r.ForExtension(".txt")
	require.True(t, ok)
	assert.Same(t, second, got)
}

// TestRegistry_Extensions tests that all registered extensions are reported sorted.
func TestRegistry_Extensions(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubExtractor{exts: []string{".txt"}})
	r.Register(&stubExtractor{exts: []string{".png", ".jpg"}})

	assert.Equal(t, []string{".jpg", ".png", ".txt"}, r.Extensions())
}

// TestRegistry_IgnoresEmptyExtensions tests that blank extensions and nil extractors are skipped.
func TestRegistry_IgnoresEmptyExtensions(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)
	r.Register(&stubExtractor{exts: []string{"", ".", "  "}})

	assert.Empty(t, r.Extensions())
}
