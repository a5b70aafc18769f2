package adapters

import (
	"context"
	"testing"

	"github.com/jqwang17/MediaSearch-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Minimal stub for registry tests -----------------------------------------

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Search(_ context.Context, _ string) ([]domain.Record, error) {
	return nil, nil
}

// -- Tests -------------------------------------------------------------------

func TestProviderRegistry_RegisterAndGet(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(&stubProvider{name: "tmdb"})
	registry.Register(&stubProvider{name: "douban"})

	p, err := registry.Get("tmdb")
	require.NoError(t, err)
	assert.Equal(t, "tmdb", p.Name())

	p, err = registry.Get("douban")
	require.NoError(t, err)
	assert.Equal(t, "douban", p.Name())
}

func TestProviderRegistry_GetUnknown(t *testing.T) {
	registry := NewProviderRegistry()

	_, err := registry.Get("imdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestProviderRegistry_Available(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(&stubProvider{name: "tmdb"})
	registry.Register(&stubProvider{name: "maoyan"})

	available := registry.Available()
	assert.Len(t, available, 2)
	assert.Contains(t, available, "tmdb")
	assert.Contains(t, available, "maoyan")
}

func TestProviderRegistry_OverwriteExisting(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(&stubProvider{name: "tmdb"})
	registry.Register(&stubProvider{name: "tmdb"}) // re-register

	available := registry.Available()
	assert.Len(t, available, 1)
}
