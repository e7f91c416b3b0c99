package services

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// mockEmbedder is a scriptable EmbeddingService for pipeline tests.
type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) Dimensions() int   { return len(m.vector) }
func (m *mockEmbedder) ModelName() string { return "mock" }

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

// stubAdapter returns a fixed listing.
type stubAdapter struct {
	platform domain.Platform
	items    []domain.RemoteItem
	err      error
	closed   bool
}

func (a *stubAdapter) Platform() domain.Platform { return a.platform }

func (a *stubAdapter) ListRemote(_ context.Context) ([]domain.RemoteItem, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.items, nil
}

func (a *stubAdapter) Close() error {
	a.closed = true
	return nil
}

var _ driven.PlatformAdapter = (*stubAdapter)(nil)

// stubFactory hands out one adapter per platform.
type stubFactory struct {
	adapters map[domain.Platform]*stubAdapter
}

func (f *stubFactory) Create(_ context.Context, integration domain.Integration) (driven.PlatformAdapter, error) {
	adapter, ok := f.adapters[integration.Type]
	if !ok {
		return nil, domain.ErrUnsupportedPlatform
	}
	return adapter, nil
}

var _ driven.AdapterFactory = (*stubFactory)(nil)
