package cli

import (
	"context"
	"sync"

	"github.com/alnah/go-stylegen/internal/config"
	"github.com/alnah/go-stylegen/internal/pipeline"
)

// ---------------------------------------------------------------------------
// mockConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

// ---------------------------------------------------------------------------
// mockRunner
// ---------------------------------------------------------------------------

type mockRunner struct {
	RunFunc func(ctx context.Context) (pipeline.Result, error)
}

func (m *mockRunner) Run(ctx context.Context) (pipeline.Result, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx)
	}
	return pipeline.Result{}, nil
}

// ---------------------------------------------------------------------------
// mockPipelineFactory
// ---------------------------------------------------------------------------

type mockPipelineFactory struct {
	mu    sync.Mutex
	calls []PipelineOptions

	NewPipelineFunc func(opts PipelineOptions) (Runner, error)
}

func (m *mockPipelineFactory) NewPipeline(opts PipelineOptions) (Runner, error) {
	m.mu.Lock()
	m.calls = append(m.calls, opts)
	m.mu.Unlock()

	if m.NewPipelineFunc != nil {
		return m.NewPipelineFunc(opts)
	}
	return &mockRunner{}, nil
}

// Calls returns a copy of the options passed to NewPipeline so far.
func (m *mockPipelineFactory) Calls() []PipelineOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PipelineOptions(nil), m.calls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*mockConfigLoader)(nil)
	_ Runner          = (*mockRunner)(nil)
	_ PipelineFactory = (*mockPipelineFactory)(nil)
)
