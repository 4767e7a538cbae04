package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testMocks groups the mocks behind a testEnv for assertions.
type testMocks struct {
	configLoader *mockConfigLoader
	factory      *mockPipelineFactory
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv() (*Env, *testMocks) {
	mocks := &testMocks{
		configLoader: &mockConfigLoader{},
		factory:      &mockPipelineFactory{},
	}
	env := &Env{
		Stdout:          &syncBuffer{},
		Stderr:          &syncBuffer{},
		Getenv:          defaultTestEnv,
		ConfigLoader:    mocks.configLoader,
		PipelineFactory: mocks.factory,
	}
	return env, mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns an API key and nothing else.
func defaultTestEnv(key string) string {
	if key == EnvAPIKey {
		return "test-xai-key"
	}
	return ""
}

// writeTestFile creates a file with the given content in a temp dir
// and returns its path. The file is cleaned up after the test.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// validExampleLine is one well-formed JSONL training example.
const validExampleLine = `{"messages":[{"role":"system","content":"s"},{"role":"user","content":"u"},{"role":"assistant","content":"a"}]}`

// invalidExampleLine parses as JSON but fails example validation.
const invalidExampleLine = `{"messages":[{"role":"user","content":"u"}]}`
