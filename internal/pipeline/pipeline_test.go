package pipeline_test

// Coverage Notes:
// - End-to-end run over fakes: N transcripts × 5 examples, split 0.8/0.2,
//   both files written.
// - One failing transcript aborts the run and leaves no output files.
// - An empty source propagates ErrNoTranscripts before any analysis call.
// - Invalid examples are counted as drops but do not fail the run.

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-stylegen/internal/dataset"
	"github.com/alnah/go-stylegen/internal/pipeline"
	"github.com/alnah/go-stylegen/internal/style"
	"github.com/alnah/go-stylegen/internal/transcript"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeSource struct {
	transcripts []transcript.Transcript
	err         error
}

func (f fakeSource) Load(context.Context) ([]transcript.Transcript, error) {
	return f.transcripts, f.err
}

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  int
	failOn string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, text string) (style.Analysis, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failOn != "" && text == f.failOn {
		return nil, errors.New("analysis blew up")
	}
	return style.Analysis(fmt.Sprintf(`{"analyzed":%q}`, text)), nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	perCall []dataset.Example
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, _ style.Analysis) ([]dataset.Example, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.perCall != nil {
		return f.perCall, nil
	}
	out := make([]dataset.Example, 5)
	for i := range out {
		out[i] = dataset.NewExample("s", fmt.Sprintf("call %d example %d", n, i), "a")
	}
	return out, nil
}

func sessions(n int) []transcript.Transcript {
	out := make([]transcript.Transcript, n)
	for i := range out {
		out[i] = transcript.Transcript{
			Name: fmt.Sprintf("session_%02d.txt", i),
			Text: fmt.Sprintf("transcript %d", i),
		}
	}
	return out
}

func newPipeline(dir string, src transcript.Source, an style.Analyzer, gen pipeline.ExampleGenerator) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Source:      src,
		Analyzer:    an,
		Generator:   gen,
		Builder:     dataset.NewBuilder(rand.New(rand.NewSource(1))),
		OutputDir:   dir,
		Concurrency: 2,
	}
}

// ---------------------------------------------------------------------------
// TestPipelineRun
// ---------------------------------------------------------------------------

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	t.Run("full run splits and persists all examples", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		analyzer := &fakeAnalyzer{}
		generator := &fakeGenerator{}
		p := newPipeline(dir, fakeSource{transcripts: sessions(4)}, analyzer, generator)

		result, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}

		// 4 transcripts × 5 examples: floor(0.8·20) = 16 training.
		if result.Training != 16 || result.Validation != 4 {
			t.Errorf("result = %+v, want 16 training / 4 validation", result)
		}
		if result.Dropped != 0 {
			t.Errorf("Dropped = %d, want 0", result.Dropped)
		}
		if analyzer.calls != 4 || generator.calls != 4 {
			t.Errorf("analyzer/generator calls = %d/%d, want 4/4", analyzer.calls, generator.calls)
		}

		training, _, err := dataset.ReadJSONL(filepath.Join(dir, dataset.TrainingFile))
		if err != nil {
			t.Fatalf("read training set: %v", err)
		}
		if len(training) != 16 {
			t.Errorf("training file holds %d examples, want 16", len(training))
		}
		validation, _, err := dataset.ReadJSONL(filepath.Join(dir, dataset.ValidationFile))
		if err != nil {
			t.Fatalf("read validation set: %v", err)
		}
		if len(validation) != 4 {
			t.Errorf("validation file holds %d examples, want 4", len(validation))
		}
	})

	t.Run("empty source aborts with zero output files", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		analyzer := &fakeAnalyzer{}
		p := newPipeline(dir, transcript.DirSource{Dir: t.TempDir()}, analyzer, &fakeGenerator{})

		_, err := p.Run(context.Background())
		if !errors.Is(err, transcript.ErrNoTranscripts) {
			t.Fatalf("Run() error = %v, want ErrNoTranscripts", err)
		}
		if analyzer.calls != 0 {
			t.Errorf("analyzer called %d times before abort, want 0", analyzer.calls)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("output dir exists after aborted run: %v", err)
		}
	})

	t.Run("one failing transcript aborts the whole run", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		analyzer := &fakeAnalyzer{failOn: "transcript 2"}
		p := newPipeline(dir, fakeSource{transcripts: sessions(4)}, analyzer, &fakeGenerator{})

		_, err := p.Run(context.Background())
		if err == nil {
			t.Fatal("Run() returned nil error despite a failing transcript")
		}
		if !strings.Contains(err.Error(), "session_02.txt") {
			t.Errorf("error %v does not name the failing transcript", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, dataset.TrainingFile)); !os.IsNotExist(statErr) {
			t.Errorf("training file written despite failed run")
		}
	})

	t.Run("generator failure propagates without persistence", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		cause := errors.New("synthesis exhausted retries")
		p := newPipeline(dir, fakeSource{transcripts: sessions(2)}, &fakeAnalyzer{}, &fakeGenerator{err: cause})

		_, err := p.Run(context.Background())
		if !errors.Is(err, cause) {
			t.Fatalf("Run() error = %v, want %v", err, cause)
		}
		if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
			t.Errorf("output dir exists after failed run")
		}
	})

	t.Run("cancelled context skips persistence", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := newPipeline(dir, fakeSource{transcripts: sessions(2)}, &fakeAnalyzer{}, &fakeGenerator{})
		if _, err := p.Run(ctx); err == nil {
			t.Fatal("Run() returned nil error under cancelled context")
		}
		if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
			t.Errorf("output dir exists after cancelled run")
		}
	})

	t.Run("invalid examples count as drops not failures", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "output")
		// Two valid examples and one with a missing content field.
		batch := []dataset.Example{
			dataset.NewExample("s", "u1", "a1"),
			{Messages: []dataset.Message{
				dataset.NewMessage(dataset.RoleSystem, "s"),
				{Role: dataset.RoleUser},
				dataset.NewMessage(dataset.RoleAssistant, "a"),
			}},
			dataset.NewExample("s", "u2", "a2"),
		}
		p := newPipeline(dir, fakeSource{transcripts: sessions(1)}, &fakeAnalyzer{}, &fakeGenerator{perCall: batch})

		result, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if result.Dropped != 1 {
			t.Errorf("Dropped = %d, want 1", result.Dropped)
		}
		if result.Training+result.Validation != 2 {
			t.Errorf("persisted %d examples, want 2", result.Training+result.Validation)
		}
	})
}
