package style_test

// Notes:
// - Black-box tests with a fake completer; the analyzer must forward the
//   transcript untouched and return the envelope verbatim.

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-stylegen/internal/style"
)

// fakeCompleter records the prompts it was called with.
type fakeCompleter struct {
	system      string
	user        string
	temperature float32
	calls       int
	envelope    json.RawMessage
	err         error
}

func (f *fakeCompleter) Envelope(_ context.Context, system, user string, temperature float32) (json.RawMessage, error) {
	f.calls++
	f.system = system
	f.user = user
	f.temperature = temperature
	return f.envelope, f.err
}

func TestGrokAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("returns the envelope verbatim", func(t *testing.T) {
		t.Parallel()

		envelope := json.RawMessage(`{"id":"chatcmpl-1","choices":[{"message":{"content":"analysis"}}]}`)
		fake := &fakeCompleter{envelope: envelope}
		analyzer := style.NewGrokAnalyzer(fake)

		analysis, err := analyzer.Analyze(context.Background(), "hello folks, welcome back")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if string(analysis) != string(envelope) {
			t.Errorf("Analyze() = %s, want %s", analysis, envelope)
		}
		if fake.calls != 1 {
			t.Errorf("completer called %d times, want 1", fake.calls)
		}
	})

	t.Run("prompt names all seven dimensions", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCompleter{envelope: json.RawMessage(`{}`)}
		analyzer := style.NewGrokAnalyzer(fake)

		if _, err := analyzer.Analyze(context.Background(), "text"); err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}

		for _, dimension := range []string{
			"Syntactical patterns",
			"Vocabulary choices",
			"Tone markers",
			"Engagement patterns",
			"Unique characteristics",
			"Grammar preferences",
			"Content structure",
		} {
			if !strings.Contains(fake.system, dimension) {
				t.Errorf("analysis prompt missing dimension %q", dimension)
			}
		}
		if fake.temperature != 0.7 {
			t.Errorf("temperature = %v, want 0.7", fake.temperature)
		}
	})

	t.Run("transcript is forwarded untruncated", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a very long transcript line\n", 5000)
		fake := &fakeCompleter{envelope: json.RawMessage(`{}`)}
		analyzer := style.NewGrokAnalyzer(fake)

		if _, err := analyzer.Analyze(context.Background(), long); err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if fake.user != "Transcript to analyze:\n"+long {
			t.Error("transcript was altered before sending")
		}
	})

	t.Run("client failure propagates", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("exhausted")
		fake := &fakeCompleter{err: cause}
		analyzer := style.NewGrokAnalyzer(fake)

		_, err := analyzer.Analyze(context.Background(), "text")
		if !errors.Is(err, cause) {
			t.Errorf("Analyze() error = %v, want %v", err, cause)
		}
	})
}

func TestAnalysisJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := style.Analysis(`{"choices":[{"message":{"content":"terse, direct"}}]}`)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != string(original) {
		t.Errorf("marshal reencoded the envelope: %s", data)
	}

	var decoded style.Analysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(decoded) != string(original) {
		t.Errorf("round trip = %s, want %s", decoded, original)
	}
}
