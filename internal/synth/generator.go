package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-stylegen/internal/dataset"
	"github.com/alnah/go-stylegen/internal/style"
)

// ErrTooFewTopics indicates the topic pool is smaller than the number of
// examples requested per analysis. Sampling is without replacement, so the
// pool must hold at least that many topics.
var ErrTooFewTopics = errors.New("topic pool smaller than examples per analysis")

// Generator assembles training examples for one style analysis.
// Safe for concurrent use: topic sampling serializes on an internal mutex.
type Generator struct {
	synth  Synthesizer
	topics []string
	count  int

	mu  sync.Mutex
	rng *rand.Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTopics replaces the default topic pool.
func WithTopics(topics []string) GeneratorOption {
	return func(g *Generator) {
		if len(topics) > 0 {
			g.topics = topics
		}
	}
}

// WithExamplesPerAnalysis sets how many examples each analysis yields.
func WithExamplesPerAnalysis(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// NewGenerator creates a Generator sampling topics from rng.
// A nil rng gets a time-seeded source; tests pass a fixed seed for
// reproducible topic selection.
func NewGenerator(synth Synthesizer, rng *rand.Rand, opts ...GeneratorOption) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Generator{
		synth:  synth,
		topics: DefaultTopics,
		count:  DefaultExamplesPerAnalysis,
		rng:    rng,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate samples distinct topics without replacement and synthesizes one
// post per topic, issuing the synthesis calls concurrently. Any single
// failure aborts the whole batch: no partial example set is ever returned.
func (g *Generator) Generate(ctx context.Context, analysis style.Analysis) ([]dataset.Example, error) {
	topics, err := g.sampleTopics()
	if err != nil {
		return nil, err
	}

	posts := make([]string, len(topics))
	grp, ctx := errgroup.WithContext(ctx)
	for i, topic := range topics {
		i, topic := i, topic
		grp.Go(func() error {
			post, err := g.synth.Synthesize(ctx, analysis, topic)
			if err != nil {
				return fmt.Errorf("synthesize post about %q: %w", topic, err)
			}
			posts[i] = post
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	examples := make([]dataset.Example, len(topics))
	for i, topic := range topics {
		examples[i] = dataset.NewExample(personaPrompt, TopicRequest(topic), posts[i])
	}
	return examples, nil
}

// sampleTopics draws count distinct topics uniformly at random.
func (g *Generator) sampleTopics() ([]string, error) {
	if len(g.topics) < g.count {
		return nil, fmt.Errorf("%d topics for %d examples: %w", len(g.topics), g.count, ErrTooFewTopics)
	}

	g.mu.Lock()
	order := g.rng.Perm(len(g.topics))
	g.mu.Unlock()

	sampled := make([]string, g.count)
	for i := range sampled {
		sampled[i] = g.topics[order[i]]
	}
	return sampled, nil
}
