// Package synth turns one style analysis into chat-format training examples:
// it samples topics from a fixed pool, asks the completion API for a
// style-matched post per topic, and wraps each post as a three-message example.
package synth

import (
	"context"

	"github.com/alnah/go-stylegen/internal/style"
)

// completer is the slice of the API client this package needs.
// *grok.Client implements it.
type completer interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}

// Synthesizer produces one style-matched post about a topic.
type Synthesizer interface {
	// Synthesize writes a post about topic in the analyzed voice.
	Synthesize(ctx context.Context, analysis style.Analysis, topic string) (string, error)
}

// Compile-time interface compliance check.
var _ Synthesizer = (*GrokSynthesizer)(nil)

// GrokSynthesizer generates posts through the completion API.
type GrokSynthesizer struct {
	client completer
}

// NewGrokSynthesizer creates a synthesizer backed by client.
func NewGrokSynthesizer(client completer) *GrokSynthesizer {
	return &GrokSynthesizer{client: client}
}

// Synthesize invokes the client once. The serialized analysis travels in the
// user prompt; extraction of the generated text (and the error when it is
// missing) happens inside the client.
func (s *GrokSynthesizer) Synthesize(ctx context.Context, analysis style.Analysis, topic string) (string, error) {
	user := "Style analysis: " + string(analysis) + "\nTopic: " + topic
	return s.client.Complete(ctx, synthesisPrompt(topic), user, synthesisTemperature)
}
