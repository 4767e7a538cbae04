// Package style obtains a model-generated characterization of a transcript's
// communication style. The characterization is opaque to the pipeline: it is
// stored and forwarded as serialized JSON, never interpreted.
package style

import (
	"context"
	"encoding/json"
)

// analysisTemperature allows some creativity while maintaining style consistency.
const analysisTemperature = 0.7

// analysisPrompt enumerates the seven analysis dimensions. The trailing
// post-generation directive is inert at this stage; the synthesis stage
// exercises it with a concrete topic.
const analysisPrompt = `Analyze the following transcript excerpt for the speaker's unique communication style.
Focus on:
1. Syntactical patterns (sentence structure, length, transitions)
2. Vocabulary choices (technical terms, common phrases, industry terms)
3. Tone markers (formality, humor, emotional expression)
4. Engagement patterns (audience interaction, storytelling)
5. Unique characteristics (signature phrases, explanation style)
6. Grammar preferences (active/passive voice, contractions)
7. Content structure (topic introduction, examples, conclusions)

Then, based on this analysis, generate a social media post that authentically replicates the speaker's voice and style while discussing the requested topic.`

// Analysis is the raw response envelope from the completion API.
// It is serializable data with no further meaning to this pipeline.
type Analysis json.RawMessage

// MarshalJSON emits the stored envelope verbatim.
func (a Analysis) MarshalJSON() ([]byte, error) {
	return json.RawMessage(a).MarshalJSON()
}

// UnmarshalJSON stores the envelope verbatim.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	return (*json.RawMessage)(a).UnmarshalJSON(data)
}

// envelopeCompleter is the slice of the API client this package needs.
// *grok.Client implements it.
type envelopeCompleter interface {
	Envelope(ctx context.Context, system, user string, temperature float32) (json.RawMessage, error)
}

// Analyzer produces a style characterization for one transcript.
type Analyzer interface {
	// Analyze characterizes the communication style of transcriptText.
	// The text is passed through unbounded; any length limits are the
	// remote service's to enforce.
	Analyze(ctx context.Context, transcriptText string) (Analysis, error)
}

// Compile-time interface compliance check.
var _ Analyzer = (*GrokAnalyzer)(nil)

// GrokAnalyzer asks the completion API to characterize a transcript's style.
type GrokAnalyzer struct {
	client envelopeCompleter
}

// NewGrokAnalyzer creates an analyzer backed by client.
func NewGrokAnalyzer(client envelopeCompleter) *GrokAnalyzer {
	return &GrokAnalyzer{client: client}
}

// Analyze invokes the client once and returns the response envelope verbatim.
func (a *GrokAnalyzer) Analyze(ctx context.Context, transcriptText string) (Analysis, error) {
	raw, err := a.client.Envelope(ctx, analysisPrompt, "Transcript to analyze:\n"+transcriptText, analysisTemperature)
	if err != nil {
		return nil, err
	}
	return Analysis(raw), nil
}
