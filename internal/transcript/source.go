// Package transcript supplies the raw text the pipeline learns styles from.
// A source is an ordered collection of (identifier, text) pairs; the
// shipped implementation reads a directory of plain-text files.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoTranscripts indicates the source yielded no transcripts.
// This is fatal: the run aborts before any API call is made.
var ErrNoTranscripts = errors.New("no transcript files found")

// Transcript is one unit of raw source text for a single speaker session.
// Immutable once loaded.
type Transcript struct {
	Name string
	Text string
}

// Source provides transcripts to the pipeline.
type Source interface {
	// Load returns all transcripts in a stable order.
	// Returns ErrNoTranscripts when the source is empty.
	Load(ctx context.Context) ([]Transcript, error)
}

// Compile-time interface compliance check.
var _ Source = DirSource{}

// DirSource loads every *.txt file from a directory, sorted by file name.
type DirSource struct {
	Dir string
}

// Load reads all transcript files. File contents are trimmed of surrounding
// whitespace; files that trim to nothing still count as transcripts (length
// constraints are the remote service's concern, not the loader's).
func (s DirSource) Load(ctx context.Context) ([]Transcript, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Dir, ErrNoTranscripts)
	}
	sort.Strings(matches)

	transcripts := make([]Transcript, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// #nosec G304 -- path comes from globbing the user's transcript dir
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read transcript %s: %w", path, err)
		}
		transcripts = append(transcripts, Transcript{
			Name: filepath.Base(path),
			Text: strings.TrimSpace(string(data)),
		})
	}
	return transcripts, nil
}
