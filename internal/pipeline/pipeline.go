// Package pipeline wires the full run together: load transcripts, analyze
// each one's style, synthesize topic posts into training examples, then
// shuffle, split, and persist the accumulated pool as JSONL datasets.
//
// Transcripts are processed by a bounded worker group; the dataset builder
// is the only serialization point and runs once over the complete pool.
// Any transcript failure aborts the run before output files are touched.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-stylegen/internal/dataset"
	"github.com/alnah/go-stylegen/internal/style"
	"github.com/alnah/go-stylegen/internal/transcript"
)

// ExampleGenerator turns one style analysis into training examples.
// *synth.Generator implements it.
type ExampleGenerator interface {
	Generate(ctx context.Context, analysis style.Analysis) ([]dataset.Example, error)
}

// Pipeline holds the collaborators of one dataset generation run.
type Pipeline struct {
	Source    transcript.Source
	Analyzer  style.Analyzer
	Generator ExampleGenerator
	Builder   *dataset.Builder
	OutputDir string

	// Concurrency bounds how many transcripts are processed at once.
	// Values below 1 mean sequential processing.
	Concurrency int

	Log *logrus.Logger
}

// Result summarizes a completed run.
type Result struct {
	Transcripts int
	Training    int
	Validation  int
	Dropped     int
}

// Run executes the pipeline. On any failure the run aborts without writing
// output files; pre-existing files from earlier runs are left untouched.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	log := p.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	run := log.WithField("run_id", uuid.NewString())

	transcripts, err := p.Source.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	run.WithField("transcripts", len(transcripts)).Info("loaded transcripts")

	limit := p.Concurrency
	if limit < 1 {
		limit = 1
	}

	var pool collector
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)

	for _, tr := range transcripts {
		tr := tr
		grp.Go(func() error {
			examples, err := p.processTranscript(gctx, tr)
			if err != nil {
				return fmt.Errorf("transcript %s: %w", tr.Name, err)
			}
			pool.add(examples)
			run.WithFields(logrus.Fields{
				"transcript": tr.Name,
				"examples":   len(examples),
			}).Info("generated examples")
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Result{}, err
	}
	// A cancellation that raced the last worker must still skip persistence.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	training, validation := p.Builder.Split(pool.drain())
	stats, err := dataset.WriteSplit(p.OutputDir, training, validation, log)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Transcripts: len(transcripts),
		Training:    stats.Training.Written,
		Validation:  stats.Validation.Written,
		Dropped:     stats.Dropped(),
	}

	run.WithFields(logrus.Fields{
		"training":   result.Training,
		"validation": result.Validation,
		"dropped":    result.Dropped,
	}).Info("datasets created")
	return result, nil
}

// processTranscript runs the two generation stages for one transcript.
func (p *Pipeline) processTranscript(ctx context.Context, tr transcript.Transcript) ([]dataset.Example, error) {
	analysis, err := p.Analyzer.Analyze(ctx, tr.Text)
	if err != nil {
		return nil, fmt.Errorf("style analysis: %w", err)
	}
	examples, err := p.Generator.Generate(ctx, analysis)
	if err != nil {
		return nil, err
	}
	return examples, nil
}
