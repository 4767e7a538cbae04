package cli

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-stylegen/internal/config"
	"github.com/alnah/go-stylegen/internal/dataset"
	"github.com/alnah/go-stylegen/internal/grok"
	"github.com/alnah/go-stylegen/internal/pipeline"
	"github.com/alnah/go-stylegen/internal/style"
	"github.com/alnah/go-stylegen/internal/synth"
	"github.com/alnah/go-stylegen/internal/transcript"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing commands in isolation.
//
// All fields have production defaults via DefaultEnv(). Tests override
// specific fields using the With* options or by creating a custom Env.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	ConfigLoader    ConfigLoader
	PipelineFactory PipelineFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// Runner executes one dataset generation run.
type Runner interface {
	Run(ctx context.Context) (pipeline.Result, error)
}

// PipelineOptions carries everything the factory needs to assemble a run.
type PipelineOptions struct {
	APIKey  string
	BaseURL string
	Model   string

	MaxAttempts int
	RetryDelay  time.Duration

	TranscriptsDir string
	OutputDir      string
	Concurrency    int

	// Seed makes topic sampling and dataset shuffling reproducible.
	// Nil means process-wide time-seeded randomness.
	Seed *int64

	Log *logrus.Logger
}

// PipelineFactory assembles pipelines from validated options.
type PipelineFactory interface {
	NewPipeline(opts PipelineOptions) (Runner, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithPipelineFactory sets the pipeline factory.
func WithPipelineFactory(f PipelineFactory) EnvOption {
	return func(e *Env) {
		e.PipelineFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		ConfigLoader:    &defaultConfigLoader{},
		PipelineFactory: &defaultPipelineFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultPipelineFactory assembles the production pipeline around a grok client.
type defaultPipelineFactory struct{}

func (defaultPipelineFactory) NewPipeline(opts PipelineOptions) (Runner, error) {
	client, err := grok.NewClient(opts.APIKey, opts.BaseURL,
		grok.WithModel(opts.Model),
		grok.WithMaxAttempts(opts.MaxAttempts),
		grok.WithRetryDelay(opts.RetryDelay),
		grok.WithLogger(opts.Log),
	)
	if err != nil {
		return nil, err
	}

	// A fixed seed derives two independent streams so that topic sampling
	// and dataset shuffling are each reproducible on their own.
	var topicRng, shuffleRng *rand.Rand
	if opts.Seed != nil {
		topicRng = rand.New(rand.NewSource(*opts.Seed))
		shuffleRng = rand.New(rand.NewSource(*opts.Seed + 1))
	}

	return &pipeline.Pipeline{
		Source:      transcript.DirSource{Dir: opts.TranscriptsDir},
		Analyzer:    style.NewGrokAnalyzer(client),
		Generator:   synth.NewGenerator(synth.NewGrokSynthesizer(client), topicRng),
		Builder:     dataset.NewBuilder(shuffleRng),
		OutputDir:   opts.OutputDir,
		Concurrency: opts.Concurrency,
		Log:         opts.Log,
	}, nil
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ PipelineFactory = (*defaultPipelineFactory)(nil)
)
