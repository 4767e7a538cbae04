package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-stylegen/internal/config"
	"github.com/alnah/go-stylegen/internal/grok"
)

// Environment variables carrying the API credentials and endpoint.
const (
	EnvAPIKey = "XAI_API_KEY"
	EnvAPIURL = "XAI_API_URL"
)

// Generation defaults matching the reference deployment.
const (
	defaultTranscriptsDir = "transcripts"
	defaultOutputDir      = "output"
	defaultMaxAttempts    = 3
	defaultRetryDelay     = 5 * time.Second
	defaultConcurrency    = 1
)

// generateOptions holds validated options for the generate command.
type generateOptions struct {
	transcriptsDir string
	outputDir      string
	model          string
	maxAttempts    int
	retryDelay     time.Duration
	concurrency    int
	seed           *int64
	jsonLogs       bool
	verbose        bool
}

// GenerateCmd creates the generate command (the full dataset pipeline).
// The env parameter provides injectable dependencies for testing.
func GenerateCmd(env *Env) *cobra.Command {
	var (
		transcriptsDir string
		outputDir      string
		model          string
		maxAttempts    int
		retryDelay     time.Duration
		concurrency    int
		seed           int64
		jsonLogs       bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate training and validation datasets from transcripts",
		Long: `Generate a supervised fine-tuning dataset from a directory of transcripts.

Each transcript's communication style is characterized by the xAI API, then
five social media posts on randomly sampled topics are synthesized in that
style and packaged as chat-format training examples. The accumulated pool is
shuffled and split 80/20 into training.jsonl and validation.jsonl.

Requires XAI_API_KEY in the environment (a .env file is honored).
XAI_API_URL overrides the API endpoint.`,
		Example: `  stylegen generate
  stylegen generate -t ./transcripts -o ./output
  stylegen generate --concurrency 4 --seed 42
  stylegen generate --model grok-2 --retry-delay 10s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions{
				transcriptsDir: transcriptsDir,
				outputDir:      outputDir,
				model:          model,
				maxAttempts:    maxAttempts,
				retryDelay:     retryDelay,
				concurrency:    concurrency,
				jsonLogs:       jsonLogs,
				verbose:        verbose,
			}
			if cmd.Flags().Changed("seed") {
				opts.seed = &seed
			}
			return runGenerate(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&transcriptsDir, "transcripts", "t", "", "Directory of *.txt transcripts (default: transcripts)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for the JSONL files (default: output)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Completion model (default: "+grok.DefaultModel+")")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", defaultMaxAttempts, "Attempts per API call before giving up")
	cmd.Flags().DurationVar(&retryDelay, "retry-delay", defaultRetryDelay, "Fixed delay between failed attempts")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", defaultConcurrency, "Transcripts processed in parallel")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Fix the random seed for reproducible topic sampling and shuffling")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "Emit log records as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// runGenerate executes the generate command with validated options.
func runGenerate(cmd *cobra.Command, env *Env, opts generateOptions) error {
	ctx := cmd.Context()

	// Credentials come from the process environment, never from flags.
	apiKey := env.Getenv(EnvAPIKey)
	if apiKey == "" {
		return ErrAPIKeyMissing
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	transcriptsDir := firstNonEmpty(opts.transcriptsDir, cfg.TranscriptsDir, defaultTranscriptsDir)
	outputDir := firstNonEmpty(opts.outputDir, cfg.OutputDir, defaultOutputDir)
	model := firstNonEmpty(opts.model, cfg.Model, grok.DefaultModel)

	if err := config.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}

	log := newLogger(env.Stderr, opts.jsonLogs, opts.verbose)

	runner, err := env.PipelineFactory.NewPipeline(PipelineOptions{
		APIKey:         apiKey,
		BaseURL:        env.Getenv(EnvAPIURL),
		Model:          model,
		MaxAttempts:    opts.maxAttempts,
		RetryDelay:     opts.retryDelay,
		TranscriptsDir: config.ExpandPath(transcriptsDir),
		OutputDir:      config.ExpandPath(outputDir),
		Concurrency:    opts.concurrency,
		Seed:           opts.seed,
		Log:            log,
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Done: %d training / %d validation examples from %d transcripts",
		result.Training, result.Validation, result.Transcripts)
	if result.Dropped > 0 {
		fmt.Fprintf(env.Stderr, " (%d dropped)", result.Dropped)
	}
	fmt.Fprintf(env.Stderr, " in %s\n", outputDir)
	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
