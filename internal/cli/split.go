package cli

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/alnah/go-stylegen/internal/config"
	"github.com/alnah/go-stylegen/internal/dataset"
)

// SplitCmd creates the split command (re-partition an existing example pool).
// The env parameter provides injectable dependencies for testing.
func SplitCmd(env *Env) *cobra.Command {
	var (
		outputDir string
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "split <pool.jsonl>",
		Short: "Shuffle and split an example pool into training and validation sets",
		Long: `Shuffle an existing JSONL example pool and split it 80/20 into
training.jsonl and validation.jsonl. Examples are validated on the way out;
invalid ones are dropped and counted, never written.

Useful for re-partitioning a previously generated pool without spending API
calls on regeneration.`,
		Example: `  stylegen split pool.jsonl -o output
  stylegen split pool.jsonl --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewSource(seed))
			}
			return runSplit(env, args[0], outputDir, rng)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for the JSONL files (default: output)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Fix the random seed for a reproducible shuffle")

	return cmd
}

// runSplit handles the split command.
func runSplit(env *Env, path, outputDir string, rng *rand.Rand) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}
	outputDir = config.ExpandPath(firstNonEmpty(outputDir, cfg.OutputDir, defaultOutputDir))

	pool, skipped, err := dataset.ReadJSONL(path)
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(env.Stderr, "Warning: %d unparseable lines skipped\n", skipped)
	}

	training, validation := dataset.NewBuilder(rng).Split(pool)
	stats, err := dataset.WriteSplit(outputDir, training, validation, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Split %d examples: %d training, %d validation",
		stats.Training.Written+stats.Validation.Written, stats.Training.Written, stats.Validation.Written)
	if dropped := stats.Dropped() + skipped; dropped > 0 {
		fmt.Fprintf(env.Stdout, " (%d dropped)", dropped)
	}
	fmt.Fprintf(env.Stdout, "\n")
	return nil
}
