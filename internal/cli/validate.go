package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alnah/go-stylegen/internal/dataset"
)

// ValidateCmd creates the validate command (check an existing JSONL dataset).
// The env parameter provides injectable dependencies for testing.
func ValidateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset.jsonl>",
		Short: "Check a JSONL dataset for malformed examples",
		Long: `Check every line of a JSONL dataset against the training example shape:
exactly three messages with roles system, user, assistant, each carrying a
content field. Reports the valid and invalid counts; exits non-zero when any
example is invalid.`,
		Example: `  stylegen validate output/training.jsonl
  stylegen validate output/validation.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(env, args[0])
		},
	}
}

// runValidate handles the validate command.
func runValidate(env *Env, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	examples, skipped, err := dataset.ReadJSONL(path)
	if err != nil {
		return err
	}

	valid := 0
	invalid := skipped
	for _, ex := range examples {
		if dataset.Validate(ex) {
			valid++
		} else {
			invalid++
		}
	}

	fmt.Fprintf(env.Stdout, "%s: %d valid, %d invalid\n", path, valid, invalid)
	if invalid > 0 {
		return fmt.Errorf("%s: %d of %d examples: %w", path, invalid, valid+invalid, ErrDatasetInvalid)
	}
	return nil
}
