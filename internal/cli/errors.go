package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates XAI_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("XAI_API_KEY environment variable not set")

	// ErrDatasetInvalid indicates a dataset file contains malformed examples.
	ErrDatasetInvalid = errors.New("dataset contains invalid examples")
)
