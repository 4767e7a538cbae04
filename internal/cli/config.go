package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alnah/go-stylegen/internal/config"
)

// validConfigKeys lists all supported configuration keys.
var validConfigKeys = []string{
	config.KeyOutputDir,
	config.KeyTranscriptsDir,
	config.KeyModel,
}

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/stylegen/config.
Settings can also be overridden via environment variables.

Supported settings:
  output-dir       Default directory for dataset files (env: STYLEGEN_OUTPUT_DIR)
  transcripts-dir  Default directory of transcripts (env: STYLEGEN_TRANSCRIPTS_DIR)
  model            Default completion model (env: STYLEGEN_MODEL)`,
		Example: `  stylegen config set output-dir ~/datasets
  stylegen config get model
  stylegen config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  stylegen config set output-dir ~/datasets
  stylegen config set model grok-2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Example: `  stylegen config get output-dir`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all configuration values",
		Example: `  stylegen config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	switch key {
	case config.KeyOutputDir, config.KeyTranscriptsDir:
		expanded := config.ExpandPath(value)
		if err := config.EnsureDir(expanded); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		value = expanded
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	// Environment variable fallback, mirroring config.Load precedence.
	if value == "" {
		switch key {
		case config.KeyOutputDir:
			value = env.Getenv(config.EnvOutputDir)
		case config.KeyTranscriptsDir:
			value = env.Getenv(config.EnvTranscriptsDir)
		case config.KeyModel:
			value = env.Getenv(config.EnvModel)
		}
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	values, err := config.List()
	if err != nil {
		return err
	}

	for _, key := range validConfigKeys {
		if value, ok := values[key]; ok {
			fmt.Fprintf(env.Stdout, "%s = %s\n", key, value)
		}
	}
	return nil
}

// isValidConfigKey reports whether key is a supported configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(validConfigKeys, key)
}
