// Package cli provides the Cobra command structure for caret.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/caret/internal/config"
	"github.com/iw2rmb/caret/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions is shared by every subcommand. cfg is set by the root's
// PersistentPreRunE before any subcommand runs.
type rootOptions struct {
	debug      bool
	configPath string
	cfg        *config.Config
}

// NewRootCommand creates the root caret command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "caret",
		Short: "A rich-text editing core with a terminal editor and an LSP server",
		Long: `caret maps positions and ranges over styled text: rune offsets,
word and paragraph ranges, and edits that keep positions consistent.

The same core drives a terminal editor (caret edit), a Language Server that
answers selection-range and highlight queries (caret lsp), and a word
segmentation dump (caret words).`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg

			logging.SetLevel(cfg.LogLevel)
			if opts.debug {
				logging.SetLevel("debug")
			}
			logging.Default().Debug("config loaded", logging.FieldConfig, opts.configPath)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (YAML or TOML)")

	// Add subcommands.
	rootCmd.AddCommand(newEditCommand(opts))
	rootCmd.AddCommand(newLSPCommand(opts, info))
	rootCmd.AddCommand(newWordsCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
