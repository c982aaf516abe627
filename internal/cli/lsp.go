package cli

import (
	"github.com/spf13/cobra"

	"github.com/iw2rmb/caret/internal/logging"
	"github.com/iw2rmb/caret/lsp"
)

func newLSPCommand(opts *rootOptions, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long: `Run a Language Server Protocol server on stdin/stdout.

The server keeps every open document in a buffer, applies incremental
changes, and answers textDocument/selectionRange (word, paragraph, whole
document) and textDocument/documentHighlight (every occurrence of the word
under the cursor). Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.FromContext(cmd.Context())
			srv := lsp.NewServer(lsp.Options{
				Version: info.Version,
				Buffer:  opts.cfg.BufferOptions(),
				Logger:  logger,
				Debug:   opts.debug,
			})
			logger.Debug("starting language server", logging.FieldVersion, info.Version)
			return srv.RunStdio()
		},
	}

	return cmd
}
