// Package cli defines the catering-api command tree: serve (the default)
// and migrate up|down|status.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. Running it without a subcommand
// starts the server.
func NewRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "catering-api",
		Short: "Catering facilities API server",
		Long: `catering-api serves the REST API for catering facilities, their
locations, employees and tags. Configuration comes from an optional YAML
file named by CONFIG_PATH and from environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd())
	return root
}

// Execute runs the command tree with ctx, which should be cancelled on
// SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger returns a JSON slog.Logger at the given level. Unknown levels
// fall back to info; config validation rejects them before this point.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
