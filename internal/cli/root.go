package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lmeyer/cascade/pkg/buildinfo"
)

// Execute runs the cascade CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (format,
// rules, preview, serve), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "cascade",
		Short:        "Cascade styles waterfall chart data with conditional formatting",
		Long:         `Cascade is a CLI tool and library for waterfall charts: it evaluates declarative formatting rules, thresholds, and color scales against chart data and emits styled records for renderers to paint.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newFormatCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
