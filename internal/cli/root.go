// Package cli implements the deptree command-line interface.
//
// This package provides commands for validating declared dependency
// relations, rendering validated trees, browsing them interactively, and
// serving the validation API over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Validate a manifest and report the result or the cycle
//   - render: Generate text, DOT, or SVG output for a validated tree
//   - stats: Show dependency/dependent rankings for a validated tree
//   - inspect: Browse a validated tree interactively
//   - serve: Run the HTTP validation API
//   - cache: Manage the SVG render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/buildinfo"
)

// Execute runs the deptree CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "deptree",
		Short:        "deptree validates declared dependency relations",
		Long:         `deptree builds a dependency graph from declared relations, proves it free of cycles, and renders the validated tree for inspection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
