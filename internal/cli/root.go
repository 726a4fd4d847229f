// Package cli implements the sagascape command-line interface.
//
// Commands:
//   - render: direct the scenes (or load a script) and encode the video
//   - script: direct the scenes and store the YAML script
//   - preview: render PNG stills, optionally re-rendering on content changes
//   - catalog: print the catalog summary and descriptions
//
// All commands accept --verbose (-v) for debug logging and --config for a
// YAML or TOML settings file.
package cli

import (
	"context"
	"errors"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/apperr"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the build information shown by --version. Values are
// injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// ExitCode maps a command error to the process exit status: 130 for an
// interrupt, 2 for bad input or configuration, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	switch apperr.GetCode(err) {
	case apperr.CodeInvalidConfig, apperr.CodeInvalidArgument, apperr.CodeValidationFailure:
		return 2
	default:
		return 1
	}
}

// Execute runs the CLI until the command returns or ctx is cancelled.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	opts := &options{}

	root := &cobra.Command{
		Use:          "sagascape",
		Short:        "SagaScape renders the scripted SagaScape presentation to video",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sagascape %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	opts.bind(root)

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newScriptCmd(opts))
	root.AddCommand(newPreviewCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	return root
}
