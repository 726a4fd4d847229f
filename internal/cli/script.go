package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/sagascape/internal/director"
)

func newScriptCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Direct the presentation and store the recorded script as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			script, err := directScenes(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if out == "" {
				out = director.GenerateScriptPath(director.ScriptsDir)
			}
			if err := director.WriteScript(script, out); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Script saved", "path", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "script path (default: output/scripts/script_<timestamp>.yaml)")
	return cmd
}
