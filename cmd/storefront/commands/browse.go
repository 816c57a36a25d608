package commands

import (
	"github.com/spf13/cobra"

	"github.com/Viskhan-95/golden-chicken/internal/app"
)

func (c *CLI) newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [fragment]",
		Short: "Open the storefront, optionally at a route such as #cart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")
			script, _ := cmd.Flags().GetString("script")
			trace, _ := cmd.Flags().GetString("trace")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			var start string
			if len(args) == 1 {
				start = args[0]
			}

			return c.app.Browse(cmd.Context(), app.BrowseOptions{
				ConfigPath: configPath,
				OutputMode: outputMode,
				Script:     script,
				Start:      start,
				TracePath:  trace,
			})
		},
	}
	cmd.Flags().StringP("output-mode", "o", "", "Output mode: auto, tui, or linear (default from config)")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().StringP("script", "s", "", "Run commands from a file, or - for stdin, instead of the prompt")
	cmd.Flags().String("trace", "", "Write finished spans as JSON to this file")
	return cmd
}
