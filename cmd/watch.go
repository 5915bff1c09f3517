package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/casegen/internal/domain"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the dataset whenever a test class changes",
		Long: `Watch generates the dataset once, then watches the tests directory and
regenerates it after test classes change. Bursts of changes are coalesced
until the debounce interval passes quietly. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			return workflow.Watch(ctx, domain.WatchArgs{
				GenerateArgs: generateArgs(cmd),
				Debounce:     settings.Watch.Debounce,
			})
		},
	}

	addGenerateFlags(cmd)
	cmd.Flags().Duration("debounce", 0, "quiet period before regenerating (default from config)")

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
