package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the test cases that would be generated",
		Long: `List performs a dry run: it extracts every test case but writes nothing, then
shows per class how many cases, skipped methods, declaration files and
fallback snippets a generation would produce. On a terminal the cases can be
browsed interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			_, err := workflow.List(ctx, listArgs())

			return err
		},
	}
	cmd.Flags().StringP("tests", "t", "", "directory holding the test classes")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
