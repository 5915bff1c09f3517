package cmd

import (
	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that the generated v1/v2 files parse as Java",
		Long: `Verify parses every .java file of the v1 and v2 trees of an existing dataset
and reports the files containing syntax errors. Findings are warnings unless
--strict is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			_, err := workflow.Verify(ctx, verifyArgs())

			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "dataset directory to verify")
	cmd.Flags().Bool("strict", false, "fail when syntax errors are found")
	cmd.Flags().IntP("workers", "w", 0, "number of files parsed in parallel (default from config)")

	return cmd
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
