package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/casegen/internal/domain"
	m "github.com/mouse-blink/casegen/internal/model"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract test cases and write the dataset",
		Long: `Generate reads every test class in the tests directory (not recursively, in
file name order), extracts each @Test method's v1/v2 snippets and @Client
companion, and writes the client, v1 and v2 trees plus manifest.yaml under
the output directory. Existing files are overwritten.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addGenerateFlags(cmd)

	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tests", "t", "", "directory holding the test classes")
	cmd.Flags().StringP("output", "o", "", "dataset output directory")
	cmd.Flags().Bool("verify", false, "parse the generated v1/v2 files afterwards")
	cmd.Flags().Bool("strict", false, "fail when verification finds syntax errors")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	_, err := workflow.Generate(ctx, generateArgs(cmd))

	return err
}

func generateArgs(cmd *cobra.Command) domain.GenerateArgs {
	verify, _ := cmd.Flags().GetBool("verify")

	return domain.GenerateArgs{
		ListArgs: listArgs(),
		Output:   m.Path(settings.Output),
		Verify:   verify,
		Workers:  settings.Verify.Workers,
		Strict:   settings.Verify.Strict,
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
