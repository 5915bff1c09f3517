package controller

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/casegen/internal/model"
)

// SimpleUI implements UI using plain text on the command's writers. Tables
// go to stdout, the progress bar to stderr.
type SimpleUI struct {
	cmd *cobra.Command
	cfg StartConfig
	bar *progressbar.ProgressBar
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.cfg = newStartConfig(options)

	if s.cfg.mode == ModeGenerate && s.cfg.total > 0 {
		errOut := s.cmd.ErrOrStderr()
		s.bar = progressbar.NewOptions(s.cfg.total,
			progressbar.OptionSetWriter(errOut),
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(errOut)
			}),
		)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

// Wait returns immediately; plain output needs no user interaction.
func (s *SimpleUI) Wait() {}

// DisplayClassReport advances progress and prints the per-class line.
func (s *SimpleUI) DisplayClassReport(report m.ClassReport) {
	if s.bar != nil {
		_ = s.bar.Add(1)
	}

	if s.cfg.mode == ModeList || len(report.Cases) == 0 {
		return
	}

	s.printf("Processed %3d test(s) from %s\n", len(report.Cases), report.Class)
}

// DisplaySummary prints the run totals, or a per-class table in list mode.
func (s *SimpleUI) DisplaySummary(summary m.Summary, err error) error {
	if err != nil {
		s.printf("%s error: %v\n", s.cfg.mode, err)
		return err
	}

	if s.cfg.mode == ModeList {
		s.printCaseTable(summary)
		return nil
	}

	s.printf("\nDone. Classes with tests: %d, total test cases: %d\n", summary.Classes, summary.Cases)

	if summary.Skipped > 0 {
		s.printf("Skipped methods: %d\n", summary.Skipped)
	}

	s.printf("Output written under: %s\n", summary.Output)

	return nil
}

func (s *SimpleUI) printCaseTable(summary m.Summary) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "Cases", "Skipped", "Declarations", "Fallbacks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, report := range summary.Reports {
		if len(report.Cases) == 0 && len(report.Skipped) == 0 {
			continue
		}

		declarations, fallbacks := 0, 0
		for _, c := range report.Cases {
			declarations += c.Declarations()
			fallbacks += c.Fallbacks()
		}

		table.Append([]string{
			report.Class,
			strconv.Itoa(len(report.Cases)),
			strconv.Itoa(len(report.Skipped)),
			strconv.Itoa(declarations),
			strconv.Itoa(fallbacks),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Classes %d", summary.Classes),
		strconv.Itoa(summary.Cases),
		strconv.Itoa(summary.Skipped),
		strconv.Itoa(summary.Declarations),
		strconv.Itoa(summary.Fallbacks),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
}

// DisplayFindings prints syntax verification results.
func (s *SimpleUI) DisplayFindings(findings []m.SyntaxFinding, err error) error {
	if err != nil {
		s.printf("verification error: %v\n", err)
		return err
	}

	if len(findings) == 0 {
		s.printf("No syntax errors found.\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Column", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, f := range findings {
		table.Append([]string{string(f.Path), strconv.Itoa(f.Line), strconv.Itoa(f.Column), f.Message})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(findings)), "", "", ""})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayWatchEvent announces a regeneration triggered by changed files.
func (s *SimpleUI) DisplayWatchEvent(changed []m.Path) {
	s.printf("\nChange detected in %d file(s), regenerating\n", len(changed))

	for _, path := range changed {
		s.printf("  %s\n", path)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
