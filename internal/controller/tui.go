package controller

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/casegen/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// TUI implements UI with lipgloss styling. List mode runs an interactive
// Bubble Tea browser over the extracted cases.
type TUI struct {
	output io.Writer
	input  io.Reader

	mu      sync.Mutex
	cfg     StartConfig
	program *tea.Program
	done    chan struct{}
	started bool
}

// NewTUI creates a new TUI reading keys from stdin.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, input: os.Stdin}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cfg = newStartConfig(options)

	return nil
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input))
	t.done = make(chan struct{})
	t.started = true

	program, done := t.program, t.done

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// Wait blocks until the interactive program, if any, exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close stops the interactive program, if any.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program = nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// DisplayClassReport prints one styled line per class with cases.
func (t *TUI) DisplayClassReport(report m.ClassReport) {
	if t.mode() == ModeList || len(report.Cases) == 0 {
		return
	}

	t.println(fmt.Sprintf("%s %s",
		accentStyle.Render(fmt.Sprintf("%3d", len(report.Cases))),
		report.Class,
	))
}

// DisplaySummary prints the run totals. In list mode it opens the case
// browser; call Wait to block until the user quits.
func (t *TUI) DisplaySummary(summary m.Summary, err error) error {
	if err != nil {
		t.println(errorStyle.Render(fmt.Sprintf("%s error: %v", t.mode(), err)))
		return err
	}

	if t.mode() == ModeList {
		return t.startWithModel(newCasesModel(summary))
	}

	t.println(titleStyle.Render("Done.") + " " + summaryLine(summary))
	t.println(mutedStyle.Render("Output written under: " + string(summary.Output)))

	return nil
}

// DisplayFindings prints syntax verification results.
func (t *TUI) DisplayFindings(findings []m.SyntaxFinding, err error) error {
	if err != nil {
		t.println(errorStyle.Render(fmt.Sprintf("verification error: %v", err)))
		return err
	}

	if len(findings) == 0 {
		t.println(accentStyle.Render("No syntax errors found."))
		return nil
	}

	for _, f := range findings {
		t.println(fmt.Sprintf("%s %s %s",
			warningStyle.Render("!"),
			fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column),
			mutedStyle.Render(f.Message),
		))
	}

	t.println(warningStyle.Render(fmt.Sprintf("%d file(s) with syntax errors", len(findings))))

	return nil
}

// DisplayWatchEvent announces a regeneration triggered by changed files.
func (t *TUI) DisplayWatchEvent(changed []m.Path) {
	names := make([]string, 0, len(changed))
	for _, path := range changed {
		names = append(names, string(path))
	}

	t.println(titleStyle.Render("↻ regenerating") + " " + mutedStyle.Render(strings.Join(names, ", ")))
}

func (t *TUI) mode() StartMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cfg.mode
}

func (t *TUI) println(line string) {
	_, _ = fmt.Fprintln(t.output, line)
}

func summaryLine(summary m.Summary) string {
	return fmt.Sprintf("Classes: %s   Cases: %s   Skipped: %s   Declarations: %s   Fallbacks: %s",
		accentStyle.Render(fmt.Sprintf("%d", summary.Classes)),
		accentStyle.Render(fmt.Sprintf("%d", summary.Cases)),
		accentStyle.Render(fmt.Sprintf("%d", summary.Skipped)),
		accentStyle.Render(fmt.Sprintf("%d", summary.Declarations)),
		accentStyle.Render(fmt.Sprintf("%d", summary.Fallbacks)),
	)
}
