package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/casegen/internal/model"
)

// caseItem is one row of the case browser.
type caseItem struct {
	class  string
	report m.CaseReport
}

func (c caseItem) FilterValue() string {
	return c.class + "." + c.report.Method
}

type caseDelegate struct{}

func (d caseDelegate) Height() int  { return 1 }
func (d caseDelegate) Spacing() int { return 0 }
func (d caseDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d caseDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	c, ok := item.(caseItem)
	if !ok {
		return
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(14)

	if index == lm.Index() {
		nameStyle = nameStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	counts := fmt.Sprintf("v1 %s  v2 %s", typeCount(c.report.V1Types), typeCount(c.report.V2Types))

	client := " "
	if c.report.HasClient {
		client = "C"
	}

	width := lm.Width() - 18
	line := fmt.Sprintf("%s %s  %s",
		countStyle.Render(counts),
		client,
		nameStyle.Render(truncateToWidth(c.class+"."+c.report.Method, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func typeCount(types []string) string {
	if len(types) == 0 {
		return "fb"
	}

	return fmt.Sprintf("%2d", len(types))
}

// casesModel browses the cases a dry run would write.
type casesModel struct {
	width   int
	height  int
	cases   list.Model
	summary m.Summary
}

func newCasesModel(summary m.Summary) casesModel {
	var items []list.Item

	for _, report := range summary.Reports {
		for _, c := range report.Cases {
			items = append(items, caseItem{class: report.Class, report: c})
		}
	}

	cases := list.New(items, caseDelegate{}, 80, 20)
	cases.SetShowPagination(false)
	cases.SetShowFilter(true)
	cases.SetShowHelp(false)
	cases.SetShowTitle(false)
	cases.SetShowStatusBar(false)
	cases.FilterInput.Placeholder = "Filter by class or method…"

	return casesModel{cases: cases, summary: summary, width: 80, height: 24}
}

func (cm casesModel) Init() tea.Cmd {
	return nil
}

func (cm casesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height
		cm.cases.SetSize(max(cm.width-4, 10), max(cm.height-6, 5))

		return cm, nil

	case tea.KeyMsg:
		if cm.cases.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return cm, tea.Quit
			}
		}
	}

	var cmd tea.Cmd

	cm.cases, cmd = cm.cases.Update(msg)

	return cm, cmd
}

func (cm casesModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Padding(1, 0, 0, 2).Render("casegen dataset preview"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Padding(0, 0, 1, 2).Render(summaryLine(cm.summary)))
	b.WriteString("\n")

	if len(cm.cases.Items()) == 0 {
		b.WriteString(mutedStyle.Padding(0, 0, 0, 2).Render("No test cases found."))
	} else {
		b.WriteString(lipgloss.NewStyle().Margin(0, 2).Render(cm.cases.View()))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Width(cm.width).Align(lipgloss.Center).Render("↑/k up • ↓/j down • / filter • q quit"))

	return b.String()
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
