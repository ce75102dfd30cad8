package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lmeyer/cascade/pkg/chart"
	"github.com/lmeyer/cascade/pkg/format"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// rulesModel - Interactive rule toggling
// =============================================================================

// rulesModel is the bubbletea model for toggling a chart's rules on and
// off and watching match counts update. Changes live on the attached
// engine only; the chart file on disk is untouched.
type rulesModel struct {
	chart  *chart.Chart
	rules  []format.Rule
	counts []int
	cursor int
	dirty  bool
}

func newRulesModel(c *chart.Chart) rulesModel {
	m := rulesModel{chart: c}
	m.refresh()
	return m
}

// refresh re-reads rule state from the engine and recomputes match counts
// with a fresh formatting pass.
func (m *rulesModel) refresh() {
	m.rules = m.chart.Engine().Rules()
	formatted := m.chart.Format()
	m.counts = make([]int, len(m.rules))
	for i, r := range m.rules {
		m.counts[i] = countRuleMatches(formatted, r.ID)
	}
}

func (m rulesModel) Init() tea.Cmd {
	return nil
}

func (m rulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rules)-1 {
				m.cursor++
			}
		case " ", "enter":
			if len(m.rules) == 0 {
				return m, nil
			}
			r := m.rules[m.cursor]
			r.Disabled = !r.Disabled
			// Re-adding under the same ID replaces the stored rule in
			// place, keeping its position.
			m.chart.AddRule(r)
			m.dirty = true
			m.refresh()
		}
	}
	return m, nil
}

func (m rulesModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Toggle Rules"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  q quit"))
	b.WriteString("\n\n")

	if len(m.rules) == 0 {
		b.WriteString(listDimStyle.Render("  no rules defined"))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range m.rules {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		check := "[x]"
		if r.Disabled {
			check = "[ ]"
		}

		line := fmt.Sprintf("%s%s %-20s %-16s %s", cursor, check, r.ID,
			describeCondition(r.Condition),
			listDimStyle.Render(fmt.Sprintf("matches %d item(s)", m.counts[i])))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.Disabled:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rules))))
	b.WriteString("\n")

	return b.String()
}
