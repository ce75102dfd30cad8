package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lmeyer/cascade/pkg/chartfile"
	"github.com/lmeyer/cascade/pkg/format"
)

// newRulesCmd creates the rules command: lists a chart file's formatting
// rules and thresholds with per-item match counts, or opens an interactive
// toggle view with --interactive.
func newRulesCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "rules [chart.toml]",
		Short: "Inspect formatting rules and thresholds for a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd.Context(), args[0], interactive)
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "toggle rules interactively")
	return cmd
}

func runRules(ctx context.Context, path string, interactive bool) error {
	doc, err := chartfile.Load(path)
	if err != nil {
		return err
	}
	c := doc.Build()

	if interactive {
		m := newRulesModel(c)
		p := tea.NewProgram(m)
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("interactive rules view: %w", err)
		}
		if fm, ok := final.(rulesModel); ok && fm.dirty {
			logger := loggerFromContext(ctx)
			logger.Info("rule states changed for this session only; edit the chart file to persist",
				"chart", path)
		}
		return nil
	}

	formatted := c.Format()

	rules := c.Engine().Rules()
	thresholds := c.Engine().Thresholds()
	if len(rules) == 0 && len(thresholds) == 0 {
		fmt.Println(StyleDim.Render("no rules or thresholds defined"))
		return nil
	}

	var b strings.Builder
	if len(rules) > 0 {
		b.WriteString(StyleHeader.Render("Rules"))
		b.WriteString("\n")
		for _, r := range rules {
			b.WriteString(renderRuleLine(r, countRuleMatches(formatted, r.ID)))
			b.WriteString("\n")
		}
	}
	if len(thresholds) > 0 {
		if len(rules) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleHeader.Render("Thresholds"))
		b.WriteString("\n")
		for _, t := range thresholds {
			b.WriteString(renderThresholdLine(t, countThresholdMatches(formatted, t.ID)))
			b.WriteString("\n")
		}
	}
	fmt.Print(b.String())
	return nil
}

func renderRuleLine(r format.Rule, matches int) string {
	state := StyleGain.Render("enabled ")
	if r.Disabled {
		state = StyleDim.Render("disabled")
	}
	cond := describeCondition(r.Condition)
	return fmt.Sprintf("  %s  %-20s %-16s priority=%-3d %s",
		state, StyleValue.Render(r.ID), cond, r.Priority,
		StyleDim.Render(fmt.Sprintf("matches %d item(s)", matches)))
}

func renderThresholdLine(t format.Threshold, matches int) string {
	op := t.Op
	if op == "" {
		op = ">="
	}
	return fmt.Sprintf("  %-20s %-16s %s",
		StyleValue.Render(t.ID),
		fmt.Sprintf("value %s %v", op, t.Value),
		StyleDim.Render(fmt.Sprintf("matches %d item(s)", matches)))
}

// describeCondition renders a condition for display. Custom predicates have
// no literal form, so they show as a placeholder.
func describeCondition(c format.Condition) string {
	if c.Custom != nil {
		return "custom()"
	}
	return fmt.Sprintf("value %s %v", c.Op, c.Value)
}

func countRuleMatches(formatted []format.FormattedItem, id string) int {
	n := 0
	for _, f := range formatted {
		for _, r := range f.AppliedRules {
			if r.ID == id {
				n++
			}
		}
	}
	return n
}

func countThresholdMatches(formatted []format.FormattedItem, id string) int {
	n := 0
	for _, f := range formatted {
		for _, t := range f.ThresholdStyles {
			if t.ID == id {
				n++
			}
		}
	}
	return n
}
