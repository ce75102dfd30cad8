package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lmeyer/cascade/pkg/chartfile"
	"github.com/lmeyer/cascade/pkg/format"
)

// newPreviewCmd creates the preview command: a terminal table of the
// formatted items with their computed colors and merged styles. It is a
// quick way to eyeball a chart file's formatting config without wiring up
// a renderer.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [chart.toml]",
		Short: "Preview formatted chart items in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0])
		},
	}
}

func runPreview(ctx context.Context, path string) error {
	doc, err := chartfile.Load(path)
	if err != nil {
		return err
	}
	c := doc.Build()
	formatted := c.Format()
	bars := c.Series()

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(StyleTitle.Render(c.Title))
		b.WriteString("\n\n")
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "Item", "Value", "Total", "Rules", "Style")

	for i, f := range formatted {
		label := f.Label
		if label == "" {
			label = fmt.Sprintf("item %d", i)
		}
		tbl.Row(
			swatch(f.ComputedColor),
			StyleValue.Render(label),
			formatAmount(f.Amount()),
			StyleDim.Render(fmt.Sprintf("%.2f", bars[i].End)),
			StyleDim.Render(matchSummary(f)),
			styleSummary(f.ConditionalStyle),
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")

	fmt.Println(b.String())

	logger := loggerFromContext(ctx)
	logger.Debug("previewed chart", "items", len(formatted))
	return nil
}

// matchSummary lists matched rule and threshold IDs for one item.
func matchSummary(f format.FormattedItem) string {
	var ids []string
	for _, r := range f.AppliedRules {
		ids = append(ids, r.ID)
	}
	for _, t := range f.ThresholdStyles {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 {
		return "—"
	}
	return strings.Join(ids, ", ")
}

// styleSummary renders a merged style as sorted key=value pairs, so
// output is stable across runs.
func styleSummary(s format.Style) string {
	if len(s) == 0 {
		return StyleDim.Render("—")
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, s[k])
	}
	return StyleValue.Render(strings.Join(parts, " "))
}
