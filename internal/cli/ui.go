package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success / gains
	colorRed    = lipgloss.Color("167") // Soft red - errors / losses
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleGain for positive deltas.
	StyleGain = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleLoss for negative deltas.
	StyleLoss = lipgloss.NewStyle().Foreground(colorRed)

	// StyleHeader for table headers.
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

// swatch renders a small colored block for a hex color. Empty colors
// render as a dim placeholder so table columns stay aligned.
func swatch(hex string) string {
	if hex == "" {
		return StyleDim.Render("··")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}

// formatAmount renders a signed value with gain/loss coloring.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%+.2f", v)
	switch {
	case v > 0:
		return StyleGain.Render(s)
	case v < 0:
		return StyleLoss.Render(s)
	default:
		return StyleValue.Render(s)
	}
}
