package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/chart"
	"github.com/abhisek/agriscan/internal/ui/theme"
)

// BarChart draws a chart.Spec as horizontal bars, one row per bar.
type BarChart struct {
	Spec  chart.Spec
	Width int
}

// NewBarChart creates a bar chart that fits within width columns.
func NewBarChart(spec chart.Spec, width int) BarChart {
	return BarChart{Spec: spec, Width: width}
}

// valueWidth is the room taken by the value label, e.g. "  0.92".
const valueWidth = 6

// barWidth returns the number of cells available for the bars.
func (c BarChart) barWidth(labelWidth int) int {
	w := c.Width - labelWidth - 2 - valueWidth
	if w < 10 {
		w = 10
	}
	return w
}

// fill returns how many of width cells a value covers on the chart axis.
func (c BarChart) fill(v float64, width int) int {
	span := c.Spec.AxisMax - c.Spec.AxisMin
	if span <= 0 {
		return 0
	}
	frac := (v - c.Spec.AxisMin) / span
	n := int(frac*float64(width) + 0.5)
	if n > width {
		n = width
	}
	if n < 0 {
		n = 0
	}
	return n
}

// View renders the chart.
func (c BarChart) View() string {
	if len(c.Spec.Bars) == 0 {
		return ""
	}

	labelWidth := 0
	for _, bar := range c.Spec.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
	}
	width := c.barWidth(labelWidth)

	var b strings.Builder
	if c.Spec.Title != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Spec.Title))
		b.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(labelWidth).Align(lipgloss.Right)
	valueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	for _, bar := range c.Spec.Bars {
		filled := c.fill(bar.Value, width)

		b.WriteString(labelStyle.Render(bar.Label))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(bar.Color)).
			Render(strings.Repeat(" ", filled)))
		b.WriteString(theme.BarEmpty.Render(strings.Repeat(" ", width-filled)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %.2f", bar.Value)))
		b.WriteString("\n")
	}

	// Axis ticks under the bars.
	lo := fmt.Sprintf("%.1f", c.Spec.AxisMin)
	hi := fmt.Sprintf("%.1f", c.Spec.AxisMax)
	gap := max(width-len(lo)-len(hi), 1)
	axis := strings.Repeat(" ", labelWidth+2) + lo + strings.Repeat(" ", gap) + hi
	b.WriteString(valueStyle.Render(axis))

	if c.Spec.XLabel != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", labelWidth+2))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(c.Spec.XLabel)))
	}

	return b.String()
}
