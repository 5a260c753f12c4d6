package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/equiv"
	"github.com/rshade/emimeter/internal/render"
)

// Chart layout constants.
const (
	chartLabelWidth = 18
	minBarWidth     = 10
	maxBarWidth     = 40
	// tonsRoundFactor rounds deltas to two decimals before choosing a
	// direction icon, so floating-point noise never flips the arrow.
	tonsRoundFactor = 100
)

// RenderTonsDelta renders a styled emissions delta with sign and
// directional arrow. Increases are warning-colored, reductions OK-colored.
func RenderTonsDelta(delta float64) string {
	rounded := math.Round(delta*tonsRoundFactor) / tonsRoundFactor

	var icon string
	var color lipgloss.Color
	switch {
	case rounded > 0:
		icon = IconArrowUp
		color = ColorWarning
	case rounded < 0:
		icon = IconArrowDown
		color = ColorOK
	default:
		icon = IconArrowRight
		color = ColorMuted
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s t %s", render.FormatDeltaTons(rounded), icon))
}

// renderBar renders a horizontal bar filled proportionally to frac in [0,1].
func renderBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// chartBarWidth fits the bar into the available width, bounded so bars
// stay readable on both narrow and very wide terminals.
func chartBarWidth(width int) int {
	bar := width - chartLabelWidth - 24
	if bar < minBarWidth {
		return minBarWidth
	}
	if bar > maxBarWidth {
		return maxBarWidth
	}
	return bar
}

// RenderShareChart renders one bar per category showing its share of the
// baseline total alongside the baseline tons.
func RenderShareChart(rep *emissions.Report, width int) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("BASELINE SHARE BY CATEGORY"))
	sb.WriteString("\n")

	barWidth := chartBarWidth(width)
	barStyle := lipgloss.NewStyle().Foreground(ColorBaseline)

	for _, c := range emissions.Categories() {
		share := rep.Shares[c]
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", chartLabelWidth, c.String())))
		sb.WriteString(barStyle.Render(renderBar(share, barWidth)))
		sb.WriteString(fmt.Sprintf(" %6s  %s t\n",
			render.FormatPercent(share), equiv.FormatFloat(rep.Baseline[c], 2)))
	}

	return sb.String()
}

// RenderComparisonChart renders the baseline and optimized totals as two
// bars on a common scale, followed by the styled savings delta.
func RenderComparisonChart(rep *emissions.Report, width int) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("BASELINE VS OPTIMIZED"))
	sb.WriteString("\n")

	barWidth := chartBarWidth(width)
	scale := rep.BaselineTotal
	if rep.OptimizedTotal > scale {
		scale = rep.OptimizedTotal
	}

	baselineFrac := 0.0
	optimizedFrac := 0.0
	if scale > 0 {
		baselineFrac = rep.BaselineTotal / scale
		optimizedFrac = rep.OptimizedTotal / scale
	}

	baselineStyle := lipgloss.NewStyle().Foreground(ColorBaseline)
	optimizedStyle := lipgloss.NewStyle().Foreground(ColorOptimized)

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", chartLabelWidth, "Baseline")))
	sb.WriteString(baselineStyle.Render(renderBar(baselineFrac, barWidth)))
	sb.WriteString(fmt.Sprintf(" %s t\n", equiv.FormatFloat(rep.BaselineTotal, 2)))

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", chartLabelWidth, "Optimized")))
	sb.WriteString(optimizedStyle.Render(renderBar(optimizedFrac, barWidth)))
	sb.WriteString(fmt.Sprintf(" %s t\n", equiv.FormatFloat(rep.OptimizedTotal, 2)))

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", chartLabelWidth, "Change")))
	sb.WriteString(RenderTonsDelta(rep.OptimizedTotal - rep.BaselineTotal))
	if rep.SavingsPercent > 0 {
		sb.WriteString(InfoStyle.Render(fmt.Sprintf("  (%.1f%% saved)", rep.SavingsPercent)))
	}
	sb.WriteString("\n")

	return sb.String()
}
