package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/equiv"
	"github.com/rshade/emimeter/internal/render"
)

// borderPadding accounts for the box borders when constraining width.
const borderPadding = 2

// topCategoryCount is how many categories the summary line calls out.
const topCategoryCount = 3

// RenderReportSummary renders a boxed, styled summary of a report:
// scenario totals, the savings delta, the largest baseline categories,
// and a real-world equivalency for the savings. The width parameter
// controls the total box width used for rendering.
func RenderReportSummary(rep *emissions.Report, width int) string {
	if rep == nil {
		return InfoStyle.Render("No report to display.")
	}

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("EMISSIONS SUMMARY"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Baseline:   "))
	content.WriteString(ValueStyle.Render(equiv.FormatTons(rep.BaselineTotal) + " CO2e"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Optimized:  "))
	content.WriteString(ValueStyle.Render(equiv.FormatTons(rep.OptimizedTotal) + " CO2e"))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Change:     "))
	content.WriteString(RenderTonsDelta(rep.OptimizedTotal - rep.BaselineTotal))
	if rep.SavingsPercent > 0 {
		content.WriteString(InfoStyle.Render(fmt.Sprintf("  (%.1f%% saved)", rep.SavingsPercent)))
	}
	content.WriteString("\n")

	// Largest baseline categories (sorted by tons desc).
	type catTons struct {
		category emissions.Category
		tons     float64
	}
	cats := make([]catTons, 0, len(rep.Baseline))
	for _, c := range emissions.Categories() {
		cats = append(cats, catTons{c, rep.Baseline[c]})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].tons > cats[j].tons
	})

	var parts []string
	for i := 0; i < topCategoryCount && i < len(cats); i++ {
		if cats[i].tons <= 0 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s: %s (%s)",
			cats[i].category.String(),
			equiv.FormatTons(cats[i].tons),
			render.FormatPercent(rep.Shares[cats[i].category])))
	}
	if len(parts) > 0 {
		content.WriteString(LabelStyle.Render(strings.Join(parts, "  ")))
	}

	// Real-world equivalency for the savings, when large enough to matter.
	if eq := equiv.FromTons(rep.Savings); !eq.IsEmpty {
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render(eq.DisplayText))
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}
