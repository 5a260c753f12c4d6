// Package render writes emission reports as plain terminal tables and
// structured JSON. Styled interactive views live in the tui package.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/equiv"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrNilReport is returned when a renderer is handed a nil report.
var ErrNilReport = constError("render: nil report")

// tabwriterPadding is the minimum padding between columns in the report table.
const tabwriterPadding = 2

// tonsPrecision is the number of decimals shown for emission values.
const tonsPrecision = 2

// paramLabelWidth is the width of the label column in the assumptions block.
const paramLabelWidth = 30

// FormatDeltaTons formats an emissions delta with a +/- prefix.
// Negative deltas are reductions relative to the baseline.
func FormatDeltaTons(delta float64) string {
	if delta == 0 {
		return "0.00"
	}
	abs := delta
	sign := "+"
	if delta < 0 {
		abs = -delta
		sign = "-"
	}
	return sign + equiv.FormatFloat(abs, tonsPrecision)
}

// FormatPercent formats a fraction in [0,1] as a percentage with one decimal.
func FormatPercent(frac float64) string {
	return fmt.Sprintf("%.1f%%", frac*100)
}

// formatTons formats an emissions value in tons with thousands separators.
func formatTons(v float64) string {
	return equiv.FormatFloat(v, tonsPrecision)
}

// formatActivity formats the activity amount behind a category, e.g.
// "250,000 km" or "2,000 h".
func formatActivity(in emissions.ActivityInputs, c emissions.Category) string {
	amount, unit := in.Activity(c)
	return equiv.FormatFloat(amount, 0) + " " + unit
}

// RenderReportAsTable writes the per-category emissions table followed by
// totals, savings, and the assumptions the optimized scenario ran with.
func RenderReportAsTable(w io.Writer, rep *emissions.Report) error {
	if rep == nil {
		return ErrNilReport
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	// Header
	if _, err := fmt.Fprintf(tw, "CATEGORY\tACTIVITY\tBASELINE (t)\tOPTIMIZED (t)\tDELTA (t)\tSHARE\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t--------\t------------\t-------------\t---------\t-----\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	// Rows, in fixed category order
	for _, c := range emissions.Categories() {
		baseline := rep.Baseline[c]
		optimized := rep.Optimized[c]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.String(),
			formatActivity(rep.Inputs, c),
			formatTons(baseline),
			formatTons(optimized),
			FormatDeltaTons(optimized-baseline),
			FormatPercent(rep.Shares[c]),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	// Totals footer
	if _, err := fmt.Fprintf(tw, "\t\t\t\t\t\n"); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	var totalShare float64
	for _, share := range rep.Shares {
		totalShare += share
	}
	if _, err := fmt.Fprintf(tw, "TOTAL\t\t%s\t%s\t%s\t%s\n",
		formatTons(rep.BaselineTotal),
		formatTons(rep.OptimizedTotal),
		FormatDeltaTons(rep.OptimizedTotal-rep.BaselineTotal),
		FormatPercent(totalShare),
	); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	return renderReportFooter(w, rep)
}

// renderReportFooter writes the savings line, its real-world equivalency,
// and the assumptions block below the table.
func renderReportFooter(w io.Writer, rep *emissions.Report) error {
	if _, err := fmt.Fprintf(w, "\nSavings: %s t CO2e (%.1f%%)\n",
		formatTons(rep.Savings), rep.SavingsPercent); err != nil {
		return fmt.Errorf("writing savings: %w", err)
	}

	if eq := equiv.FromTons(rep.Savings); !eq.IsEmpty {
		if _, err := fmt.Fprintf(w, "%s\n", eq.DisplayText); err != nil {
			return fmt.Errorf("writing equivalency: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "\nAssumptions:\n"); err != nil {
		return fmt.Errorf("writing assumptions: %w", err)
	}
	p := rep.Parameters
	for _, row := range []struct {
		label string
		value float64
	}{
		{"EV share (road vehicles):", p.EVShare},
		{"Distance reduction (road):", p.DistanceReduction},
		{"Plane load factor improvement:", p.LoadFactorImprovement},
	} {
		if _, err := fmt.Fprintf(w, "  %-*s %s\n", paramLabelWidth, row.label, FormatPercent(row.value)); err != nil {
			return fmt.Errorf("writing assumptions: %w", err)
		}
	}

	return nil
}
