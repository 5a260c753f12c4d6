package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/equiv"
)

// reportUnit is the emissions unit used throughout the JSON output.
const reportUnit = "tCO2e"

// ReportMetadata holds report-level metadata for the JSON output.
type ReportMetadata struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Unit        string               `json:"unit"`
	Parameters  emissions.Parameters `json:"parameters"`
	Factors     emissions.Factors    `json:"factors"`
}

// CategoryRow is one category's line in the JSON output.
type CategoryRow struct {
	Category      string  `json:"category"`
	Label         string  `json:"label"`
	Activity      float64 `json:"activity"`
	ActivityUnit  string  `json:"activityUnit"`
	BaselineTons  float64 `json:"baselineTons"`
	OptimizedTons float64 `json:"optimizedTons"`
	DeltaTons     float64 `json:"deltaTons"`
	BaselineShare float64 `json:"baselineShare"`
}

// ReportSummary holds the scenario totals for the JSON output.
type ReportSummary struct {
	BaselineTotalTons  float64 `json:"baselineTotalTons"`
	OptimizedTotalTons float64 `json:"optimizedTotalTons"`
	SavingsTons        float64 `json:"savingsTons"`
	SavingsPercent     float64 `json:"savingsPercent"`
	Equivalencies      string  `json:"equivalencies,omitempty"`
}

// ReportJSONOutput is the top-level JSON output structure.
type ReportJSONOutput struct {
	Metadata   ReportMetadata `json:"metadata"`
	Categories []CategoryRow  `json:"categories"`
	Summary    ReportSummary  `json:"summary"`
}

// BuildReportJSON converts a report into the JSON output structure.
func BuildReportJSON(rep *emissions.Report) ReportJSONOutput {
	rows := make([]CategoryRow, 0, len(emissions.Categories()))
	for _, c := range emissions.Categories() {
		amount, unit := rep.Inputs.Activity(c)
		baseline := rep.Baseline[c]
		optimized := rep.Optimized[c]
		rows = append(rows, CategoryRow{
			Category:      c.Key(),
			Label:         c.String(),
			Activity:      amount,
			ActivityUnit:  unit,
			BaselineTons:  baseline,
			OptimizedTons: optimized,
			DeltaTons:     optimized - baseline,
			BaselineShare: rep.Shares[c],
		})
	}

	return ReportJSONOutput{
		Metadata: ReportMetadata{
			GeneratedAt: time.Now(),
			Unit:        reportUnit,
			Parameters:  rep.Parameters,
			Factors:     rep.Factors,
		},
		Categories: rows,
		Summary: ReportSummary{
			BaselineTotalTons:  rep.BaselineTotal,
			OptimizedTotalTons: rep.OptimizedTotal,
			SavingsTons:        rep.Savings,
			SavingsPercent:     rep.SavingsPercent,
			Equivalencies:      equiv.FromTons(rep.Savings).DisplayText,
		},
	}
}

// RenderReportAsJSON renders a report as an indented JSON object with
// metadata, a category array, and scenario totals.
func RenderReportAsJSON(w io.Writer, rep *emissions.Report) error {
	if rep == nil {
		return ErrNilReport
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildReportJSON(rep)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}
