package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/emissions"
)

func sampleReport(t *testing.T) *emissions.Report {
	t.Helper()
	rep, err := emissions.Compute(emissions.SampleInputs(), emissions.SampleParameters(), emissions.DefaultFactors())
	require.NoError(t, err)
	return rep
}

// ---------------------------------------------------------------------------
// FormatDeltaTons
// ---------------------------------------------------------------------------

func TestFormatDeltaTons(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  string
	}{
		{"zero", 0, "0.00"},
		{"positive", 12.5, "+12.50"},
		{"negative", -819.16, "-819.16"},
		{"large_negative", -1234.56, "-1,234.56"},
		{"small_positive", 0.004, "+0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDeltaTons(tt.delta))
		})
	}
}

// ---------------------------------------------------------------------------
// FormatPercent
// ---------------------------------------------------------------------------

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name string
		frac float64
		want string
	}{
		{"zero", 0, "0.0%"},
		{"thirty", 0.30, "30.0%"},
		{"fractional", 0.125, "12.5%"},
		{"full", 1.0, "100.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPercent(tt.frac))
		})
	}
}

// ---------------------------------------------------------------------------
// formatActivity
// ---------------------------------------------------------------------------

func TestFormatActivity(t *testing.T) {
	in := emissions.SampleInputs()

	tests := []struct {
		category emissions.Category
		want     string
	}{
		{emissions.CategoryCars, "250,000 km"},
		{emissions.CategoryCargoPlanes, "320,000 km"},
		{emissions.CategoryForklifts, "2,000 h"},
		{emissions.CategoryLighting, "120,000 kWh"},
		{emissions.CategorySubcontractors, "185 t"},
	}
	for _, tt := range tests {
		t.Run(tt.category.Key(), func(t *testing.T) {
			assert.Equal(t, tt.want, formatActivity(in, tt.category))
		})
	}
}

// ---------------------------------------------------------------------------
// RenderReportAsTable
// ---------------------------------------------------------------------------

func TestRenderReportAsTable_SampleDataset(t *testing.T) {
	var buf bytes.Buffer
	rep := sampleReport(t)

	err := RenderReportAsTable(&buf, rep)
	require.NoError(t, err)

	output := buf.String()

	// Header
	assert.Contains(t, output, "CATEGORY")
	assert.Contains(t, output, "ACTIVITY")
	assert.Contains(t, output, "BASELINE (t)")
	assert.Contains(t, output, "OPTIMIZED (t)")
	assert.Contains(t, output, "DELTA (t)")
	assert.Contains(t, output, "SHARE")

	// Category labels
	assert.Contains(t, output, "Cars")
	assert.Contains(t, output, "Cargo Planes")
	assert.Contains(t, output, "Office Lighting")
	assert.Contains(t, output, "Subcontractors")

	// Activity amounts
	assert.Contains(t, output, "250,000 km")
	assert.Contains(t, output, "2,000 h")
	assert.Contains(t, output, "185 t")

	// Totals and savings
	assert.Contains(t, output, "TOTAL")
	assert.Contains(t, output, "4,285.20")
	assert.Contains(t, output, "3,466.04")
	assert.Contains(t, output, "-819.16")
	assert.Contains(t, output, "Savings: 819.16 t CO2e (19.1%)")

	// Cargo planes dominate the baseline
	assert.Contains(t, output, "84.0%")

	// Equivalency line
	assert.Contains(t, output, "Equivalent to driving")

	// Assumptions block
	assert.Contains(t, output, "Assumptions:")
	assert.Contains(t, output, "EV share (road vehicles):")
	assert.Contains(t, output, "30.0%")
	assert.Contains(t, output, "Distance reduction (road):")
	assert.Contains(t, output, "10.0%")
	assert.Contains(t, output, "Plane load factor improvement:")
	assert.Contains(t, output, "20.0%")
}

func TestRenderReportAsTable_ZeroInputs(t *testing.T) {
	var buf bytes.Buffer
	rep, err := emissions.Compute(emissions.ActivityInputs{}, emissions.Parameters{}, emissions.DefaultFactors())
	require.NoError(t, err)

	err = RenderReportAsTable(&buf, rep)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Savings: 0.00 t CO2e (0.0%)")
	// Nothing saved, so no equivalency line
	assert.NotContains(t, output, "Equivalent to")
}

func TestRenderReportAsTable_NilReport(t *testing.T) {
	var buf bytes.Buffer
	err := RenderReportAsTable(&buf, nil)
	assert.ErrorIs(t, err, ErrNilReport)
	assert.Empty(t, buf.String())
}

// ---------------------------------------------------------------------------
// RenderReportAsJSON
// ---------------------------------------------------------------------------

func TestRenderReportAsJSON_SampleDataset(t *testing.T) {
	var buf bytes.Buffer
	rep := sampleReport(t)

	err := RenderReportAsJSON(&buf, rep)
	require.NoError(t, err)

	var output ReportJSONOutput
	err = json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err)

	// Metadata
	assert.Equal(t, "tCO2e", output.Metadata.Unit)
	assert.False(t, output.Metadata.GeneratedAt.IsZero())
	assert.InDelta(t, 0.30, output.Metadata.Parameters.EVShare, 1e-9)

	// Categories come back in fixed order
	require.Len(t, output.Categories, len(emissions.Categories()))
	cars := output.Categories[0]
	assert.Equal(t, "cars", cars.Category)
	assert.Equal(t, "Cars", cars.Label)
	assert.Equal(t, 250000.0, cars.Activity)
	assert.Equal(t, "km", cars.ActivityUnit)
	assert.InDelta(t, 45.0, cars.BaselineTons, 1e-9)
	assert.InDelta(t, 28.35, cars.OptimizedTons, 1e-9)
	assert.InDelta(t, -16.65, cars.DeltaTons, 1e-9)

	// Summary
	assert.InDelta(t, 4285.2, output.Summary.BaselineTotalTons, 1e-6)
	assert.InDelta(t, 3466.04, output.Summary.OptimizedTotalTons, 1e-6)
	assert.InDelta(t, 819.16, output.Summary.SavingsTons, 1e-6)
	assert.InDelta(t, 19.116, output.Summary.SavingsPercent, 0.001)
	assert.Contains(t, output.Summary.Equivalencies, "driving")
}

func TestRenderReportAsJSON_NilReport(t *testing.T) {
	var buf bytes.Buffer
	err := RenderReportAsJSON(&buf, nil)
	assert.ErrorIs(t, err, ErrNilReport)
}
