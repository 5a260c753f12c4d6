package equiv

import (
	"fmt"
	"math"
)

// Calculate converts a CarbonInput to kilograms and computes EPA-based
// equivalencies expressed as miles driven, tree seedlings grown for 10
// years, and days of average home electricity use.
//
// If normalization to kilograms fails, Calculate returns an empty
// EquivalencyOutput (IsEmpty = true) and the normalization error. If
// the normalized kilogram value is below MinEquivalencyThresholdKg,
// Calculate returns an empty EquivalencyOutput with InputKg set to the
// normalized value and no error.
//
// Example:
//
//	output, err := equiv.Calculate(equiv.CarbonInput{Value: 819.16, Unit: "t"})
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	trees := kg / EPATreeSeedlingFactor
	homeDays := kg / EPAHomeDayFactor

	if math.IsInf(miles, 0) || math.IsNaN(miles) ||
		math.IsInf(trees, 0) || math.IsNaN(trees) ||
		math.IsInf(homeDays, 0) || math.IsNaN(homeDays) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	milesFormatted := formatEquivalencyValue(miles)
	treesFormatted := formatEquivalencyValue(trees)
	homeDaysFormatted := formatEquivalencyValue(homeDays)

	results := []EquivalencyResult{
		{
			Type:           EquivalencyMilesDriven,
			Value:          miles,
			FormattedValue: milesFormatted,
			Label:          "miles driven",
		},
		{
			Type:           EquivalencyTreeSeedlings,
			Value:          trees,
			FormattedValue: treesFormatted,
			Label:          "tree seedlings grown for 10 years",
		},
		{
			Type:           EquivalencyHomeDays,
			Value:          homeDays,
			FormattedValue: homeDaysFormatted,
			Label:          "days of home electricity use",
		},
	}

	displayText := fmt.Sprintf(
		"Equivalent to driving ~%s miles, growing ~%s tree seedlings for 10 years, or ~%s days of home electricity use",
		milesFormatted, treesFormatted, homeDaysFormatted)

	compactText := fmt.Sprintf("(≈ %s mi, %s trees, %s home-days)",
		milesFormatted, treesFormatted, homeDaysFormatted)

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: displayText,
		CompactText: compactText,
		IsEmpty:     false,
	}, nil
}

// FromTons computes equivalencies for a savings figure already
// expressed in tons CO2e. Negative savings (an optimized scenario worse
// than baseline cannot happen with clamped parameters, but callers pass
// raw deltas) yield an empty output rather than an error.
func FromTons(tons float64) EquivalencyOutput {
	if tons < 0 {
		return EquivalencyOutput{IsEmpty: true}
	}
	output, err := Calculate(CarbonInput{Value: tons, Unit: "t"})
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}
	}
	return output
}

// formatEquivalencyValue formats a floating-point equivalency value for
// display. Values at or above LargeNumberThreshold use the compact
// large-number representation; everything else is rounded to the
// nearest integer with thousand separators.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
