package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/logging"
	"github.com/rshade/emimeter/internal/render"
	"github.com/rshade/emimeter/internal/tui"
)

// CalcParams holds the calc command flags. Exported for testing.
type CalcParams struct {
	InputsPath string
	Sample     bool
	Output     string
	Plain      bool
	NoColor    bool
}

// calcDocument is the YAML document accepted by --inputs: activity
// inputs plus optional optimization levers.
type calcDocument struct {
	Inputs     emissions.ActivityInputs `yaml:"inputs"`
	Parameters emissions.Parameters     `yaml:"parameters"`
}

// calcFlagValues receives the individual activity and lever flags.
// Only values for flags the user actually set are copied onto the
// document, so they overlay --sample or --inputs instead of zeroing
// everything else.
type calcFlagValues struct {
	inputs emissions.ActivityInputs
	params emissions.Parameters
}

const calcCmdLong = `Computes an annual CO2e emissions report: baseline emissions per
activity category, the optimized scenario after applying the
electrification, distance-reduction, and load-factor levers, and the
resulting savings.

Inputs come from --sample, a YAML document passed with --inputs, or
individual flags. Individual flags overlay whichever base was chosen,
so "--sample --ev-share 0.5" recomputes the sample fleet at 50% EV
share.`

const calcCmdExample = `  # Sample fleet, styled summary
  emimeter calc --sample

  # Sample fleet as JSON for scripting
  emimeter calc --sample --output json

  # Custom fleet from flags alone
  emimeter calc --cars 20 --car-km 25000

  # YAML document with one lever overridden
  emimeter calc --inputs fleet.yaml --distance-reduction 0.15`

// NewCalcCmd creates the calc command, a one-shot emissions report.
func NewCalcCmd() *cobra.Command {
	params := CalcParams{}
	flagValues := &calcFlagValues{}

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Compute baseline and optimized emissions",
		Long:    calcCmdLong,
		Example: calcCmdExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalc(cmd, params, flagValues)
		},
	}

	cmd.Flags().StringVar(&params.InputsPath, "inputs", "", "path to a YAML inputs document")
	cmd.Flags().BoolVar(&params.Sample, "sample", false, "use the bundled sample dataset")
	cmd.Flags().StringVar(&params.Output, "output", config.GetDefaultOutputFormat(), "output format (table, json)")
	cmd.Flags().BoolVar(&params.Plain, "plain", false, "force plain table output")
	cmd.Flags().BoolVar(&params.NoColor, "no-color", false, "disable styled output")
	registerActivityFlags(cmd, flagValues)

	return cmd
}

// registerActivityFlags registers one flag per activity input and
// optimization lever.
func registerActivityFlags(cmd *cobra.Command, v *calcFlagValues) {
	fl := cmd.Flags()
	fl.Float64Var(&v.inputs.Cars, "cars", 0, "fleet car count")
	fl.Float64Var(&v.inputs.CarKm, "car-km", 0, "average km per car per year")
	fl.Float64Var(&v.inputs.Trucks, "trucks", 0, "fleet truck count")
	fl.Float64Var(&v.inputs.TruckKm, "truck-km", 0, "average km per truck per year")
	fl.Float64Var(&v.inputs.Buses, "buses", 0, "fleet bus count")
	fl.Float64Var(&v.inputs.BusKm, "bus-km", 0, "average km per bus per year")
	fl.Float64Var(&v.inputs.ForkliftHours, "forklift-hours", 0, "forklift operating hours per year")
	fl.Float64Var(&v.inputs.PlaneFlights, "plane-flights", 0, "cargo flights per year")
	fl.Float64Var(&v.inputs.PlaneKm, "plane-km", 0, "average km per flight")
	fl.Float64Var(&v.inputs.LightingKWh, "lighting-kwh", 0, "lighting electricity per year")
	fl.Float64Var(&v.inputs.HeatingKWh, "heating-kwh", 0, "heating energy per year")
	fl.Float64Var(&v.inputs.CoolingKWh, "cooling-kwh", 0, "cooling electricity per year")
	fl.Float64Var(&v.inputs.ComputingKWh, "computing-kwh", 0, "computing electricity per year")
	fl.Float64Var(&v.inputs.SubcontractorTons, "subcontractor-tons", 0, "subcontractor-reported tons CO2e per year")
	fl.Float64Var(&v.params.EVShare, "ev-share", 0, "fraction of road distance moved to EVs, 0 to 1")
	fl.Float64Var(&v.params.DistanceReduction, "distance-reduction", 0, "fraction of road distance avoided, 0 to 1")
	fl.Float64Var(&v.params.LoadFactorImprovement, "load-factor-improvement", 0, "fraction of per-flight emissions avoided, 0 to 1")
}

// ValidateCalcFlags validates calc flag combinations. Exported for
// testing.
func ValidateCalcFlags(params *CalcParams) error {
	if params.Sample && params.InputsPath != "" {
		return errors.New("cannot combine --sample with --inputs")
	}
	if params.Output != config.FormatTable && params.Output != config.FormatJSON {
		return fmt.Errorf("invalid output format %q (must be %s or %s)", params.Output, config.FormatTable, config.FormatJSON)
	}
	return nil
}

// executeCalc performs the calc command logic.
func executeCalc(cmd *cobra.Command, params CalcParams, flagValues *calcFlagValues) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateCalcFlags(&params); err != nil {
		return err
	}

	doc, err := buildCalcDocument(cmd, params, flagValues)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "calc").
		Bool("sample", params.Sample).
		Str("inputs_path", params.InputsPath).
		Str("output", params.Output).
		Msg("computing emissions report")

	rep, err := emissions.Compute(doc.Inputs, doc.Parameters, config.GetFactors())
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("emissions computation failed")
		return fmt.Errorf("computing report: %w", err)
	}

	if err := renderReport(cmd, params.Output, params.Plain, params.NoColor, rep); err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "calc").
		Dur("duration", time.Since(start)).
		Float64("baseline_tons", rep.BaselineTotal).
		Float64("optimized_tons", rep.OptimizedTotal).
		Msg("emissions report complete")

	return nil
}

// buildCalcDocument assembles the activity inputs and levers: the base
// document (zero, sample, or YAML file), overlaid with any individual
// flags the user set.
func buildCalcDocument(cmd *cobra.Command, params CalcParams, flagValues *calcFlagValues) (calcDocument, error) {
	var doc calcDocument

	switch {
	case params.Sample:
		doc.Inputs = emissions.SampleInputs()
		doc.Parameters = emissions.SampleParameters()
	case params.InputsPath != "":
		data, err := os.ReadFile(params.InputsPath)
		if err != nil {
			return doc, fmt.Errorf("reading inputs file: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("parsing inputs file %s: %w", params.InputsPath, err)
		}
	}

	applyChangedFlags(cmd, flagValues, &doc)
	return doc, nil
}

// applyChangedFlags copies each explicitly-set activity or lever flag
// onto the document.
func applyChangedFlags(cmd *cobra.Command, v *calcFlagValues, doc *calcDocument) {
	bindings := []struct {
		name  string
		apply func()
	}{
		{"cars", func() { doc.Inputs.Cars = v.inputs.Cars }},
		{"car-km", func() { doc.Inputs.CarKm = v.inputs.CarKm }},
		{"trucks", func() { doc.Inputs.Trucks = v.inputs.Trucks }},
		{"truck-km", func() { doc.Inputs.TruckKm = v.inputs.TruckKm }},
		{"buses", func() { doc.Inputs.Buses = v.inputs.Buses }},
		{"bus-km", func() { doc.Inputs.BusKm = v.inputs.BusKm }},
		{"forklift-hours", func() { doc.Inputs.ForkliftHours = v.inputs.ForkliftHours }},
		{"plane-flights", func() { doc.Inputs.PlaneFlights = v.inputs.PlaneFlights }},
		{"plane-km", func() { doc.Inputs.PlaneKm = v.inputs.PlaneKm }},
		{"lighting-kwh", func() { doc.Inputs.LightingKWh = v.inputs.LightingKWh }},
		{"heating-kwh", func() { doc.Inputs.HeatingKWh = v.inputs.HeatingKWh }},
		{"cooling-kwh", func() { doc.Inputs.CoolingKWh = v.inputs.CoolingKWh }},
		{"computing-kwh", func() { doc.Inputs.ComputingKWh = v.inputs.ComputingKWh }},
		{"subcontractor-tons", func() { doc.Inputs.SubcontractorTons = v.inputs.SubcontractorTons }},
		{"ev-share", func() { doc.Parameters.EVShare = v.params.EVShare }},
		{"distance-reduction", func() { doc.Parameters.DistanceReduction = v.params.DistanceReduction }},
		{"load-factor-improvement", func() { doc.Parameters.LoadFactorImprovement = v.params.LoadFactorImprovement }},
	}

	for _, b := range bindings {
		if cmd.Flags().Changed(b.name) {
			b.apply()
		}
	}
}

// renderReport routes a report to JSON, styled, or plain rendering.
// JSON bypasses terminal detection entirely so piped --output json is
// always clean JSON.
func renderReport(cmd *cobra.Command, output string, plain, noColor bool, rep *emissions.Report) error {
	out := cmd.OutOrStdout()

	if output == config.FormatJSON {
		return render.RenderReportAsJSON(out, rep)
	}

	if tui.DetectOutputMode(plain, noColor, false) == tui.OutputModeStyled {
		width := tui.TerminalWidth()
		fmt.Fprintln(out, tui.RenderReportSummary(rep, width))
		fmt.Fprintln(out)
		fmt.Fprint(out, tui.RenderShareChart(rep, width))
		return nil
	}

	return render.RenderReportAsTable(out, rep)
}
