package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/equiv"
)

const factorsPadding = 2

const factorsCmdLong = `Prints the emission factor applied to each activity category. Factors
replaced through the factors section of the config file are marked as
overrides; everything else uses the built-in defaults.`

// NewFactorsCmd creates the factors command showing the resolved
// emission factor table.
func NewFactorsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "factors",
		Short:   "Show the resolved emission factor table",
		Long:    factorsCmdLong,
		Example: "  emimeter factors\n  emimeter factors --output json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFactors(cmd, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "output format (table, json)")

	return cmd
}

// executeFactors performs the factors command logic.
func executeFactors(cmd *cobra.Command, output string) error {
	factors := config.GetFactors()

	if output == config.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(factors)
	}
	if output != config.FormatTable {
		return fmt.Errorf("invalid output format %q (must be %s or %s)", output, config.FormatTable, config.FormatJSON)
	}

	return renderFactorsTable(cmd.OutOrStdout(), factors)
}

// renderFactorsTable writes one row per category with the factor value,
// its unit, and whether it came from the defaults or the config file.
// Subcontractor emissions are reported directly in tons and carry no
// factor, so that category is skipped.
func renderFactorsTable(w io.Writer, factors emissions.Factors) error {
	defaults := emissions.DefaultFactors()

	tw := tabwriter.NewWriter(w, 0, 0, factorsPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "CATEGORY\tFACTOR\tUNIT\tSOURCE"); err != nil {
		return fmt.Errorf("writing factors header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--------\t------\t----\t------"); err != nil {
		return fmt.Errorf("writing factors header: %w", err)
	}

	for _, c := range emissions.Categories() {
		value, unit, ok := factors.ForCategory(c)
		if !ok {
			continue
		}
		source := "default"
		if defValue, _, _ := defaults.ForCategory(c); value != defValue {
			source = "config"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.String(), equiv.FormatFloat(value, 2), unit, source); err != nil {
			return fmt.Errorf("writing factors row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing factors table: %w", err)
	}
	return nil
}
