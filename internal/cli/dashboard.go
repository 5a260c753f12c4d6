package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/logging"
	"github.com/rshade/emimeter/internal/render"
	"github.com/rshade/emimeter/internal/session"
	"github.com/rshade/emimeter/internal/tui"
)

const dashboardCmdLong = `Opens the interactive emissions dashboard: edit activity inputs, step
the optimization levers, and watch the baseline, optimized, and savings
figures recompute live.

Without a terminal (piped output, CI) the command falls back to a
single plain-text report.`

// NewDashboardCmd creates the dashboard command, the interactive TUI.
func NewDashboardCmd() *cobra.Command {
	var sample bool
	var plain bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Open the interactive emissions dashboard",
		Long:    dashboardCmdLong,
		Example: "  emimeter dashboard --sample",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDashboard(cmd, sample, plain)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "start with the bundled sample dataset")
	cmd.Flags().BoolVar(&plain, "plain", false, "render one plain report instead of the TUI")

	return cmd
}

// executeDashboard performs the dashboard command logic.
func executeDashboard(cmd *cobra.Command, sample, plain bool) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	var (
		sess *session.Session
		err  error
	)
	if sample {
		sess, err = session.NewWithSample(config.GetFactors())
	} else {
		sess, err = session.New(config.GetFactors())
	}
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if tui.DetectOutputMode(plain, false, true) != tui.OutputModeInteractive {
		return renderReport(cmd, config.FormatTable, true, false, sess.Report())
	}

	log.Debug().Ctx(ctx).
		Str("operation", "dashboard").
		Bool("sample", sample).
		Msg("launching interactive dashboard")

	program := tea.NewProgram(tui.NewDashboardModel(ctx, sess))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}

	model, ok := finalModel.(*tui.DashboardModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T", finalModel)
	}

	// Leave the final figures in the scrollback after the TUI closes.
	cmd.Println("\nFinal report:")
	return render.RenderReportAsTable(cmd.OutOrStdout(), model.Report())
}
