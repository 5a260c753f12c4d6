package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/logging"
	"github.com/rshade/emimeter/internal/server"
)

// envListenAddr overrides the configured listen address.
const envListenAddr = "EMIMETER_ADDR"

const defaultMetricsAddr = ":9090"

const serveCmdLong = `Starts the HTTP API backing web dashboards: session management,
activity input updates, and live emission reports.

Listen address precedence: --addr, the EMIMETER_ADDR environment
variable, then the server section of the config file. A .env file in
the working directory is loaded first when present.`

// NewServeCmd creates the serve command running the HTTP API.
func NewServeCmd() *cobra.Command {
	var addr string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the emissions API over HTTP",
		Long:    serveCmdLong,
		Example: "  emimeter serve --addr :8080 --metrics-addr :9090",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeServe(cmd, addr, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides EMIMETER_ADDR and config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", defaultMetricsAddr, "Prometheus listen address (empty disables)")

	return cmd
}

// executeServe performs the serve command logic, blocking until the
// context is cancelled by SIGINT or SIGTERM.
func executeServe(cmd *cobra.Command, addr, metricsAddr string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := godotenv.Load(); err != nil {
		log.Debug().Ctx(ctx).Msg("no .env file found, using process environment")
	}

	opts := server.FromConfig(config.GetServerConfig(), config.GetFactors(), logging.ComponentLogger(*log, "server"))
	opts.Addr = resolveListenAddr(addr, opts.Addr)
	opts.MetricsAddr = metricsAddr

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Ctx(ctx).
		Str("operation", "serve").
		Str("addr", opts.Addr).
		Str("metrics_addr", opts.MetricsAddr).
		Msg("starting http api")

	if err := server.New(opts).Run(runCtx); err != nil {
		return fmt.Errorf("serving api: %w", err)
	}

	log.Info().Ctx(ctx).Str("operation", "serve").Msg("server stopped")
	return nil
}

// resolveListenAddr picks the listen address: the --addr flag wins,
// then EMIMETER_ADDR, then the configured address.
func resolveListenAddr(flagAddr, cfgAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if envAddr := os.Getenv(envListenAddr); envAddr != "" {
		return envAddr
	}
	return cfgAddr
}
