// Package server exposes the emission calculator over HTTP so web
// dashboards can drive sessions remotely. Each API session wraps a
// session.Session; the JSON report payload matches what `emimeter calc
// --output json` prints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/session"
	"github.com/rshade/emimeter/pkg/version"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second

	// pruneInterval is how often the background sweep drops expired
	// sessions, so they do not linger until the next request touches
	// the manager.
	pruneInterval = time.Minute
)

// Options configure a Server.
type Options struct {
	// Addr is the API listen address, e.g. ":8080".
	Addr string
	// MetricsAddr is the Prometheus listener address. Empty disables
	// the metrics listener.
	MetricsAddr string
	// SessionTTL is how long an idle session survives.
	SessionTTL time.Duration
	// MaxSessions caps live sessions.
	MaxSessions int
	// Factors is the emission factor table sessions compute against.
	Factors emissions.Factors
	// Logger receives lifecycle events.
	Logger zerolog.Logger
}

// FromConfig maps the server section of the config file onto Options.
// The metrics listener stays off unless the caller sets MetricsAddr.
func FromConfig(cfg config.ServerConfig, factors emissions.Factors, log zerolog.Logger) Options {
	return Options{
		Addr:        cfg.Addr,
		SessionTTL:  time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		MaxSessions: cfg.MaxSessions,
		Factors:     factors,
		Logger:      log,
	}
}

// Server is the HTTP API around the session manager.
type Server struct {
	app     *fiber.App
	manager *session.Manager
	opts    Options
	logger  zerolog.Logger
}

// New builds the Fiber app, its middleware chain, and the routes. The
// server does not listen until Run is called.
func New(opts Options) *Server {
	manager := session.NewManager(opts.Factors, session.Options{
		TTL:         opts.SessionTTL,
		MaxSessions: opts.MaxSessions,
		Logger:      opts.Logger,
	})

	app := fiber.New(fiber.Config{
		AppName:      "EmiMeter API v" + version.GetVersion(),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(metricsMiddleware())

	setupRoutes(app, newHandler(manager, opts.Factors, opts.Logger))

	return &Server{
		app:     app,
		manager: manager,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// App returns the underlying Fiber app. Tests drive it through
// app.Test without opening a socket.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves the API until ctx is cancelled, then shuts down
// gracefully. The optional Prometheus listener and the session prune
// sweep run alongside the API listener.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().
			Str("component", "server").
			Str("addr", s.opts.Addr).
			Msg("api listening")
		if err := s.app.Listen(s.opts.Addr); err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	var metricsSrv *http.Server
	if s.opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		metricsSrv = &http.Server{
			Addr:              s.opts.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: requestTimeout,
		}

		g.Go(func() error {
			s.logger.Info().
				Str("component", "server").
				Str("addr", s.opts.MetricsAddr).
				Msg("metrics listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if n := s.manager.PruneExpired(); n > 0 {
					sessionsPrunedTotal.Add(float64(n))
				}
				liveSessions.Set(float64(s.manager.Len()))
			}
		}
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info().Str("component", "server").Msg("shutting down")

		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error().Err(err).Msg("api shutdown failed")
		}
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error().Err(err).Msg("metrics shutdown failed")
			}
		}
		return nil
	})

	return g.Wait()
}

// metricsMiddleware times every request and feeds the Prometheus
// vectors. The registered route pattern is used as the label so IDs do
// not blow up cardinality.
func metricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// errorHandler converts handler errors into the JSON error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
