package server

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/emissions"
)

func TestFromConfig(t *testing.T) {
	cfg := config.ServerConfig{
		Addr:              ":9999",
		SessionTTLMinutes: 30,
		MaxSessions:       10,
	}

	opts := FromConfig(cfg, emissions.DefaultFactors(), zerolog.Nop())

	assert.Equal(t, ":9999", opts.Addr)
	assert.Equal(t, 30*time.Minute, opts.SessionTTL)
	assert.Equal(t, 10, opts.MaxSessions)
	assert.Empty(t, opts.MetricsAddr)
}

func TestComputeErrorMapping(t *testing.T) {
	t.Run("validation failures are 400s naming the field", func(t *testing.T) {
		err := computeError(fmt.Errorf("%w: cars", emissions.ErrNegativeQuantity))

		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		assert.Contains(t, fe.Message, "cars")
	})

	t.Run("anything else is a 500", func(t *testing.T) {
		err := computeError(errors.New("boom"))

		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusInternalServerError, fe.Code)
	})
}

func TestUnknownRouteEnvelope(t *testing.T) {
	app := newTestApp(t)

	status, env := doRequest(t, app, fiber.MethodGet, "/api/v1/nope", nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Cannot GET")
}
