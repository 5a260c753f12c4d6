package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/render"
	"github.com/rshade/emimeter/internal/session"
	"github.com/rshade/emimeter/pkg/version"
)

// handler carries the dependencies behind the HTTP routes.
type handler struct {
	manager *session.Manager
	factors emissions.Factors
	logger  zerolog.Logger
}

func newHandler(manager *session.Manager, factors emissions.Factors, log zerolog.Logger) *handler {
	return &handler{
		manager: manager,
		factors: factors,
		logger:  log,
	}
}

// createSessionRequest is the optional body of POST /api/v1/sessions.
type createSessionRequest struct {
	// Sample seeds the new session with the demo dataset.
	Sample bool `json:"sample"`
}

// sessionPayload is the data envelope for session endpoints: the raw
// inputs and clamped parameters so clients can re-fill their forms,
// plus the full report in the same shape the CLI prints as JSON.
type sessionPayload struct {
	ID          string                   `json:"id"`
	LastUpdated time.Time                `json:"lastUpdated"`
	Inputs      emissions.ActivityInputs `json:"inputs"`
	Parameters  emissions.Parameters     `json:"parameters"`
	Report      render.ReportJSONOutput  `json:"report"`
}

func sessionPayloadFrom(sess *session.Session) sessionPayload {
	rep := sess.Report()
	return sessionPayload{
		ID:          sess.ID(),
		LastUpdated: sess.LastUpdated().UTC(),
		Inputs:      rep.Inputs,
		Parameters:  rep.Parameters,
		Report:      render.BuildReportJSON(rep),
	}
}

// healthCheck reports liveness for load balancers.
func (h *handler) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "emimeter-api",
		"version": version.GetVersion(),
	})
}

// createSession starts a calculator session, optionally seeded with the
// demo dataset.
func (h *handler) createSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	sess, err := h.manager.Create(req.Sample)
	if err != nil {
		recordComputation("create", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not create session")
	}
	recordComputation("create", nil)
	liveSessions.Set(float64(h.manager.Len()))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// getSession returns the session's current state and report.
func (h *handler) getSession(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// deleteSession drops a session.
func (h *handler) deleteSession(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.Params("id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete session")
	}
	liveSessions.Set(float64(h.manager.Len()))

	return c.JSON(fiber.Map{"success": true})
}

// updateInputs replaces the session's activity inputs and recomputes
// the report. Validation failures leave the session untouched.
func (h *handler) updateInputs(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var in emissions.ActivityInputs
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := sess.SetInputs(c.Context(), in); err != nil {
		recordComputation("inputs", err)
		return computeError(err)
	}
	recordComputation("inputs", nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// updateParameters replaces the optimization levers and recomputes the
// report. Out-of-range values are clamped; the response carries the
// clamped values.
func (h *handler) updateParameters(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var p emissions.Parameters
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := sess.SetParameters(c.Context(), p); err != nil {
		recordComputation("parameters", err)
		return computeError(err)
	}
	recordComputation("parameters", nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// loadSample replaces the session's state with the demo dataset.
func (h *handler) loadSample(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	if _, err := sess.LoadSample(c.Context()); err != nil {
		recordComputation("sample", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load sample data")
	}
	recordComputation("sample", nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// resetSession zeroes the session's inputs and parameters.
func (h *handler) resetSession(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	if _, err := sess.Reset(c.Context()); err != nil {
		recordComputation("reset", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not reset session")
	}
	recordComputation("reset", nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionPayloadFrom(sess),
	})
}

// listFactors returns the resolved emission factor table.
func (h *handler) listFactors(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.factors,
	})
}

// lookup resolves the :id path parameter to a live session.
func (h *handler) lookup(c *fiber.Ctx) (*session.Session, error) {
	sess, err := h.manager.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "could not load session")
	}
	return sess, nil
}

// computeError maps validation failures to 400 with the field named in
// the message. Anything else is a 500.
func computeError(err error) error {
	switch {
	case errors.Is(err, emissions.ErrNegativeQuantity),
		errors.Is(err, emissions.ErrInvalidQuantity),
		errors.Is(err, emissions.ErrInvalidParameter),
		errors.Is(err, emissions.ErrNegativeFactor),
		errors.Is(err, emissions.ErrInvalidFactor):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "could not compute report")
	}
}
