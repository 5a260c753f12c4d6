package server

import "github.com/gofiber/fiber/v2"

// setupRoutes wires the HTTP surface.
func setupRoutes(app *fiber.App, h *handler) {
	// Health check
	app.Get("/health", h.healthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Session lifecycle
		api.Post("/sessions", h.createSession)
		api.Get("/sessions/:id", h.getSession)
		api.Delete("/sessions/:id", h.deleteSession)

		// Session state
		api.Put("/sessions/:id/inputs", h.updateInputs)
		api.Put("/sessions/:id/parameters", h.updateParameters)
		api.Post("/sessions/:id/sample", h.loadSample)
		api.Post("/sessions/:id/reset", h.resetSession)

		// Reference data
		api.Get("/factors", h.listFactors)
	}
}
