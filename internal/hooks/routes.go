// Package hooks exposes the inbound push webhook endpoints.
package hooks

import "github.com/gofiber/fiber/v3"

// Routes wires the webhook endpoints. /hook and /push_event are aliases;
// different hook plugins post to either.
func Routes(app fiber.Router, h *Handler) {
	app.Post("/hook", h.pushEventHandler)
	app.Post("/push_event", h.pushEventHandler)
}
