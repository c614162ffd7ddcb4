// Package operators handles authentication for the audit endpoints.
package operators

import "github.com/gofiber/fiber/v3"

func Routes(app fiber.Router, jwtSecret []byte) {
	operators := app.Group("/operators")

	operators.Get("/ping", func(c fiber.Ctx) error {
		return c.SendString("PONG")
	})

	operators.Post("/login", loginHandler(jwtSecret))
}
