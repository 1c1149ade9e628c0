package routes

import (
	"github.com/gofiber/fiber/v2"

	"device-event-pipeline/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, ctrl controller.PipelineController) {
	app.Post("/ingest", ctrl.Ingest)
	app.Get("/stats", ctrl.Stats)
	app.Get("/stats-html", ctrl.StatsHTML)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
