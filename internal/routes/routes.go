package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ads-report-service/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, reportController controller.ReportController) {
	app.Get("/report", reportController.GetReport)
	app.Post("/report/refresh", reportController.Refresh)
	app.Get("/report/export", reportController.ExportCSV)
	app.Get("/report/history", reportController.History)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
