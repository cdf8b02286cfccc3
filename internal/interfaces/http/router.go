package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/albaran-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AlbaranUC   *usecase.AlbaranUseCase
	DashboardUC *usecase.DashboardUseCase
	PDFUC       *usecase.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Albaranes
	albaranes := api.Group("/albaranes")
	albaranHandler := NewAlbaranHandler(deps.AlbaranUC, deps.PDFUC)
	albaranes.Get("/", albaranHandler.List)
	albaranes.Post("/", albaranHandler.Create)
	albaranes.Get("/export.csv", albaranHandler.ExportCSV)
	albaranes.Get("/:id", albaranHandler.GetByID)
	albaranes.Put("/:id", albaranHandler.Update)
	albaranes.Delete("/:id", albaranHandler.Delete)
	albaranes.Get("/:id/pdf", albaranHandler.GeneratePDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Resumen)
}
