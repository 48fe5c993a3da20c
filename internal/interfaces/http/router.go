package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MedicationUC *inventory.MedicationUseCase
	ReportUC     *analytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	medications := api.Group("/medications")
	medicationHandler := NewMedicationHandler(deps.MedicationUC)
	medications.Post("/", medicationHandler.Create)
	medications.Get("/", medicationHandler.List)
	medications.Get("/:code", medicationHandler.GetByCode)
	medications.Put("/:code", medicationHandler.Update)
	medications.Delete("/:code", medicationHandler.Delete)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/near-expiry", reportHandler.NearExpiry)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/value-by-supplier", reportHandler.ValueBySupplier)
	reports.Get("/controlled", reportHandler.Controlled)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/pdf", reportHandler.PDF)
}
