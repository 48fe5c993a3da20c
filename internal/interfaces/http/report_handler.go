package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// ReportHandler expone los reportes derivados del inventario.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// NearExpiry godoc
// @Summary      Medicamentos próximos a vencer (ventana configurable, 30 días por defecto)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.MedicationListResponse
// @Router       /api/reports/near-expiry [get]
func (h *ReportHandler) NearExpiry(c *fiber.Ctx) error {
	items, err := h.uc.NearExpiry()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMedicationList(items))
}

// LowStock godoc
// @Summary      Medicamentos con stock bajo (umbral configurable, 5 por defecto)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.MedicationListResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMedicationList(items))
}

// ValueBySupplier godoc
// @Summary      Valor total de stock por proveedor
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ValueBySupplierResponse
// @Router       /api/reports/value-by-supplier [get]
func (h *ReportHandler) ValueBySupplier(c *fiber.Ctx) error {
	items, err := h.uc.ValueBySupplier()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewValueBySupplierResponse(items))
}

// Controlled godoc
// @Summary      Controlados vs no controlados
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ControlledResponse
// @Router       /api/reports/controlled [get]
func (h *ReportHandler) Controlled(c *fiber.Ctx) error {
	b, err := h.uc.ControlledSplit()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewControlledResponse(b))
}

// Summary godoc
// @Summary      Estadísticas generales del inventario
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	s, err := h.uc.Summary()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSummaryResponse(s))
}

// PDF godoc
// @Summary      Reporte completo en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	out, err := h.uc.PDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reporte-inventario.pdf"`)
	return c.Send(out)
}
