package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// MedicationHandler expone el CRUD de medicamentos al front-end.
type MedicationHandler struct {
	uc *inventory.MedicationUseCase
}

// NewMedicationHandler construye el handler.
func NewMedicationHandler(uc *inventory.MedicationUseCase) *MedicationHandler {
	return &MedicationHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar medicamento
// @Tags         medications
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MedicationRequest  true  "Datos del medicamento"
// @Success      201   {object}  dto.MedicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medications [post]
func (h *MedicationHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicationRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	m, err := in.ToEntity()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha de vencimiento inválida", Field: "expiry"})
	}
	out, err := h.uc.Create(m)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMedicationResponse(out))
}

// List godoc
// @Summary      Listar todos los medicamentos
// @Tags         medications
// @Produce      json
// @Success      200  {object}  dto.MedicationListResponse
// @Router       /api/medications [get]
func (h *MedicationHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListAll()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMedicationList(items))
}

// GetByCode godoc
// @Summary      Consultar medicamento por código
// @Tags         medications
// @Produce      json
// @Param        code  path  string  true  "Código del medicamento"
// @Success      200   {object}  dto.MedicationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medications/{code} [get]
func (h *MedicationHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.Query(c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
	}
	return c.JSON(dto.NewMedicationResponse(out))
}

// Update godoc
// @Summary      Actualizar medicamento
// @Description  El código de la ruta prevalece sobre el del cuerpo.
// @Tags         medications
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del medicamento"
// @Param        body  body  dto.MedicationRequest  true  "Datos del medicamento"
// @Success      200   {object}  dto.MedicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medications/{code} [put]
func (h *MedicationHandler) Update(c *fiber.Ctx) error {
	var in dto.MedicationRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	in.Code = c.Params("code")
	m, err := in.ToEntity()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha de vencimiento inválida", Field: "expiry"})
	}
	out, err := h.uc.Update(m)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMedicationResponse(out))
}

// Delete godoc
// @Summary      Eliminar medicamento
// @Tags         medications
// @Param        code  path  string  true  "Código del medicamento"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medications/{code} [delete]
func (h *MedicationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
