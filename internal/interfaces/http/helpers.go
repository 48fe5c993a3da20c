package http

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida por su valor numérico: sin esto "required" nunca falla
	// porque el struct interno no es cero ni con precio 0.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			return v.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate parsea el cuerpo JSON y aplica las tags de validator.
// Si falla, ya escribió la respuesta: el caller debe retornar sin escribir otra.
func bindAndValidate(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "campo inválido: " + fe.Namespace() + " (" + fe.Tag() + ")",
				Field:   fe.Field(),
			})
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// writeError traduce errores de dominio a respuestas HTTP.
//   - ValidationError: 409 si es duplicado, 404 si no existe, 400 en otro caso.
//   - PersistenceError: 500 sin exponer la ruta del archivo.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		status, code := fiber.StatusBadRequest, "VALIDATION"
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			status, code = fiber.StatusConflict, "DUPLICATE"
		case errors.Is(err, domain.ErrNotFound):
			status, code = fiber.StatusNotFound, "NOT_FOUND"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: ve.Reason, Field: ve.Field})
	}
	if domain.IsPersistence(err) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "PERSISTENCE", Message: "error de acceso al archivo de datos",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
