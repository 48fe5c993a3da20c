// Package validation contiene las reglas de negocio de Medication y Supplier.
// Funciones puras: no leen el archivo de datos ni el reloj (la fecha de hoy se recibe como parámetro).
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/cnpj"
)

const (
	CodeLength    = 7
	NameMinLength = 3
)

var (
	codePattern  = regexp.MustCompile(`^[A-Za-z0-9]{7}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ValidateCode: obligatorio, exactamente 7 caracteres alfanuméricos.
func ValidateCode(code string) error {
	c := strings.TrimSpace(code)
	if c == "" {
		return domain.NewValidationError("code", "el código no puede ser vacío")
	}
	if utf8.RuneCountInString(c) != CodeLength {
		return domain.NewValidationError("code", "el código debe tener exactamente 7 caracteres")
	}
	if !codePattern.MatchString(c) {
		return domain.NewValidationError("code", "el código debe contener solo letras y números")
	}
	return nil
}

// ValidateName: obligatorio, mínimo 3 caracteres sin contar espacios de los extremos.
func ValidateName(name string) error {
	n := strings.TrimSpace(name)
	if n == "" {
		return domain.NewValidationError("name", "el nombre no puede ser vacío")
	}
	if utf8.RuneCountInString(n) < NameMinLength {
		return domain.NewValidationError("name", "el nombre debe tener al menos 3 caracteres")
	}
	return nil
}

// ValidateRequired falla con msg si value está vacío tras recortar espacios.
func ValidateRequired(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, msg)
	}
	return nil
}

// ValidateExpiry: la fecha es obligatoria y no puede ser anterior a hoy (hoy es válido).
func ValidateExpiry(expiry, today time.Time) error {
	if expiry.IsZero() {
		return domain.NewValidationError("expiry", "la fecha de vencimiento no puede ser vacía")
	}
	if entity.Date(expiry).Before(entity.Date(today)) {
		return domain.NewValidationError("expiry", "la fecha de vencimiento no puede ser una fecha pasada")
	}
	return nil
}

// ValidateStockQuantity: no negativa.
func ValidateStockQuantity(qty int) error {
	if qty < 0 {
		return domain.NewValidationError("stock_quantity", "la cantidad en stock no puede ser negativa")
	}
	return nil
}

// ValidatePrice: estrictamente mayor que cero.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return domain.NewValidationError("price", "el precio debe ser mayor que cero")
	}
	return nil
}

// ValidateTaxID valida el CNPJ del proveedor (14 dígitos, no repetidos, dígitos verificadores).
func ValidateTaxID(taxID string) error {
	err := cnpj.Validate(strings.TrimSpace(taxID))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cnpj.ErrEmpty):
		return domain.NewValidationError("tax_id", "el CNPJ no puede ser vacío")
	case errors.Is(err, cnpj.ErrLength):
		return domain.NewValidationError("tax_id", "el CNPJ debe tener 14 dígitos")
	case errors.Is(err, cnpj.ErrCheckDigits):
		return domain.NewValidationError("tax_id", "CNPJ inválido: dígitos verificadores incorrectos")
	default:
		return domain.NewValidationError("tax_id", "CNPJ inválido")
	}
}

// ValidateEmail: obligatorio y con dominio que termina en un segmento alfabético de 2+ letras.
func ValidateEmail(email string) error {
	e := strings.TrimSpace(email)
	if e == "" {
		return domain.NewValidationError("email", "el email no puede ser vacío")
	}
	if !emailPattern.MatchString(e) {
		return domain.NewValidationError("email", "email inválido")
	}
	return nil
}

// ValidatePhone: obligatorio; 10 u 11 dígitos ignorando la máscara.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return domain.NewValidationError("phone", "el teléfono no puede ser vacío")
	}
	n := countDigits(phone)
	if n < 10 || n > 11 {
		return domain.NewValidationError("phone", "el teléfono debe tener 10 u 11 dígitos")
	}
	return nil
}

// ValidateStateCode: sigla de exactamente 2 caracteres.
func ValidateStateCode(state string) error {
	s := strings.TrimSpace(state)
	if s == "" {
		return domain.NewValidationError("state_code", "el estado no puede ser vacío")
	}
	if utf8.RuneCountInString(s) != 2 {
		return domain.NewValidationError("state_code", "el estado debe tener 2 caracteres (sigla)")
	}
	return nil
}

// ValidateSupplier aplica las reglas del proveedor; se detiene en la primera violación.
func ValidateSupplier(s entity.Supplier) error {
	checks := []func() error{
		func() error { return ValidateTaxID(s.TaxID) },
		func() error {
			return ValidateRequired("legal_name", s.LegalName, "la razón social del proveedor es obligatoria")
		},
		func() error { return ValidatePhone(s.Phone) },
		func() error { return ValidateEmail(s.Email) },
		func() error { return ValidateRequired("city", s.City, "la ciudad del proveedor es obligatoria") },
		func() error { return ValidateStateCode(s.StateCode) },
	}
	return firstError(checks)
}

// ValidateMedication valida el registro completo, incluido su proveedor embebido.
// today es la fecha de referencia para el vencimiento.
func ValidateMedication(m *entity.Medication, today time.Time) error {
	if m == nil {
		return domain.NewValidationError("medication", "el medicamento es obligatorio")
	}
	checks := []func() error{
		func() error { return ValidateCode(m.Code) },
		func() error { return ValidateName(m.Name) },
		func() error { return ValidateRequired("description", m.Description, "la descripción es obligatoria") },
		func() error {
			return ValidateRequired("active_ingredient", m.ActiveIngredient, "el principio activo es obligatorio")
		},
		func() error { return ValidateExpiry(m.Expiry, today) },
		func() error { return ValidateStockQuantity(m.StockQuantity) },
		func() error { return ValidatePrice(m.Price) },
		func() error { return ValidateSupplier(m.Supplier) },
		func() error { return validatePlainText(m) },
	}
	return firstError(checks)
}

// validatePlainText rechaza ';' y saltos de línea: el archivo de datos es una línea por registro.
func validatePlainText(m *entity.Medication) error {
	fields := []struct{ name, value string }{
		{"code", m.Code},
		{"name", m.Name},
		{"description", m.Description},
		{"active_ingredient", m.ActiveIngredient},
		{"tax_id", m.Supplier.TaxID},
		{"legal_name", m.Supplier.LegalName},
		{"phone", m.Supplier.Phone},
		{"email", m.Supplier.Email},
		{"city", m.Supplier.City},
		{"state_code", m.Supplier.StateCode},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, ";\r\n") {
			return domain.NewValidationError(f.name, "el campo no puede contener ';' ni saltos de línea")
		}
	}
	return nil
}

func countDigits(s string) int {
	var n int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func firstError(checks []func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
