package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato ISO de fechas de calendario (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Supplier proveedor embebido por valor en cada medicamento.
// Dos medicamentos con los mismos datos de proveedor son copias independientes.
type Supplier struct {
	TaxID     string // CNPJ (14 dígitos)
	LegalName string // razón social
	Phone     string
	Email     string
	City      string
	StateCode string // sigla de 2 caracteres
}

// Medication registro de inventario de la farmacia, identificado por Code.
type Medication struct {
	Code             string // 7 caracteres alfanuméricos, en mayúsculas
	Name             string
	Description      string
	ActiveIngredient string
	Expiry           time.Time // fecha de calendario (medianoche UTC)
	StockQuantity    int
	Price            decimal.Decimal
	Controlled       bool
	Supplier         Supplier
}

// StockValue precio × cantidad en stock.
func (m *Medication) StockValue() decimal.Decimal {
	return m.Price.Mul(decimal.NewFromInt(int64(m.StockQuantity)))
}

// Date normaliza t a su fecha de calendario (medianoche UTC), descartando hora y zona.
func Date(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
