package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

// SupplierValueDTO valor total de stock de un proveedor.
type SupplierValueDTO struct {
	LegalName string          `json:"legal_name"`
	Total     decimal.Decimal `json:"total"`
}

// ValueBySupplierResponse ordenado por razón social ascendente.
type ValueBySupplierResponse struct {
	Items []SupplierValueDTO `json:"items"`
}

// ControlledResponse controlados vs no controlados con porcentajes.
type ControlledResponse struct {
	Counts           map[string]int  `json:"counts"`
	Controlled       int             `json:"controlled"`
	NonControlled    int             `json:"non_controlled"`
	Total            int             `json:"total"`
	ControlledPct    decimal.Decimal `json:"controlled_pct"`
	NonControlledPct decimal.Decimal `json:"non_controlled_pct"`
}

// SummaryResponse estadísticas generales.
type SummaryResponse struct {
	Count         int             `json:"count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AveragePrice  decimal.Decimal `json:"average_price"`
}

// NewValueBySupplierResponse mapea el reporte de valor por proveedor.
func NewValueBySupplierResponse(items []inventory.SupplierValue) ValueBySupplierResponse {
	out := make([]SupplierValueDTO, 0, len(items))
	for _, v := range items {
		out = append(out, SupplierValueDTO{LegalName: v.LegalName, Total: v.Total})
	}
	return ValueBySupplierResponse{Items: out}
}

// NewControlledResponse mapea el split de controlados.
func NewControlledResponse(b inventory.ControlledBreakdown) ControlledResponse {
	return ControlledResponse{
		Counts:           b.Counts(),
		Controlled:       b.Controlled,
		NonControlled:    b.NonControlled,
		Total:            b.Total,
		ControlledPct:    b.ControlledPct,
		NonControlledPct: b.NonControlledPct,
	}
}

// NewSummaryResponse mapea las estadísticas generales.
func NewSummaryResponse(s inventory.Summary) SummaryResponse {
	return SummaryResponse{
		Count:         s.Count,
		TotalQuantity: s.TotalQuantity,
		TotalValue:    s.TotalValue,
		AveragePrice:  s.AveragePrice,
	}
}
