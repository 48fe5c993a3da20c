package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Umbrales por defecto de los reportes.
const (
	DefaultExpiryWindowDays  = 30
	DefaultLowStockThreshold = 5
)

// Nombres de los grupos del reporte de controlados.
const (
	ControlledLabel    = "Controlados"
	NonControlledLabel = "No controlados"
)

var hundred = decimal.NewFromInt(100)

// SupplierValue valor total de stock (precio × cantidad) de un proveedor.
type SupplierValue struct {
	LegalName string
	Total     decimal.Decimal
}

// ControlledBreakdown conteo de medicamentos controlados y no controlados.
// Los porcentajes son sobre Total, redondeados a 2 decimales; 0 si Total es 0.
type ControlledBreakdown struct {
	Controlled       int
	NonControlled    int
	Total            int
	ControlledPct    decimal.Decimal
	NonControlledPct decimal.Decimal
}

// Summary estadísticas generales del inventario.
type Summary struct {
	Count         int
	TotalQuantity int64
	TotalValue    decimal.Decimal
	AveragePrice  decimal.Decimal // media de Price, 2 decimales, half-up
}

// NearExpiry devuelve los medicamentos cuyo vencimiento es estrictamente anterior a
// hoy + windowDays, ordenados por vencimiento ascendente.
func NearExpiry(items []*entity.Medication, now time.Time, windowDays int) []*entity.Medication {
	limit := entity.Date(now).AddDate(0, 0, windowDays)
	out := make([]*entity.Medication, 0)
	for _, m := range items {
		if entity.Date(m.Expiry).Before(limit) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Expiry.Before(out[j].Expiry) })
	return out
}

// LowStock devuelve los medicamentos con StockQuantity < threshold, ordenados por cantidad ascendente.
func LowStock(items []*entity.Medication, threshold int) []*entity.Medication {
	out := make([]*entity.Medication, 0)
	for _, m := range items {
		if m.StockQuantity < threshold {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out
}

// ValueBySupplier agrupa por razón social sumando precio × cantidad.
// El resultado se ordena por razón social ascendente.
func ValueBySupplier(items []*entity.Medication) []SupplierValue {
	totals := make(map[string]decimal.Decimal)
	for _, m := range items {
		name := m.Supplier.LegalName
		totals[name] = totals[name].Add(m.StockValue())
	}
	out := make([]SupplierValue, 0, len(totals))
	for name, total := range totals {
		out = append(out, SupplierValue{LegalName: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LegalName < out[j].LegalName })
	return out
}

// ControlledSplit cuenta controlados vs no controlados.
func ControlledSplit(items []*entity.Medication) ControlledBreakdown {
	var b ControlledBreakdown
	for _, m := range items {
		if m.Controlled {
			b.Controlled++
		} else {
			b.NonControlled++
		}
	}
	b.Total = b.Controlled + b.NonControlled
	b.ControlledPct = percent(b.Controlled, b.Total)
	b.NonControlledPct = percent(b.NonControlled, b.Total)
	return b
}

// Counts devuelve el split como mapa etiqueta -> cantidad.
func (b ControlledBreakdown) Counts() map[string]int {
	return map[string]int{
		ControlledLabel:    b.Controlled,
		NonControlledLabel: b.NonControlled,
	}
}

// Summarize calcula las estadísticas generales. Con la colección vacía todo es cero.
func Summarize(items []*entity.Medication) Summary {
	s := Summary{
		Count:        len(items),
		TotalValue:   decimal.Zero,
		AveragePrice: decimal.Zero,
	}
	if len(items) == 0 {
		return s
	}
	priceSum := decimal.Zero
	for _, m := range items {
		s.TotalQuantity += int64(m.StockQuantity)
		s.TotalValue = s.TotalValue.Add(m.StockValue())
		priceSum = priceSum.Add(m.Price)
	}
	// DivRound redondea half away from zero; con precios positivos equivale a half-up.
	s.AveragePrice = priceSum.DivRound(decimal.NewFromInt(int64(len(items))), 2)
	return s
}

func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).DivRound(decimal.NewFromInt(int64(total)), 2)
}
