// Package pdf genera la versión impresa del reporte de inventario de la farmacia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la aplicación  │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Registros / Unidades / Valor total / Precio medio │
//	│  CONTROLADOS: conteos y porcentajes                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Valor de stock por proveedor                        │
//	│  TABLA: Próximos a vencer                                   │
//	│  TABLA: Stock bajo                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/pkg/cnpj"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza cada reporte.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	return &MarotoReportGenerator{title: nonEmpty(title, "Inventario de farmacia")}
}

var _ analytics.PDFGenerator = (*MarotoReportGenerator)(nil)

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, s *analytics.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: snapshot requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(s.Summary))
	m.AddRows(controlledRow(s.Controlled))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VALOR DE STOCK POR PROVEEDOR"))
	m.AddRows(supplierRows(s.BySupplier)...)

	m.AddRows(sectionTitle(fmt.Sprintf("PRÓXIMOS A VENCER (menos de %d días)", s.ExpiryWindowDays)))
	m.AddRows(medicationRows(s.NearExpiry)...)

	m.AddRows(sectionTitle(fmt.Sprintf("STOCK BAJO (menos de %d unidades)", s.LowStockThreshold)))
	m.AddRows(medicationRows(s.LowStock)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(s *analytics.Snapshot) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func summaryRow(sum inventory.Summary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Medicamentos", fmt.Sprintf("%d", sum.Count)),
		cell("Unidades en stock", fmt.Sprintf("%d", sum.TotalQuantity)),
		cell("Valor total", formatMoney(sum.TotalValue)),
		cell("Precio medio", formatMoney(sum.AveragePrice)),
	)
}

func controlledRow(b inventory.ControlledBreakdown) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("%s: %d (%s%%)", inventory.ControlledLabel, b.Controlled, b.ControlledPct.StringFixed(2)),
			props.Text{Size: 8, Top: 2, Color: colorAlert},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("%s: %d (%s%%)", inventory.NonControlledLabel, b.NonControlled, b.NonControlledPct.StringFixed(2)),
			props.Text{Size: 8, Top: 2, Align: align.Right},
		)),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func supplierRows(items []inventory.SupplierValue) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(items))
	for _, v := range items {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(v.LegalName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatMoney(v.Total), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// medicationRows: cabecera + una fila por medicamento.
func medicationRows(items []*entity.Medication) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows := []core.Row{row.New(6).Add(
		h("Código", 2, align.Left),
		h("Nombre", 3, align.Left),
		h("Vence", 2, align.Center),
		h("Stock", 1, align.Right),
		h("Proveedor (CNPJ)", 4, align.Left),
	)}
	for _, m := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(m.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(m.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(m.Expiry.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", m.StockQuantity), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(4).Add(text.New(
				m.Supplier.LegalName+" ("+cnpj.Format(m.Supplier.TaxID)+")",
				props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Sin registros", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato monetario brasileño: "R$ 1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles. Ej: "1000000" → "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
