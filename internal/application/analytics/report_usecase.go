// Package analytics contiene los reportes derivados del inventario de la farmacia.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ReportConfig umbrales de los reportes. Valores cero toman los defaults (30 días / 5 unidades).
type ReportConfig struct {
	ExpiryWindowDays  int
	LowStockThreshold int
}

// Snapshot todos los reportes calculados sobre una misma carga del archivo.
type Snapshot struct {
	GeneratedAt       time.Time
	ExpiryWindowDays  int
	LowStockThreshold int
	Summary           inventory.Summary
	Controlled        inventory.ControlledBreakdown
	BySupplier        []inventory.SupplierValue
	NearExpiry        []*entity.Medication
	LowStock          []*entity.Medication
}

// PDFGenerator puerto de salida para la representación impresa del Snapshot.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, s *Snapshot) ([]byte, error)
}

// ReportUseCase calcula los reportes sobre la carga completa y actual del repositorio.
// No hay caché: cada llamada relee el archivo.
type ReportUseCase struct {
	repo repository.MedicationRepository
	cfg  ReportConfig
	pdf  PDFGenerator
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewReportUseCase(repo repository.MedicationRepository, cfg ReportConfig, pdf PDFGenerator) *ReportUseCase {
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = inventory.DefaultExpiryWindowDays
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = inventory.DefaultLowStockThreshold
	}
	return &ReportUseCase{repo: repo, cfg: cfg, pdf: pdf, now: time.Now}
}

// WithClock reemplaza el reloj usado para el reporte de vencimientos.
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Config umbrales efectivos.
func (uc *ReportUseCase) Config() ReportConfig { return uc.cfg }

// NearExpiry medicamentos que vencen antes de hoy + ventana, por vencimiento ascendente.
func (uc *ReportUseCase) NearExpiry() ([]*entity.Medication, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return nil, err
	}
	return inventory.NearExpiry(items, uc.now(), uc.cfg.ExpiryWindowDays), nil
}

// LowStock medicamentos bajo el umbral, por cantidad ascendente.
func (uc *ReportUseCase) LowStock() ([]*entity.Medication, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return nil, err
	}
	return inventory.LowStock(items, uc.cfg.LowStockThreshold), nil
}

// ValueBySupplier valor de stock por razón social, ordenado por nombre.
func (uc *ReportUseCase) ValueBySupplier() ([]inventory.SupplierValue, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return nil, err
	}
	return inventory.ValueBySupplier(items), nil
}

// ControlledSplit controlados vs no controlados.
func (uc *ReportUseCase) ControlledSplit() (inventory.ControlledBreakdown, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return inventory.ControlledBreakdown{}, err
	}
	return inventory.ControlledSplit(items), nil
}

// Summary estadísticas generales.
func (uc *ReportUseCase) Summary() (inventory.Summary, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return inventory.Summary{}, err
	}
	return inventory.Summarize(items), nil
}

// Snapshot calcula los cinco reportes con una sola lectura del archivo.
func (uc *ReportUseCase) Snapshot() (*Snapshot, error) {
	items, err := uc.repo.LoadAll()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &Snapshot{
		GeneratedAt:       now,
		ExpiryWindowDays:  uc.cfg.ExpiryWindowDays,
		LowStockThreshold: uc.cfg.LowStockThreshold,
		Summary:           inventory.Summarize(items),
		Controlled:        inventory.ControlledSplit(items),
		BySupplier:        inventory.ValueBySupplier(items),
		NearExpiry:        inventory.NearExpiry(items, now, uc.cfg.ExpiryWindowDays),
		LowStock:          inventory.LowStock(items, uc.cfg.LowStockThreshold),
	}, nil
}

// PDF genera el reporte completo en PDF.
func (uc *ReportUseCase) PDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("analytics: generador PDF no configurado")
	}
	s, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, s)
}
