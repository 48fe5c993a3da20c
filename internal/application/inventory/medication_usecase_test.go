package inventory_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/flatfile"
)

func newFileRepo(t *testing.T) *flatfile.MedicationRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "medicamentos.csv")
	return flatfile.NewMedicationRepository(flatfile.Config{Path: path, AtomicWrite: true}, nil)
}

func newMedication(code string) *entity.Medication {
	return &entity.Medication{
		Code:             code,
		Name:             "Paracetamol",
		Description:      "Analgésico",
		ActiveIngredient: "Paracetamol",
		Expiry:           time.Now().AddDate(0, 0, 1),
		StockQuantity:    10,
		Price:            decimal.RequireFromString("9.99"),
		Controlled:       false,
		Supplier: entity.Supplier{
			TaxID:     "11444777000161",
			LegalName: "Distribuidora Saúde Ltda",
			Phone:     "1134567890",
			Email:     "contato@saude.com.br",
			City:      "São Paulo",
			StateCode: "SP",
		},
	}
}

func asValidation(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, se obtuvo %T: %v", err, err)
	return ve
}

// Flujo completo: alta, consulta, duplicado, reporte de stock bajo, update y nuevo reporte.
func TestMedicationUseCase_FlujoCompleto(t *testing.T) {
	repo := newFileRepo(t)
	uc := inventory.NewMedicationUseCase(repo, nil)
	reports := analytics.NewReportUseCase(repo, analytics.ReportConfig{}, nil)

	_, err := uc.Create(newMedication("ABC1234"))
	require.NoError(t, err)

	got, err := uc.Query("ABC1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Paracetamol", got.Name)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price))

	_, err = uc.Create(newMedication("ABC1234"))
	ve := asValidation(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, ve.Error(), "ABC1234")

	low, err := reports.LowStock()
	require.NoError(t, err)
	assert.Empty(t, low, "10 unidades no es stock bajo")

	upd := newMedication("ABC1234")
	upd.StockQuantity = 3
	_, err = uc.Update(upd)
	require.NoError(t, err)

	low, err = reports.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "ABC1234", low[0].Code)
}

func TestMedicationUseCase_CodigoSinDistinguirMayusculas(t *testing.T) {
	uc := inventory.NewMedicationUseCase(newFileRepo(t), nil)

	created, err := uc.Create(newMedication(" abc1234 "))
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", created.Code)

	_, err = uc.Create(newMedication("ABC1234"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.Query("abc1234")
	require.NoError(t, err)
	require.NotNil(t, got)

	upd := newMedication("abc1234")
	upd.Name = "Paracetamol 750"
	_, err = uc.Update(upd)
	require.NoError(t, err)

	require.NoError(t, uc.Delete("Abc1234"))
	got, err = uc.Query("ABC1234")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMedicationUseCase_NoEncontrado(t *testing.T) {
	uc := inventory.NewMedicationUseCase(newFileRepo(t), nil)

	_, err := uc.Update(newMedication("NOP0001"))
	asValidation(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete("NOP0001")
	asValidation(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Query("NOP0001")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMedicationUseCase_CodigoVacio(t *testing.T) {
	uc := inventory.NewMedicationUseCase(newFileRepo(t), nil)

	asValidation(t, uc.Delete("  "))
	_, err := uc.Query("")
	asValidation(t, err)
}

func TestMedicationUseCase_VencimientoSegunReloj(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	uc := inventory.NewMedicationUseCase(newFileRepo(t), nil).WithClock(func() time.Time { return fixed })

	m := newMedication("EXP0001")
	m.Expiry = fixed.AddDate(0, 0, -1)
	ve := asValidation(t, func() error { _, err := uc.Create(m); return err }())
	assert.Equal(t, "expiry", ve.Field)

	m.Expiry = fixed
	_, err := uc.Create(m)
	assert.NoError(t, err, "vencer hoy es válido")
}

func TestMedicationUseCase_ListAll(t *testing.T) {
	uc := inventory.NewMedicationUseCase(newFileRepo(t), nil)

	items, err := uc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, c := range []string{"BBB0002", "AAA0001"} {
		_, err := uc.Create(newMedication(c))
		require.NoError(t, err)
	}
	items, err = uc.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "BBB0002", items[0].Code, "orden de inserción")
}

// failingRepo simula un archivo inaccesible.
type failingRepo struct{ calls int }

func (r *failingRepo) fail() error {
	r.calls++
	return &domain.PersistenceError{Op: "abrir", Path: "/nope", Err: errors.New("permiso denegado")}
}
func (r *failingRepo) LoadAll() ([]*entity.Medication, error)        { return nil, r.fail() }
func (r *failingRepo) SaveAll([]*entity.Medication) error            { return r.fail() }
func (r *failingRepo) Add(*entity.Medication) error                  { return r.fail() }
func (r *failingRepo) Update(*entity.Medication) error               { return r.fail() }
func (r *failingRepo) Remove(string) (bool, error)                   { return false, r.fail() }
func (r *failingRepo) FindByCode(string) (*entity.Medication, error) { return nil, r.fail() }

func TestMedicationUseCase_ValidacionAntesDePersistencia(t *testing.T) {
	repo := &failingRepo{}
	uc := inventory.NewMedicationUseCase(repo, nil)

	bad := newMedication("ABC1234")
	bad.Supplier.TaxID = "11444777000162"
	_, err := uc.Create(bad)
	ve := asValidation(t, err)
	assert.Equal(t, "tax_id", ve.Field)
	assert.Zero(t, repo.calls, "no se toca el archivo si la validación falla")

	_, err = uc.Create(newMedication("ABC1234"))
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.False(t, domain.IsValidation(err))
}
