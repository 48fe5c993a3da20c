package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/domain/validation"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// MedicationUseCase orquesta validación y persistencia de medicamentos.
// La validación corre siempre antes de tocar el archivo, así un ValidationError
// tiene prioridad sobre cualquier PersistenceError.
//
// Los códigos son claves sin distinción de mayúsculas: se normalizan a mayúsculas
// antes de validar y persistir.
type MedicationUseCase struct {
	repo repository.MedicationRepository
	now  func() time.Time
	log  *logger.Logger
}

// NewMedicationUseCase construye el caso de uso.
func NewMedicationUseCase(repo repository.MedicationRepository, log *logger.Logger) *MedicationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MedicationUseCase{repo: repo, now: time.Now, log: log.Component("inventory")}
}

// WithClock reemplaza el reloj usado para validar vencimientos.
func (uc *MedicationUseCase) WithClock(now func() time.Time) *MedicationUseCase {
	uc.now = now
	return uc
}

// Create valida y registra un medicamento nuevo; rechaza códigos ya existentes.
func (uc *MedicationUseCase) Create(in *entity.Medication) (*entity.Medication, error) {
	m := normalize(in)
	if err := validation.ValidateMedication(m, uc.now()); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByCode(m.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ValidationError{
			Field:  "code",
			Reason: fmt.Sprintf("ya existe un medicamento registrado con el código %s", m.Code),
			Err:    domain.ErrDuplicate,
		}
	}
	if err := uc.repo.Add(m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("code", m.Code).Msg("medicamento registrado")
	return m, nil
}

// Update valida y reemplaza el medicamento con el mismo código.
func (uc *MedicationUseCase) Update(in *entity.Medication) (*entity.Medication, error) {
	m := normalize(in)
	if err := validation.ValidateMedication(m, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(m); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(m.Code)
		}
		return nil, err
	}
	uc.log.Info().Str("code", m.Code).Msg("medicamento actualizado")
	return m, nil
}

// Delete elimina el medicamento; falla si el código no existe.
func (uc *MedicationUseCase) Delete(code string) error {
	c, err := requireCode(code)
	if err != nil {
		return err
	}
	removed, err := uc.repo.Remove(c)
	if err != nil {
		return err
	}
	if !removed {
		return notFound(c)
	}
	uc.log.Info().Str("code", c).Msg("medicamento eliminado")
	return nil
}

// Query busca un medicamento por código. Devuelve nil, nil si no existe.
func (uc *MedicationUseCase) Query(code string) (*entity.Medication, error) {
	c, err := requireCode(code)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByCode(c)
}

// ListAll devuelve todos los medicamentos en orden de archivo.
func (uc *MedicationUseCase) ListAll() ([]*entity.Medication, error) {
	return uc.repo.LoadAll()
}

// NormalizeCode recorta espacios y pasa a mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func requireCode(code string) (string, error) {
	c := NormalizeCode(code)
	if c == "" {
		return "", domain.NewValidationError("code", "el código no puede ser vacío")
	}
	return c, nil
}

func notFound(code string) error {
	return &domain.ValidationError{
		Field:  "code",
		Reason: fmt.Sprintf("medicamento %s no encontrado", code),
		Err:    domain.ErrNotFound,
	}
}

// normalize devuelve una copia con los textos recortados, código y estado en mayúsculas
// y la fecha de vencimiento reducida a fecha de calendario.
func normalize(in *entity.Medication) *entity.Medication {
	if in == nil {
		return nil
	}
	m := *in
	m.Code = NormalizeCode(m.Code)
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)
	m.ActiveIngredient = strings.TrimSpace(m.ActiveIngredient)
	if !m.Expiry.IsZero() {
		m.Expiry = entity.Date(m.Expiry)
	}
	m.Supplier.TaxID = strings.TrimSpace(m.Supplier.TaxID)
	m.Supplier.LegalName = strings.TrimSpace(m.Supplier.LegalName)
	m.Supplier.Phone = strings.TrimSpace(m.Supplier.Phone)
	m.Supplier.Email = strings.TrimSpace(m.Supplier.Email)
	m.Supplier.City = strings.TrimSpace(m.Supplier.City)
	m.Supplier.StateCode = strings.ToUpper(strings.TrimSpace(m.Supplier.StateCode))
	return &m
}
