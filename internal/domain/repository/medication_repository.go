package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// MedicationRepository define el puerto de persistencia para Medication (DIP).
// Los códigos se comparan sin distinguir mayúsculas/minúsculas.
type MedicationRepository interface {
	LoadAll() ([]*entity.Medication, error)
	SaveAll(items []*entity.Medication) error
	Add(m *entity.Medication) error
	// Update reemplaza el primer registro con el mismo código; domain.ErrNotFound si no existe.
	Update(m *entity.Medication) error
	// Remove elimina todos los registros con el código y reporta si hubo eliminación.
	Remove(code string) (bool, error)
	// FindByCode devuelve nil, nil si no existe.
	FindByCode(code string) (*entity.Medication, error)
}
