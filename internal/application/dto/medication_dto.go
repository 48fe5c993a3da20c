package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// SupplierDTO proveedor embebido en el medicamento.
type SupplierDTO struct {
	TaxID     string `json:"tax_id" validate:"required"`
	LegalName string `json:"legal_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required"`
	City      string `json:"city" validate:"required"`
	StateCode string `json:"state_code" validate:"required"`
}

// MedicationRequest entrada para crear o actualizar un medicamento.
// Solo se valida la forma; las reglas de negocio las aplica el caso de uso.
type MedicationRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description" validate:"required"`
	ActiveIngredient string          `json:"active_ingredient" validate:"required"`
	Expiry           string          `json:"expiry" validate:"required,datetime=2006-01-02"`
	StockQuantity    *int            `json:"stock_quantity" validate:"required"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Controlled       bool            `json:"controlled"`
	Supplier         SupplierDTO     `json:"supplier"`
}

// ToEntity convierte la petición en entidad. Expiry debe venir validada como YYYY-MM-DD.
func (r MedicationRequest) ToEntity() (*entity.Medication, error) {
	expiry, err := entity.ParseDate(r.Expiry)
	if err != nil {
		return nil, err
	}
	qty := 0
	if r.StockQuantity != nil {
		qty = *r.StockQuantity
	}
	return &entity.Medication{
		Code:             r.Code,
		Name:             r.Name,
		Description:      r.Description,
		ActiveIngredient: r.ActiveIngredient,
		Expiry:           expiry,
		StockQuantity:    qty,
		Price:            r.Price,
		Controlled:       r.Controlled,
		Supplier: entity.Supplier{
			TaxID:     r.Supplier.TaxID,
			LegalName: r.Supplier.LegalName,
			Phone:     r.Supplier.Phone,
			Email:     r.Supplier.Email,
			City:      r.Supplier.City,
			StateCode: r.Supplier.StateCode,
		},
	}, nil
}

// MedicationResponse salida de un medicamento.
type MedicationResponse struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ActiveIngredient string          `json:"active_ingredient"`
	Expiry           string          `json:"expiry"`
	StockQuantity    int             `json:"stock_quantity"`
	Price            decimal.Decimal `json:"price"`
	Controlled       bool            `json:"controlled"`
	Supplier         SupplierDTO     `json:"supplier"`
}

// MedicationListResponse listado completo en orden de archivo.
type MedicationListResponse struct {
	Items []MedicationResponse `json:"items"`
	Total int                  `json:"total"`
}

// NewMedicationResponse mapea la entidad a su salida.
func NewMedicationResponse(m *entity.Medication) *MedicationResponse {
	if m == nil {
		return nil
	}
	return &MedicationResponse{
		Code:             m.Code,
		Name:             m.Name,
		Description:      m.Description,
		ActiveIngredient: m.ActiveIngredient,
		Expiry:           m.Expiry.Format(entity.DateLayout),
		StockQuantity:    m.StockQuantity,
		Price:            m.Price,
		Controlled:       m.Controlled,
		Supplier: SupplierDTO{
			TaxID:     m.Supplier.TaxID,
			LegalName: m.Supplier.LegalName,
			Phone:     m.Supplier.Phone,
			Email:     m.Supplier.Email,
			City:      m.Supplier.City,
			StateCode: m.Supplier.StateCode,
		},
	}
}

// NewMedicationList mapea una lista de entidades.
func NewMedicationList(items []*entity.Medication) MedicationListResponse {
	out := make([]MedicationResponse, 0, len(items))
	for _, m := range items {
		out = append(out, *NewMedicationResponse(m))
	}
	return MedicationListResponse{Items: out, Total: len(out)}
}
