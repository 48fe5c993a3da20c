package flatfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Header primera línea fija del archivo de datos.
const Header = "codigo;nome;descricao;principioAtivo;dataValidade;quantidadeEstoque;preco;controlado;cnpj;razaoSocial;telefone;email;cidade;estado"

const (
	// Separator delimitador de campos.
	Separator = ";"
	// FieldCount cantidad mínima de campos de una línea de datos.
	FieldCount = 14
)

// posiciones de los campos en la línea.
const (
	fCode = iota
	fName
	fDescription
	fActiveIngredient
	fExpiry
	fStockQuantity
	fPrice
	fControlled
	fTaxID
	fLegalName
	fPhone
	fEmail
	fCity
	fStateCode
)

var (
	ErrMalformedLine = errors.New("flatfile: línea con formato inválido")
	ErrUnencodable   = errors.New("flatfile: campo contiene el separador o un salto de línea")
)

// EncodeLine serializa un medicamento y su proveedor en una línea de 14 campos.
func EncodeLine(m *entity.Medication) (string, error) {
	fields := make([]string, FieldCount)
	fields[fCode] = m.Code
	fields[fName] = m.Name
	fields[fDescription] = m.Description
	fields[fActiveIngredient] = m.ActiveIngredient
	fields[fExpiry] = m.Expiry.Format(entity.DateLayout)
	fields[fStockQuantity] = strconv.Itoa(m.StockQuantity)
	fields[fPrice] = m.Price.String()
	fields[fControlled] = strconv.FormatBool(m.Controlled)
	fields[fTaxID] = m.Supplier.TaxID
	fields[fLegalName] = m.Supplier.LegalName
	fields[fPhone] = m.Supplier.Phone
	fields[fEmail] = m.Supplier.Email
	fields[fCity] = m.Supplier.City
	fields[fStateCode] = m.Supplier.StateCode

	for i, f := range fields {
		if strings.ContainsAny(f, Separator+"\r\n") {
			return "", fmt.Errorf("%w (campo %d del código %q)", ErrUnencodable, i, m.Code)
		}
	}
	return strings.Join(fields, Separator), nil
}

// DecodeLine reconstruye medicamento y proveedor. Los campos vacíos finales se conservan;
// se exigen al menos 14 campos y los campos extra se ignoran.
func DecodeLine(line string) (*entity.Medication, error) {
	raw := strings.Split(line, Separator)
	if len(raw) < FieldCount {
		return nil, fmt.Errorf("%w: se esperaban %d campos, se encontraron %d", ErrMalformedLine, FieldCount, len(raw))
	}
	f := make([]string, FieldCount)
	for i := range f {
		f[i] = strings.TrimSpace(raw[i])
	}

	expiry, err := entity.ParseDate(f[fExpiry])
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de vencimiento %q", ErrMalformedLine, f[fExpiry])
	}
	qty, err := strconv.Atoi(f[fStockQuantity])
	if err != nil {
		return nil, fmt.Errorf("%w: cantidad %q", ErrMalformedLine, f[fStockQuantity])
	}
	price, err := decimal.NewFromString(f[fPrice])
	if err != nil {
		return nil, fmt.Errorf("%w: precio %q", ErrMalformedLine, f[fPrice])
	}
	return &entity.Medication{
		Code:             f[fCode],
		Name:             f[fName],
		Description:      f[fDescription],
		ActiveIngredient: f[fActiveIngredient],
		Expiry:           expiry,
		StockQuantity:    qty,
		Price:            price,
		Controlled:       parseBool(f[fControlled]),
		Supplier: entity.Supplier{
			TaxID:     f[fTaxID],
			LegalName: f[fLegalName],
			Phone:     f[fPhone],
			Email:     f[fEmail],
			City:      f[fCity],
			StateCode: f[fStateCode],
		},
	}, nil
}

// parseBool solo "true" (sin distinguir mayúsculas) es verdadero; cualquier otro valor,
// incluido el vacío, es falso y no invalida la línea.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}
