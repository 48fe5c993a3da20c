package flatfile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/flatfile"
)

func sampleMedication(code string) *entity.Medication {
	return &entity.Medication{
		Code:             code,
		Name:             "Amoxicilina",
		Description:      "Antibiótico de amplio espectro",
		ActiveIngredient: "Amoxicilina tri-hidratada",
		Expiry:           time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
		StockQuantity:    42,
		Price:            decimal.RequireFromString("1234.50"),
		Controlled:       true,
		Supplier: entity.Supplier{
			TaxID:     "11444777000161",
			LegalName: "Distribuidora Saúde Ltda",
			Phone:     "11934567890",
			Email:     "vendas@saude.com.br",
			City:      "Campinas",
			StateCode: "SP",
		},
	}
}

func assertSameMedication(t *testing.T, want, got *entity.Medication) {
	t.Helper()
	assert.True(t, want.Price.Equal(got.Price), "precio: %s vs %s", want.Price, got.Price)
	w, g := *want, *got
	w.Price, g.Price = decimal.Zero, decimal.Zero
	assert.Equal(t, w, g)
}

func TestEncodeLine_OrdenDeCampos(t *testing.T) {
	line, err := flatfile.EncodeLine(sampleMedication("AMX0001"))
	require.NoError(t, err)
	assert.Equal(t,
		"AMX0001;Amoxicilina;Antibiótico de amplio espectro;Amoxicilina tri-hidratada;2027-01-31;42;1234.5;true;"+
			"11444777000161;Distribuidora Saúde Ltda;11934567890;vendas@saude.com.br;Campinas;SP",
		line)
	assert.Len(t, strings.Split(line, flatfile.Separator), flatfile.FieldCount)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, m := range []*entity.Medication{
		sampleMedication("AMX0001"),
		func() *entity.Medication {
			m := sampleMedication("ZZZ9999")
			m.Controlled = false
			m.StockQuantity = 0
			m.Price = decimal.RequireFromString("0.01")
			return m
		}(),
	} {
		line, err := flatfile.EncodeLine(m)
		require.NoError(t, err)
		got, err := flatfile.DecodeLine(line)
		require.NoError(t, err)
		assertSameMedication(t, m, got)
	}
}

func TestDecodeLine_ConservaCamposVaciosFinales(t *testing.T) {
	line := "AMX0001;Amoxicilina;desc;pa;2027-01-31;1;2.00;false;11444777000161;Razao;1134567890;a@b.com;;"
	got, err := flatfile.DecodeLine(line)
	require.NoError(t, err)
	assert.Empty(t, got.Supplier.City)
	assert.Empty(t, got.Supplier.StateCode)
}

func TestDecodeLine_CamposExtraIgnorados(t *testing.T) {
	line, err := flatfile.EncodeLine(sampleMedication("AMX0001"))
	require.NoError(t, err)
	got, err := flatfile.DecodeLine(line + ";extra;otro")
	require.NoError(t, err)
	assert.Equal(t, "SP", got.Supplier.StateCode)
}

func TestDecodeLine_Invalida(t *testing.T) {
	valid := strings.Split("AMX0001;Amoxicilina;desc;pa;2027-01-31;1;2.00;false;11444777000161;Razao;1134567890;a@b.com;Campinas;SP", ";")
	mutate := func(i int, v string) string {
		f := append([]string(nil), valid...)
		f[i] = v
		return strings.Join(f, ";")
	}
	cases := map[string]string{
		"pocos campos": "AMX0001;Amoxicilina;desc",
		"fecha":        mutate(4, "31/01/2027"),
		"cantidad":     mutate(5, "diez"),
		"precio":       mutate(6, "2,00"),
	}
	for name, line := range cases {
		_, err := flatfile.DecodeLine(line)
		assert.ErrorIs(t, err, flatfile.ErrMalformedLine, name)
	}
}

// Solo "true" (cualquier capitalización) marca el medicamento como controlado;
// otro valor se lee como falso sin descartar la línea.
func TestDecodeLine_ControladoTolerante(t *testing.T) {
	base := strings.Split("AMX0001;Amoxicilina;desc;pa;2027-01-31;1;2.00;false;11444777000161;Razao;1134567890;a@b.com;Campinas;SP", ";")
	cases := map[string]bool{
		"true":  true,
		"TRUE":  true,
		" True": true,
		"false": false,
		"":      false,
		"sim":   false,
		"1":     false,
	}
	for raw, want := range cases {
		f := append([]string(nil), base...)
		f[7] = raw
		got, err := flatfile.DecodeLine(strings.Join(f, ";"))
		require.NoError(t, err, "controlado %q", raw)
		assert.Equal(t, want, got.Controlled, "controlado %q", raw)
		assert.Equal(t, "AMX0001", got.Code)
	}
}

func TestEncodeLine_RechazaSeparador(t *testing.T) {
	m := sampleMedication("AMX0001")
	m.Description = "a;b"
	_, err := flatfile.EncodeLine(m)
	assert.ErrorIs(t, err, flatfile.ErrUnencodable)
}
