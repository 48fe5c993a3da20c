package flatfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/flatfile"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func newRepo(t *testing.T, atomic bool) (*flatfile.MedicationRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "medicamentos.csv")
	return flatfile.NewMedicationRepository(flatfile.Config{Path: path, AtomicWrite: atomic}, logger.Nop()), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestLoadAll_CreaArchivoConCabecera(t *testing.T) {
	repo, path := newRepo(t, true)

	items, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, flatfile.Header+"\n", readFile(t, path))

	// segunda lectura sobre el archivo recién creado
	items, err = repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadAll_OmiteLineasInvalidasYRegistra(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "medicamentos.csv")
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &out})
	repo := flatfile.NewMedicationRepository(flatfile.Config{Path: path}, log)

	l1, err := flatfile.EncodeLine(sampleMedication("AAA0001"))
	require.NoError(t, err)
	l2, err := flatfile.EncodeLine(sampleMedication("BBB0002"))
	require.NoError(t, err)
	content := strings.Join([]string{flatfile.Header, l1, "", "basura;sin;formato", "   ", l2}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "AAA0001", items[0].Code)
	assert.Equal(t, "BBB0002", items[1].Code)

	assert.Contains(t, out.String(), "línea inválida omitida")
	assert.Contains(t, out.String(), `"line":4`)
}

func TestLoadAll_OmiteLineaMuyLarga(t *testing.T) {
	repo, path := newRepo(t, false)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	l1, err := flatfile.EncodeLine(sampleMedication("GOOD001"))
	require.NoError(t, err)
	l2, err := flatfile.EncodeLine(sampleMedication("GOOD002"))
	require.NoError(t, err)
	huge := strings.Repeat("x", 2<<20)
	content := strings.Join([]string{flatfile.Header, l1, huge, l2}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "GOOD001", items[0].Code)
	assert.Equal(t, "GOOD002", items[1].Code)
}

func TestLoadAll_UltimaLineaSinSaltoFinal(t *testing.T) {
	repo, path := newRepo(t, false)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	line, err := flatfile.EncodeLine(sampleMedication("AAA0001"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(flatfile.Header+"\n"+line), 0o644))

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AAA0001", items[0].Code)
}

func TestLoadAll_ToleraBOMyCRLF(t *testing.T) {
	repo, path := newRepo(t, false)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	line, err := flatfile.EncodeLine(sampleMedication("AAA0001"))
	require.NoError(t, err)
	content := "\xEF\xBB\xBF" + flatfile.Header + "\r\n" + line + "\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assertSameMedication(t, sampleMedication("AAA0001"), items[0])
}

func TestSaveAll_ReescribeEnOrden(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		repo, path := newRepo(t, atomic)
		a, b := sampleMedication("AAA0001"), sampleMedication("BBB0002")

		require.NoError(t, repo.SaveAll([]*entity.Medication{b, a}))
		lines := strings.Split(strings.TrimRight(readFile(t, path), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, flatfile.Header, lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "BBB0002;"))
		assert.True(t, strings.HasPrefix(lines[2], "AAA0001;"))

		require.NoError(t, repo.SaveAll(nil))
		assert.Equal(t, flatfile.Header+"\n", readFile(t, path))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no quedan temporales en el directorio")
	}
}

func TestAddUpdateRemoveFind(t *testing.T) {
	repo, _ := newRepo(t, true)

	require.NoError(t, repo.Add(sampleMedication("AAA0001")))
	require.NoError(t, repo.Add(sampleMedication("BBB0002")))
	require.NoError(t, repo.Add(sampleMedication("CCC0003")))

	found, err := repo.FindByCode("bbb0002")
	require.NoError(t, err)
	require.NotNil(t, found, "la búsqueda no distingue mayúsculas")
	assert.Equal(t, "BBB0002", found.Code)

	missing, err := repo.FindByCode("ZZZ9999")
	require.NoError(t, err)
	assert.Nil(t, missing)

	upd := sampleMedication("BBB0002")
	upd.StockQuantity = 3
	require.NoError(t, repo.Update(upd))

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "BBB0002", items[1].Code, "update conserva la posición")
	assert.Equal(t, 3, items[1].StockQuantity)

	err = repo.Update(sampleMedication("ZZZ9999"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	removed, err := repo.Remove("AAA0001")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Remove("AAA0001")
	require.NoError(t, err)
	assert.False(t, removed)

	items, err = repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "BBB0002", items[0].Code)
	assert.Equal(t, "CCC0003", items[1].Code)
}

func TestRemove_EliminaTodosLosDuplicados(t *testing.T) {
	repo, _ := newRepo(t, false)
	require.NoError(t, repo.SaveAll([]*entity.Medication{
		sampleMedication("DUP0001"), sampleMedication("KEEP001"), sampleMedication("DUP0001"),
	}))

	removed, err := repo.Remove("DUP0001")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "KEEP001", items[0].Code)
}

func TestLoadAll_ErrorDeES(t *testing.T) {
	// la ruta apunta a un directorio: abrir/leer falla con PersistenceError
	dir := t.TempDir()
	repo := flatfile.NewMedicationRepository(flatfile.Config{Path: dir}, nil)

	_, err := repo.LoadAll()
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err), "se esperaba PersistenceError: %v", err)
}
