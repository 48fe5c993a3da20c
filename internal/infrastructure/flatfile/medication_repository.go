package flatfile

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

var _ repository.MedicationRepository = (*MedicationRepository)(nil)

// Config ubicación y modo de escritura del archivo.
type Config struct {
	Path        string
	AtomicWrite bool // escribe en un temporal del mismo directorio y lo renombra
}

// MedicationRepository implementa repository.MedicationRepository sobre un archivo
// delimitado por ';'. No mantiene estado entre llamadas: cada operación relee el archivo
// completo y cada mutación lo reescribe entero. No es seguro para escritores concurrentes.
type MedicationRepository struct {
	path   string
	atomic bool
	log    *logger.Logger
}

// NewMedicationRepository construye el repositorio. El archivo se crea en el primer acceso.
func NewMedicationRepository(cfg Config, log *logger.Logger) *MedicationRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &MedicationRepository{
		path:   cfg.Path,
		atomic: cfg.AtomicWrite,
		log:    log.Component("flatfile"),
	}
}

// Path ruta del archivo de datos.
func (r *MedicationRepository) Path() string { return r.path }

// LoadAll lee todos los registros en orden de archivo. Las líneas que no se pueden
// decodificar se registran y se omiten; solo los errores de E/S abortan.
func (r *MedicationRepository) LoadAll() ([]*entity.Medication, error) {
	created, err := r.ensureFile()
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Medication, 0)
	if created {
		return items, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, r.ioErr("abrir", err)
	}
	defer f.Close()

	// BOMOverride descarta un BOM UTF-8 inicial si el archivo fue editado en otra herramienta.
	// Las líneas no tienen límite de longitud: una línea enorme se omite como cualquier otra inválida.
	rd := bufio.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	lineNo := 0
	for eof := false; !eof; {
		line, err := rd.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF):
			eof = true
			if line == "" {
				continue
			}
		case err != nil:
			return nil, r.ioErr("leer", err)
		}
		lineNo++
		if lineNo == 1 {
			continue // cabecera
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := DecodeLine(line)
		if err != nil {
			r.log.Warn().
				Str("file", r.path).
				Int("line", lineNo).
				Err(err).
				Msg("línea inválida omitida")
			continue
		}
		items = append(items, m)
	}
	return items, nil
}

// SaveAll reescribe el archivo completo: cabecera y una línea por registro en el orden dado.
func (r *MedicationRepository) SaveAll(items []*entity.Medication) error {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, m := range items {
		line, err := EncodeLine(m)
		if err != nil {
			return r.ioErr("codificar", err)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return r.ioErr("crear directorio", err)
	}
	if r.atomic {
		return r.writeAtomic(buf.Bytes())
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return r.ioErr("escribir", err)
	}
	return nil
}

// Add agrega el registro al final.
func (r *MedicationRepository) Add(m *entity.Medication) error {
	items, err := r.LoadAll()
	if err != nil {
		return err
	}
	items = append(items, m)
	return r.SaveAll(items)
}

// Update reemplaza en su misma posición el primer registro con el mismo código.
func (r *MedicationRepository) Update(m *entity.Medication) error {
	items, err := r.LoadAll()
	if err != nil {
		return err
	}
	for i, cur := range items {
		if sameCode(cur.Code, m.Code) {
			items[i] = m
			return r.SaveAll(items)
		}
	}
	return domain.ErrNotFound
}

// Remove elimina todos los registros con el código; solo reescribe si hubo cambios.
func (r *MedicationRepository) Remove(code string) (bool, error) {
	items, err := r.LoadAll()
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, m := range items {
		if !sameCode(m.Code, code) {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, r.SaveAll(kept)
}

// FindByCode devuelve el primer registro con el código, o nil si no existe.
func (r *MedicationRepository) FindByCode(code string) (*entity.Medication, error) {
	items, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, m := range items {
		if sameCode(m.Code, code) {
			return m, nil
		}
	}
	return nil, nil
}

// ensureFile crea el directorio y un archivo con solo la cabecera si no existen.
// Devuelve true si el archivo se acaba de crear.
func (r *MedicationRepository) ensureFile() (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, r.ioErr("consultar", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return false, r.ioErr("crear directorio", err)
	}
	if err := os.WriteFile(r.path, []byte(Header+"\n"), 0o644); err != nil {
		return false, r.ioErr("crear", err)
	}
	r.log.Info().Str("file", r.path).Msg("archivo de datos creado")
	return true, nil
}

func (r *MedicationRepository) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".medicamentos-*.tmp")
	if err != nil {
		return r.ioErr("crear temporal", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return r.ioErr("escribir", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return r.ioErr("sincronizar", err)
	}
	if err := tmp.Close(); err != nil {
		return r.ioErr("cerrar", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return r.ioErr("permisos", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return r.ioErr("reemplazar", err)
	}
	return nil
}

func (r *MedicationRepository) ioErr(op string, err error) error {
	return &domain.PersistenceError{Op: op, Path: r.path, Err: err}
}

func sameCode(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
