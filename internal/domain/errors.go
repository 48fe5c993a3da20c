package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// ValidationError problema corregible por el usuario: formato, campo obligatorio,
// regla de negocio, código duplicado o código inexistente en update/delete.
// Err es el sentinel asociado (ErrInvalidInput, ErrDuplicate o ErrNotFound).
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// NewValidationError construye un ValidationError de entrada inválida.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: ErrInvalidInput}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError falla de E/S sobre el archivo de datos.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation indica si err (o alguno que envuelve) es un ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence indica si err (o alguno que envuelve) es un PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
