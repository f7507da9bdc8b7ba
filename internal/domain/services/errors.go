package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Clases de error del dominio. Los controladores las mapean a códigos de
// respuesta con errors.Is; el mensaje de DomainError va al cliente.
var (
	ErrNotFound           = errors.New("no encontrado")
	ErrConflict           = errors.New("conflicto de unicidad")
	ErrValidation         = errors.New("validación")
	ErrInvalidReference   = errors.New("referencia inexistente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// DomainError asocia una clase de error con el mensaje destinado al cliente
type DomainError struct {
	Kind error
	Msg  string
}

func (e *DomainError) Error() string {
	return e.Msg
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func notFound(msg string) error {
	return &DomainError{Kind: ErrNotFound, Msg: msg}
}

func conflict(msg string) error {
	return &DomainError{Kind: ErrConflict, Msg: msg}
}

func validation(msg string) error {
	return &DomainError{Kind: ErrValidation, Msg: msg}
}

func invalidReference(msg string) error {
	return &DomainError{Kind: ErrInvalidReference, Msg: msg}
}

// isDuplicateKey detecta violaciones de índice único del driver
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
