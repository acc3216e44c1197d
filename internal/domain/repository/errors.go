package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (ej: email duplicado, constraint violation).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProtectedEntity indica que la entidad está protegida contra borrado
	// (ej: el usuario admin).
	ErrProtectedEntity = errors.New("protected entity")
)

// ErrInvalidID es un caso particular de ErrInvalidInput: el id no tiene la
// forma que el backend exige (ObjectID hex en mongo). IsInvalidInput también
// lo matchea; IsInvalidID permite distinguirlo en la capa HTTP.
var ErrInvalidID = fmt.Errorf("%w: invalid id format", ErrInvalidInput)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidInput verifica si el error es ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsProtectedEntity verifica si el error es ErrProtectedEntity.
func IsProtectedEntity(err error) bool {
	return errors.Is(err, ErrProtectedEntity)
}

// IsInvalidID verifica si el error es ErrInvalidID.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
