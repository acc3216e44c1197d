// Package core define el contrato uniforme del store adapter. Los services
// (usuarios y registros LEH) se escriben una sola vez contra esta interfaz;
// el backend concreto (documental o relacional) se elige en el arranque y
// nunca se mezcla en runtime.
package core

import (
	"context"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
)

// UserFilter es un filtro por igualdad exacta; los campos nil se ignoran.
// Equivale al findOne({...}) del backend documental.
type UserFilter struct {
	Email    *string
	Password *string
	Role     *string
}

// Repository es el contrato del adapter sobre ambos backends.
//
// Semántica de IDs: cada backend usa su esquema nativo (hex de ObjectID en
// Mongo, entero serial en Postgres). El adapter documental valida la forma
// del id ANTES de consultar y devuelve ErrInvalidInput si está malformado;
// el relacional trata el id como clave opaca: un id no numérico simplemente
// no matchea filas (affected == 0 / ErrNotFound).
//
// Las operaciones find-one devuelven repository.ErrNotFound cuando no hay
// match; los inserts de usuario devuelven repository.ErrConflict ante email
// duplicado (constraint/índice único del backend como punto de enforcement,
// no el pre-check del service).
type Repository interface {
	// ---- usuarios ----
	FindUser(ctx context.Context, f UserFilter) (*repository.User, error)
	FindUserByID(ctx context.Context, id string) (*repository.User, error)
	ListUsers(ctx context.Context) ([]repository.User, error)
	InsertUser(ctx context.Context, u repository.User) (string, error)
	UpdateUserByID(ctx context.Context, id string, in repository.UpdateUserInput) (int64, error)
	UpdateUserPasswordByEmail(ctx context.Context, email, password string) (int64, error)
	DeleteUserByID(ctx context.Context, id string) (int64, error)

	// ---- registros LEH ----
	InsertRecord(ctx context.Context, fields repository.RecordFields) (string, error)
	FindRecordByID(ctx context.Context, id string) (*repository.Record, error)
	// ListRecords y ListRecordsByLocation ordenan por created_at descendente.
	ListRecords(ctx context.Context) ([]repository.Record, error)
	ListRecordsByLocation(ctx context.Context, location string) ([]repository.Record, error)
	UpdateRecordByID(ctx context.Context, id string, fields repository.RecordFields) (int64, error)
	DeleteRecordByID(ctx context.Context, id string) (int64, error)

	// ---- ciclo de vida ----
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
