package service

import (
	"context"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/normalize"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

// Records implementa las operaciones sobre registros LEH: siempre pasa el
// input crudo por el normalizador antes de tocar el store.
type Records struct {
	store core.Repository
}

func NewRecords(store core.Repository) *Records {
	return &Records{store: store}
}

// Submit normaliza e inserta. created_at lo setea la capa de store.
func (s *Records) Submit(ctx context.Context, raw map[string]any) (string, error) {
	fields, err := normalize.Record(raw)
	if err != nil {
		return "", err
	}
	id, err := s.store.InsertRecord(ctx, fields)
	if err != nil {
		return "", err
	}
	logger.From(ctx).Info("record stored", logger.ID(id), logger.String("location", fields.Location))
	return id, nil
}

// Update normaliza (misma regla de location obligatoria que en submit) y
// reemplaza todos los campos mutables. Cero filas afectadas ⇒ ErrNotFound.
func (s *Records) Update(ctx context.Context, id string, raw map[string]any) error {
	fields, err := normalize.Record(raw)
	if err != nil {
		return err
	}
	affected, err := s.store.UpdateRecordByID(ctx, id, fields)
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete borra por id. Como en el sistema original, borrar un id inexistente
// no es un error: la operación es idempotente.
func (s *Records) Delete(ctx context.Context, id string) error {
	_, err := s.store.DeleteRecordByID(ctx, id)
	return err
}

// All devuelve todos los registros, created_at descendente.
func (s *Records) All(ctx context.Context) ([]repository.Record, error) {
	return s.store.ListRecords(ctx)
}

// ByLocation filtra por match exacto de location, mismo orden que All.
func (s *Records) ByLocation(ctx context.Context, location string) ([]repository.Record, error) {
	return s.store.ListRecordsByLocation(ctx, location)
}

// ByID devuelve un registro o ErrNotFound.
func (s *Records) ByID(ctx context.Context, id string) (*repository.Record, error) {
	return s.store.FindRecordByID(ctx, id)
}
