// Package memory es un adapter en memoria con el mismo contrato que los
// backends reales. Existe para tests y desarrollo: permite inyectar el store
// en services y bootstrap sin levantar una base.
//
// El mutex cubre cada operación completa, así el check-then-insert de email
// único se comporta igual que el índice/constraint de los backends reales.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

type storedRecord struct {
	rec repository.Record
	seq int64 // desempate determinístico cuando created_at coincide
}

type Store struct {
	mu      sync.RWMutex
	users   map[string]repository.User
	records map[string]storedRecord
	seq     int64

	// now es reemplazable en tests para controlar created_at.
	now func() time.Time
}

func New() *Store {
	return &Store{
		users:   make(map[string]repository.User),
		records: make(map[string]storedRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock reemplaza la fuente de tiempo (sólo tests).
func (s *Store) SetClock(now func() time.Time) { s.now = now }

func newID() string { return uuid.NewString() }

// ---- usuarios ----

func matches(u repository.User, f core.UserFilter) bool {
	if f.Email != nil && u.Email != *f.Email {
		return false
	}
	if f.Password != nil && u.Password != *f.Password {
		return false
	}
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	return true
}

func (s *Store) FindUser(ctx context.Context, f core.UserFilter) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if matches(u, f) {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repository.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) InsertUser(ctx context.Context, u repository.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return "", repository.ErrConflict
		}
	}
	u.ID = newID()
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *Store) UpdateUserByID(ctx context.Context, id string, in repository.UpdateUserInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	u.Name = in.Name
	u.Email = in.Email
	u.Phone = in.Phone
	u.Department = in.Department
	s.users[id] = u
	return 1, nil
}

func (s *Store) UpdateUserPasswordByEmail(ctx context.Context, email, password string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == email {
			u.Password = password
			s.users[id] = u
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Store) DeleteUserByID(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

// ---- registros LEH ----

func (s *Store) InsertRecord(ctx context.Context, f repository.RecordFields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec := repository.Record{
		ID:           newID(),
		RecordFields: f,
		CreatedAt:    s.now(),
	}
	s.records[rec.ID] = storedRecord{rec: rec, seq: s.seq}
	return rec.ID, nil
}

func (s *Store) FindRecordByID(ctx context.Context, id string) (*repository.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sr, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := sr.rec
	return &out, nil
}

func (s *Store) ListRecords(ctx context.Context) ([]repository.Record, error) {
	return s.listRecords(func(repository.Record) bool { return true })
}

func (s *Store) ListRecordsByLocation(ctx context.Context, location string) ([]repository.Record, error) {
	return s.listRecords(func(r repository.Record) bool { return r.Location == location })
}

func (s *Store) listRecords(keep func(repository.Record) bool) ([]repository.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := make([]storedRecord, 0, len(s.records))
	for _, sr := range s.records {
		if keep(sr.rec) {
			stored = append(stored, sr)
		}
	}
	// created_at descendente; seq descendente como desempate.
	sort.Slice(stored, func(i, j int) bool {
		if !stored[i].rec.CreatedAt.Equal(stored[j].rec.CreatedAt) {
			return stored[i].rec.CreatedAt.After(stored[j].rec.CreatedAt)
		}
		return stored[i].seq > stored[j].seq
	})
	out := make([]repository.Record, 0, len(stored))
	for _, sr := range stored {
		out = append(out, sr.rec)
	}
	return out, nil
}

func (s *Store) UpdateRecordByID(ctx context.Context, id string, f repository.RecordFields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sr, ok := s.records[id]
	if !ok {
		return 0, nil
	}
	sr.rec.RecordFields = f // created_at inmutable
	s.records[id] = sr
	return 1, nil
}

func (s *Store) DeleteRecordByID(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return 0, nil
	}
	delete(s.records, id)
	return 1, nil
}

// ---- ciclo de vida ----

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }
