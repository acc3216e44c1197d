package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
)

const recordCols = `id, user_id, location, description, permission_type, agency,
    applicable, registered, registration_number, remarks, quantity, validity, created_at`

func scanRecord(row pgx.Row) (*repository.Record, error) {
	var (
		id int64
		r  repository.Record
	)
	err := row.Scan(&id, &r.UserID, &r.Location, &r.Description, &r.PermissionType,
		&r.Agency, &r.Applicable, &r.Registered, &r.RegistrationNumber, &r.Remarks,
		&r.Quantity, &r.Validity, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	r.ID = formatID(id)
	return &r, nil
}

func (s *Store) InsertRecord(ctx context.Context, f repository.RecordFields) (string, error) {
	var id int64
	// created_at lo pone la DB (DEFAULT now()); es el "store layer" del contrato.
	err := s.pool.QueryRow(ctx, `
        INSERT INTO leh_data (user_id, location, description, permission_type, agency,
            applicable, registered, registration_number, remarks, quantity, validity)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id`,
		f.UserID, f.Location, f.Description, f.PermissionType, f.Agency,
		f.Applicable, f.Registered, f.RegistrationNumber, f.Remarks, f.Quantity, f.Validity,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return formatID(id), nil
}

func (s *Store) FindRecordByID(ctx context.Context, id string) (*repository.Record, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return scanRecord(s.pool.QueryRow(ctx, `SELECT `+recordCols+` FROM leh_data WHERE id = $1`, n))
}

func (s *Store) ListRecords(ctx context.Context) ([]repository.Record, error) {
	return s.listRecords(ctx, `SELECT `+recordCols+` FROM leh_data ORDER BY created_at DESC, id DESC`)
}

func (s *Store) ListRecordsByLocation(ctx context.Context, location string) ([]repository.Record, error) {
	return s.listRecords(ctx,
		`SELECT `+recordCols+` FROM leh_data WHERE location = $1 ORDER BY created_at DESC, id DESC`,
		location)
}

func (s *Store) listRecords(ctx context.Context, q string, args ...any) ([]repository.Record, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []repository.Record{}
	for rows.Next() {
		var (
			id int64
			r  repository.Record
		)
		err := rows.Scan(&id, &r.UserID, &r.Location, &r.Description, &r.PermissionType,
			&r.Agency, &r.Applicable, &r.Registered, &r.RegistrationNumber, &r.Remarks,
			&r.Quantity, &r.Validity, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		r.ID = formatID(id)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRecordByID(ctx context.Context, id string, f repository.RecordFields) (int64, error) {
	n, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	// Reemplazo completo de los campos mutables; created_at queda intacto.
	tag, err := s.pool.Exec(ctx, `
        UPDATE leh_data
           SET user_id = $1, location = $2, description = $3, permission_type = $4,
               agency = $5, applicable = $6, registered = $7, registration_number = $8,
               remarks = $9, quantity = $10, validity = $11
         WHERE id = $12`,
		f.UserID, f.Location, f.Description, f.PermissionType, f.Agency,
		f.Applicable, f.Registered, f.RegistrationNumber, f.Remarks, f.Quantity, f.Validity, n,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteRecordByID(ctx context.Context, id string) (int64, error) {
	n, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM leh_data WHERE id = $1`, n)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
