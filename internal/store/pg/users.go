package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

const userCols = `id, name, email, password, phone, department, role`

func scanUser(row pgx.Row) (*repository.User, error) {
	var (
		id int64
		u  repository.User
	)
	if err := row.Scan(&id, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Department, &u.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.ID = formatID(id)
	return &u, nil
}

func (s *Store) FindUser(ctx context.Context, f core.UserFilter) (*repository.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE 1=1`
	args := []any{}
	n := 0
	add := func(col string, v *string) {
		if v != nil {
			n++
			q += fmt.Sprintf(" AND %s = $%d", col, n)
			args = append(args, *v)
		}
	}
	add("email", f.Email)
	add("password", f.Password)
	add("role", f.Role)
	q += ` LIMIT 1`

	return scanUser(s.pool.QueryRow(ctx, q, args...))
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*repository.User, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, n))
}

func (s *Store) ListUsers(ctx context.Context) ([]repository.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []repository.User{}
	for rows.Next() {
		var (
			id int64
			u  repository.User
		)
		if err := rows.Scan(&id, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Department, &u.Role); err != nil {
			return nil, err
		}
		u.ID = formatID(id)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) InsertUser(ctx context.Context, u repository.User) (string, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
        INSERT INTO users (name, email, password, phone, department, role)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		u.Name, u.Email, u.Password, u.Phone, u.Department, u.Role,
	).Scan(&id)
	if err != nil {
		// El UNIQUE sobre email es el punto real de enforcement contra la
		// carrera check-then-insert; el pre-check del service es sólo para un
		// mensaje más amable.
		if isUniqueViolation(err) {
			return "", repository.ErrConflict
		}
		return "", err
	}
	return formatID(id), nil
}

func (s *Store) UpdateUserByID(ctx context.Context, id string, in repository.UpdateUserInput) (int64, error) {
	n, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `
        UPDATE users
           SET name = $1, email = $2, phone = $3, department = $4
         WHERE id = $5`,
		in.Name, in.Email, in.Phone, in.Department, n,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrConflict
		}
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) UpdateUserPasswordByEmail(ctx context.Context, email, password string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password = $1 WHERE email = $2`, password, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteUserByID(ctx context.Context, id string) (int64, error) {
	n, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, n)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// isUniqueViolation detecta el SQLSTATE 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
