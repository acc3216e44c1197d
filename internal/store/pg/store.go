// Package pg implementa el adapter relacional sobre Postgres (pgx).
// IDs: enteros autoincrementales. Un id que no parsea como entero se trata
// como clave opaca que no matchea filas; no es un error de validación acá.
package pg

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranjanashish/leh-registry/internal/observability/logger"
)

type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type Store struct{ pool *pgxpool.Pool }

// schema mínimo; no hay sistema de migraciones (fuera de alcance), el DDL es
// idempotente y corre en cada arranque.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL UNIQUE,
    password   TEXT NOT NULL DEFAULT '',
    phone      TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    role       TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS leh_data (
    id                  BIGSERIAL PRIMARY KEY,
    user_id             TEXT,
    location            TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT 'N/A',
    permission_type     TEXT NOT NULL DEFAULT 'N/A',
    agency              TEXT NOT NULL DEFAULT 'N/A',
    applicable          TEXT NOT NULL DEFAULT 'N/A',
    registered          TEXT NOT NULL DEFAULT 'N/A',
    registration_number TEXT NOT NULL DEFAULT 'N/A',
    remarks             TEXT NOT NULL DEFAULT 'N/A',
    quantity            BIGINT,
    validity            TEXT,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func New(ctx context.Context, dsn string, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	// Mapear MaxIdleConns → MinConns (pgxpool)
	if cfg.MaxIdleConns > 0 {
		pcfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	// Ping de arranque no bloqueante: la app puede levantar aunque la DB esté
	// momentáneamente caída.
	log := logger.Named("store.pg")
	if err := pool.Ping(ctx); err != nil {
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("pool ready", logger.Int("max_conns", int(pcfg.MaxConns)))
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Pool expone el pool subyacente (stats para /metrics).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

// parseID intenta interpretar el id como clave numérica.
// ok == false ⇒ el id no matchea ninguna fila por definición.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func formatID(n int64) string { return strconv.FormatInt(n, 10) }
