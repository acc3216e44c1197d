// Package store abre el backend de persistencia configurado y lo expone como
// core.Repository. El driver se decide una sola vez en el arranque.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ranjanashish/leh-registry/internal/store/core"
	"github.com/ranjanashish/leh-registry/internal/store/memory"
	"github.com/ranjanashish/leh-registry/internal/store/mongo"
	"github.com/ranjanashish/leh-registry/internal/store/pg"
)

type Config struct {
	Driver   string
	DSN      string
	Postgres pg.Config
	Mongo    MongoConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

// Open instancia el adapter según el driver configurado.
// "memory" existe para desarrollo y tests; no persiste nada.
func Open(ctx context.Context, cfg Config) (core.Repository, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres", "pg", "postgresql":
		return pg.New(ctx, cfg.DSN, cfg.Postgres)
	case "mongo", "mongodb":
		return mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
