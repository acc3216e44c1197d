// Package bootstrap garantiza que exista al menos una cuenta admin después
// del arranque. Es idempotente entre reinicios porque la consulta se
// re-evalúa cada vez; dentro del proceso corre exactamente una vez.
//
// No está diseñado para carreras multi-instancia: dos procesos arrancando a
// la vez pueden intentar el insert simultáneamente (limitación conocida; el
// índice único de email acota el daño a un insert fallido).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

// AdminConfig define las credenciales de la cuenta admin canónica.
// Los defaults son los del sistema original; overrideables por config/env.
type AdminConfig struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Password   string
}

func (c AdminConfig) withDefaults() AdminConfig {
	if c.Name == "" {
		c.Name = "Admin"
	}
	if c.Email == "" {
		c.Email = "admin@example.com"
	}
	if c.Phone == "" {
		c.Phone = "9999999999"
	}
	if c.Department == "" {
		c.Department = "Admin Dept"
	}
	if c.Password == "" {
		c.Password = "admin123"
	}
	return c
}

type state int

const (
	stateUnchecked state = iota
	stateVerified
)

// Guarantor ejecuta el check-then-maybe-insert del admin.
// La garantía al completar es "existe al menos un admin", no "exactamente
// uno para siempre".
type Guarantor struct {
	store core.Repository
	cfg   AdminConfig
	state state
}

func New(store core.Repository, cfg AdminConfig) *Guarantor {
	return &Guarantor{store: store, cfg: cfg.withDefaults()}
}

// Ensure corre el bootstrap. Llamadas subsiguientes dentro del proceso son
// no-ops una vez alcanzado el estado Verified.
func (g *Guarantor) Ensure(ctx context.Context) error {
	if g.state == stateVerified {
		return nil
	}

	log := logger.Named("bootstrap")

	role := repository.RoleAdmin
	_, err := g.store.FindUser(ctx, core.UserFilter{Role: &role})
	switch {
	case err == nil:
		log.Info("admin user detected, skipping bootstrap")
		g.state = stateVerified
		return nil
	case !repository.IsNotFound(err):
		return fmt.Errorf("bootstrap: check for existing admin: %w", err)
	}

	_, err = g.store.InsertUser(ctx, repository.User{
		Name:       g.cfg.Name,
		Email:      g.cfg.Email,
		Password:   g.cfg.Password,
		Phone:      g.cfg.Phone,
		Department: g.cfg.Department,
		Role:       repository.RoleAdmin,
	})
	if err != nil {
		// ErrConflict acá significa que el email canónico ya existe con otro
		// rol, o que otra instancia ganó la carrera del insert.
		return fmt.Errorf("bootstrap: create admin: %w", err)
	}

	log.Info("admin user created", logger.Email(g.cfg.Email))
	g.state = stateVerified
	return nil
}
