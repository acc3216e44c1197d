// Package service contiene la lógica de negocio sobre el store adapter:
// reglas de unicidad, protección del admin y normalización de registros LEH.
// Los controllers HTTP sólo traducen estos resultados al wire format.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

// Users implementa las operaciones de cuentas contra el store adapter.
type Users struct {
	store core.Repository
}

func NewUsers(store core.Repository) *Users {
	return &Users{store: store}
}

// Login compara email y password en texto plano vía findOne.
// Sin hashing ni comparación timing-safe: debilidad conocida y documentada
// del sistema, preservada a propósito. ErrNotFound ⇒ credenciales inválidas.
func (s *Users) Login(ctx context.Context, email, password string) (*repository.User, error) {
	return s.store.FindUser(ctx, core.UserFilter{Email: &email, Password: &password})
}

// Add crea un usuario con rol "user" forzado (el rol nunca lo decide el
// caller por esta vía). Los cinco campos son obligatorios.
func (s *Users) Add(ctx context.Context, in repository.CreateUserInput) error {
	if anyBlank(in.Name, in.Email, in.Phone, in.Department, in.Password) {
		return fmt.Errorf("%w: all fields are required", repository.ErrInvalidInput)
	}

	// Pre-check de email: fast-path para un 409 con mensaje amable. El
	// enforcement real es el índice/constraint único del backend, que cubre
	// la carrera entre este check y el insert.
	if _, err := s.store.FindUser(ctx, core.UserFilter{Email: &in.Email}); err == nil {
		return repository.ErrConflict
	} else if !repository.IsNotFound(err) {
		return err
	}

	_, err := s.store.InsertUser(ctx, repository.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   in.Password,
		Phone:      in.Phone,
		Department: in.Department,
		Role:       repository.RoleUser,
	})
	if err != nil {
		return err
	}

	logger.From(ctx).Info("user created", logger.Email(in.Email))
	return nil
}

// Edit actualiza name/email/phone/department de forma incondicional.
// No re-chequea unicidad de email (inconsistencia heredada y aceptada).
// Devuelve si el target existía.
func (s *Users) Edit(ctx context.Context, id string, in repository.UpdateUserInput) (bool, error) {
	affected, err := s.store.UpdateUserByID(ctx, id, in)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete borra un usuario por id. Inexistente ⇒ ErrNotFound (resultado
// success=false, no un fallo duro); rol admin ⇒ ErrProtectedEntity.
func (s *Users) Delete(ctx context.Context, id string) error {
	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == repository.RoleAdmin {
		return repository.ErrProtectedEntity
	}
	if _, err := s.store.DeleteUserByID(ctx, id); err != nil {
		return err
	}
	logger.From(ctx).Info("user deleted", logger.UserID(id))
	return nil
}

// List devuelve todos los usuarios, sin filtro ni orden particular.
// Incluye el campo password (leak documentado del sistema original;
// preservado, no "arreglar" en silencio).
func (s *Users) List(ctx context.Context) ([]repository.User, error) {
	return s.store.ListUsers(ctx)
}

// ResetPassword actualiza el password por filtro de email.
// Devuelve si alguna fila matcheó.
func (s *Users) ResetPassword(ctx context.Context, email, newPassword string) (bool, error) {
	if anyBlank(email, newPassword) {
		return false, fmt.Errorf("%w: email and new password required", repository.ErrInvalidInput)
	}
	affected, err := s.store.UpdateUserPasswordByEmail(ctx, email, newPassword)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func anyBlank(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
