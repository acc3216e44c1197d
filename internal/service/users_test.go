package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/service"
	"github.com/ranjanashish/leh-registry/internal/store/memory"
)

func validUser(email string) repository.CreateUserInput {
	return repository.CreateUserInput{
		Name:       "Ravi Kumar",
		Email:      email,
		Phone:      "9876543210",
		Department: "Operations",
		Password:   "secret1",
	}
}

func TestUsers_AddAndLogin(t *testing.T) {
	ctx := context.Background()
	users := service.NewUsers(memory.New())

	require.NoError(t, users.Add(ctx, validUser("ravi@example.com")))

	u, err := users.Login(ctx, "ravi@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", u.Name)
	assert.Equal(t, repository.RoleUser, u.Role, "add-user siempre fuerza rol user")

	_, err = users.Login(ctx, "ravi@example.com", "wrong")
	assert.True(t, repository.IsNotFound(err))

	_, err = users.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, repository.IsNotFound(err))
}

func TestUsers_AddRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	users := service.NewUsers(memory.New())

	in := validUser("x@example.com")
	in.Phone = "   "
	err := users.Add(ctx, in)
	require.Error(t, err)
	assert.True(t, repository.IsInvalidInput(err))
}

func TestUsers_AddDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := service.NewUsers(memory.New())

	require.NoError(t, users.Add(ctx, validUser("dup@example.com")))

	err := users.Add(ctx, validUser("dup@example.com"))
	require.Error(t, err)
	assert.True(t, repository.IsConflict(err))

	// sigue en conflicto en un segundo intento
	err = users.Add(ctx, validUser("dup@example.com"))
	assert.True(t, repository.IsConflict(err))
}

func TestUsers_Edit(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := service.NewUsers(st)

	require.NoError(t, users.Add(ctx, validUser("edit@example.com")))
	u, err := users.Login(ctx, "edit@example.com", "secret1")
	require.NoError(t, err)

	existed, err := users.Edit(ctx, u.ID, repository.UpdateUserInput{
		Name:       "Ravi K.",
		Email:      "edited@example.com",
		Phone:      "1112223333",
		Department: "Safety",
	})
	require.NoError(t, err)
	assert.True(t, existed)

	// password y rol no se tocan por esta vía
	after, err := users.Login(ctx, "edited@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ravi K.", after.Name)
	assert.Equal(t, repository.RoleUser, after.Role)

	existed, err = users.Edit(ctx, "missing-id", repository.UpdateUserInput{})
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestUsers_DeleteAdminProtected(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := service.NewUsers(st)

	adminID, err := st.InsertUser(ctx, repository.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     repository.RoleAdmin,
	})
	require.NoError(t, err)

	err = users.Delete(ctx, adminID)
	require.Error(t, err)
	assert.True(t, repository.IsProtectedEntity(err))

	// el admin sigue recuperable después del intento
	u, err := st.FindUserByID(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, repository.RoleAdmin, u.Role)
}

func TestUsers_Delete(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	users := service.NewUsers(st)

	require.NoError(t, users.Add(ctx, validUser("gone@example.com")))
	u, err := users.Login(ctx, "gone@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.ID))

	err = users.Delete(ctx, u.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestUsers_ListIncludesPassword(t *testing.T) {
	ctx := context.Background()
	users := service.NewUsers(memory.New())

	require.NoError(t, users.Add(ctx, validUser("leak@example.com")))

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	// leak heredado del sistema original: el listado expone el password
	assert.Equal(t, "secret1", all[0].Password)
}

func TestUsers_ResetPassword(t *testing.T) {
	ctx := context.Background()
	users := service.NewUsers(memory.New())

	require.NoError(t, users.Add(ctx, validUser("reset@example.com")))

	matched, err := users.ResetPassword(ctx, "reset@example.com", "newpass")
	require.NoError(t, err)
	assert.True(t, matched)

	_, err = users.Login(ctx, "reset@example.com", "secret1")
	assert.True(t, repository.IsNotFound(err))
	_, err = users.Login(ctx, "reset@example.com", "newpass")
	assert.NoError(t, err)

	matched, err = users.ResetPassword(ctx, "nobody@example.com", "whatever")
	require.NoError(t, err)
	assert.False(t, matched)

	_, err = users.ResetPassword(ctx, "", "newpass")
	assert.True(t, repository.IsInvalidInput(err))
}
