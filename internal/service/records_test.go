package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/service"
	"github.com/ranjanashish/leh-registry/internal/store/memory"
)

func TestRecords_SubmitRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := service.NewRecords(memory.New())

	id, err := records.Submit(ctx, map[string]any{
		"location": "Gate-3",
		"quantity": "7",
	})
	require.NoError(t, err)

	got, err := records.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gate-3", got.Location)
	assert.Equal(t, "N/A", got.Description)
	require.NotNil(t, got.Quantity)
	assert.Equal(t, int64(7), *got.Quantity)
	assert.Nil(t, got.Validity)
	assert.False(t, got.CreatedAt.IsZero())

	byLoc, err := records.ByLocation(ctx, "Gate-3")
	require.NoError(t, err)
	require.Len(t, byLoc, 1)
	assert.Equal(t, id, byLoc[0].ID)

	empty, err := records.ByLocation(ctx, "Gate-4")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecords_SubmitLocationRequired(t *testing.T) {
	ctx := context.Background()
	records := service.NewRecords(memory.New())

	for _, raw := range []map[string]any{
		{"description": "no location"},
		{"location": "   ", "quantity": "3"},
	} {
		_, err := records.Submit(ctx, raw)
		require.Error(t, err)
		assert.True(t, repository.IsInvalidInput(err))
	}
}

func TestRecords_UpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	records := service.NewRecords(st)

	id, err := records.Submit(ctx, map[string]any{
		"location": "Gate-3",
		"agency":   "PESO",
		"validity": "2025",
	})
	require.NoError(t, err)

	before, err := records.ByID(ctx, id)
	require.NoError(t, err)

	err = records.Update(ctx, id, map[string]any{"location": "Gate-5"})
	require.NoError(t, err)

	after, err := records.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Gate-5", after.Location)
	// reemplazo completo: lo que no vino en el update vuelve a default
	assert.Equal(t, "N/A", after.Agency)
	assert.Nil(t, after.Validity)
	// created_at inmutable
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
}

func TestRecords_UpdateValidation(t *testing.T) {
	ctx := context.Background()
	records := service.NewRecords(memory.New())

	id, err := records.Submit(ctx, map[string]any{"location": "Gate-1"})
	require.NoError(t, err)

	// la regla de location obligatoria aplica también en update
	err = records.Update(ctx, id, map[string]any{"location": "  "})
	require.Error(t, err)
	assert.True(t, repository.IsInvalidInput(err))

	err = records.Update(ctx, "missing-id", map[string]any{"location": "Gate-2"})
	assert.True(t, repository.IsNotFound(err))
}

func TestRecords_ListSortedByCreatedAtDesc(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	records := service.NewRecords(st)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	st.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	first, err := records.Submit(ctx, map[string]any{"location": "A"})
	require.NoError(t, err)
	second, err := records.Submit(ctx, map[string]any{"location": "B"})
	require.NoError(t, err)
	third, err := records.Submit(ctx, map[string]any{"location": "A"})
	require.NoError(t, err)

	all, err := records.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third, second, first}, []string{all[0].ID, all[1].ID, all[2].ID})

	byA, err := records.ByLocation(ctx, "A")
	require.NoError(t, err)
	require.Len(t, byA, 2)
	assert.Equal(t, third, byA[0].ID)
	assert.Equal(t, first, byA[1].ID)
}

func TestRecords_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	records := service.NewRecords(memory.New())

	id, err := records.Submit(ctx, map[string]any{"location": "Gate-9"})
	require.NoError(t, err)

	require.NoError(t, records.Delete(ctx, id))
	// borrar de nuevo no es error
	require.NoError(t, records.Delete(ctx, id))

	_, err = records.ByID(ctx, id)
	assert.True(t, repository.IsNotFound(err))
}

func TestRecords_WeakUserReference(t *testing.T) {
	ctx := context.Background()
	records := service.NewRecords(memory.New())

	// user_id colgante permitido por diseño: no se valida existencia
	id, err := records.Submit(ctx, map[string]any{
		"location": "Gate-2",
		"user_id":  "507f1f77bcf86cd799439011",
	})
	require.NoError(t, err)

	got, err := records.ByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "507f1f77bcf86cd799439011", *got.UserID)
}
