package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
	"github.com/pandeptwidyaop/agents-rest/internal/services"
	"github.com/pandeptwidyaop/agents-rest/internal/validation"
)

func newTargetStore(t *testing.T) (*services.TargetStore, *recorder) {
	rec := &recorder{}
	return services.NewTargetStore(setupTestDB(t), testGame, rec), rec
}

func TestTargetStore_CreateTarget(t *testing.T) {
	store, rec := newTargetStore(t)
	ctx := context.Background()

	desc := dto.TargetDto{
		ID:         42, // ignored
		Name:       "Rami",
		Position:   "Scout",
		X:          3,
		Y:          7,
		PhotoURL:   "http://x",
		IsDetected: true,
	}

	first, err := store.CreateTarget(ctx, desc)
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, int64(42), first.ID)
	assert.Equal(t, "Rami", first.Name)
	assert.Equal(t, "Scout", first.Role)
	assert.Equal(t, "http://x", first.Image)
	assert.Equal(t, models.TargetAlive, first.Status)
	assert.Equal(t, 3, first.X)
	assert.Equal(t, 7, first.Y)
	assert.True(t, first.IsDetected)

	second, err := store.CreateTarget(ctx, desc)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, []string{"target:created", "target:created"}, rec.types())
}

func TestTargetStore_CreateTarget_Invalid(t *testing.T) {
	store, _ := newTargetStore(t)

	_, err := store.CreateTarget(context.Background(), dto.TargetDto{Name: "", X: 1, Y: 1})

	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.ErrorIs(t, err, validation.ErrInputRequired)
}

func TestTargetStore_GetAllTargets(t *testing.T) {
	store, _ := newTargetStore(t)
	ctx := context.Background()

	empty, err := store.GetAllTargets(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	for _, name := range []string{"A", "B", "C"} {
		_, err := store.CreateTarget(ctx, dto.TargetDto{Name: name})
		require.NoError(t, err)
	}

	all, err := store.GetAllTargets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "C", all[2].Name)
}

func TestTargetStore_IsTargetExist(t *testing.T) {
	store, _ := newTargetStore(t)
	ctx := context.Background()

	exists, err := store.IsTargetExist(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := store.CreateTarget(ctx, dto.TargetDto{Name: "A"})
	require.NoError(t, err)

	exists, err = store.IsTargetExist(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.GetTargetByID(ctx, 9999)
	assert.ErrorIs(t, err, services.ErrTargetNotFound)
}

func TestTargetStore_PlaceTarget(t *testing.T) {
	store, rec := newTargetStore(t)
	ctx := context.Background()

	created, err := store.CreateTarget(ctx, dto.TargetDto{Name: "A", Position: "Boss", X: 500, Y: 500, IsDetected: true})
	require.NoError(t, err)

	placed, err := store.PlaceTarget(ctx, created.ID, dto.LocationDto{X: 3, Y: 7})
	require.NoError(t, err)

	assert.Equal(t, 3, placed.X)
	assert.Equal(t, 7, placed.Y)
	assert.Equal(t, created.ID, placed.ID)
	assert.Equal(t, created.Name, placed.Name)
	assert.Equal(t, created.Role, placed.Role)
	assert.Equal(t, created.Status, placed.Status)
	assert.Equal(t, created.IsDetected, placed.IsDetected)
	assert.Contains(t, rec.types(), "target:pinned")
}

func TestTargetStore_PlaceTarget_Errors(t *testing.T) {
	store, _ := newTargetStore(t)
	ctx := context.Background()

	_, err := store.PlaceTarget(ctx, 9999, dto.LocationDto{X: 1, Y: 1})
	assert.ErrorIs(t, err, services.ErrTargetNotFound)

	created, err := store.CreateTarget(ctx, dto.TargetDto{Name: "A"})
	require.NoError(t, err)

	_, err = store.PlaceTarget(ctx, created.ID, dto.LocationDto{X: 1001, Y: 1})
	assert.ErrorIs(t, err, services.ErrOutOfBounds)

	eliminated, err := store.CreateTarget(ctx, dto.TargetDto{Name: "B", Status: "Eliminated"})
	require.NoError(t, err)
	_, err = store.PlaceTarget(ctx, eliminated.ID, dto.LocationDto{X: 1, Y: 1})
	assert.ErrorIs(t, err, services.ErrTargetEliminated)
}

func TestTargetStore_MoveTarget(t *testing.T) {
	store, rec := newTargetStore(t)
	ctx := context.Background()

	created, err := store.CreateTarget(ctx, dto.TargetDto{Name: "A", Position: "Boss", X: 10, Y: 10, IsDetected: true})
	require.NoError(t, err)

	require.NoError(t, store.MoveTarget(ctx, created.ID, models.North))

	moved, err := store.GetTargetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, moved.X)
	assert.Equal(t, 11, moved.Y)
	assert.Equal(t, created.Name, moved.Name)
	assert.Equal(t, created.Status, moved.Status)
	assert.Equal(t, created.IsDetected, moved.IsDetected)

	require.NoError(t, store.MoveTarget(ctx, created.ID, models.SouthWest))
	moved, err = store.GetTargetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LocationModel{X: 9, Y: 10}, moved.Location())

	assert.Contains(t, rec.types(), "target:moved")
}

func TestTargetStore_MoveTarget_Errors(t *testing.T) {
	store, _ := newTargetStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.MoveTarget(ctx, 9999, models.North), services.ErrTargetNotFound)

	edge, err := store.CreateTarget(ctx, dto.TargetDto{Name: "Edge", X: 0, Y: 1000})
	require.NoError(t, err)

	assert.ErrorIs(t, store.MoveTarget(ctx, edge.ID, models.North), services.ErrOutOfBounds)
	assert.ErrorIs(t, store.MoveTarget(ctx, edge.ID, models.West), services.ErrOutOfBounds)
	assert.ErrorIs(t, store.MoveTarget(ctx, edge.ID, models.Direction("up")), services.ErrInvalidDirection)

	unchanged, err := store.GetTargetByID(ctx, edge.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LocationModel{X: 0, Y: 1000}, unchanged.Location())
}
