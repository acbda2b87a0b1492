package nutrition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/fdg312/health-assistant/internal/storage/memory"
)

func TestService_EnsureSeed(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(memory.New().Foods(), zap.New(core))

	n, err := svc.EnsureSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 35, n)
	assert.Equal(t, 1, logs.FilterMessage("food table seeded").Len())

	// второй вызов ничего не добавляет
	n, err = svc.EnsureSeed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	foods, err := svc.ListFoods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 35)
	assert.Equal(t, "almonds", foods[0].Name)

	again, err := svc.ListFoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, foods, again)
}

func TestService_AddFood(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New().Foods(), nil)

	f, err := svc.AddFood(ctx, AddFoodRequest{Name: "  Quinoa ", Calories: 120, Protein: 4.4, Carbs: 21, Fats: 1.9, Fiber: 2.8})
	require.NoError(t, err)
	assert.Equal(t, "quinoa", f.Name)

	_, err = svc.AddFood(ctx, AddFoodRequest{Name: "QUINOA", Calories: 1})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = svc.AddFood(ctx, AddFoodRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.AddFood(ctx, AddFoodRequest{Name: "ghee", Calories: -10})
	assert.Error(t, err)

	got, err := svc.Lookup(ctx, "Quinoa")
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Calories)

	_, err = svc.Lookup(ctx, "pizza")
	assert.ErrorIs(t, err, ErrUnknownFood)
}
