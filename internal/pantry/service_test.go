package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := memory.New()
	foods := nutrition.NewService(st.Foods(), nil)
	_, err := foods.EnsureSeed(context.Background())
	require.NoError(t, err)

	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := NewService(st.Pantry(), foods)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestAdd_CreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	qty := 500.0
	res, err := svc.Add(ctx, AddRequest{FoodName: " Chicken Breast ", QuantityGrams: &qty, Notes: "in freezer"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "chicken breast", res.Item.FoodName)
	assert.True(t, res.Item.Available)

	res, err = svc.Add(ctx, AddRequest{FoodName: "chicken breast"})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Nil(t, res.Item.QuantityGrams)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 165.0, rows[0].Food.Calories)
}

func TestAdd_UnknownFood(t *testing.T) {
	_, err := newTestService(t).Add(context.Background(), AddRequest{FoodName: "pizza"})
	assert.ErrorIs(t, err, nutrition.ErrUnknownFood)
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService(t)
	qty := -5.0
	_, err := svc.Add(context.Background(), AddRequest{FoodName: "rice", QuantityGrams: &qty})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), AddRequest{FoodName: "  "})
	assert.Error(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"eggs", "spinach", "oatmeal"} {
		_, err := svc.Add(ctx, AddRequest{FoodName: name})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	names := make([]string, 0, len(first))
	for _, r := range first {
		names = append(names, r.FoodName)
	}
	assert.Equal(t, []string{"oatmeal", "spinach", "eggs"}, names)

	avail, err := svc.Available(ctx)
	require.NoError(t, err)
	assert.Contains(t, avail, "eggs")
	assert.Len(t, avail, 3)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, AddRequest{FoodName: "banana"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "Banana"))
	assert.ErrorIs(t, svc.Remove(ctx, "banana"), ErrNotInPantry)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
