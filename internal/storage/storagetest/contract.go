// Package storagetest holds behaviour checks shared by every storage.Storage backend.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/storage"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

// Run exercises a fresh backend returned by open for every subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Storage) {
	t.Run("foods", func(t *testing.T) { testFoods(t, open(t)) })
	t.Run("meals", func(t *testing.T) { testMeals(t, open(t)) })
	t.Run("sleep", func(t *testing.T) { testSleep(t, open(t)) })
	t.Run("weight", func(t *testing.T) { testWeight(t, open(t)) })
	t.Run("exercise", func(t *testing.T) { testExercise(t, open(t)) })
	t.Run("profile", func(t *testing.T) { testProfile(t, open(t)) })
	t.Run("pantry", func(t *testing.T) { testPantry(t, open(t)) })
	t.Run("routines", func(t *testing.T) { testRoutines(t, open(t)) })
}

func seedFoods(t *testing.T, s storage.Storage, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, s.Foods().CreateFood(context.Background(), storage.FoodProfile{
			Name:      n,
			Nutrients: storage.Nutrients{Calories: 100, Protein: 10, Carbs: 10, Fats: 1, Fiber: 1},
		}))
	}
}

func testFoods(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	seedFoods(t, s, "rice", "apple")

	err := s.Foods().CreateFood(ctx, storage.FoodProfile{Name: "apple"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	foods, err := s.Foods().ListFoods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "apple", foods[0].Name)
	assert.Equal(t, "rice", foods[1].Name)

	f, err := s.Foods().GetFood(ctx, "rice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, f.Calories)

	_, err = s.Foods().GetFood(ctx, "pizza")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err := s.Foods().CountFoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func testMeals(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	entries := []storage.MealEntry{
		{ID: uuid.New(), Date: "2025-03-09", FoodName: "rice", QuantityGrams: 150, Nutrients: storage.Nutrients{Calories: 168}, LoggedAt: base.Add(-24 * time.Hour)},
		{ID: uuid.New(), Date: "2025-03-10", FoodName: "eggs", QuantityGrams: 100, Nutrients: storage.Nutrients{Calories: 155}, LoggedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Date: "2025-03-10", FoodName: "apple", QuantityGrams: 50, Nutrients: storage.Nutrients{Calories: 26}, LoggedAt: base},
	}
	require.NoError(t, s.Meals().InsertMeals(ctx, entries))
	require.NoError(t, s.Meals().InsertMeals(ctx, nil))

	day, err := s.Meals().ListMeals(ctx, "2025-03-10", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "apple", day[0].FoodName)
	assert.Equal(t, "eggs", day[1].FoodName)
	assert.True(t, day[0].LoggedAt.Equal(base))

	all, err := s.Meals().ListMeals(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.Meals().ListMeals(ctx, "2025-04-01", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSleep(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	for i, d := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		require.NoError(t, s.Sleep().InsertSleep(ctx, storage.SleepEntry{
			ID: uuid.New(), Date: d, SleepTime: "23:00", WakeTime: "07:00", Hours: 8,
			Quality: "good", LoggedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := s.Sleep().ListSleep(ctx, "2025-03-09", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-03-10", entries[0].Date)
	assert.Equal(t, "2025-03-09", entries[1].Date)
	assert.Equal(t, "23:00", entries[0].SleepTime)
}

func testWeight(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.Weight().LatestWeightBefore(ctx, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Weight().InsertWeight(ctx, storage.WeightEntry{ID: uuid.New(), Date: "2025-03-01", WeightKg: 80, LoggedAt: base}))
	require.NoError(t, s.Weight().InsertWeight(ctx, storage.WeightEntry{ID: uuid.New(), Date: "2025-03-05", WeightKg: 79.2, LoggedAt: base}))
	require.NoError(t, s.Weight().InsertWeight(ctx, storage.WeightEntry{ID: uuid.New(), Date: "2025-03-10", WeightKg: 78.5, Notes: "after run", LoggedAt: base}))

	latest, err := s.Weight().LatestWeightBefore(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 78.5, latest.WeightKg)
	assert.Equal(t, "after run", latest.Notes)

	prev, err := s.Weight().LatestWeightBefore(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 79.2, prev.WeightKg)

	_, err = s.Weight().LatestWeightBefore(ctx, "2025-03-01")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	entries, err := s.Weight().ListWeight(ctx, "2025-03-02", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-03-10", entries[0].Date)
}

func testExercise(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	require.NoError(t, s.Exercise().InsertExercise(ctx, storage.ExerciseEntry{ID: uuid.New(), Date: "2025-03-09", Name: "walk", DurationMinutes: 30, Intensity: "light", CaloriesBurned: 90, LoggedAt: base}))
	require.NoError(t, s.Exercise().InsertExercise(ctx, storage.ExerciseEntry{ID: uuid.New(), Date: "2025-03-10", Name: "run", DurationMinutes: 20, Intensity: "intense", CaloriesBurned: 200, LoggedAt: base}))
	require.NoError(t, s.Exercise().InsertExercise(ctx, storage.ExerciseEntry{ID: uuid.New(), Date: "2025-03-10", Name: "yoga", DurationMinutes: 15, Intensity: "light", CaloriesBurned: 45, LoggedAt: base.Add(time.Hour)}))

	entries, err := s.Exercise().ListExercise(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "run", entries[0].Name)
	assert.Equal(t, "yoga", entries[1].Name)
	assert.Equal(t, "walk", entries[2].Name)
}

func testProfile(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	_, err := s.Profile().GetUserProfile(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	height := 1.75
	require.NoError(t, s.Profile().SaveUserProfile(ctx, storage.UserProfile{HeightM: &height, Region: "India", UpdatedAt: base}))

	p, err := s.Profile().GetUserProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.HeightM)
	assert.Equal(t, 1.75, *p.HeightM)
	assert.Nil(t, p.TargetWeightKg)
	assert.Equal(t, "India", p.Region)

	goal := 2000.0
	p.DailyCalorieGoal = &goal
	require.NoError(t, s.Profile().SaveUserProfile(ctx, *p))

	p, err = s.Profile().GetUserProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p.DailyCalorieGoal)
	assert.Equal(t, 2000.0, *p.DailyCalorieGoal)
	assert.Equal(t, "India", p.Region)
}

func testPantry(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	seedFoods(t, s, "eggs", "spinach", "dal")

	created, err := s.Pantry().UpsertPantryItem(ctx, storage.PantryItem{FoodName: "eggs", Available: true, LastUpdated: base})
	require.NoError(t, err)
	assert.True(t, created)

	qty := 200.0
	created, err = s.Pantry().UpsertPantryItem(ctx, storage.PantryItem{FoodName: "eggs", Available: true, QuantityGrams: &qty, LastUpdated: base.Add(time.Minute)})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = s.Pantry().UpsertPantryItem(ctx, storage.PantryItem{FoodName: "spinach", Available: true, LastUpdated: base})
	require.NoError(t, err)
	_, err = s.Pantry().UpsertPantryItem(ctx, storage.PantryItem{FoodName: "dal", Available: false, LastUpdated: base.Add(time.Hour)})
	require.NoError(t, err)

	rows, err := s.Pantry().ListPantry(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "eggs", rows[0].FoodName)
	require.NotNil(t, rows[0].QuantityGrams)
	assert.Equal(t, 200.0, *rows[0].QuantityGrams)
	assert.Equal(t, 100.0, rows[0].Food.Calories)
	assert.Equal(t, "spinach", rows[1].FoodName)
	assert.Nil(t, rows[1].QuantityGrams)

	require.NoError(t, s.Pantry().DeletePantryItem(ctx, "eggs"))
	assert.ErrorIs(t, s.Pantry().DeletePantryItem(ctx, "eggs"), storage.ErrNotFound)
}

func testRoutines(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	seedFoods(t, s, "oatmeal", "banana")

	item := storage.RoutineItem{
		FoodName: "oatmeal", Morning: true, PreparationType: "cook", EffortLevel: "medium",
		TypicalPortionGrams: 50, PreferenceScore: 8, LastUpdated: base,
	}
	created, err := s.Routines().UpsertRoutine(ctx, item)
	require.NoError(t, err)
	assert.True(t, created)

	item.Evening = true
	item.PreferenceScore = 9
	created, err = s.Routines().UpsertRoutine(ctx, item)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.Routines().GetRoutine(ctx, "oatmeal")
	require.NoError(t, err)
	assert.True(t, got.Morning)
	assert.True(t, got.Evening)
	assert.False(t, got.LateNight)
	assert.Equal(t, 9, got.PreferenceScore)
	assert.Equal(t, "medium", got.EffortLevel)

	_, err = s.Routines().GetRoutine(ctx, "banana")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.Routines().UpsertRoutine(ctx, storage.RoutineItem{FoodName: "banana", LateNight: true, EffortLevel: "easy", TypicalPortionGrams: 100, PreferenceScore: 5, LastUpdated: base})
	require.NoError(t, err)

	rows, err := s.Routines().ListRoutines(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, r.FoodName, r.Food.Name)
	}

	require.NoError(t, s.Routines().DeleteRoutine(ctx, "banana"))
	assert.ErrorIs(t, s.Routines().DeleteRoutine(ctx, "banana"), storage.ErrNotFound)
}
