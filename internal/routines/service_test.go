package routines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/fdg312/health-assistant/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := memory.New()
	foods := nutrition.NewService(st.Foods(), nil)
	_, err := foods.EnsureSeed(context.Background())
	require.NoError(t, err)

	svc := NewService(st.Routines(), foods)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	return svc
}

func names(rows []storage.RoutineRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.FoodName)
	}
	return out
}

func TestBandForHour(t *testing.T) {
	cases := map[int]Band{
		0: LateNight, 5: LateNight, 6: Morning, 9: Morning, 10: Midday, 11: Midday,
		12: Afternoon, 15: Afternoon, 16: Evening, 19: Evening, 20: Night, 21: Night,
		22: Night, 23: LateNight,
	}
	for hour, want := range cases {
		assert.Equal(t, want, BandForHour(hour), "hour %d", hour)
	}
}

func TestParseBand(t *testing.T) {
	b, err := ParseBand(" Evening ")
	require.NoError(t, err)
	assert.Equal(t, Evening, b)

	_, err = ParseBand("brunch")
	assert.ErrorIs(t, err, ErrUnknownBand)
}

func TestEffortRank(t *testing.T) {
	assert.Less(t, EffortRank("easy"), EffortRank("medium"))
	assert.Less(t, EffortRank("medium"), EffortRank("HARD"))
	assert.Equal(t, EffortEasy, EffortGroup("whatever"))
}

func TestAdd_DefaultsAndUpsert(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	res, err := svc.Add(ctx, AddRequest{FoodName: "Maggie", Bands: []Band{Evening, LateNight}})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "maggie", res.Item.FoodName)
	assert.Equal(t, EffortEasy, res.Item.EffortLevel)
	assert.Equal(t, 100.0, res.Item.TypicalPortionGrams)
	assert.Equal(t, 5, res.Item.PreferenceScore)
	assert.Equal(t, []Band{Evening, LateNight}, BandsOf(res.Item))

	res, err = svc.Add(ctx, AddRequest{FoodName: "maggie", Bands: []Band{Night}, PreferenceScore: 9})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, []Band{Night}, BandsOf(res.Item))
}

func TestAdd_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, AddRequest{FoodName: "pizza"})
	assert.ErrorIs(t, err, nutrition.ErrUnknownFood)

	_, err = svc.Add(ctx, AddRequest{FoodName: "bread", PreferenceScore: 11})
	assert.Error(t, err)

	_, err = svc.Add(ctx, AddRequest{FoodName: "bread", EffortLevel: "trivial"})
	assert.Error(t, err)

	_, err = svc.Add(ctx, AddRequest{FoodName: "bread", Bands: []Band{"brunch"}})
	assert.Error(t, err)
}

func TestView_Ordering(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	reqs := []AddRequest{
		{FoodName: "paratha", Bands: []Band{Morning}, EffortLevel: "hard", PreferenceScore: 8},
		{FoodName: "poha", Bands: []Band{Morning}, EffortLevel: "medium", PreferenceScore: 8},
		{FoodName: "bread", Bands: []Band{Morning}, EffortLevel: "medium", PreferenceScore: 8},
		{FoodName: "jam", Bands: []Band{Morning}, PreferenceScore: 6},
		{FoodName: "maggie", Bands: []Band{Evening}, PreferenceScore: 9},
	}
	for _, r := range reqs {
		_, err := svc.Add(ctx, r)
		require.NoError(t, err)
	}

	morning, err := svc.View(ctx, "morning")
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "poha", "paratha", "jam"}, names(morning))

	all, err := svc.View(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, []string{"maggie", "bread", "paratha", "poha", "jam"}, names(all))

	medium, err := svc.ForBand(ctx, Morning, "medium")
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "poha"}, names(medium))

	night, err := svc.View(ctx, "night")
	require.NoError(t, err)
	assert.Empty(t, night)

	_, err = svc.View(ctx, "brunch")
	assert.ErrorIs(t, err, ErrUnknownBand)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, AddRequest{FoodName: "chana", Bands: []Band{Afternoon}})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "CHANA"))
	assert.ErrorIs(t, svc.Remove(ctx, "chana"), ErrNotInRoutines)
}

func TestBulkSetup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, AddRequest{FoodName: "poha", Bands: []Band{Morning}, EffortLevel: "medium", PreferenceScore: 7})
	require.NoError(t, err)

	res, err := svc.BulkSetup(ctx, map[Band]string{
		Morning: "bread, poha,,",
		Evening: "maggie, pizza, poha",
	})
	require.NoError(t, err)

	assert.Equal(t, []BulkEntry{
		{FoodName: "bread", Band: Morning},
		{FoodName: "poha", Band: Morning},
		{FoodName: "maggie", Band: Evening},
		{FoodName: "poha", Band: Evening},
	}, res.Added)
	assert.Equal(t, []string{"pizza"}, res.Failed)

	evening, err := svc.View(ctx, "evening")
	require.NoError(t, err)
	require.Len(t, evening, 2)
	// poha keeps its own preference and effort
	assert.Equal(t, "poha", evening[0].FoodName)
	assert.Equal(t, 7, evening[0].PreferenceScore)
	assert.Equal(t, "medium", evening[0].EffortLevel)
	assert.True(t, evening[0].Morning)

	assert.InDelta(t, 400, PortionCalories(evening[1]), 1e-9)
}
