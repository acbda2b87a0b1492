package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 15, 0, 0, time.Local)

	d, err := ResolveDate("", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d)

	d, err = ResolveDate(" 2024-12-31 ", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d)

	_, err = ResolveDate("31/12/2024", now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ResolveDate("2024-02-30", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-24", WindowStart(now, 7))
	assert.Equal(t, "2025-03-03", WindowStart(now, 0))
}

func TestNutrientsAdd(t *testing.T) {
	a := Nutrients{Calories: 100, Protein: 10, Carbs: 5, Fats: 2, Fiber: 1}
	b := Nutrients{Calories: 50, Protein: 1, Carbs: 1, Fats: 1, Fiber: 1}
	assert.Equal(t, Nutrients{Calories: 150, Protein: 11, Carbs: 6, Fats: 3, Fiber: 2}, a.Add(b))
}
