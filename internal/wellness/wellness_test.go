package wellness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	cases := []struct {
		weight, height float64
		category       string
	}{
		{50, 1.75, "Underweight"},
		{70, 1.75, "Normal weight"},
		{85, 1.75, "Overweight"},
		{100, 1.75, "Obese"},
	}
	for _, tc := range cases {
		got, err := CalculateBMI(BMIRequest{WeightKg: tc.weight, HeightM: tc.height})
		require.NoError(t, err)
		assert.Equal(t, tc.category, got.Category, "weight %.0f", tc.weight)
	}

	got, err := CalculateBMI(BMIRequest{WeightKg: 70, HeightM: 1.75})
	require.NoError(t, err)
	assert.InDelta(t, 22.857, got.Value, 1e-3)

	_, err = CalculateBMI(BMIRequest{WeightKg: 70, HeightM: 0})
	assert.Error(t, err)
	_, err = CalculateBMI(BMIRequest{WeightKg: 70, HeightM: 175})
	assert.Error(t, err)
}

func TestDailyWater(t *testing.T) {
	got, err := DailyWater(70)
	require.NoError(t, err)
	assert.Equal(t, 2100.0, got.MinML)
	assert.Equal(t, 2450.0, got.MaxML)

	_, err = DailyWater(-1)
	assert.Error(t, err)
}

func TestStepsToCalories(t *testing.T) {
	kcal, err := StepsToCalories(StepsRequest{Steps: 10000})
	require.NoError(t, err)
	assert.InDelta(t, 400, kcal, 1e-9)

	kcal, err = StepsToCalories(StepsRequest{Steps: 10000, WeightKg: 35})
	require.NoError(t, err)
	assert.InDelta(t, 200, kcal, 1e-9)

	_, err = StepsToCalories(StepsRequest{Steps: -1})
	assert.Error(t, err)
}

func TestHeartRate(t *testing.T) {
	got, err := HeartRate(HeartRateRequest{Age: 30})
	require.NoError(t, err)
	assert.Equal(t, 190, got.MaxHR)
	require.Len(t, got.Zones, 4)
	assert.InDelta(t, 125, got.Zones[0].Low, 1e-9)
	assert.InDelta(t, 138, got.Zones[0].High, 1e-9)
	assert.InDelta(t, 177, got.Zones[3].High, 1e-9)

	_, err = HeartRate(HeartRateRequest{Age: 0})
	assert.Error(t, err)
}
