package summary

import (
	"errors"

	"github.com/fdg312/health-assistant/internal/storage"
)

var (
	// ErrNoData is returned when the requested date or window has no entries.
	ErrNoData      = errors.New("no data")
	ErrInvalidDays = errors.New("days must be between 1 and 3650")
)

const maxDays = 3650

// Energy per gram of macro nutrient.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// MacroSplit — энергия макронутриентов и их доля от калорий
type MacroSplit struct {
	ProteinKcal float64
	CarbsKcal   float64
	FatsKcal    float64
	ProteinPct  float64
	CarbsPct    float64
	FatsPct     float64
}

func splitOf(n storage.Nutrients) MacroSplit {
	s := MacroSplit{
		ProteinKcal: n.Protein * KcalPerGramProtein,
		CarbsKcal:   n.Carbs * KcalPerGramCarbs,
		FatsKcal:    n.Fats * KcalPerGramFat,
	}
	if n.Calories > 0 {
		s.ProteinPct = s.ProteinKcal / n.Calories * 100
		s.CarbsPct = s.CarbsKcal / n.Calories * 100
		s.FatsPct = s.FatsKcal / n.Calories * 100
	}
	return s
}

type DailyNutrition struct {
	Date    string
	Entries []storage.MealEntry // by log time
	Totals  storage.Nutrients
	Split   MacroSplit
}

type DayTotals struct {
	Date string
	storage.Nutrients
}

type NutritionStats struct {
	Days    int
	PerDay  []DayTotals // newest first
	Average storage.Nutrients
}

type SleepVerdict string

const (
	VerdictOptimal      SleepVerdict = "optimal"
	VerdictInsufficient SleepVerdict = "insufficient"
	VerdictExcessive    SleepVerdict = "excessive"
)

// VerdictFor classifies an average nightly duration.
func VerdictFor(avgHours float64) SleepVerdict {
	switch {
	case avgHours < 7:
		return VerdictInsufficient
	case avgHours > 9:
		return VerdictExcessive
	default:
		return VerdictOptimal
	}
}

type SleepSummary struct {
	Days         int
	Entries      []storage.SleepEntry // newest first
	AverageHours float64
	Verdict      SleepVerdict
}

type WeightTrend struct {
	Days    int
	Entries []storage.WeightEntry // newest first
	// Change is latest − earliest; nil with fewer than two entries.
	Change *float64
}

type DayBurn struct {
	Date    string
	Minutes float64
	Burned  float64
}

type ExerciseSummary struct {
	Days         int
	Entries      []storage.ExerciseEntry // newest date first
	PerDay       []DayBurn
	TotalMinutes float64
	TotalBurned  float64
}

type DailySummary struct {
	Date      string
	HasMeals  bool
	Nutrition storage.Nutrients
	Sleep     *storage.SleepEntry
	Exercise  []storage.ExerciseEntry
	Burned    float64
	Weight    *storage.WeightEntry
	// NetCalories is set only when both meals and exercise were logged.
	NetCalories *float64
}

// DayRow — одна строка сводного отчёта за день
type DayRow struct {
	Date            string
	Nutrients       storage.Nutrients
	SleepHours      *float64
	ExerciseMinutes float64
	Burned          float64
	WeightKg        *float64
}
