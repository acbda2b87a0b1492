package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fdg312/health-assistant/internal/storage"
)

// Service считает агрегаты по журналам. Окно в N дней — даты с today−N по today включительно.
type Service struct {
	st  storage.Storage
	Now func() time.Time
}

func NewService(st storage.Storage) *Service {
	return &Service{st: st, Now: time.Now}
}

func (s *Service) window(days int) (from, to string, err error) {
	if days < 1 || days > maxDays {
		return "", "", ErrInvalidDays
	}
	now := s.Now()
	return storage.WindowStart(now, days), now.Format(storage.DateLayout), nil
}

// DailyNutrition returns the meals of one date with totals and macro split.
func (s *Service) DailyNutrition(ctx context.Context, date string) (DailyNutrition, error) {
	date, err := storage.ResolveDate(date, s.Now())
	if err != nil {
		return DailyNutrition{}, err
	}

	entries, err := s.st.Meals().ListMeals(ctx, date, date)
	if err != nil {
		return DailyNutrition{}, fmt.Errorf("list meals: %w", err)
	}
	if len(entries) == 0 {
		return DailyNutrition{Date: date}, ErrNoData
	}

	var totals storage.Nutrients
	for _, e := range entries {
		totals = totals.Add(e.Nutrients)
	}

	return DailyNutrition{
		Date:    date,
		Entries: entries,
		Totals:  totals,
		Split:   splitOf(totals),
	}, nil
}

// ConsumedOn returns the calories logged for date (zero when none).
func (s *Service) ConsumedOn(ctx context.Context, date string) (float64, error) {
	entries, err := s.st.Meals().ListMeals(ctx, date, date)
	if err != nil {
		return 0, fmt.Errorf("list meals: %w", err)
	}
	var kcal float64
	for _, e := range entries {
		kcal += e.Calories
	}
	return kcal, nil
}

// NutritionStats returns per-day totals and averages over days that have meals.
func (s *Service) NutritionStats(ctx context.Context, days int) (NutritionStats, error) {
	from, to, err := s.window(days)
	if err != nil {
		return NutritionStats{}, err
	}

	entries, err := s.st.Meals().ListMeals(ctx, from, to)
	if err != nil {
		return NutritionStats{}, fmt.Errorf("list meals: %w", err)
	}
	if len(entries) == 0 {
		return NutritionStats{Days: days}, ErrNoData
	}

	byDate := make(map[string]storage.Nutrients)
	for _, e := range entries {
		byDate[e.Date] = byDate[e.Date].Add(e.Nutrients)
	}

	stats := NutritionStats{Days: days, PerDay: make([]DayTotals, 0, len(byDate))}
	var sum storage.Nutrients
	for date, n := range byDate {
		stats.PerDay = append(stats.PerDay, DayTotals{Date: date, Nutrients: n})
		sum = sum.Add(n)
	}
	sort.Slice(stats.PerDay, func(i, j int) bool {
		return stats.PerDay[i].Date > stats.PerDay[j].Date
	})

	k := float64(len(byDate))
	stats.Average = storage.Nutrients{
		Calories: sum.Calories / k,
		Protein:  sum.Protein / k,
		Carbs:    sum.Carbs / k,
		Fats:     sum.Fats / k,
		Fiber:    sum.Fiber / k,
	}
	return stats, nil
}

// SleepSummary returns the window's sleep entries with average and verdict.
func (s *Service) SleepSummary(ctx context.Context, days int) (SleepSummary, error) {
	from, to, err := s.window(days)
	if err != nil {
		return SleepSummary{}, err
	}

	entries, err := s.st.Sleep().ListSleep(ctx, from, to)
	if err != nil {
		return SleepSummary{}, fmt.Errorf("list sleep: %w", err)
	}
	if len(entries) == 0 {
		return SleepSummary{Days: days}, ErrNoData
	}

	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	avg := total / float64(len(entries))

	return SleepSummary{
		Days:         days,
		Entries:      entries,
		AverageHours: avg,
		Verdict:      VerdictFor(avg),
	}, nil
}

// WeightTrend returns the window's weigh-ins and the overall change.
func (s *Service) WeightTrend(ctx context.Context, days int) (WeightTrend, error) {
	from, to, err := s.window(days)
	if err != nil {
		return WeightTrend{}, err
	}

	entries, err := s.st.Weight().ListWeight(ctx, from, to)
	if err != nil {
		return WeightTrend{}, fmt.Errorf("list weight: %w", err)
	}
	if len(entries) == 0 {
		return WeightTrend{Days: days}, ErrNoData
	}

	trend := WeightTrend{Days: days, Entries: entries}
	if len(entries) >= 2 {
		change := entries[0].WeightKg - entries[len(entries)-1].WeightKg
		trend.Change = &change
	}
	return trend, nil
}

// ExerciseSummary returns the window's sessions with totals per day.
func (s *Service) ExerciseSummary(ctx context.Context, days int) (ExerciseSummary, error) {
	from, to, err := s.window(days)
	if err != nil {
		return ExerciseSummary{}, err
	}

	entries, err := s.st.Exercise().ListExercise(ctx, from, to)
	if err != nil {
		return ExerciseSummary{}, fmt.Errorf("list exercise: %w", err)
	}
	if len(entries) == 0 {
		return ExerciseSummary{Days: days}, ErrNoData
	}

	sum := ExerciseSummary{Days: days, Entries: entries}
	for _, e := range entries {
		sum.TotalMinutes += e.DurationMinutes
		sum.TotalBurned += e.CaloriesBurned

		// entries are newest date first, so days arrive grouped
		if n := len(sum.PerDay); n > 0 && sum.PerDay[n-1].Date == e.Date {
			sum.PerDay[n-1].Minutes += e.DurationMinutes
			sum.PerDay[n-1].Burned += e.CaloriesBurned
			continue
		}
		sum.PerDay = append(sum.PerDay, DayBurn{Date: e.Date, Minutes: e.DurationMinutes, Burned: e.CaloriesBurned})
	}
	return sum, nil
}

// AverageSleep returns the mean hours over the window; ok is false without entries.
func (s *Service) AverageSleep(ctx context.Context, days int) (avg float64, ok bool, err error) {
	sum, err := s.SleepSummary(ctx, days)
	if errors.Is(err, ErrNoData) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return sum.AverageHours, true, nil
}

// DailySummary collects everything logged on one date.
func (s *Service) DailySummary(ctx context.Context, date string) (DailySummary, error) {
	date, err := storage.ResolveDate(date, s.Now())
	if err != nil {
		return DailySummary{}, err
	}
	out := DailySummary{Date: date}

	meals, err := s.st.Meals().ListMeals(ctx, date, date)
	if err != nil {
		return DailySummary{}, fmt.Errorf("list meals: %w", err)
	}
	for _, m := range meals {
		out.Nutrition = out.Nutrition.Add(m.Nutrients)
	}
	out.HasMeals = len(meals) > 0

	sleep, err := s.st.Sleep().ListSleep(ctx, date, date)
	if err != nil {
		return DailySummary{}, fmt.Errorf("list sleep: %w", err)
	}
	if len(sleep) > 0 {
		out.Sleep = &sleep[0]
	}

	out.Exercise, err = s.st.Exercise().ListExercise(ctx, date, date)
	if err != nil {
		return DailySummary{}, fmt.Errorf("list exercise: %w", err)
	}
	for _, e := range out.Exercise {
		out.Burned += e.CaloriesBurned
	}

	weight, err := s.st.Weight().ListWeight(ctx, date, date)
	if err != nil {
		return DailySummary{}, fmt.Errorf("list weight: %w", err)
	}
	if len(weight) > 0 {
		out.Weight = &weight[0]
	}

	if out.HasMeals && len(out.Exercise) > 0 {
		net := out.Nutrition.Calories - out.Burned
		out.NetCalories = &net
	}
	return out, nil
}

// DailyRows returns one row per date in the window that has any entry, newest first.
func (s *Service) DailyRows(ctx context.Context, days int) ([]DayRow, error) {
	from, to, err := s.window(days)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*DayRow)
	row := func(date string) *DayRow {
		r, ok := rows[date]
		if !ok {
			r = &DayRow{Date: date}
			rows[date] = r
		}
		return r
	}

	meals, err := s.st.Meals().ListMeals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	for _, m := range meals {
		r := row(m.Date)
		r.Nutrients = r.Nutrients.Add(m.Nutrients)
	}

	sleep, err := s.st.Sleep().ListSleep(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sleep: %w", err)
	}
	for _, e := range sleep {
		if r := row(e.Date); r.SleepHours == nil {
			h := e.Hours
			r.SleepHours = &h
		}
	}

	exercise, err := s.st.Exercise().ListExercise(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list exercise: %w", err)
	}
	for _, e := range exercise {
		r := row(e.Date)
		r.ExerciseMinutes += e.DurationMinutes
		r.Burned += e.CaloriesBurned
	}

	weight, err := s.st.Weight().ListWeight(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list weight: %w", err)
	}
	for _, e := range weight {
		if r := row(e.Date); r.WeightKg == nil {
			w := e.WeightKg
			r.WeightKg = &w
		}
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	out := make([]DayRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
