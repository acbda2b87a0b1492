package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MARK: - Meals

type mealsStorage struct {
	pool *pgxpool.Pool
}

func (s *mealsStorage) InsertMeals(ctx context.Context, entries []storage.MealEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin meals tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO meals (id, date, food_name, quantity_grams, calories, protein, carbs, fats, fiber, logged_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, e.ID, e.Date, e.FoodName, e.QuantityGrams, e.Calories, e.Protein, e.Carbs, e.Fats, e.Fiber, e.LoggedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert meals: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *mealsStorage) ListMeals(ctx context.Context, from, to string) ([]storage.MealEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.pool.Query(ctx, `
		SELECT id, date, food_name, quantity_grams, calories, protein, carbs, fats, fiber, logged_at
		FROM meals
		WHERE TRUE`+where+`
		ORDER BY logged_at ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	result := make([]storage.MealEntry, 0)
	for rows.Next() {
		var e storage.MealEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.FoodName, &e.QuantityGrams,
			&e.Calories, &e.Protein, &e.Carbs, &e.Fats, &e.Fiber, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MARK: - Sleep

type sleepStorage struct {
	pool *pgxpool.Pool
}

func (s *sleepStorage) InsertSleep(ctx context.Context, e storage.SleepEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sleep_log (id, date, sleep_time, wake_time, hours, quality, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Date, e.SleepTime, e.WakeTime, e.Hours, e.Quality, e.Notes, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sleep: %w", err)
	}
	return nil
}

func (s *sleepStorage) ListSleep(ctx context.Context, from, to string) ([]storage.SleepEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.pool.Query(ctx, `
		SELECT id, date, sleep_time, wake_time, hours, quality, notes, logged_at
		FROM sleep_log
		WHERE TRUE`+where+`
		ORDER BY date DESC, logged_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep: %w", err)
	}
	defer rows.Close()

	result := make([]storage.SleepEntry, 0)
	for rows.Next() {
		var e storage.SleepEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.SleepTime, &e.WakeTime, &e.Hours, &e.Quality, &e.Notes, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MARK: - Weight

type weightStorage struct {
	pool *pgxpool.Pool
}

func (s *weightStorage) InsertWeight(ctx context.Context, e storage.WeightEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO weight_log (id, date, weight_kg, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.Date, e.WeightKg, e.Notes, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert weight: %w", err)
	}
	return nil
}

func (s *weightStorage) ListWeight(ctx context.Context, from, to string) ([]storage.WeightEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.pool.Query(ctx, `
		SELECT id, date, weight_kg, notes, logged_at
		FROM weight_log
		WHERE TRUE`+where+`
		ORDER BY date DESC, logged_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight: %w", err)
	}
	defer rows.Close()

	result := make([]storage.WeightEntry, 0)
	for rows.Next() {
		var e storage.WeightEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.WeightKg, &e.Notes, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *weightStorage) LatestWeightBefore(ctx context.Context, before string) (*storage.WeightEntry, error) {
	var e storage.WeightEntry
	err := s.pool.QueryRow(ctx, `
		SELECT id, date, weight_kg, notes, logged_at
		FROM weight_log
		WHERE ($1 = '' OR date < $1)
		ORDER BY date DESC, logged_at DESC
		LIMIT 1
	`, before).Scan(&e.ID, &e.Date, &e.WeightKg, &e.Notes, &e.LoggedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

// MARK: - Exercise

type exerciseStorage struct {
	pool *pgxpool.Pool
}

func (s *exerciseStorage) InsertExercise(ctx context.Context, e storage.ExerciseEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO exercise_log (id, date, exercise_name, duration_minutes, intensity, calories_burned, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Date, e.Name, e.DurationMinutes, e.Intensity, e.CaloriesBurned, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert exercise: %w", err)
	}
	return nil
}

func (s *exerciseStorage) ListExercise(ctx context.Context, from, to string) ([]storage.ExerciseEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.pool.Query(ctx, `
		SELECT id, date, exercise_name, duration_minutes, intensity, calories_burned, logged_at
		FROM exercise_log
		WHERE TRUE`+where+`
		ORDER BY date DESC, logged_at ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise: %w", err)
	}
	defer rows.Close()

	result := make([]storage.ExerciseEntry, 0)
	for rows.Next() {
		var e storage.ExerciseEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Name, &e.DurationMinutes, &e.Intensity, &e.CaloriesBurned, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
