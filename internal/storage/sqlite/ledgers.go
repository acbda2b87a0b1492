package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Meals

type mealsStorage struct {
	db *sql.DB
}

func (s *mealsStorage) InsertMeals(ctx context.Context, entries []storage.MealEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin meals tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO meals (id, date, food_name, quantity_grams, calories, protein, carbs, fats, fiber, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare meal insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID.String(), e.Date, e.FoodName, e.QuantityGrams,
			e.Calories, e.Protein, e.Carbs, e.Fats, e.Fiber, formatTime(e.LoggedAt)); err != nil {
			return fmt.Errorf("failed to insert meal %q: %w", e.FoodName, err)
		}
	}

	return tx.Commit()
}

func (s *mealsStorage) ListMeals(ctx context.Context, from, to string) ([]storage.MealEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, food_name, quantity_grams, calories, protein, carbs, fats, fiber, logged_at
		FROM meals
		WHERE 1 = 1`+where+`
		ORDER BY logged_at ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	result := make([]storage.MealEntry, 0)
	for rows.Next() {
		var (
			e        storage.MealEntry
			loggedAt string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.FoodName, &e.QuantityGrams,
			&e.Calories, &e.Protein, &e.Carbs, &e.Fats, &e.Fiber, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		if e.LoggedAt, err = parseTime(loggedAt); err != nil {
			return nil, fmt.Errorf("meal %s: %w", e.ID, err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MARK: - Sleep

type sleepStorage struct {
	db *sql.DB
}

func (s *sleepStorage) InsertSleep(ctx context.Context, e storage.SleepEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sleep_log (id, date, sleep_time, wake_time, hours, quality, notes, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.Date, e.SleepTime, e.WakeTime, e.Hours, e.Quality, e.Notes, formatTime(e.LoggedAt))
	if err != nil {
		return fmt.Errorf("failed to insert sleep: %w", err)
	}
	return nil
}

func (s *sleepStorage) ListSleep(ctx context.Context, from, to string) ([]storage.SleepEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, sleep_time, wake_time, hours, quality, notes, logged_at
		FROM sleep_log
		WHERE 1 = 1`+where+`
		ORDER BY date DESC, logged_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep: %w", err)
	}
	defer rows.Close()

	result := make([]storage.SleepEntry, 0)
	for rows.Next() {
		var (
			e        storage.SleepEntry
			loggedAt string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.SleepTime, &e.WakeTime, &e.Hours, &e.Quality, &e.Notes, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep: %w", err)
		}
		if e.LoggedAt, err = parseTime(loggedAt); err != nil {
			return nil, fmt.Errorf("sleep %s: %w", e.ID, err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// MARK: - Weight

type weightStorage struct {
	db *sql.DB
}

func (s *weightStorage) InsertWeight(ctx context.Context, e storage.WeightEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weight_log (id, date, weight_kg, notes, logged_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID.String(), e.Date, e.WeightKg, e.Notes, formatTime(e.LoggedAt))
	if err != nil {
		return fmt.Errorf("failed to insert weight: %w", err)
	}
	return nil
}

func (s *weightStorage) ListWeight(ctx context.Context, from, to string) ([]storage.WeightEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, weight_kg, notes, logged_at
		FROM weight_log
		WHERE 1 = 1`+where+`
		ORDER BY date DESC, logged_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight: %w", err)
	}
	defer rows.Close()

	result := make([]storage.WeightEntry, 0)
	for rows.Next() {
		e, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *weightStorage) LatestWeightBefore(ctx context.Context, before string) (*storage.WeightEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, weight_kg, notes, logged_at
		FROM weight_log
		WHERE (? = '' OR date < ?)
		ORDER BY date DESC, logged_at DESC
		LIMIT 1
	`, before, before)
	e, err := scanWeight(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeight(r rowScanner) (storage.WeightEntry, error) {
	var (
		e        storage.WeightEntry
		loggedAt string
	)
	if err := r.Scan(&e.ID, &e.Date, &e.WeightKg, &e.Notes, &loggedAt); err != nil {
		return e, err
	}
	t, err := parseTime(loggedAt)
	if err != nil {
		return e, fmt.Errorf("weight %s: %w", e.ID, err)
	}
	e.LoggedAt = t
	return e, nil
}

// MARK: - Exercise

type exerciseStorage struct {
	db *sql.DB
}

func (s *exerciseStorage) InsertExercise(ctx context.Context, e storage.ExerciseEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercise_log (id, date, exercise_name, duration_minutes, intensity, calories_burned, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.Date, e.Name, e.DurationMinutes, e.Intensity, e.CaloriesBurned, formatTime(e.LoggedAt))
	if err != nil {
		return fmt.Errorf("failed to insert exercise: %w", err)
	}
	return nil
}

func (s *exerciseStorage) ListExercise(ctx context.Context, from, to string) ([]storage.ExerciseEntry, error) {
	where, args := dateRange(from, to, nil)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, exercise_name, duration_minutes, intensity, calories_burned, logged_at
		FROM exercise_log
		WHERE 1 = 1`+where+`
		ORDER BY date DESC, logged_at ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise: %w", err)
	}
	defer rows.Close()

	result := make([]storage.ExerciseEntry, 0)
	for rows.Next() {
		var (
			e        storage.ExerciseEntry
			loggedAt string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Name, &e.DurationMinutes, &e.Intensity, &e.CaloriesBurned, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		if e.LoggedAt, err = parseTime(loggedAt); err != nil {
			return nil, fmt.Errorf("exercise %s: %w", e.ID, err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
