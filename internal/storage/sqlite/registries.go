package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Profile

type profileStorage struct {
	db *sql.DB
}

func (s *profileStorage) GetUserProfile(ctx context.Context) (*storage.UserProfile, error) {
	var p storage.UserProfile
	var height, target, calorieGoal sql.NullFloat64
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT height_m, target_weight_kg, daily_calorie_goal, activity_level, region, dietary_preferences, updated_at
		FROM user_profile
		WHERE id = 1
	`).Scan(&height, &target, &calorieGoal, &p.ActivityLevel, &p.Region, &p.DietaryPreferences, &updatedAt)
	if err != nil {
		return nil, mapErr(err)
	}

	p.HeightM = nullable(height)
	p.TargetWeightKg = nullable(target)
	p.DailyCalorieGoal = nullable(calorieGoal)
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("profile updated_at: %w", err)
	}
	return &p, nil
}

func (s *profileStorage) SaveUserProfile(ctx context.Context, p storage.UserProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profile (id, height_m, target_weight_kg, daily_calorie_goal, activity_level, region, dietary_preferences, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			height_m = excluded.height_m,
			target_weight_kg = excluded.target_weight_kg,
			daily_calorie_goal = excluded.daily_calorie_goal,
			activity_level = excluded.activity_level,
			region = excluded.region,
			dietary_preferences = excluded.dietary_preferences,
			updated_at = excluded.updated_at
	`, nullFloat(p.HeightM), nullFloat(p.TargetWeightKg), nullFloat(p.DailyCalorieGoal), p.ActivityLevel, p.Region, p.DietaryPreferences, formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// MARK: - Pantry

type pantryStorage struct {
	db *sql.DB
}

func (s *pantryStorage) UpsertPantryItem(ctx context.Context, item storage.PantryItem) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin pantry tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	exists, err := rowExists(ctx, tx, `SELECT 1 FROM pantry WHERE food_name = ?`, item.FoodName)
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pantry (food_name, available, quantity_grams, notes, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (food_name) DO UPDATE SET
			available = excluded.available,
			quantity_grams = excluded.quantity_grams,
			notes = excluded.notes,
			last_updated = excluded.last_updated
	`, item.FoodName, boolInt(item.Available), nullFloat(item.QuantityGrams), item.Notes, formatTime(item.LastUpdated))
	if err != nil {
		return false, fmt.Errorf("failed to upsert pantry item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *pantryStorage) DeletePantryItem(ctx context.Context, foodName string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pantry WHERE food_name = ?`, foodName)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	return requireAffected(res)
}

func (s *pantryStorage) ListPantry(ctx context.Context) ([]storage.PantryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.food_name, p.available, p.quantity_grams, p.notes, p.last_updated,
		       f.name, f.calories, f.protein, f.carbs, f.fats, f.fiber
		FROM pantry p
		JOIN foods f ON f.name = p.food_name
		WHERE p.available = 1
		ORDER BY p.last_updated DESC, p.food_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry: %w", err)
	}
	defer rows.Close()

	result := make([]storage.PantryRow, 0)
	for rows.Next() {
		var (
			r           storage.PantryRow
			quantity    sql.NullFloat64
			lastUpdated string
		)
		if err := rows.Scan(&r.FoodName, &r.Available, &quantity, &r.Notes, &lastUpdated,
			&r.Food.Name, &r.Food.Calories, &r.Food.Protein, &r.Food.Carbs, &r.Food.Fats, &r.Food.Fiber); err != nil {
			return nil, fmt.Errorf("failed to scan pantry row: %w", err)
		}
		r.QuantityGrams = nullable(quantity)
		if r.LastUpdated, err = parseTime(lastUpdated); err != nil {
			return nil, fmt.Errorf("pantry %s: %w", r.FoodName, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// MARK: - Routines

type routinesStorage struct {
	db *sql.DB
}

const routineColumns = `food_name, morning, midday, afternoon, evening, night, latenight,
	preparation_type, effort_level, typical_portion_grams, preference_score, notes, last_updated`

func (s *routinesStorage) GetRoutine(ctx context.Context, foodName string) (*storage.RoutineItem, error) {
	var (
		r           storage.RoutineItem
		lastUpdated string
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+routineColumns+` FROM food_routines WHERE food_name = ?`, foodName).
		Scan(routineDest(&r, &lastUpdated)...)
	if err != nil {
		return nil, mapErr(err)
	}
	if r.LastUpdated, err = parseTime(lastUpdated); err != nil {
		return nil, fmt.Errorf("routine %s: %w", r.FoodName, err)
	}
	return &r, nil
}

func (s *routinesStorage) UpsertRoutine(ctx context.Context, r storage.RoutineItem) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin routine tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	exists, err := rowExists(ctx, tx, `SELECT 1 FROM food_routines WHERE food_name = ?`, r.FoodName)
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO food_routines (`+routineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (food_name) DO UPDATE SET
			morning = excluded.morning,
			midday = excluded.midday,
			afternoon = excluded.afternoon,
			evening = excluded.evening,
			night = excluded.night,
			latenight = excluded.latenight,
			preparation_type = excluded.preparation_type,
			effort_level = excluded.effort_level,
			typical_portion_grams = excluded.typical_portion_grams,
			preference_score = excluded.preference_score,
			notes = excluded.notes,
			last_updated = excluded.last_updated
	`, r.FoodName, boolInt(r.Morning), boolInt(r.Midday), boolInt(r.Afternoon), boolInt(r.Evening),
		boolInt(r.Night), boolInt(r.LateNight), r.PreparationType, r.EffortLevel, r.TypicalPortionGrams,
		r.PreferenceScore, r.Notes, formatTime(r.LastUpdated))
	if err != nil {
		return false, fmt.Errorf("failed to upsert routine: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *routinesStorage) DeleteRoutine(ctx context.Context, foodName string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM food_routines WHERE food_name = ?`, foodName)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return requireAffected(res)
}

func (s *routinesStorage) ListRoutines(ctx context.Context) ([]storage.RoutineRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.food_name, r.morning, r.midday, r.afternoon, r.evening, r.night, r.latenight,
		       r.preparation_type, r.effort_level, r.typical_portion_grams, r.preference_score, r.notes, r.last_updated,
		       f.name, f.calories, f.protein, f.carbs, f.fats, f.fiber
		FROM food_routines r
		JOIN foods f ON f.name = r.food_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	defer rows.Close()

	result := make([]storage.RoutineRow, 0)
	for rows.Next() {
		var (
			r           storage.RoutineRow
			lastUpdated string
		)
		dest := append(routineDest(&r.RoutineItem, &lastUpdated),
			&r.Food.Name, &r.Food.Calories, &r.Food.Protein, &r.Food.Carbs, &r.Food.Fats, &r.Food.Fiber)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan routine: %w", err)
		}
		if r.LastUpdated, err = parseTime(lastUpdated); err != nil {
			return nil, fmt.Errorf("routine %s: %w", r.FoodName, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func routineDest(r *storage.RoutineItem, lastUpdated *string) []any {
	return []any{
		&r.FoodName, &r.Morning, &r.Midday, &r.Afternoon, &r.Evening, &r.Night, &r.LateNight,
		&r.PreparationType, &r.EffortLevel, &r.TypicalPortionGrams, &r.PreferenceScore, &r.Notes, lastUpdated,
	}
}

// MARK: - helpers

func rowExists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
