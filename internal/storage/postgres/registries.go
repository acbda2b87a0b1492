package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MARK: - Profile

type profileStorage struct {
	pool *pgxpool.Pool
}

func (s *profileStorage) GetUserProfile(ctx context.Context) (*storage.UserProfile, error) {
	var p storage.UserProfile
	err := s.pool.QueryRow(ctx, `
		SELECT height_m, target_weight_kg, daily_calorie_goal, activity_level, region, dietary_preferences, updated_at
		FROM user_profile
		WHERE id = 1
	`).Scan(&p.HeightM, &p.TargetWeightKg, &p.DailyCalorieGoal, &p.ActivityLevel, &p.Region, &p.DietaryPreferences, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *profileStorage) SaveUserProfile(ctx context.Context, p storage.UserProfile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profile (id, height_m, target_weight_kg, daily_calorie_goal, activity_level, region, dietary_preferences, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			height_m = EXCLUDED.height_m,
			target_weight_kg = EXCLUDED.target_weight_kg,
			daily_calorie_goal = EXCLUDED.daily_calorie_goal,
			activity_level = EXCLUDED.activity_level,
			region = EXCLUDED.region,
			dietary_preferences = EXCLUDED.dietary_preferences,
			updated_at = EXCLUDED.updated_at
	`, p.HeightM, p.TargetWeightKg, p.DailyCalorieGoal, p.ActivityLevel, p.Region, p.DietaryPreferences, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// MARK: - Pantry

type pantryStorage struct {
	pool *pgxpool.Pool
}

func (s *pantryStorage) UpsertPantryItem(ctx context.Context, item storage.PantryItem) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO pantry (food_name, available, quantity_grams, notes, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (food_name) DO UPDATE SET
			available = EXCLUDED.available,
			quantity_grams = EXCLUDED.quantity_grams,
			notes = EXCLUDED.notes,
			last_updated = EXCLUDED.last_updated
		RETURNING (xmax = 0)
	`, item.FoodName, item.Available, item.QuantityGrams, item.Notes, item.LastUpdated).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert pantry item: %w", err)
	}
	return created, nil
}

func (s *pantryStorage) DeletePantryItem(ctx context.Context, foodName string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pantry WHERE food_name = $1`, foodName)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *pantryStorage) ListPantry(ctx context.Context) ([]storage.PantryRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.food_name, p.available, p.quantity_grams, p.notes, p.last_updated,
		       f.name, f.calories, f.protein, f.carbs, f.fats, f.fiber
		FROM pantry p
		JOIN foods f ON f.name = p.food_name
		WHERE p.available
		ORDER BY p.last_updated DESC, p.food_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry: %w", err)
	}
	defer rows.Close()

	result := make([]storage.PantryRow, 0)
	for rows.Next() {
		var r storage.PantryRow
		if err := rows.Scan(&r.FoodName, &r.Available, &r.QuantityGrams, &r.Notes, &r.LastUpdated,
			&r.Food.Name, &r.Food.Calories, &r.Food.Protein, &r.Food.Carbs, &r.Food.Fats, &r.Food.Fiber); err != nil {
			return nil, fmt.Errorf("failed to scan pantry row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// MARK: - Routines

type routinesStorage struct {
	pool *pgxpool.Pool
}

const routineColumns = `food_name, morning, midday, afternoon, evening, night, latenight,
	preparation_type, effort_level, typical_portion_grams, preference_score, notes, last_updated`

func (s *routinesStorage) GetRoutine(ctx context.Context, foodName string) (*storage.RoutineItem, error) {
	var r storage.RoutineItem
	err := s.pool.QueryRow(ctx, `SELECT `+routineColumns+` FROM food_routines WHERE food_name = $1`, foodName).
		Scan(routineDest(&r)...)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (s *routinesStorage) UpsertRoutine(ctx context.Context, r storage.RoutineItem) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO food_routines (`+routineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (food_name) DO UPDATE SET
			morning = EXCLUDED.morning,
			midday = EXCLUDED.midday,
			afternoon = EXCLUDED.afternoon,
			evening = EXCLUDED.evening,
			night = EXCLUDED.night,
			latenight = EXCLUDED.latenight,
			preparation_type = EXCLUDED.preparation_type,
			effort_level = EXCLUDED.effort_level,
			typical_portion_grams = EXCLUDED.typical_portion_grams,
			preference_score = EXCLUDED.preference_score,
			notes = EXCLUDED.notes,
			last_updated = EXCLUDED.last_updated
		RETURNING (xmax = 0)
	`, r.FoodName, r.Morning, r.Midday, r.Afternoon, r.Evening, r.Night, r.LateNight,
		r.PreparationType, r.EffortLevel, r.TypicalPortionGrams, r.PreferenceScore, r.Notes, r.LastUpdated).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert routine: %w", err)
	}
	return created, nil
}

func (s *routinesStorage) DeleteRoutine(ctx context.Context, foodName string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM food_routines WHERE food_name = $1`, foodName)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *routinesStorage) ListRoutines(ctx context.Context) ([]storage.RoutineRow, error) {
	rows, err := s.pool.Query(ctx, `
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
		var r storage.RoutineRow
		dest := append(routineDest(&r.RoutineItem),
			&r.Food.Name, &r.Food.Calories, &r.Food.Protein, &r.Food.Carbs, &r.Food.Fats, &r.Food.Fiber)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan routine: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func routineDest(r *storage.RoutineItem) []any {
	return []any{
		&r.FoodName, &r.Morning, &r.Midday, &r.Afternoon, &r.Evening, &r.Night, &r.LateNight,
		&r.PreparationType, &r.EffortLevel, &r.TypicalPortionGrams, &r.PreferenceScore, &r.Notes, &r.LastUpdated,
	}
}
