package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type foodsStorage struct {
	pool *pgxpool.Pool
}

func (s *foodsStorage) ListFoods(ctx context.Context) ([]storage.FoodProfile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, calories, protein, carbs, fats, fiber
		FROM foods
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]storage.FoodProfile, 0)
	for rows.Next() {
		var f storage.FoodProfile
		if err := rows.Scan(&f.Name, &f.Calories, &f.Protein, &f.Carbs, &f.Fats, &f.Fiber); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating foods: %w", rows.Err())
	}
	return foods, nil
}

func (s *foodsStorage) GetFood(ctx context.Context, name string) (*storage.FoodProfile, error) {
	var f storage.FoodProfile
	err := s.pool.QueryRow(ctx, `
		SELECT name, calories, protein, carbs, fats, fiber
		FROM foods
		WHERE name = $1
	`, name).Scan(&f.Name, &f.Calories, &f.Protein, &f.Carbs, &f.Fats, &f.Fiber)
	if err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

func (s *foodsStorage) CreateFood(ctx context.Context, food storage.FoodProfile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO foods (name, calories, protein, carbs, fats, fiber)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, food.Name, food.Calories, food.Protein, food.Carbs, food.Fats, food.Fiber)
	return mapErr(err)
}

func (s *foodsStorage) CountFoods(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}
