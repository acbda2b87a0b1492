package nutrition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/storage"
)

// Service — справочник питательной ценности
type Service struct {
	foods  storage.FoodsStorage
	logger *zap.Logger
	mu     sync.Mutex
}

// NewService creates a new nutrition service.
func NewService(foods storage.FoodsStorage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{foods: foods, logger: logger}
}

// ListFoods returns every food ordered by name.
func (s *Service) ListFoods(ctx context.Context) ([]storage.FoodProfile, error) {
	foods, err := s.foods.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

// AddFood inserts a new food. A taken name yields storage.ErrConflict.
func (s *Service) AddFood(ctx context.Context, req AddFoodRequest) (storage.FoodProfile, error) {
	if err := req.Validate(); err != nil {
		return storage.FoodProfile{}, err
	}

	f := food(req.Name, req.Calories, req.Protein, req.Carbs, req.Fats, req.Fiber)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.foods.CreateFood(ctx, f); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return storage.FoodProfile{}, err
		}
		return storage.FoodProfile{}, fmt.Errorf("add food %q: %w", f.Name, err)
	}
	return f, nil
}

// Lookup resolves a name (normalized here) against the table.
func (s *Service) Lookup(ctx context.Context, name string) (storage.FoodProfile, error) {
	f, err := s.foods.GetFood(ctx, Normalize(name))
	if errors.Is(err, storage.ErrNotFound) {
		return storage.FoodProfile{}, ErrUnknownFood
	}
	if err != nil {
		return storage.FoodProfile{}, fmt.Errorf("lookup food %q: %w", name, err)
	}
	return *f, nil
}

// EnsureSeed loads SeedFoods when the table is empty and reports how many were inserted.
func (s *Service) EnsureSeed(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.foods.CountFoods(ctx)
	if err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	inserted := 0
	for _, f := range SeedFoods {
		if err := s.foods.CreateFood(ctx, f); err != nil && !errors.Is(err, storage.ErrConflict) {
			return inserted, fmt.Errorf("seed food %q: %w", f.Name, err)
		}
		inserted++
	}
	s.logger.Info("food table seeded", zap.Int("foods", inserted))
	return inserted, nil
}
