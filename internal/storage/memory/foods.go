package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fdg312/health-assistant/internal/storage"
)

type foodsStorage struct {
	mu    sync.RWMutex
	foods map[string]storage.FoodProfile // key: normalized name
}

func newFoodsStorage() *foodsStorage {
	return &foodsStorage{
		foods: make(map[string]storage.FoodProfile),
	}
}

func (s *foodsStorage) ListFoods(ctx context.Context) ([]storage.FoodProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.FoodProfile, 0, len(s.foods))
	for _, f := range s.foods {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *foodsStorage) GetFood(ctx context.Context, name string) (*storage.FoodProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.foods[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &f, nil
}

func (s *foodsStorage) CreateFood(ctx context.Context, food storage.FoodProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.foods[food.Name]; exists {
		return storage.ErrConflict
	}
	s.foods[food.Name] = food
	return nil
}

func (s *foodsStorage) CountFoods(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods), nil
}

// lookup is used by the pantry and routine joins.
func (s *foodsStorage) lookup(name string) (storage.FoodProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foods[name]
	return f, ok
}
