package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Profile

type profileStorage struct {
	mu      sync.RWMutex
	profile *storage.UserProfile
}

func newProfileStorage() *profileStorage {
	return &profileStorage{}
}

func (s *profileStorage) GetUserProfile(ctx context.Context) (*storage.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil, storage.ErrNotFound
	}
	p := *s.profile
	return &p, nil
}

func (s *profileStorage) SaveUserProfile(ctx context.Context, profile storage.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return nil
}

// MARK: - Pantry

type pantryStorage struct {
	mu    sync.RWMutex
	items map[string]storage.PantryItem
	foods *foodsStorage
}

func newPantryStorage(foods *foodsStorage) *pantryStorage {
	return &pantryStorage{
		items: make(map[string]storage.PantryItem),
		foods: foods,
	}
}

func (s *pantryStorage) UpsertPantryItem(ctx context.Context, item storage.PantryItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.items[item.FoodName]
	s.items[item.FoodName] = item
	return !exists, nil
}

func (s *pantryStorage) DeletePantryItem(ctx context.Context, foodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[foodName]; !ok {
		return storage.ErrNotFound
	}
	delete(s.items, foodName)
	return nil
}

func (s *pantryStorage) ListPantry(ctx context.Context) ([]storage.PantryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]storage.PantryRow, 0, len(s.items))
	for _, item := range s.items {
		if !item.Available {
			continue
		}
		food, ok := s.foods.lookup(item.FoodName)
		if !ok {
			continue
		}
		rows = append(rows, storage.PantryRow{PantryItem: item, Food: food})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].LastUpdated.Equal(rows[j].LastUpdated) {
			return rows[i].LastUpdated.After(rows[j].LastUpdated)
		}
		return rows[i].FoodName < rows[j].FoodName
	})
	return rows, nil
}

// MARK: - Routines

type routinesStorage struct {
	mu    sync.RWMutex
	items map[string]storage.RoutineItem
	foods *foodsStorage
}

func newRoutinesStorage(foods *foodsStorage) *routinesStorage {
	return &routinesStorage{
		items: make(map[string]storage.RoutineItem),
		foods: foods,
	}
}

func (s *routinesStorage) GetRoutine(ctx context.Context, foodName string) (*storage.RoutineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[foodName]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (s *routinesStorage) UpsertRoutine(ctx context.Context, item storage.RoutineItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.items[item.FoodName]
	s.items[item.FoodName] = item
	return !exists, nil
}

func (s *routinesStorage) DeleteRoutine(ctx context.Context, foodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[foodName]; !ok {
		return storage.ErrNotFound
	}
	delete(s.items, foodName)
	return nil
}

func (s *routinesStorage) ListRoutines(ctx context.Context) ([]storage.RoutineRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]storage.RoutineRow, 0, len(s.items))
	for _, item := range s.items {
		food, ok := s.foods.lookup(item.FoodName)
		if !ok {
			continue
		}
		rows = append(rows, storage.RoutineRow{RoutineItem: item, Food: food})
	}
	return rows, nil
}
