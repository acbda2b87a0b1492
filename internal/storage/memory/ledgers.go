package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fdg312/health-assistant/internal/storage"
)

// MARK: - Meals

type mealsStorage struct {
	mu      sync.RWMutex
	entries []storage.MealEntry
}

func newMealsStorage() *mealsStorage {
	return &mealsStorage{}
}

func (s *mealsStorage) InsertMeals(ctx context.Context, entries []storage.MealEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *mealsStorage) ListMeals(ctx context.Context, from, to string) ([]storage.MealEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.MealEntry, 0)
	for _, e := range s.entries {
		if inRange(e.Date, from, to) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})
	return result, nil
}

// MARK: - Sleep

type sleepStorage struct {
	mu      sync.RWMutex
	entries []storage.SleepEntry
}

func newSleepStorage() *sleepStorage {
	return &sleepStorage{}
}

func (s *sleepStorage) InsertSleep(ctx context.Context, entry storage.SleepEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *sleepStorage) ListSleep(ctx context.Context, from, to string) ([]storage.SleepEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.SleepEntry, 0)
	for _, e := range s.entries {
		if inRange(e.Date, from, to) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].LoggedAt.After(result[j].LoggedAt)
	})
	return result, nil
}

// MARK: - Weight

type weightStorage struct {
	mu      sync.RWMutex
	entries []storage.WeightEntry
}

func newWeightStorage() *weightStorage {
	return &weightStorage{}
}

func (s *weightStorage) InsertWeight(ctx context.Context, entry storage.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *weightStorage) ListWeight(ctx context.Context, from, to string) ([]storage.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.WeightEntry, 0)
	for _, e := range s.entries {
		if inRange(e.Date, from, to) {
			result = append(result, e)
		}
	}
	sortWeightNewestFirst(result)
	return result, nil
}

func (s *weightStorage) LatestWeightBefore(ctx context.Context, before string) (*storage.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]storage.WeightEntry, 0)
	for _, e := range s.entries {
		if before == "" || e.Date < before {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, storage.ErrNotFound
	}
	sortWeightNewestFirst(candidates)
	latest := candidates[0]
	return &latest, nil
}

func sortWeightNewestFirst(entries []storage.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].LoggedAt.After(entries[j].LoggedAt)
	})
}

// MARK: - Exercise

type exerciseStorage struct {
	mu      sync.RWMutex
	entries []storage.ExerciseEntry
}

func newExerciseStorage() *exerciseStorage {
	return &exerciseStorage{}
}

func (s *exerciseStorage) InsertExercise(ctx context.Context, entry storage.ExerciseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *exerciseStorage) ListExercise(ctx context.Context, from, to string) ([]storage.ExerciseEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]storage.ExerciseEntry, 0)
	for _, e := range s.entries {
		if inRange(e.Date, from, to) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].LoggedAt.Before(result[j].LoggedAt)
	})
	return result, nil
}
