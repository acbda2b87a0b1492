package memory

import (
	"github.com/fdg312/health-assistant/internal/storage"
)

// MemoryStorage — in-memory реализация storage.Storage (тесты и fallback без БД)
type MemoryStorage struct {
	foods    *foodsStorage
	meals    *mealsStorage
	sleep    *sleepStorage
	weight   *weightStorage
	exercise *exerciseStorage
	profile  *profileStorage
	pantry   *pantryStorage
	routines *routinesStorage
}

// New создаёт пустой MemoryStorage
func New() *MemoryStorage {
	foods := newFoodsStorage()
	return &MemoryStorage{
		foods:    foods,
		meals:    newMealsStorage(),
		sleep:    newSleepStorage(),
		weight:   newWeightStorage(),
		exercise: newExerciseStorage(),
		profile:  newProfileStorage(),
		pantry:   newPantryStorage(foods),
		routines: newRoutinesStorage(foods),
	}
}

func (m *MemoryStorage) Foods() storage.FoodsStorage       { return m.foods }
func (m *MemoryStorage) Meals() storage.MealsStorage       { return m.meals }
func (m *MemoryStorage) Sleep() storage.SleepStorage       { return m.sleep }
func (m *MemoryStorage) Weight() storage.WeightStorage     { return m.weight }
func (m *MemoryStorage) Exercise() storage.ExerciseStorage { return m.exercise }
func (m *MemoryStorage) Profile() storage.ProfileStorage   { return m.profile }
func (m *MemoryStorage) Pantry() storage.PantryStorage     { return m.pantry }
func (m *MemoryStorage) Routines() storage.RoutinesStorage { return m.routines }

// Close для in-memory ничего не делает
func (m *MemoryStorage) Close() error {
	return nil
}

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
