package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a keyed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidDate is returned for dates not in DateLayout.
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
)

// DateLayout — формат ключа даты во всех журналах
const DateLayout = "2006-01-02"

// ResolveDate returns date unchanged when valid, or today (in now's location) when empty.
func ResolveDate(date string, now time.Time) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return now.Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// WindowStart returns the first date of a trailing window of days ending today.
func WindowStart(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format(DateLayout)
}

// Nutrients — макро-вектор (калории в kcal, остальное в граммах)
type Nutrients struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Fiber    float64
}

// Add returns the element-wise sum.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fats:     n.Fats + o.Fats,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// FoodProfile — строка справочника, значения на 100 г
type FoodProfile struct {
	Name string
	Nutrients
}

// MealEntry — одна позиция приёма пищи
type MealEntry struct {
	ID            uuid.UUID
	Date          string // YYYY-MM-DD
	FoodName      string
	QuantityGrams float64
	Nutrients
	LoggedAt time.Time
}

// SleepEntry — запись сна
type SleepEntry struct {
	ID        uuid.UUID
	Date      string
	SleepTime string // HH:MM
	WakeTime  string // HH:MM
	Hours     float64
	Quality   string
	Notes     string
	LoggedAt  time.Time
}

// WeightEntry — запись веса
type WeightEntry struct {
	ID       uuid.UUID
	Date     string
	WeightKg float64
	Notes    string
	LoggedAt time.Time
}

// ExerciseEntry — запись тренировки
type ExerciseEntry struct {
	ID              uuid.UUID
	Date            string
	Name            string
	DurationMinutes float64
	Intensity       string
	CaloriesBurned  float64
	LoggedAt        time.Time
}

// UserProfile — единственный профиль пользователя. Nil означает "не задано".
type UserProfile struct {
	HeightM            *float64
	TargetWeightKg     *float64
	DailyCalorieGoal   *float64
	ActivityLevel      string
	Region             string
	DietaryPreferences string
	UpdatedAt          time.Time
}

// PantryItem — продукт в наличии
type PantryItem struct {
	FoodName      string
	Available     bool
	QuantityGrams *float64
	Notes         string
	LastUpdated   time.Time
}

// PantryRow — позиция кладовой вместе с профилем продукта
type PantryRow struct {
	PantryItem
	Food FoodProfile
}

// RoutineItem — привычный продукт с флагами временных окон
type RoutineItem struct {
	FoodName            string
	Morning             bool
	Midday              bool
	Afternoon           bool
	Evening             bool
	Night               bool
	LateNight           bool
	PreparationType     string
	EffortLevel         string
	TypicalPortionGrams float64
	PreferenceScore     int
	Notes               string
	LastUpdated         time.Time
}

// RoutineRow — рутина вместе с профилем продукта
type RoutineRow struct {
	RoutineItem
	Food FoodProfile
}

// FoodsStorage — справочник питательной ценности
type FoodsStorage interface {
	// ListFoods returns all foods ordered by name.
	ListFoods(ctx context.Context) ([]FoodProfile, error)
	GetFood(ctx context.Context, name string) (*FoodProfile, error)
	// CreateFood returns ErrConflict when the name is taken.
	CreateFood(ctx context.Context, food FoodProfile) error
	CountFoods(ctx context.Context) (int, error)
}

// MealsStorage — журнал приёмов пищи
type MealsStorage interface {
	// InsertMeals stores all entries of one logging call atomically.
	InsertMeals(ctx context.Context, entries []MealEntry) error
	// ListMeals returns entries with from <= date <= to ordered by log time.
	ListMeals(ctx context.Context, from, to string) ([]MealEntry, error)
}

// SleepStorage — журнал сна
type SleepStorage interface {
	InsertSleep(ctx context.Context, entry SleepEntry) error
	// ListSleep returns entries in range, newest date first.
	ListSleep(ctx context.Context, from, to string) ([]SleepEntry, error)
}

// WeightStorage — журнал веса
type WeightStorage interface {
	InsertWeight(ctx context.Context, entry WeightEntry) error
	// ListWeight returns entries in range, newest date first.
	ListWeight(ctx context.Context, from, to string) ([]WeightEntry, error)
	// LatestWeightBefore returns the newest entry with date < before (or any date when before is empty).
	LatestWeightBefore(ctx context.Context, before string) (*WeightEntry, error)
}

// ExerciseStorage — журнал тренировок
type ExerciseStorage interface {
	InsertExercise(ctx context.Context, entry ExerciseEntry) error
	// ListExercise returns entries in range, newest date first.
	ListExercise(ctx context.Context, from, to string) ([]ExerciseEntry, error)
}

// ProfileStorage — синглтон профиля
type ProfileStorage interface {
	// GetUserProfile returns ErrNotFound until the first save.
	GetUserProfile(ctx context.Context) (*UserProfile, error)
	SaveUserProfile(ctx context.Context, profile UserProfile) error
}

// PantryStorage — кладовая
type PantryStorage interface {
	UpsertPantryItem(ctx context.Context, item PantryItem) (created bool, err error)
	// DeletePantryItem returns ErrNotFound when nothing was removed.
	DeletePantryItem(ctx context.Context, foodName string) error
	// ListPantry returns available items, newest update first, then by name.
	ListPantry(ctx context.Context) ([]PantryRow, error)
}

// RoutinesStorage — рутины питания
type RoutinesStorage interface {
	GetRoutine(ctx context.Context, foodName string) (*RoutineItem, error)
	UpsertRoutine(ctx context.Context, item RoutineItem) (created bool, err error)
	DeleteRoutine(ctx context.Context, foodName string) error
	// ListRoutines returns all routines joined with their food profile, unordered.
	ListRoutines(ctx context.Context) ([]RoutineRow, error)
}

// Storage объединяет все хранилища одного бэкенда
type Storage interface {
	Foods() FoodsStorage
	Meals() MealsStorage
	Sleep() SleepStorage
	Weight() WeightStorage
	Exercise() ExerciseStorage
	Profile() ProfileStorage
	Pantry() PantryStorage
	Routines() RoutinesStorage

	// Close закрывает соединение
	Close() error
}
