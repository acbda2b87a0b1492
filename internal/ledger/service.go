package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

// FoodLookup resolves a food name against the reference table.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (storage.FoodProfile, error)
}

// Service пишет в журналы питания, сна, веса и тренировок.
// Запись в каждый журнал сериализована отдельным мьютексом.
type Service struct {
	st     storage.Storage
	foods  FoodLookup
	logger *zap.Logger

	// Now is the clock used for default dates and log timestamps.
	Now func() time.Time

	mealsMu    sync.Mutex
	sleepMu    sync.Mutex
	weightMu   sync.Mutex
	exerciseMu sync.Mutex
}

func NewService(st storage.Storage, foods FoodLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		st:     st,
		foods:  foods,
		logger: logger,
		Now:    time.Now,
	}
}

// LogMeal parses "food:grams" items, resolves them and stores the accepted ones in one batch.
func (s *Service) LogMeal(ctx context.Context, foodItems, date string) (MealLog, error) {
	now := s.Now()
	date, err := storage.ResolveDate(date, now)
	if err != nil {
		return MealLog{}, err
	}

	result := MealLog{Date: date}
	for _, item := range nutrition.ParseMealItems(foodItems) {
		if item.Err != nil {
			result.Invalid = append(result.Invalid, item.Err)
			continue
		}

		food, err := s.foods.Lookup(ctx, item.Food)
		if errors.Is(err, nutrition.ErrUnknownFood) {
			result.Skipped = append(result.Skipped, item.Food)
			continue
		}
		if err != nil {
			return MealLog{}, err
		}

		entry := storage.MealEntry{
			ID:            uuid.New(),
			Date:          date,
			FoodName:      food.Name,
			QuantityGrams: item.Grams,
			Nutrients:     nutrition.Scale(food, item.Grams),
			LoggedAt:      now,
		}
		result.Items = append(result.Items, entry)
		result.Total = result.Total.Add(entry.Nutrients)
	}

	if len(result.Items) == 0 {
		return result, nil
	}

	s.mealsMu.Lock()
	defer s.mealsMu.Unlock()

	if err := s.st.Meals().InsertMeals(ctx, result.Items); err != nil {
		return MealLog{}, fmt.Errorf("store meal: %w", err)
	}

	s.logger.Debug("meal logged",
		zap.String("date", date),
		zap.Int("items", len(result.Items)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("invalid", len(result.Invalid)),
	)
	return result, nil
}

// LogSleep stores one sleep record; hours are derived from the clock times.
func (s *Service) LogSleep(ctx context.Context, req SleepRequest) (storage.SleepEntry, error) {
	if err := req.Validate(); err != nil {
		return storage.SleepEntry{}, err
	}
	hours, err := SleepHours(req.SleepTime, req.WakeTime)
	if err != nil {
		return storage.SleepEntry{}, err
	}

	now := s.Now()
	date, err := storage.ResolveDate(req.Date, now)
	if err != nil {
		return storage.SleepEntry{}, err
	}

	quality := req.Quality
	if quality == "" {
		quality = "good"
	}

	entry := storage.SleepEntry{
		ID:        uuid.New(),
		Date:      date,
		SleepTime: strings.TrimSpace(req.SleepTime),
		WakeTime:  strings.TrimSpace(req.WakeTime),
		Hours:     hours,
		Quality:   quality,
		Notes:     strings.TrimSpace(req.Notes),
		LoggedAt:  now,
	}

	s.sleepMu.Lock()
	defer s.sleepMu.Unlock()

	if err := s.st.Sleep().InsertSleep(ctx, entry); err != nil {
		return storage.SleepEntry{}, fmt.Errorf("store sleep: %w", err)
	}
	return entry, nil
}

// LogWeight stores a weigh-in and returns it with the latest entry of an earlier date.
func (s *Service) LogWeight(ctx context.Context, req WeightRequest) (WeightLog, error) {
	if err := req.Validate(); err != nil {
		return WeightLog{}, err
	}

	now := s.Now()
	date, err := storage.ResolveDate(req.Date, now)
	if err != nil {
		return WeightLog{}, err
	}

	entry := storage.WeightEntry{
		ID:       uuid.New(),
		Date:     date,
		WeightKg: req.WeightKg,
		Notes:    strings.TrimSpace(req.Notes),
		LoggedAt: now,
	}

	s.weightMu.Lock()
	defer s.weightMu.Unlock()

	if err := s.st.Weight().InsertWeight(ctx, entry); err != nil {
		return WeightLog{}, fmt.Errorf("store weight: %w", err)
	}

	result := WeightLog{Entry: entry}
	prev, err := s.st.Weight().LatestWeightBefore(ctx, date)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return WeightLog{}, fmt.Errorf("previous weight: %w", err)
	default:
		result.Previous = prev
	}
	return result, nil
}

// LogExercise stores a session with calories = minutes × BurnRate(intensity).
func (s *Service) LogExercise(ctx context.Context, req ExerciseRequest) (storage.ExerciseEntry, error) {
	if err := req.Validate(); err != nil {
		return storage.ExerciseEntry{}, err
	}

	now := s.Now()
	date, err := storage.ResolveDate(req.Date, now)
	if err != nil {
		return storage.ExerciseEntry{}, err
	}

	entry := storage.ExerciseEntry{
		ID:              uuid.New(),
		Date:            date,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		CaloriesBurned:  req.DurationMinutes * BurnRate(req.Intensity),
		LoggedAt:        now,
	}

	s.exerciseMu.Lock()
	defer s.exerciseMu.Unlock()

	if err := s.st.Exercise().InsertExercise(ctx, entry); err != nil {
		return storage.ExerciseEntry{}, fmt.Errorf("store exercise: %w", err)
	}
	return entry, nil
}
