package profiles

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fdg312/health-assistant/internal/storage"
)

var (
	// ErrNotFound is returned until the profile is first saved.
	ErrNotFound   = errors.New("profile not found")
	ErrEmptyPatch = errors.New("nothing to update")
)

// Service содержит бизнес-логику единственного профиля пользователя
type Service struct {
	storage storage.ProfileStorage
	mu      sync.Mutex

	Now func() time.Time
}

// NewService создаёт новый сервис
func NewService(st storage.ProfileStorage) *Service {
	return &Service{storage: st, Now: time.Now}
}

// Get returns the stored profile or ErrNotFound.
func (s *Service) Get(ctx context.Context) (storage.UserProfile, error) {
	p, err := s.storage.GetUserProfile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return storage.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return *p, nil
}

// Update merges patch into the stored profile (creating it on first call).
func (s *Service) Update(ctx context.Context, patch Patch) (storage.UserProfile, error) {
	if err := patch.Validate(); err != nil {
		return storage.UserProfile{}, err
	}
	if patch.Empty() {
		return storage.UserProfile{}, ErrEmptyPatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return storage.UserProfile{}, err
	}

	if patch.HeightM != nil {
		current.HeightM = patch.HeightM
	}
	if patch.TargetWeightKg != nil {
		current.TargetWeightKg = patch.TargetWeightKg
	}
	if patch.DailyCalorieGoal != nil {
		current.DailyCalorieGoal = patch.DailyCalorieGoal
	}
	if patch.ActivityLevel != nil {
		current.ActivityLevel = *patch.ActivityLevel
	}
	if patch.Region != nil {
		current.Region = *patch.Region
	}
	if patch.DietaryPreferences != nil {
		current.DietaryPreferences = *patch.DietaryPreferences
	}
	current.UpdatedAt = s.Now()

	if err := s.storage.SaveUserProfile(ctx, current); err != nil {
		return storage.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return current, nil
}
