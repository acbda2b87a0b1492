package pantry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

// FoodLookup resolves a food name against the reference table.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (storage.FoodProfile, error)
}

// Service — кладовая: что есть дома прямо сейчас
type Service struct {
	storage storage.PantryStorage
	foods   FoodLookup
	mu      sync.Mutex

	Now func() time.Time
}

// NewService создаёт новый сервис
func NewService(st storage.PantryStorage, foods FoodLookup) *Service {
	return &Service{storage: st, foods: foods, Now: time.Now}
}

// Add upserts an available item. The food must exist in the reference table.
func (s *Service) Add(ctx context.Context, req AddRequest) (AddResult, error) {
	if err := req.Validate(); err != nil {
		return AddResult{}, err
	}
	if _, err := s.foods.Lookup(ctx, req.FoodName); err != nil {
		return AddResult{}, err
	}

	item := storage.PantryItem{
		FoodName:      req.FoodName,
		Available:     true,
		QuantityGrams: req.QuantityGrams,
		Notes:         req.Notes,
		LastUpdated:   s.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.storage.UpsertPantryItem(ctx, item)
	if err != nil {
		return AddResult{}, fmt.Errorf("upsert pantry item: %w", err)
	}
	return AddResult{Item: item, Created: created}, nil
}

// Remove deletes the item; ErrNotInPantry when it was absent.
func (s *Service) Remove(ctx context.Context, foodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.DeletePantryItem(ctx, nutrition.Normalize(foodName))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotInPantry
	}
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}

// List returns available items, most recently updated first.
func (s *Service) List(ctx context.Context) ([]storage.PantryRow, error) {
	rows, err := s.storage.ListPantry(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pantry: %w", err)
	}
	return rows, nil
}

// Available returns the set of food names currently in the pantry.
func (s *Service) Available(ctx context.Context) (map[string]storage.PantryRow, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]storage.PantryRow, len(rows))
	for _, r := range rows {
		out[r.FoodName] = r
	}
	return out, nil
}
