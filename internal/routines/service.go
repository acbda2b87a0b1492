package routines

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

// ErrNotInRoutines is returned when removing a food that has no routine.
var ErrNotInRoutines = errors.New("food is not in routines")

// PeriodAll selects every routine in View.
const PeriodAll = "all"

// FoodLookup resolves a food name against the reference table.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (storage.FoodProfile, error)
}

// Service — рутины питания по временным окнам
type Service struct {
	storage storage.RoutinesStorage
	foods   FoodLookup
	mu      sync.Mutex

	Now func() time.Time
}

// NewService создаёт новый сервис
func NewService(st storage.RoutinesStorage, foods FoodLookup) *Service {
	return &Service{storage: st, foods: foods, Now: time.Now}
}

// Add upserts a routine, replacing every field of an existing one.
func (s *Service) Add(ctx context.Context, req AddRequest) (AddResult, error) {
	if err := req.Validate(); err != nil {
		return AddResult{}, err
	}
	if _, err := s.foods.Lookup(ctx, req.FoodName); err != nil {
		return AddResult{}, err
	}

	item := storage.RoutineItem{
		FoodName:            req.FoodName,
		PreparationType:     req.PreparationType,
		EffortLevel:         req.EffortLevel,
		TypicalPortionGrams: req.TypicalPortionGrams,
		PreferenceScore:     req.PreferenceScore,
		Notes:               req.Notes,
		LastUpdated:         s.Now(),
	}
	for _, b := range req.Bands {
		b.Set(&item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.storage.UpsertRoutine(ctx, item)
	if err != nil {
		return AddResult{}, fmt.Errorf("upsert routine: %w", err)
	}
	return AddResult{Item: item, Created: created}, nil
}

// Remove deletes the routine; ErrNotInRoutines when it was absent.
func (s *Service) Remove(ctx context.Context, foodName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.DeleteRoutine(ctx, nutrition.Normalize(foodName))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotInRoutines
	}
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

// View returns every routine for period "all" (preference desc, then name),
// or the routines of one band in Rank order.
func (s *Service) View(ctx context.Context, period string) ([]storage.RoutineRow, error) {
	if strings.EqualFold(strings.TrimSpace(period), PeriodAll) {
		rows, err := s.storage.ListRoutines(ctx)
		if err != nil {
			return nil, fmt.Errorf("list routines: %w", err)
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].PreferenceScore != rows[j].PreferenceScore {
				return rows[i].PreferenceScore > rows[j].PreferenceScore
			}
			return rows[i].FoodName < rows[j].FoodName
		})
		return rows, nil
	}

	band, err := ParseBand(period)
	if err != nil {
		return nil, err
	}
	return s.ForBand(ctx, band, "")
}

// ForBand returns routines flagged for band, optionally restricted to one effort group,
// in Rank order. An empty effort or "all" keeps every group.
func (s *Service) ForBand(ctx context.Context, band Band, effort string) ([]storage.RoutineRow, error) {
	rows, err := s.storage.ListRoutines(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	effort = strings.ToLower(strings.TrimSpace(effort))
	out := rows[:0]
	for _, r := range rows {
		if !band.In(r.RoutineItem) {
			continue
		}
		if effort != "" && effort != PeriodAll && EffortGroup(r.EffortLevel) != effort {
			continue
		}
		out = append(out, r)
	}
	Rank(out)
	return out, nil
}

// Rank sorts by preference desc, effort rank asc, food name asc.
func Rank(rows []storage.RoutineRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.PreferenceScore != b.PreferenceScore {
			return a.PreferenceScore > b.PreferenceScore
		}
		if ra, rb := EffortRank(a.EffortLevel), EffortRank(b.EffortLevel); ra != rb {
			return ra < rb
		}
		return a.FoodName < b.FoodName
	})
}

// BulkSetup flags comma-separated foods for their band. Existing routines keep their
// other fields; new ones get the defaults. Unknown foods are reported, not fatal.
func (s *Service) BulkSetup(ctx context.Context, foods map[Band]string) (BulkResult, error) {
	var result BulkResult

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, band := range Bands {
		list, ok := foods[band]
		if !ok {
			continue
		}
		for _, name := range strings.Split(list, ",") {
			name = nutrition.Normalize(name)
			if name == "" {
				continue
			}

			if _, err := s.foods.Lookup(ctx, name); err != nil {
				if errors.Is(err, nutrition.ErrUnknownFood) {
					result.Failed = append(result.Failed, name)
					continue
				}
				return result, err
			}

			item, err := s.storage.GetRoutine(ctx, name)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				item = &storage.RoutineItem{
					FoodName:            name,
					EffortLevel:         EffortEasy,
					TypicalPortionGrams: DefaultPortionGrams,
					PreferenceScore:     DefaultPreference,
				}
			case err != nil:
				return result, fmt.Errorf("get routine: %w", err)
			}

			band.Set(item)
			item.LastUpdated = s.Now()
			if _, err := s.storage.UpsertRoutine(ctx, *item); err != nil {
				return result, fmt.Errorf("upsert routine: %w", err)
			}
			result.Added = append(result.Added, BulkEntry{FoodName: name, Band: band})
		}
	}
	return result, nil
}
