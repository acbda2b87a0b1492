package routines

import (
	"errors"
	"strings"

	"github.com/fdg312/health-assistant/internal/storage"
)

// ErrUnknownBand is returned for a time period outside Bands.
var ErrUnknownBand = errors.New("unknown time period")

// Band — одно из шести временных окон суток
type Band string

const (
	Morning   Band = "morning"   // 6–10
	Midday    Band = "midday"    // 10–12
	Afternoon Band = "afternoon" // 12–16
	Evening   Band = "evening"   // 16–20
	Night     Band = "night"     // 20–23
	LateNight Band = "latenight" // 23–6
)

// Bands in daily order.
var Bands = []Band{Morning, Midday, Afternoon, Evening, Night, LateNight}

// ParseBand accepts a band name in any case.
func ParseBand(s string) (Band, error) {
	b := Band(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Bands {
		if b == known {
			return b, nil
		}
	}
	return "", ErrUnknownBand
}

// BandForHour maps a wall-clock hour (0–23) to its band.
func BandForHour(hour int) Band {
	switch {
	case hour >= 6 && hour < 10:
		return Morning
	case hour >= 10 && hour < 12:
		return Midday
	case hour >= 12 && hour < 16:
		return Afternoon
	case hour >= 16 && hour < 20:
		return Evening
	case hour >= 20 && hour < 23:
		return Night
	default:
		return LateNight
	}
}

// In reports whether item is flagged for b.
func (b Band) In(item storage.RoutineItem) bool {
	switch b {
	case Morning:
		return item.Morning
	case Midday:
		return item.Midday
	case Afternoon:
		return item.Afternoon
	case Evening:
		return item.Evening
	case Night:
		return item.Night
	case LateNight:
		return item.LateNight
	}
	return false
}

// Set flags item for b.
func (b Band) Set(item *storage.RoutineItem) {
	switch b {
	case Morning:
		item.Morning = true
	case Midday:
		item.Midday = true
	case Afternoon:
		item.Afternoon = true
	case Evening:
		item.Evening = true
	case Night:
		item.Night = true
	case LateNight:
		item.LateNight = true
	}
}

// BandsOf lists the bands item is flagged for, in daily order.
func BandsOf(item storage.RoutineItem) []Band {
	var out []Band
	for _, b := range Bands {
		if b.In(item) {
			out = append(out, b)
		}
	}
	return out
}

// MARK: - Effort

const (
	EffortEasy   = "easy"
	EffortMedium = "medium"
	EffortHard   = "hard"
)

// Efforts in rank order.
var Efforts = []string{EffortEasy, EffortMedium, EffortHard}

// EffortGroup returns the group an effort level falls into; unknown levels count as easy.
func EffortGroup(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case EffortMedium:
		return EffortMedium
	case EffortHard:
		return EffortHard
	default:
		return EffortEasy
	}
}

// EffortRank orders easy < medium < hard.
func EffortRank(level string) int {
	switch EffortGroup(level) {
	case EffortMedium:
		return 1
	case EffortHard:
		return 2
	default:
		return 0
	}
}
