package ledger

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/storage"
)

var validate = validator.New()

var ErrInvalidTime = errors.New("invalid time format, use HH:MM (e.g. '23:30')")

// Sleep quality values.
var SleepQualities = []string{"excellent", "good", "fair", "poor"}

// Exercise intensities and their burn rate in kcal per minute.
var burnRates = map[string]float64{
	"light":    3,
	"moderate": 6,
	"intense":  10,
}

// BurnRate returns kcal/min for intensity; unknown values count as moderate.
func BurnRate(intensity string) float64 {
	if r, ok := burnRates[strings.ToLower(strings.TrimSpace(intensity))]; ok {
		return r
	}
	return burnRates["moderate"]
}

// MealLog — результат одного вызова LogMeal
type MealLog struct {
	Date    string
	Items   []storage.MealEntry
	Skipped []string // normalized names missing from the reference table
	Invalid []*nutrition.ParseError
	Total   storage.Nutrients // accepted items of this call only
}

type SleepRequest struct {
	SleepTime string
	WakeTime  string
	Date      string
	Quality   string `validate:"omitempty,oneof=excellent good fair poor"`
	Notes     string
}

func (r *SleepRequest) Validate() error {
	r.Quality = strings.ToLower(strings.TrimSpace(r.Quality))
	return validate.Struct(r)
}

type WeightRequest struct {
	WeightKg float64 `validate:"gt=0,lt=700"`
	Date     string
	Notes    string
}

func (r *WeightRequest) Validate() error {
	return validate.Struct(r)
}

// WeightLog — записанный вес и изменение относительно предыдущей даты
type WeightLog struct {
	Entry    storage.WeightEntry
	Previous *storage.WeightEntry
}

// Delta returns the change from the previous entry; ok is false when there is none.
func (w WeightLog) Delta() (float64, bool) {
	if w.Previous == nil {
		return 0, false
	}
	return w.Entry.WeightKg - w.Previous.WeightKg, true
}

type ExerciseRequest struct {
	Name            string  `validate:"required"`
	DurationMinutes float64 `validate:"gt=0"`
	Intensity       string
	Date            string
}

func (r *ExerciseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Intensity = strings.ToLower(strings.TrimSpace(r.Intensity))
	if r.Intensity == "" {
		r.Intensity = "moderate"
	}
	return validate.Struct(r)
}
