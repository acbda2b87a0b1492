package profiles

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fdg312/health-assistant/internal/storage"
)

var validate = validator.New()

// ActivityLevels — допустимые уровни активности
var ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}

// Patch — частичное обновление профиля; nil поля не меняются
type Patch struct {
	HeightM            *float64 `json:"height_m,omitempty" validate:"omitempty,gt=0,lt=3"`
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty" validate:"omitempty,gt=0,lt=700"`
	DailyCalorieGoal   *float64 `json:"daily_calorie_goal,omitempty" validate:"omitempty,gt=0,lte=20000"`
	ActivityLevel      *string  `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	Region             *string  `json:"region,omitempty"`
	DietaryPreferences *string  `json:"dietary_preferences,omitempty"`
}

func (p *Patch) Validate() error {
	trim(&p.ActivityLevel, true)
	trim(&p.Region, false)
	trim(&p.DietaryPreferences, false)
	return validate.Struct(p)
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.HeightM == nil && p.TargetWeightKg == nil && p.DailyCalorieGoal == nil &&
		p.ActivityLevel == nil && p.Region == nil && p.DietaryPreferences == nil
}

// trim drops blank strings so they do not overwrite stored values.
func trim(s **string, lower bool) {
	if *s == nil {
		return
	}
	v := strings.TrimSpace(**s)
	if lower {
		v = strings.ToLower(v)
	}
	if v == "" {
		*s = nil
		return
	}
	*s = &v
}

// ProfileDTO — DTO для API
type ProfileDTO struct {
	HeightM            *float64  `json:"height_m"`
	TargetWeightKg     *float64  `json:"target_weight_kg"`
	DailyCalorieGoal   *float64  `json:"daily_calorie_goal"`
	ActivityLevel      string    `json:"activity_level,omitempty"`
	Region             string    `json:"region,omitempty"`
	DietaryPreferences string    `json:"dietary_preferences,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toDTO(p storage.UserProfile) ProfileDTO {
	return ProfileDTO{
		HeightM:            p.HeightM,
		TargetWeightKg:     p.TargetWeightKg,
		DailyCalorieGoal:   p.DailyCalorieGoal,
		ActivityLevel:      p.ActivityLevel,
		Region:             p.Region,
		DietaryPreferences: p.DietaryPreferences,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
