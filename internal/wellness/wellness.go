// Package wellness holds stateless body calculators.
package wellness

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MARK: - BMI

type BMIRequest struct {
	WeightKg float64 `validate:"gt=0,lt=700"`
	HeightM  float64 `validate:"gt=0,lt=3"`
}

type BMI struct {
	Value    float64
	Category string
}

// CalculateBMI returns weight / height² with its category.
func CalculateBMI(req BMIRequest) (BMI, error) {
	if err := validate.Struct(req); err != nil {
		return BMI{}, err
	}
	bmi := req.WeightKg / (req.HeightM * req.HeightM)
	return BMI{Value: bmi, Category: bmiCategory(bmi)}, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// MARK: - Water

// WaterRange — рекомендуемый объём воды в мл (30–35 мл на кг)
type WaterRange struct {
	MinML float64
	MaxML float64
}

func DailyWater(weightKg float64) (WaterRange, error) {
	if err := validate.Var(weightKg, "gt=0,lt=700"); err != nil {
		return WaterRange{}, err
	}
	return WaterRange{MinML: weightKg * 30, MaxML: weightKg * 35}, nil
}

// MARK: - Steps

// DefaultStepWeightKg — вес по умолчанию для пересчёта шагов
const DefaultStepWeightKg = 70

type StepsRequest struct {
	Steps    int     `validate:"gte=0"`
	WeightKg float64 `validate:"gt=0,lt=700"`
}

// StepsToCalories estimates 0.04 kcal per step scaled by weight/70.
func StepsToCalories(req StepsRequest) (float64, error) {
	if req.WeightKg == 0 {
		req.WeightKg = DefaultStepWeightKg
	}
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	return float64(req.Steps) * 0.04 * (req.WeightKg / DefaultStepWeightKg), nil
}

// MARK: - Heart rate

// DefaultRestingHR — пульс покоя по умолчанию
const DefaultRestingHR = 60

type HeartRateRequest struct {
	Age       int `validate:"gt=0,lt=120"`
	RestingHR int `validate:"gt=0,lt=200"`
}

type Zone struct {
	Name string
	Low  float64
	High float64
}

type HeartRateZones struct {
	MaxHR int
	Zones []Zone
}

var zoneBounds = []struct {
	name      string
	low, high float64
}{
	{"Easy (50-60%)", 0.5, 0.6},
	{"Moderate (60-70%)", 0.6, 0.7},
	{"Hard (70-80%)", 0.7, 0.8},
	{"Very Hard (80-90%)", 0.8, 0.9},
}

// HeartRate returns Karvonen zones: resting + reserve × share, max = 220 − age.
func HeartRate(req HeartRateRequest) (HeartRateZones, error) {
	if req.RestingHR == 0 {
		req.RestingHR = DefaultRestingHR
	}
	if err := validate.Struct(req); err != nil {
		return HeartRateZones{}, err
	}

	maxHR := 220 - req.Age
	reserve := float64(maxHR - req.RestingHR)
	rest := float64(req.RestingHR)

	out := HeartRateZones{MaxHR: maxHR, Zones: make([]Zone, 0, len(zoneBounds))}
	for _, z := range zoneBounds {
		out.Zones = append(out.Zones, Zone{
			Name: z.name,
			Low:  rest + reserve*z.low,
			High: rest + reserve*z.high,
		})
	}
	return out, nil
}
