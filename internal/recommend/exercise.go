package recommend

// Intensity — рекомендуемая нагрузка по среднему сну
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// IntensityForSleep maps the 7-day sleep average; ok=false means no data.
func IntensityForSleep(avg float64, ok bool) Intensity {
	switch {
	case !ok:
		return IntensityModerate
	case avg < 6:
		return IntensityLight
	case avg < 7:
		return IntensityModerate
	default:
		return IntensityHigh
	}
}

// Goal — цель по весу
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalWeightGain  Goal = "weight_gain"
	GoalMaintenance Goal = "maintenance"
	GoalHealth      Goal = "health"
)

// Exercise — пункт плана
type Exercise struct {
	Name    string
	Details []string
}

// ExercisePlan — рекомендация тренировок
type ExercisePlan struct {
	AverageSleep *float64
	Intensity    Intensity
	Goal         Goal
	CurrentKg    *float64
	TargetKg     *float64
	Exercises    []Exercise
	Tips         []string
}

var exercises = map[Intensity][]Exercise{
	IntensityLight: {
		{"Walking (30 mins)", []string{"Easy on joints", "Burns ~150 cal", "Boosts energy"}},
		{"Yoga/Stretching (20 mins)", []string{"Improves flexibility", "Reduces stress", "Enhances sleep quality"}},
		{"Light Cycling (20 mins)", []string{"Low impact", "Cardiovascular health", "Burns ~120 cal"}},
	},
	IntensityModerate: {
		{"Brisk Walking/Jogging (30 mins)", []string{"Burns ~250 cal", "Cardio health", "Energizing"}},
		{"Bodyweight Exercises (20 mins)", []string{"Push-ups, squats, planks", "Builds strength", "Burns ~180 cal"}},
		{"Swimming/Cycling (30 mins)", []string{"Full body workout", "Low impact", "Burns ~300 cal"}},
	},
	IntensityHigh: {
		{"Running (30-40 mins)", []string{"Burns ~400 cal", "Great cardio", "Builds endurance"}},
		{"HIIT Training (20 mins)", []string{"High calorie burn (~300 cal)", "Boosts metabolism", "Time efficient"}},
		{"Strength Training (40 mins)", []string{"Builds muscle", "Burns ~250 cal", "Increases metabolism"}},
	},
}

var exerciseTips = []string{
	"Exercise in morning for better energy",
	"Stay hydrated (2-3L water/day)",
	"Rest 1-2 days per week",
	"Track with: log_exercise()",
}

// goalFor compares the latest weight with the target; both are needed for a weight goal.
func goalFor(current, target *float64) Goal {
	switch {
	case current == nil || target == nil:
		return GoalHealth
	case *current > *target:
		return GoalWeightLoss
	case *current < *target:
		return GoalWeightGain
	default:
		return GoalMaintenance
	}
}
