package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// RegionRule — меню для региона; Match — подстроки региона профиля
type RegionRule struct {
	Name  string              `mapstructure:"name"`
	Match []string            `mapstructure:"match"`
	Menus map[string][]Option `mapstructure:"menus"`
}

// Menu returns the options for meal, falling back to lunch like the built-in table.
func (r RegionRule) Menu(meal MealType) []Option {
	if opts, ok := r.Menus[string(meal)]; ok {
		return opts
	}
	return r.Menus[string(Lunch)]
}

// Rules — таблица регионов; Default используется, когда ничего не совпало
type Rules struct {
	Regions []RegionRule `mapstructure:"regions"`
	Default RegionRule   `mapstructure:"default"`
}

// For returns the first rule whose match token is contained in region.
func (r Rules) For(region string) RegionRule {
	region = strings.ToLower(strings.TrimSpace(region))
	if region != "" {
		for _, rule := range r.Regions {
			for _, token := range rule.Match {
				if token != "" && strings.Contains(region, strings.ToLower(token)) {
					return rule
				}
			}
		}
	}
	return r.Default
}

func (r Rules) validate() error {
	if len(r.Default.Menus) == 0 {
		return errors.New("default region has no menus")
	}
	for _, rule := range append([]RegionRule{r.Default}, r.Regions...) {
		for meal, opts := range rule.Menus {
			if _, err := ParseMealType(meal); err != nil {
				return fmt.Errorf("region %q: %w", rule.Name, err)
			}
			for _, o := range opts {
				if strings.TrimSpace(o.Foods) == "" {
					return fmt.Errorf("region %q, %s: option without foods", rule.Name, meal)
				}
			}
		}
	}
	return nil
}

// LoadRules reads a region rule table from a yaml, json or toml file.
func LoadRules(path string) (Rules, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Rules{}, fmt.Errorf("failed to read rules: %w", err)
	}

	var rules Rules
	if err := v.Unmarshal(&rules); err != nil {
		return Rules{}, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	if err := rules.validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

// DefaultRules — встроенная таблица: indian и international
func DefaultRules() Rules {
	return Rules{
		Regions: []RegionRule{{
			Name:  "indian",
			Match: []string{"india"},
			Menus: map[string][]Option{
				"breakfast": {
					{"idli:150, sambar:100", "Light and healthy South Indian"},
					{"oatmeal:50, banana:100, almonds:10", "Nutritious balanced meal"},
					{"chapati:2, curd:100, dal:50", "Traditional North Indian"},
				},
				"lunch": {
					{"brown rice:150, dal:100, chicken breast:100", "High protein balanced meal"},
					{"roti:3, paneer:80, spinach:100", "Vegetarian protein-rich"},
					{"white rice:150, dal:100, curd:100", "Light vegetarian meal"},
				},
				"dinner": {
					{"chapati:2, dal:100, spinach:50", "Light dinner"},
					{"brown rice:100, chicken breast:120, broccoli:80", "Protein-focused"},
					{"idli:100, sambar:100", "Light South Indian"},
				},
				"snack": {
					{"banana:100", "Quick energy"},
					{"almonds:20", "Healthy fats"},
					{"apple:150", "Low calorie fruit"},
				},
			},
		}},
		Default: RegionRule{
			Name: "international",
			Menus: map[string][]Option{
				"breakfast": {
					{"oatmeal:60, banana:100, almonds:10", "Balanced breakfast"},
					{"eggs:100, brown rice:80", "High protein"},
					{"greek yogurt:150, banana:100", "Quick and healthy"},
				},
				"lunch": {
					{"chicken breast:150, brown rice:150, broccoli:100", "Balanced lunch"},
					{"salmon:120, sweet potato:150, spinach:80", "Omega-3 rich"},
					{"pasta:100, chicken breast:100, spinach:50", "Moderate carbs"},
				},
				"dinner": {
					{"chicken breast:120, sweet potato:100, broccoli:80", "Light dinner"},
					{"salmon:100, brown rice:100, spinach:100", "Healthy fats"},
					{"eggs:100, avocado:50, spinach:80", "Low carb option"},
				},
				"snack": {
					{"banana:100", "Quick snack"},
					{"almonds:20", "Healthy fats"},
					{"apple:150, almonds:10", "Fruit & nuts"},
				},
			},
		},
	}
}
