package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_For(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, "indian", rules.For("India").Name)
	assert.Equal(t, "indian", rules.For("north indian cuisine").Name)
	assert.Equal(t, "international", rules.For("Germany").Name)
	assert.Equal(t, "international", rules.For("").Name)

	for _, rule := range append(rules.Regions, rules.Default) {
		for _, meal := range MealTypes {
			assert.Len(t, rule.Menu(meal), 3, "%s/%s", rule.Name, meal)
		}
	}
	require.NoError(t, rules.validate())
}

func writeRules(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRules_YAML(t *testing.T) {
	path := writeRules(t, "rules.yaml", `
default:
  name: international
  menus:
    lunch:
      - foods: "chicken breast:150, brown rice:150"
        description: Balanced lunch
regions:
  - name: japanese
    match: [japan, tokyo]
    menus:
      breakfast:
        - foods: "white rice:150, eggs:50"
          description: Tamago rice
      lunch:
        - foods: "salmon:120, white rice:150"
          description: Salmon bowl
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)

	rule := rules.For("Tokyo, Japan")
	assert.Equal(t, "japanese", rule.Name)
	assert.Equal(t, "Tamago rice", rule.Menu(Breakfast)[0].Description)
	// no dinner menu: falls back to lunch
	assert.Equal(t, "Salmon bowl", rule.Menu(Dinner)[0].Description)

	assert.Equal(t, "international", rules.For("peru").Name)
}

func TestLoadRules_JSON(t *testing.T) {
	path := writeRules(t, "rules.json", `{
  "default": {"name": "plain", "menus": {"snack": [{"foods": "apple:150", "description": "Fruit"}]}}
}`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", rules.For("anywhere").Name)
	assert.Equal(t, "apple:150", rules.Default.Menu(Snack)[0].Foods)
}

func TestLoadRules_Invalid(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeRules(t, "bad.yaml", `
default:
  name: x
  menus:
    brunch:
      - foods: "eggs:100"
`)
	_, err = LoadRules(path)
	assert.Error(t, err)

	path = writeRules(t, "empty.yaml", "regions: []\n")
	_, err = LoadRules(path)
	assert.Error(t, err)
}
