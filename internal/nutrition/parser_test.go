package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/storage"
)

func TestParseMealItems(t *testing.T) {
	t.Run("valid items are normalized", func(t *testing.T) {
		items := ParseMealItems(" Chicken Breast : 150 , brown rice:100")
		require.Len(t, items, 2)
		assert.Equal(t, "chicken breast", items[0].Food)
		assert.Equal(t, 150.0, items[0].Grams)
		assert.Nil(t, items[0].Err)
		assert.Equal(t, "brown rice", items[1].Food)
	})

	t.Run("blank tokens are ignored", func(t *testing.T) {
		items := ParseMealItems("apple:50, ,")
		require.Len(t, items, 1)
		assert.Equal(t, "apple", items[0].Food)
	})

	t.Run("bad tokens are reported and batch continues", func(t *testing.T) {
		items := ParseMealItems("apple, rice:abc, eggs:0, dal:-5, a:b:c, :10, banana:120, x:NaN, y:inf")
		require.Len(t, items, 9)

		kinds := make([]ParseErrorKind, 0)
		for _, it := range items {
			if it.Err != nil {
				kinds = append(kinds, it.Err.Kind)
			}
		}
		assert.Equal(t, []ParseErrorKind{
			KindFormat, KindQuantity, KindNonPositive, KindNonPositive, KindFormat, KindFormat, KindNonPositive, KindNonPositive,
		}, kinds)

		assert.Nil(t, items[6].Err)
		assert.Equal(t, "banana", items[6].Food)
		assert.Contains(t, items[0].Err.Error(), "food:quantity")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseMealItems(""))
	})
}

func TestScale(t *testing.T) {
	chicken := storage.FoodProfile{Name: "chicken breast", Nutrients: storage.Nutrients{Calories: 165, Protein: 31, Fats: 3.6}}

	n := Scale(chicken, 150)
	assert.InDelta(t, 247.5, n.Calories, 1e-9)
	assert.InDelta(t, 46.5, n.Protein, 1e-9)
	assert.InDelta(t, 5.4, n.Fats, 1e-9)

	assert.Equal(t, chicken.Nutrients, Scale(chicken, 100))

	// линейность: scale(a+b) = scale(a) + scale(b)
	sum := Scale(chicken, 70).Add(Scale(chicken, 30))
	assert.InDelta(t, Scale(chicken, 100).Calories, sum.Calories, 1e-9)
	assert.InDelta(t, Scale(chicken, 100).Protein, sum.Protein, 1e-9)
}

func TestSeedFoodsAreNormalized(t *testing.T) {
	require.Len(t, SeedFoods, 35)
	seen := map[string]bool{}
	for _, f := range SeedFoods {
		assert.Equal(t, Normalize(f.Name), f.Name)
		assert.False(t, seen[f.Name], "duplicate %s", f.Name)
		seen[f.Name] = true
	}
}
