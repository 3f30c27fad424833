package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsWellFormedSegments(t *testing.T) {
	text := "Cheese Omelette: Fluffy eggs folded around melted cheese: Eggs: 3: pieces: Cheese: 80: grams; " +
		"Tomato Soup: Slow-simmered soup with basil: Tomatoes: 500: grams: Cream: 100: ml"

	result := Parse(text)

	require.Len(t, result.Dishes, 2)
	assert.Empty(t, result.Rejected)

	omelette := result.Dishes[0]
	assert.Equal(t, "Cheese Omelette", omelette.DishName)
	assert.Equal(t, "Fluffy eggs folded around melted cheese", omelette.Description)
	require.Len(t, omelette.Ingredients, 2)
	assert.Equal(t, "Eggs", omelette.Ingredients[0].Name)
	assert.Equal(t, 3.0, omelette.Ingredients[0].Quantity)
	assert.Equal(t, "pieces", omelette.Ingredients[0].Unit)

	soup := result.Dishes[1]
	assert.Equal(t, "Tomato Soup", soup.DishName)
	require.Len(t, soup.Ingredients, 2)
	assert.Equal(t, "ml", soup.Ingredients[1].Unit)
}

func TestParseNormalizesUnitCase(t *testing.T) {
	result := Parse("Pasta: Simple dish: Flour: 200: Grams")

	require.Len(t, result.Dishes, 1)
	assert.Equal(t, "grams", result.Dishes[0].Ingredients[0].Unit)
}

func TestParseRejectsMalformedSegments(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "too few fields", text: "Pasta: Simple dish: Flour"},
		{name: "broken triple arity", text: "Pasta: Simple dish: Flour: 200: grams: Eggs: 2"},
		{name: "missing dish name", text: ": Simple dish: Flour: 200: grams"},
		{name: "missing description", text: "Pasta: : Flour: 200: grams"},
		{name: "non-numeric quantity", text: "Pasta: Simple dish: Flour: lots: grams"},
		{name: "zero quantity", text: "Pasta: Simple dish: Flour: 0: grams"},
		{name: "negative quantity", text: "Pasta: Simple dish: Flour: -3: grams"},
		{name: "unknown unit", text: "Pasta: Simple dish: Flour: 200: cups"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Parse(tc.text)

			assert.Empty(t, result.Dishes)
			require.Len(t, result.Rejected, 1)
		})
	}
}

func TestParseKeepsValidSegmentsNextToRejected(t *testing.T) {
	text := "Pasta: Simple dish: Flour: 200: grams; garbage segment; Salad: Fresh greens: Lettuce: 1: pieces"

	result := Parse(text)

	require.Len(t, result.Dishes, 2)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "garbage segment", result.Rejected[0])
}

func TestParseIgnoresEmptySegments(t *testing.T) {
	result := Parse("; ;Pasta: Simple dish: Flour: 200: grams; ")

	require.Len(t, result.Dishes, 1)
	assert.Empty(t, result.Rejected)
}
