package vision

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrapContent builds the outer API envelope around a content string.
func wrapContent(t *testing.T, content string) []byte {
	t.Helper()
	env := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	return raw
}

func TestParseResponse_FullPayload(t *testing.T) {
	content := `{
		"Ingredients": ["Tomato", "Basil", "Mozzarella"],
		"RecipeSuggestions": [
			{"name": "Caprese Salad", "description": "Fresh tomato and mozzarella", "link": "https://example.com/caprese"}
		],
		"NutritionalInformation": {
			"Tomato": {"calories": 22, "protein": 1.1, "fats": 0.2, "vitamins": ["C", "K"]}
		}
	}`

	result := ParseResponse(wrapContent(t, content))

	require.Empty(t, result.Error)
	assert.Equal(t, []string{"Tomato", "Basil", "Mozzarella"}, result.Ingredients)
	require.Len(t, result.RecipeSuggestions, 1)
	assert.Equal(t, "Caprese Salad", result.RecipeSuggestions[0].Name)
	assert.Equal(t, "Fresh tomato and mozzarella", result.RecipeSuggestions[0].Description)
	assert.Equal(t, "https://example.com/caprese", result.RecipeSuggestions[0].Link)
	require.Contains(t, result.NutritionalInformation, "Tomato")
	facts := result.NutritionalInformation["Tomato"].(NutritionFacts)
	assert.Equal(t, 22, facts.Calories)
	assert.Equal(t, 1.1, facts.Protein)
	assert.Equal(t, 0.2, facts.Fats)
	assert.Equal(t, []string{"C", "K"}, facts.Vitamins)
}

func TestParseResponse_IngredientsFallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"absent", `{"RecipeSuggestions": [], "NutritionalInformation": {}}`},
		{"empty array", `{"Ingredients": []}`},
		{"wrong type", `{"Ingredients": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseResponse(wrapContent(t, tt.content))
			require.Empty(t, result.Error)
			assert.Equal(t, []string{"No ingredients detected"}, result.Ingredients)
		})
	}
}

func TestParseResponse_RecipeSuggestionFallbacks(t *testing.T) {
	t.Run("absent or empty yields placeholder record", func(t *testing.T) {
		for _, content := range []string{`{}`, `{"RecipeSuggestions": []}`} {
			result := ParseResponse(wrapContent(t, content))
			require.Empty(t, result.Error)
			assert.Equal(t, []RecipeSuggestion{{Message: "No recipes available"}}, result.RecipeSuggestions)
		}
	})

	t.Run("missing sub-fields are defaulted per entry", func(t *testing.T) {
		content := `{"RecipeSuggestions": [{"name": "Tomato Soup"}, {"description": "A soup", "link": null}]}`

		result := ParseResponse(wrapContent(t, content))

		require.Empty(t, result.Error)
		require.Len(t, result.RecipeSuggestions, 2)
		assert.Equal(t, "Tomato Soup", result.RecipeSuggestions[0].Name)
		assert.Equal(t, "No description available", result.RecipeSuggestions[0].Description)
		assert.Equal(t, "No link available", result.RecipeSuggestions[0].Link)
		assert.Equal(t, "No name available", result.RecipeSuggestions[1].Name)
		assert.Equal(t, "A soup", result.RecipeSuggestions[1].Description)
		assert.Equal(t, "No link available", result.RecipeSuggestions[1].Link)
	})
}

func TestParseResponse_NutritionFallbacks(t *testing.T) {
	t.Run("absent or empty yields placeholder mapping", func(t *testing.T) {
		for _, content := range []string{`{}`, `{"NutritionalInformation": {}}`} {
			result := ParseResponse(wrapContent(t, content))
			require.Empty(t, result.Error)
			assert.Equal(t, map[string]any{"message": "No nutritional information available"}, result.NutritionalInformation)
		}
	})

	t.Run("each sub-field defaults independently", func(t *testing.T) {
		content := `{"NutritionalInformation": {"Egg": {"calories": 78, "fats": 5.3}}}`

		result := ParseResponse(wrapContent(t, content))

		require.Empty(t, result.Error)
		facts := result.NutritionalInformation["Egg"].(NutritionFacts)
		assert.Equal(t, 78, facts.Calories)
		assert.Equal(t, 0.0, facts.Protein)
		assert.Equal(t, 5.3, facts.Fats)
		assert.Equal(t, []string{}, facts.Vitamins)
	})

	t.Run("non-object entry yields full defaults", func(t *testing.T) {
		content := `{"NutritionalInformation": {"Egg": "unknown"}}`

		result := ParseResponse(wrapContent(t, content))

		require.Empty(t, result.Error)
		facts := result.NutritionalInformation["Egg"].(NutritionFacts)
		assert.Equal(t, NutritionFacts{Vitamins: []string{}}, facts)
	})
}

func TestParseResponse_EnvelopeFailures(t *testing.T) {
	t.Run("empty choices", func(t *testing.T) {
		result := ParseResponse([]byte(`{"choices": []}`))

		assert.Equal(t, "No choices found in response", result.Error)
		assert.Nil(t, result.Ingredients)
		assert.Nil(t, result.RecipeSuggestions)
		assert.Nil(t, result.NutritionalInformation)
	})

	t.Run("missing content", func(t *testing.T) {
		result := ParseResponse([]byte(`{"choices": [{"message": {}}]}`))

		assert.Equal(t, "No content found in message", result.Error)
	})

	t.Run("malformed envelope", func(t *testing.T) {
		result := ParseResponse([]byte(`not json at all`))

		assert.Contains(t, result.Error, "Error parsing response:")
	})
}

func TestParseResponse_CodeFences(t *testing.T) {
	payload := `{"Ingredients": ["Orange"], "RecipeSuggestions": [], "NutritionalInformation": {}}`
	fenced := "```json\n" + payload + "\n```"

	plain := ParseResponse(wrapContent(t, payload))
	withFences := ParseResponse(wrapContent(t, fenced))

	assert.Equal(t, plain, withFences)
	assert.Equal(t, []string{"Orange"}, withFences.Ingredients)
}

func TestParseResponse_PlainTextContent(t *testing.T) {
	// The model occasionally ignores the JSON instruction and answers with a
	// numbered list. That must surface as a soft error, never a panic.
	result := ParseResponse(wrapContent(t, "1. Orange\n2. Tomato\n3. Basil"))

	assert.Contains(t, result.Error, "Error parsing response:")
	assert.Nil(t, result.Ingredients)
	assert.Nil(t, result.RecipeSuggestions)
	assert.Nil(t, result.NutritionalInformation)
}

func TestParseResponse_Idempotent(t *testing.T) {
	raw := wrapContent(t, `{"Ingredients": ["Kale"], "NutritionalInformation": {"Kale": {"calories": 33}}}`)

	first := ParseResponse(raw)
	second := ParseResponse(raw)

	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}

func TestParseResponse_LastWriteWinsOnDuplicateKeys(t *testing.T) {
	// JSON objects do not guarantee key uniqueness; the decoder keeps the
	// last value, which is the documented behavior.
	content := `{"NutritionalInformation": {"Rice": {"calories": 100}, "Rice": {"calories": 130}}}`

	result := ParseResponse(wrapContent(t, content))

	require.Empty(t, result.Error)
	facts := result.NutritionalInformation["Rice"].(NutritionFacts)
	assert.Equal(t, 130, facts.Calories)
}
