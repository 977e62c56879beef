package vision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Placeholder values returned when the model's reply omits a field. These are
// rendered directly by the mobile client, so the exact strings matter.
const (
	NoIngredientsDetected = "No ingredients detected"
	NoRecipesAvailable    = "No recipes available"
	NoNutritionAvailable  = "No nutritional information available"
	NoNameAvailable       = "No name available"
	NoDescription         = "No description available"
	NoLinkAvailable       = "No link available"
)

// RecipeSuggestion is one suggested recipe from the model. Message is only set
// on the placeholder entry used when no suggestions were returned.
type RecipeSuggestion struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Message     string `json:"message,omitempty"`
}

// NutritionFacts holds the per-ingredient nutrition record. Every field is
// defaulted independently when absent.
type NutritionFacts struct {
	Calories int      `json:"calories"`
	Protein  float64  `json:"protein"`
	Fats     float64  `json:"fats"`
	Vitamins []string `json:"vitamins"`
}

// Result is the parsed outcome of one recognition call. When Error is set the
// other fields are not meaningful for that invocation.
type Result struct {
	Ingredients            []string           `json:"ingredients,omitempty"`
	RecipeSuggestions      []RecipeSuggestion `json:"recipeSuggestions,omitempty"`
	NutritionalInformation map[string]any     `json:"nutritionalInformation,omitempty"`
	Error                  string             `json:"error,omitempty"`
}

// envelope is the outer API response wrapper. Only the content string is of
// interest; the payload itself is embedded JSON inside it.
type envelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseResponse extracts a Result from the raw API response. The model is
// instructed to emit JSON but its output is not contractually guaranteed, so
// every extraction step tolerates absence or malformation without aborting
// the others. ParseResponse never fails: all errors are reported through the
// Result's Error field.
func ParseResponse(raw []byte) Result {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Result{Error: fmt.Sprintf("Error parsing response: %v", err)}
	}

	if len(env.Choices) == 0 {
		return Result{Error: "No choices found in response"}
	}

	content := env.Choices[0].Message.Content
	if content == "" {
		return Result{Error: "No content found in message"}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &payload); err != nil {
		return Result{Error: fmt.Sprintf("Error parsing response: %v", err)}
	}

	return Result{
		Ingredients:            extractIngredients(payload["Ingredients"]),
		RecipeSuggestions:      extractRecipeSuggestions(payload["RecipeSuggestions"]),
		NutritionalInformation: extractNutrition(payload["NutritionalInformation"]),
	}
}

// stripCodeFences removes markdown code-fence markers the model sometimes
// wraps its JSON output in.
func stripCodeFences(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func extractIngredients(raw json.RawMessage) []string {
	var items []any
	if raw == nil || json.Unmarshal(raw, &items) != nil {
		return []string{NoIngredientsDetected}
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ingredients = append(ingredients, s)
		}
	}
	if len(ingredients) == 0 {
		return []string{NoIngredientsDetected}
	}
	return ingredients
}

func extractRecipeSuggestions(raw json.RawMessage) []RecipeSuggestion {
	var entries []map[string]any
	if raw == nil || json.Unmarshal(raw, &entries) != nil || len(entries) == 0 {
		return []RecipeSuggestion{{Message: NoRecipesAvailable}}
	}

	suggestions := make([]RecipeSuggestion, 0, len(entries))
	for _, entry := range entries {
		suggestions = append(suggestions, RecipeSuggestion{
			Name:        stringOr(entry["name"], NoNameAvailable),
			Description: stringOr(entry["description"], NoDescription),
			Link:        stringOr(entry["link"], NoLinkAvailable),
		})
	}
	return suggestions
}

func extractNutrition(raw json.RawMessage) map[string]any {
	var entries map[string]json.RawMessage
	if raw == nil || json.Unmarshal(raw, &entries) != nil || len(entries) == 0 {
		return map[string]any{"message": NoNutritionAvailable}
	}

	nutrition := make(map[string]any, len(entries))
	for name, entry := range entries {
		nutrition[name] = extractNutritionFacts(entry)
	}
	return nutrition
}

// extractNutritionFacts defaults each sub-field on its own: an entry carrying
// only calories still yields valid protein, fats and vitamins values.
func extractNutritionFacts(raw json.RawMessage) NutritionFacts {
	facts := NutritionFacts{Vitamins: []string{}}

	var fields map[string]any
	if json.Unmarshal(raw, &fields) != nil {
		return facts
	}

	if v, ok := fields["calories"].(float64); ok {
		facts.Calories = int(v)
	}
	if v, ok := fields["protein"].(float64); ok {
		facts.Protein = v
	}
	if v, ok := fields["fats"].(float64); ok {
		facts.Fats = v
	}
	if items, ok := fields["vitamins"].([]any); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				facts.Vitamins = append(facts.Vitamins, s)
			}
		}
	}
	return facts
}

func stringOr(value any, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}
