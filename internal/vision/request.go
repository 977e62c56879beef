package vision

// recognitionPrompt instructs the model to answer with the exact JSON shape
// the parser extracts. Changing the field names here breaks ParseResponse.
const recognitionPrompt = `Analyze the food items in this image and respond with a JSON object containing exactly three fields:
"Ingredients": an array of strings naming each food item you can identify (an empty array if none are detected),
"RecipeSuggestions": an array of objects with "name", "description" and "link" fields for recipes that use the detected ingredients,
"NutritionalInformation": an object keyed by ingredient name where each value has "calories" (integer), "protein" (number), "fats" (number) and "vitamins" (array of strings).
Respond with the JSON object only.`

// defaultModel is the vision-capable model the recognition endpoint serves.
const defaultModel = "gpt-4o"

// ContentPart is one element of a multimodal message: either a text block or
// an image reference.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries a data-URI-encoded image.
type ImageURL struct {
	URL string `json:"url"`
}

// Message is a single chat message with multimodal content.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// Request is the chat-completions payload sent to the vision API.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// BuildRequest assembles the recognition request for a sanitized base64 image
// string. The image string is assumed to already have newlines stripped; no
// further validation is performed here.
func BuildRequest(imageBase64 string) Request {
	return Request{
		Model: defaultModel,
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: recognitionPrompt},
					{Type: "image_url", ImageURL: &ImageURL{URL: DataURI(imageBase64)}},
				},
			},
		},
	}
}
