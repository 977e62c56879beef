package types

import "github.com/google/uuid"

// RegisterRequest is the body for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body for credential sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body for profile edits.
type UpdateProfileRequest struct {
	Username          string `json:"username"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions []string `json:"instructions" binding:"required"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
}

// UpdateRecipeRequest represents the request body for updating a recipe
type UpdateRecipeRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
}

// SetMealPlanEntryRequest assigns a recipe to a slot in a weekly plan.
type SetMealPlanEntryRequest struct {
	WeekStart string    `json:"week_start" binding:"required"`
	DayOfWeek int       `json:"day_of_week" binding:"min=0,max=6"`
	Slot      string    `json:"slot" binding:"required,oneof=breakfast lunch dinner snack"`
	RecipeID  uuid.UUID `json:"recipe_id" binding:"required"`
}

// AddShoppingItemRequest adds one item to the shopping list.
type AddShoppingItemRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Quantity string `json:"quantity" binding:"max=50"`
}

// ImportIngredientsRequest copies a recognition result's ingredients onto the
// shopping list.
type ImportIngredientsRequest struct {
	RecognitionResultID uuid.UUID `json:"recognition_result_id" binding:"required"`
}

// CreatePostRequest is the body for a new forum post.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
}

// CreateCommentRequest is the body for a new comment on a post.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
