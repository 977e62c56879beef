package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]*models.Recipe, error)
	FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error)
}

// VisionCaller issues a single vision API call. Implemented by vision.Client.
type VisionCaller interface {
	Complete(ctx context.Context, request vision.Request) ([]byte, error)
}

// RecognitionStore persists photos and recognition results. Both writes are
// fire-and-forget from the pipeline's perspective.
type RecognitionStore interface {
	SavePhoto(ctx context.Context, imageBase64 string, userID uuid.UUID) (uuid.UUID, error)
	SaveRecognitionResult(ctx context.Context, photoID uuid.UUID, ingredients []string, userID uuid.UUID) error
	GetPhoto(ctx context.Context, id, userID uuid.UUID) (*models.Photo, error)
	GetRecognitionResult(ctx context.Context, id, userID uuid.UUID) (*models.RecognitionResult, error)
	ListRecognitionResults(ctx context.Context, userID uuid.UUID) ([]*models.RecognitionResult, error)
}

// PhotoURLSigner issues short-lived download URLs for stored photo bytes.
// Implemented by config.S3Config.
type PhotoURLSigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// IRecognitionService runs the photo recognition pipeline.
type IRecognitionService interface {
	RecognizePhoto(ctx context.Context, image []byte, userID uuid.UUID) (vision.Result, error)
	LatestResult(ctx context.Context, userID uuid.UUID) (*vision.Result, error)
	History(ctx context.Context, userID uuid.UUID) ([]*models.RecognitionResult, error)
	PhotoURL(ctx context.Context, userID, photoID uuid.UUID) (string, error)
}

// IMealPlanService defines the interface for weekly meal plan operations
type IMealPlanService interface {
	GetPlan(ctx context.Context, userID uuid.UUID, weekStart string) (*models.MealPlan, error)
	SetEntry(ctx context.Context, userID uuid.UUID, req *types.SetMealPlanEntryRequest) (*models.MealPlan, error)
	RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

// IShoppingService defines the interface for shopping list operations
type IShoppingService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]*models.ShoppingListItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, name, quantity string) (*models.ShoppingListItem, error)
	ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*models.ShoppingListItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ImportIngredients(ctx context.Context, userID, resultID uuid.UUID) ([]*models.ShoppingListItem, error)
}

// IForumService defines the interface for forum operations
type IForumService interface {
	ListPosts(ctx context.Context) ([]*models.ForumPost, error)
	CreatePost(ctx context.Context, userID uuid.UUID, title, body string) (*models.ForumPost, error)
	GetPost(ctx context.Context, id uuid.UUID) (*models.ForumPost, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
	AddComment(ctx context.Context, userID, postID uuid.UUID, body string) (*models.ForumComment, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}
