package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/testdb"
)

// memoryUploader keeps uploaded photo bytes in a map instead of S3.
type memoryUploader struct {
	objects map[string][]byte
}

func (u *memoryUploader) Upload(ctx context.Context, key string, data []byte) error {
	if u.objects == nil {
		u.objects = make(map[string][]byte)
	}
	u.objects[key] = data
	return nil
}

func TestSearchRecipesOrdersByEmbeddingDistance(t *testing.T) {
	tdb := testdb.SetupTestDB(t)
	svc := NewRecipeService(tdb.DB)
	userID := uuid.New()

	// "Tomato" alone sits one unit away from the query embedding; the
	// wordier recipe lands much further out. Both match the keyword filter.
	_, err := svc.CreateRecipe(context.Background(), &models.Recipe{
		Name:        "Tomato confit",
		Description: "Slow roasted tomatoes in olive oil with garlic and thyme",
		UserID:      userID,
	})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(context.Background(), &models.Recipe{
		Name:   "Tomato",
		UserID: userID,
	})
	require.NoError(t, err)
	_, err = svc.CreateRecipe(context.Background(), &models.Recipe{
		Name:   "Pancakes",
		UserID: userID,
	})
	require.NoError(t, err)

	results, err := svc.SearchRecipes(context.Background(), "tomato")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Tomato", results[0].Name)
	assert.Equal(t, "Tomato confit", results[1].Name)
}

func TestPhotoStoreRoundTripOnPostgres(t *testing.T) {
	tdb := testdb.SetupTestDB(t)
	uploader := &memoryUploader{}
	store := NewPhotoStore(tdb.DB, uploader)
	userID := uuid.New()

	photoID, err := store.SavePhoto(context.Background(), "anVzdC1ieXRlcw==", userID)
	require.NoError(t, err)
	require.Len(t, uploader.objects, 1)

	ingredients := []string{"Tomato", "Basil", "Mozzarella"}
	require.NoError(t, store.SaveRecognitionResult(context.Background(), photoID, ingredients, userID))

	results, err := store.ListRecognitionResults(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.JSONBStringArray(ingredients), results[0].Ingredients,
		"jsonb column preserves order through a round trip")
	assert.Equal(t, photoID, results[0].PhotoID)

	// Another user cannot read the photo or the result.
	_, err = store.GetPhoto(context.Background(), photoID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = store.GetRecognitionResult(context.Background(), results[0].ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
