package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

func newShoppingService(t *testing.T) (*ShoppingService, *gorm.DB) {
	db := newTestDB(t)
	return NewShoppingService(db, NewPhotoStore(db, nil)), db
}

func TestShoppingService_AddAndList(t *testing.T) {
	svc, _ := newShoppingService(t)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, "Milk", "1l")
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), userID, "Eggs", "12")
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), uuid.New(), "Butter", "")
	require.NoError(t, err)

	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "1l", items[0].Quantity)
}

func TestShoppingService_ToggleItem(t *testing.T) {
	svc, _ := newShoppingService(t)
	userID := uuid.New()

	item, err := svc.AddItem(context.Background(), userID, "Milk", "")
	require.NoError(t, err)
	assert.False(t, item.Checked)

	toggled, err := svc.ToggleItem(context.Background(), userID, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Checked)

	toggled, err = svc.ToggleItem(context.Background(), userID, item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Checked)

	// Scoped to the owner
	_, err = svc.ToggleItem(context.Background(), uuid.New(), item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShoppingService_RemoveItem(t *testing.T) {
	svc, _ := newShoppingService(t)
	userID := uuid.New()

	item, err := svc.AddItem(context.Background(), userID, "Milk", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveItem(context.Background(), uuid.New(), item.ID), gorm.ErrRecordNotFound)
	require.NoError(t, svc.RemoveItem(context.Background(), userID, item.ID))
	assert.ErrorIs(t, svc.RemoveItem(context.Background(), userID, item.ID), gorm.ErrRecordNotFound)
}

func TestShoppingService_ImportIngredients(t *testing.T) {
	svc, db := newShoppingService(t)
	userID := uuid.New()

	result := models.RecognitionResult{
		ID:           uuid.New(),
		PhotoID:      uuid.New(),
		UserID:       userID,
		Ingredients:  models.JSONBStringArray{"Tomato", "Basil"},
		RecognizedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&result).Error)

	added, err := svc.ImportIngredients(context.Background(), userID, result.ID)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Tomato", added[0].Name)

	items, err := svc.ListItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestShoppingService_ImportSkipsPlaceholder(t *testing.T) {
	svc, db := newShoppingService(t)
	userID := uuid.New()

	result := models.RecognitionResult{
		ID:           uuid.New(),
		PhotoID:      uuid.New(),
		UserID:       userID,
		Ingredients:  models.JSONBStringArray{vision.NoIngredientsDetected},
		RecognizedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&result).Error)

	added, err := svc.ImportIngredients(context.Background(), userID, result.ID)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestShoppingService_ImportScopedToOwner(t *testing.T) {
	svc, db := newShoppingService(t)

	result := models.RecognitionResult{
		ID:           uuid.New(),
		PhotoID:      uuid.New(),
		UserID:       uuid.New(),
		Ingredients:  models.JSONBStringArray{"Tomato"},
		RecognizedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&result).Error)

	_, err := svc.ImportIngredients(context.Background(), uuid.New(), result.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
