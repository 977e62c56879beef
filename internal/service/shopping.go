package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

// ShoppingService handles shopping list operations
type ShoppingService struct {
	db    *gorm.DB
	store RecognitionStore
}

// NewShoppingService creates a new ShoppingService instance
func NewShoppingService(db *gorm.DB, store RecognitionStore) *ShoppingService {
	return &ShoppingService{
		db:    db,
		store: store,
	}
}

// ListItems lists the user's shopping list, unchecked items first.
func (s *ShoppingService) ListItems(ctx context.Context, userID uuid.UUID) ([]*models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("checked ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	out := make([]*models.ShoppingListItem, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

// AddItem appends one item to the user's list.
func (s *ShoppingService) AddItem(ctx context.Context, userID uuid.UUID, name, quantity string) (*models.ShoppingListItem, error) {
	item := models.ShoppingListItem{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Quantity: quantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleItem flips an item's checked state.
func (s *ShoppingService) ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}

	item.Checked = !item.Checked
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item from the user's list.
func (s *ShoppingService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.ShoppingListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ImportIngredients copies the ingredients of a recognition result onto the
// shopping list. The "no ingredients" placeholder is not a real ingredient
// and is skipped.
func (s *ShoppingService) ImportIngredients(ctx context.Context, userID, resultID uuid.UUID) ([]*models.ShoppingListItem, error) {
	result, err := s.store.GetRecognitionResult(ctx, resultID, userID)
	if err != nil {
		return nil, err
	}

	var added []*models.ShoppingListItem
	for _, name := range result.Ingredients {
		if name == vision.NoIngredientsDetected {
			continue
		}
		item, err := s.AddItem(ctx, userID, name, "")
		if err != nil {
			return nil, err
		}
		added = append(added, item)
	}
	return added, nil
}
