package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
)

// MealPlanService handles weekly meal plan operations
type MealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// parseWeekStart normalizes a YYYY-MM-DD date to the Monday of its week.
func parseWeekStart(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week_start %q: %w", value, err)
	}

	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset), nil
}

// GetPlan returns the user's plan for the given week, creating an empty one
// when none exists yet.
func (s *MealPlanService) GetPlan(ctx context.Context, userID uuid.UUID, weekStart string) (*models.MealPlan, error) {
	week, err := parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	return s.getOrCreatePlan(ctx, userID, week)
}

func (s *MealPlanService) getOrCreatePlan(ctx context.Context, userID uuid.UUID, week time.Time) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Entries").
		Where("user_id = ? AND week_start = ?", userID, week).
		First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	plan = models.MealPlan{
		ID:        uuid.New(),
		UserID:    userID,
		WeekStart: week,
		Entries:   []models.MealPlanEntry{},
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// SetEntry assigns a recipe to a day and slot, replacing any existing entry
// in that position.
func (s *MealPlanService) SetEntry(ctx context.Context, userID uuid.UUID, req *types.SetMealPlanEntryRequest) (*models.MealPlan, error) {
	week, err := parseWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		return nil, err
	}

	plan, err := s.getOrCreatePlan(ctx, userID, week)
	if err != nil {
		return nil, err
	}

	// One entry per day+slot: drop the previous assignment first.
	if err := s.db.WithContext(ctx).
		Where("meal_plan_id = ? AND day_of_week = ? AND slot = ?", plan.ID, req.DayOfWeek, req.Slot).
		Delete(&models.MealPlanEntry{}).Error; err != nil {
		return nil, err
	}

	entry := models.MealPlanEntry{
		ID:         uuid.New(),
		MealPlanID: plan.ID,
		DayOfWeek:  req.DayOfWeek,
		Slot:       req.Slot,
		RecipeID:   req.RecipeID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return s.getOrCreatePlan(ctx, userID, week)
}

// RemoveEntry deletes one entry from the user's plan.
func (s *MealPlanService) RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.MealPlanEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		return err
	}

	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", entry.MealPlanID).Error; err != nil {
		return err
	}
	if plan.UserID != userID {
		return gorm.ErrRecordNotFound
	}

	return s.db.WithContext(ctx).Delete(&models.MealPlanEntry{}, "id = ?", entryID).Error
}
