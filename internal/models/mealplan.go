package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlan is one user's plan for a single week. WeekStart is the Monday of
// that week, truncated to midnight UTC.
type MealPlan struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_meal_plans_user_week,unique" json:"user_id"`
	WeekStart time.Time      `gorm:"not null;index:idx_meal_plans_user_week,unique" json:"week_start"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Entries []MealPlanEntry `gorm:"foreignKey:MealPlanID" json:"entries"`
}

// MealPlanEntry assigns a recipe to a day-of-week and meal slot within a plan.
type MealPlanEntry struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealPlanID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_plan_id"`
	DayOfWeek  int       `gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6" json:"day_of_week"`
	Slot       string    `gorm:"size:20;not null" json:"slot"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null" json:"recipe_id"`
	CreatedAt  time.Time `json:"created_at"`
}
