package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
	"github.com/monkeybio5414/mealmate-backend/internal/service"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
)

type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	validator       middleware.TokenValidator
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService, validator middleware.TokenValidator) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/mealplans", middleware.AuthMiddleware(h.validator))
	{
		plans.GET("", h.GetPlan)
		plans.PUT("/entries", h.SetEntry)
		plans.DELETE("/entries/:id", h.RemoveEntry)
	}
}

// GetPlan returns the plan for the week given by ?week=YYYY-MM-DD.
func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	week := c.Query("week")
	if week == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing week parameter"})
		return
	}

	plan, err := h.mealPlanService.GetPlan(c.Request.Context(), userID, week)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) SetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SetMealPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.mealPlanService.SetEntry(c.Request.Context(), userID, &req)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) RemoveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.mealPlanService.RemoveEntry(c.Request.Context(), userID, entryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
