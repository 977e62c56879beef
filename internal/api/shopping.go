package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
	"github.com/monkeybio5414/mealmate-backend/internal/service"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
)

type ShoppingHandler struct {
	shoppingService service.IShoppingService
	validator       middleware.TokenValidator
}

func NewShoppingHandler(shoppingService service.IShoppingService, validator middleware.TokenValidator) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	shopping := router.Group("/shopping", middleware.AuthMiddleware(h.validator))
	{
		shopping.GET("", h.ListItems)
		shopping.POST("", h.AddItem)
		shopping.POST("/import", h.ImportIngredients)
		shopping.PUT("/:id/toggle", h.ToggleItem)
		shopping.DELETE("/:id", h.RemoveItem)
	}
}

func (h *ShoppingHandler) ListItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.shoppingService.ListItems(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ShoppingHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.shoppingService.AddItem(c.Request.Context(), userID, req.Name, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingHandler) ImportIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ImportIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.shoppingService.ImportIngredients(c.Request.Context(), userID, req.RecognitionResultID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recognition result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import ingredients"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *ShoppingHandler) ToggleItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.shoppingService.ToggleItem(c.Request.Context(), userID, itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ShoppingHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.shoppingService.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.Status(http.StatusNoContent)
}
