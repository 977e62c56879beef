package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
	"github.com/monkeybio5414/mealmate-backend/internal/service"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
)

type ForumHandler struct {
	forumService service.IForumService
	validator    middleware.TokenValidator
	rateLimiter  *middleware.RateLimiter
}

func NewForumHandler(forumService service.IForumService, validator middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
		validator:    validator,
		rateLimiter:  rateLimiter,
	}
}

func (h *ForumHandler) RegisterRoutes(router *gin.RouterGroup) {
	forum := router.Group("/forum")
	{
		forum.GET("/posts", h.ListPosts)
		forum.GET("/posts/:id", h.GetPost)

		authed := forum.Group("", middleware.AuthMiddleware(h.validator))
		{
			if h.rateLimiter != nil {
				authed.POST("/posts", h.rateLimiter.RateLimitMiddleware(), h.CreatePost)
			} else {
				authed.POST("/posts", h.CreatePost)
			}
			authed.DELETE("/posts/:id", h.DeletePost)
			authed.POST("/posts/:id/comments", h.AddComment)
			authed.DELETE("/comments/:id", h.DeleteComment)
		}
	}
}

func (h *ForumHandler) ListPosts(c *gin.Context) {
	posts, err := h.forumService.ListPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *ForumHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.forumService.GetPost(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), userID, req.Title, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *ForumHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.forumService.DeletePost(c.Request.Context(), userID, id); err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case service.ErrNotPostOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the post author"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ForumHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.forumService.AddComment(c.Request.Context(), userID, postID, req.Body)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *ForumHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.forumService.DeleteComment(c.Request.Context(), userID, id); err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case service.ErrNotPostOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the comment author"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
