package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
	"github.com/monkeybio5414/mealmate-backend/internal/service"
)

// maxPhotoBytes caps uploads at 10 MB, plenty for a phone camera JPEG.
const maxPhotoBytes = 10 << 20

// recognitionQuota reports how many recognition calls a user has left in the
// current rate-limit window. *middleware.RateLimiter satisfies it.
type recognitionQuota interface {
	GetRemainingRequests(ctx context.Context, userID string) (int, time.Time, error)
}

type RecognitionHandler struct {
	recognitionService service.IRecognitionService
	validator          middleware.TokenValidator
	rateLimiter        *middleware.RateLimiter
	quota              recognitionQuota
}

func NewRecognitionHandler(recognitionService service.IRecognitionService, validator middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *RecognitionHandler {
	h := &RecognitionHandler{
		recognitionService: recognitionService,
		validator:          validator,
		rateLimiter:        rateLimiter,
	}
	if rateLimiter != nil {
		h.quota = rateLimiter
	}
	return h
}

func (h *RecognitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	recognition := router.Group("/recognition", middleware.AuthMiddleware(h.validator))
	{
		if h.rateLimiter != nil {
			recognition.POST("", h.rateLimiter.RateLimitMiddleware(), h.Recognize)
		} else {
			recognition.POST("", h.Recognize)
		}
		recognition.GET("/latest", h.Latest)
		recognition.GET("/quota", h.Quota)
		recognition.GET("/history", h.History)
		recognition.GET("/photos/:id/url", h.PhotoURL)
	}
}

// Recognize accepts a multipart photo upload and runs it through the
// recognition pipeline. The parsed result is returned as-is; model-side
// problems surface in its "error" field with a 200, transport problems
// as a 502.
func (h *RecognitionHandler) Recognize(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo upload"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
		return
	}
	if len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty photo upload"})
		return
	}
	if len(image) > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo too large"})
		return
	}

	result, err := h.recognitionService.RecognizePhoto(c.Request.Context(), image, userID)
	if err != nil {
		log.Printf("[RecognitionHandler] recognition failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recognition service unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecognitionHandler) Latest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.recognitionService.LatestResult(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest result"})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recognition result yet"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Quota reports the caller's remaining recognition budget so clients can
// show it before attempting an upload. Without a rate limiter there is no
// budget to report.
func (h *RecognitionHandler) Quota(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.quota == nil {
		c.JSON(http.StatusOK, gin.H{"limited": false})
		return
	}

	remaining, resetTime, err := h.quota.GetRemainingRequests(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate limit status unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limited":   true,
		"remaining": remaining,
		"reset":     resetTime.Unix(),
	})
}

// PhotoURL returns a short-lived download link for one of the user's stored
// photos.
func (h *RecognitionHandler) PhotoURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.recognitionService.PhotoURL(c.Request.Context(), userID, photoID)
	if err != nil {
		if errors.Is(err, service.ErrPhotoURLUnavailable) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Photo downloads not available"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *RecognitionHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.recognitionService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
