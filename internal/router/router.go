package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/api"
	"github.com/monkeybio5414/mealmate-backend/internal/database"
	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
)

// Handlers bundles the API handlers wired into the router.
type Handlers struct {
	Auth        *api.AuthHandler
	Recipe      *api.RecipeHandler
	Recognition *api.RecognitionHandler
	MealPlan    *api.MealPlanHandler
	Shopping    *api.ShoppingHandler
	Forum       *api.ForumHandler
}

// SetupRouter configures the application routes
func SetupRouter(handlers Handlers, db *gorm.DB, redisClient *redis.Client, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", healthHandler(db, redisClient))

	v1 := router.Group("/api/v1")
	handlers.Auth.RegisterRoutes(v1)
	handlers.Recipe.RegisterRoutes(v1)
	handlers.Recognition.RegisterRoutes(v1)
	handlers.MealPlan.RegisterRoutes(v1)
	handlers.Shopping.RegisterRoutes(v1)
	handlers.Forum.RegisterRoutes(v1)

	return router
}

func healthHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if db != nil {
			if err := database.HealthCheck(ctx, db); err != nil {
				checks["database"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		} else {
			checks["database"] = "not configured"
		}

		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		} else {
			checks["redis"] = "not configured"
		}

		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
	}
}
