package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/monkeybio5414/mealmate-backend/config"
	"github.com/monkeybio5414/mealmate-backend/internal/api"
	"github.com/monkeybio5414/mealmate-backend/internal/database"
	"github.com/monkeybio5414/mealmate-backend/internal/middleware"
	"github.com/monkeybio5414/mealmate-backend/internal/router"
	"github.com/monkeybio5414/mealmate-backend/internal/server"
	"github.com/monkeybio5414/mealmate-backend/internal/service"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache or rate limiting: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	// Services
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	photoStore := service.NewPhotoStore(db, service.NewS3PhotoUploader(s3Config))
	visionClient := vision.NewClient(cfg.VisionAPIKey, cfg.VisionAPIURL)
	recognitionService := service.NewRecognitionService(visionClient, photoStore, redisClient, s3Config)
	mealPlanService := service.NewMealPlanService(db)
	shoppingService := service.NewShoppingService(db, photoStore)
	forumService := service.NewForumService(db)

	// Rate limiters (disabled without Redis)
	var recognitionLimiter, forumLimiter *middleware.RateLimiter
	if redisClient != nil {
		recognitionLimiter = middleware.NewRecognitionRateLimiter(redisClient)
		forumLimiter = middleware.NewForumPostRateLimiter(redisClient)
	}

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authService),
		Recipe:      api.NewRecipeHandler(recipeService, authService),
		Recognition: api.NewRecognitionHandler(recognitionService, authService, recognitionLimiter),
		MealPlan:    api.NewMealPlanHandler(mealPlanService, authService),
		Shopping:    api.NewShoppingHandler(shoppingService, authService),
		Forum:       api.NewForumHandler(forumService, authService, forumLimiter),
	}

	var allowedOrigins []string
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	engine := router.SetupRouter(handlers, db, redisClient, allowedOrigins)

	srv := server.NewServer(engine)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
