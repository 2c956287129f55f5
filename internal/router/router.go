package router

import (
	"log"

	"github.com/dmarini-dev/lumina/backend/internal/handlers"
	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/config"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgdb *mongo.Database, cfg *config.Config, store *storage.DiskStore, clock util.Clock) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.StreakRecord{},
		&models.Activity{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and uploaded media
	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", store.Dir())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	streakRepo := repositories.NewPostgresStreakRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	contentRepo := repositories.NewMongoContentRepository(mgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgdb)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, clock)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, friendshipRepo)
	userHandler.RegisterUserRoutes(e)
	log.Println("User profile routes configured.")

	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo, activityRepo, clock)
	friendshipHandler.RegisterFriendshipRoutes(e)
	log.Println("Friendship routes configured.")

	contactHandler := handlers.NewContactHandler(friendshipRepo, messageRepo, userRepo)
	contactHandler.RegisterContactRoutes(e)
	log.Println("Contact routes configured.")

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, store, clock)
	messageHandler.RegisterMessageRoutes(e)
	log.Println("Message routes configured.")

	storyHandler := handlers.NewStoryHandler(contentRepo, userRepo, store, clock)
	storyHandler.RegisterStoryRoutes(e)
	log.Println("Story routes configured.")

	postHandler := handlers.NewPostHandler(contentRepo, userRepo, store, clock)
	postHandler.RegisterPostRoutes(e)
	log.Println("Post routes configured.")

	videoHandler := handlers.NewVideoHandler(contentRepo, userRepo, store, clock)
	videoHandler.RegisterVideoRoutes(e)
	log.Println("Video routes configured.")

	likeHandler := handlers.NewLikeHandler(contentRepo, userRepo, activityRepo, clock)
	likeHandler.RegisterLikeRoutes(e)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(contentRepo, userRepo, activityRepo, clock)
	commentHandler.RegisterCommentRoutes(e)
	log.Println("Comment routes configured.")

	streakHandler := handlers.NewStreakHandler(streakRepo, clock)
	streakHandler.RegisterStreakRoutes(e)
	log.Println("Streak routes configured.")

	activityHandler := handlers.NewActivityHandler(activityRepo, userRepo, contentRepo)
	activityHandler.RegisterActivityRoutes(e)
	log.Println("Activity routes configured.")

	log.Println("All routes configured.")
}
