package main

import (
	"context"
	"log"

	"github.com/dmarini-dev/lumina/backend/internal/router"
	"github.com/dmarini-dev/lumina/backend/internal/seed"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/dmarini-dev/lumina/backend/pkg/config"
	"github.com/dmarini-dev/lumina/backend/pkg/storage"
	"github.com/dmarini-dev/lumina/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Local media storage for uploads
	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	clock := util.NewRealClock()
	mgdb := db.Mongo.Database(cfg.MongoDatabase)
	router.SetupRoutes(e, db.Postgres, mgdb, cfg, store, clock)

	// Populate development fixtures on an empty store
	if err := seed.Run(context.Background(), db.Postgres, mgdb, clock); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
