package main

import (
	"github.com/amjadodeh/small-circles-api/internal/router"
	"github.com/amjadodeh/small-circles-api/pkg/config"
	"github.com/amjadodeh/small-circles-api/pkg/logger"
	"github.com/amjadodeh/small-circles-api/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	logger.InitLogger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		logger.Log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
