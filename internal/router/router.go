package router

import (
	"github.com/amjadodeh/small-circles-api/internal/handlers"
	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/amjadodeh/small-circles-api/internal/repositories"
	"github.com/amjadodeh/small-circles-api/internal/services"
	"github.com/amjadodeh/small-circles-api/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Info("request")
			return nil
		},
	}))
	logger.Log.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.FriendRequest{},
	)
	if err != nil {
		logger.Log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Application-level duplicate checks cannot survive concurrent creates;
	// the canonicalized pending pair is kept unique by the database itself.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_friend_requests_pending_pair
		ON friend_requests ((LEAST(user_id_from, user_id_to)), (GREATEST(user_id_from, user_id_to)))
		WHERE request_status = 'Pending'`).Error
	if err != nil {
		logger.Log.Fatalf("Failed to create pending pair index: %v", err)
	}
	logger.Log.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	friendRequestRepo := repositories.NewPostgresFriendRequestRepository(db)

	// --- Services ---
	friendRequestService := services.NewFriendRequestService(friendRequestRepo, userRepo)

	api := e.Group("/api/v1")

	// User routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	logger.Log.Info("User routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(api)
	logger.Log.Info("Post routes configured.")

	// Friend request routes
	friendRequestHandler := handlers.NewFriendRequestHandler(friendRequestService)
	friendRequestHandler.RegisterFriendRequestRoutes(api)
	logger.Log.Info("Friend request routes configured.")

	logger.Log.Info("All routes configured.")
}
