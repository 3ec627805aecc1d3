package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/fran21fran/candyweb-backend/internal/handlers"
	"github.com/fran21fran/candyweb-backend/internal/middleware"
	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/fran21fran/candyweb-backend/pkg/config"
	"github.com/fran21fran/candyweb-backend/pkg/mailer"
	"github.com/fran21fran/candyweb-backend/pkg/payments"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseAuthClient *auth.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.GameScore{},
		&models.Suggestion{},
		&models.SuggestionLike{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	scoreRepo := repositories.NewPostgresScoreRepository(db.Postgres)
	suggestionRepo := repositories.NewPostgresSuggestionRepository(db.Postgres)
	eventRepo := repositories.NewMongoEventRepository(db.Mongo.Database("candyweb"))

	// --- External services ---
	gateway := payments.NewMercadoPagoClient(cfg.MercadoPagoAccessToken)
	sender := mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.NotificationEmail)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes ---
	public := e.Group("/api")

	leaderboardHandler := handlers.NewLeaderboardHandler(scoreRepo)
	leaderboardHandler.RegisterLeaderboardRoutes(public)

	contactHandler := handlers.NewContactHandler(eventRepo, sender)
	contactHandler.RegisterContactRoutes(public)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		userRepo, eventRepo, gateway, sender, cfg.FrontendURL, cfg.BackendURL)
	subscriptionHandler.RegisterWebhookRoutes(public)
	log.Println("Public routes configured.")

	// --- Optionally authenticated routes (guests allowed) ---
	optional := e.Group("/api")
	optional.Use(middleware.JWTAuthOptional())

	userHandler := handlers.NewUserHandler(userRepo)
	optional.GET("/user", userHandler.GetCurrentUser)

	suggestionHandler := handlers.NewSuggestionHandler(suggestionRepo)
	optional.GET("/suggestions", suggestionHandler.GetSuggestions)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuth())
	log.Println("JWT authentication middleware applied to /api group.")

	scoreHandler := handlers.NewScoreHandler(scoreRepo, userRepo)
	scoreHandler.RegisterScoreRoutes(api)

	suggestionHandler.RegisterSuggestionRoutes(api)

	subscriptionHandler.RegisterSubscriptionRoutes(api)
	api.POST("/test-email", contactHandler.SendTestEmail)
	log.Println("Protected routes configured.")
}
