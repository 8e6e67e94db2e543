package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/gmbtravels/gmb-backend/auth"
	"github.com/gmbtravels/gmb-backend/config"
	"github.com/gmbtravels/gmb-backend/database"
	"github.com/gmbtravels/gmb-backend/handlers"
	"github.com/gmbtravels/gmb-backend/logging"
	"github.com/gmbtravels/gmb-backend/middleware"
	"github.com/gmbtravels/gmb-backend/services"
)

func main() {
	// Optional .env file; production relies on real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	if cfg.AdminUsername == "" || (cfg.AdminPassword == "" && cfg.AdminPasswordHash == "") {
		log.Fatal().Msg("ADMIN_USERNAME and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) must be set")
	}

	gate, err := buildGate(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth gate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	images, err := services.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload directory")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	setupRoutes(router, db, gate, images)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	db.Disconnect(shutdownCtx)

	log.Info().Msg("server shut down")
}

func buildGate(cfg *config.Config) (*auth.Gate, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.New(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL), nil
	}
	return auth.NewFromPassword(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL)
}

func setupRoutes(router *gin.Engine, db *database.Database, gate *auth.Gate, images *services.ImageStore) {
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(gate)
	settingsHandler := handlers.NewSiteSettingsHandler(db)
	teamHandler := handlers.NewTeamHandler(db)
	popupHandler := handlers.NewPopupHandler(db)
	blogHandler := handlers.NewBlogHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	uploadHandler := handlers.NewUploadHandler(images)

	// Uploaded images are served directly.
	router.Static("/uploads", images.Dir())

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.POST("/auth/login", middleware.LoginRateLimit(rate.Every(20*time.Second), 3), authHandler.Login)

		// Public reads: no token required, active-only where it matters.
		api.GET("/vehicles", vehicleHandler.ListPublic)
		api.GET("/blogs", blogHandler.List)
		api.GET("/popups", popupHandler.ListPublic)
		api.GET("/team", teamHandler.List)
		api.GET("/site-settings", settingsHandler.Get)

		// Every admin route, reads included, sits behind the bearer check.
		admin := api.Group("/admin", middleware.RequireAdmin(gate))
		{
			admin.GET("/site-settings", settingsHandler.Get)
			admin.PUT("/site-settings", settingsHandler.Update)

			admin.GET("/team", teamHandler.List)
			admin.POST("/team", teamHandler.Create)
			admin.GET("/team/:id", teamHandler.Get)
			admin.PUT("/team/:id", teamHandler.Update)
			admin.DELETE("/team/:id", teamHandler.Delete)

			admin.GET("/popups", popupHandler.ListAdmin)
			admin.POST("/popups", popupHandler.Create)
			admin.DELETE("/popups/:id", popupHandler.Delete)

			admin.GET("/blogs", blogHandler.List)
			admin.POST("/blogs", blogHandler.Create)
			admin.GET("/blogs/:id", blogHandler.Get)
			admin.PUT("/blogs/:id", blogHandler.Update)
			admin.DELETE("/blogs/:id", blogHandler.Delete)

			admin.GET("/vehicles", vehicleHandler.ListAdmin)
			admin.POST("/vehicles", vehicleHandler.Create)
			admin.GET("/vehicles/:id", vehicleHandler.Get)
			admin.PUT("/vehicles/:id", vehicleHandler.Update)
			admin.DELETE("/vehicles/:id", vehicleHandler.Delete)

			admin.POST("/upload-image", uploadHandler.UploadImage)
		}
	}
}
