package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/clubcal/calendar-admin-server/src/config"
	"github.com/clubcal/calendar-admin-server/src/database"
	"github.com/clubcal/calendar-admin-server/src/handlers"
	"github.com/clubcal/calendar-admin-server/src/logging"
	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/repositories/postgres"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Repositories
	accountRepo := postgres.NewAccountRepository(db.GetPool())
	eventRepo := postgres.NewEventRepository(db.GetPool())
	participationRepo := postgres.NewParticipationRepository(db.GetPool())

	// Services
	tokenService := services.NewTokenService(accountRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(accountRepo, tokenService, cfg.RefreshRenewWindow)
	eventService := services.NewEventService(eventRepo, participationRepo)
	participationService := services.NewParticipationService(participationRepo, eventRepo)

	// Auto-seed admin account on first run (if ADMIN_ID and ADMIN_PASSWORD are set)
	if cfg.AdminID != "" && cfg.AdminPassword != "" {
		created, err := authService.SeedAccount(context.Background(), cfg.AdminID, cfg.AdminName, cfg.AdminPassword)
		if err != nil {
			log.Error().Err(err).Msg("failed to seed admin account")
		} else if created {
			log.Info().Str("id", cfg.AdminID).Msg("initial admin account created")
		}
	}

	// Create Gin router
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(gin.Recovery())

	if cfg.AllowedOrigins != "" {
		corsConfig := cors.Config{
			AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		router.Use(cors.New(corsConfig))
	}

	setupRoutes(router, db, tokenService, authService, eventService, participationService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

func setupRoutes(
	router *gin.Engine,
	db *database.Database,
	tokenService *services.TokenService,
	authService *services.AuthService,
	eventService *services.EventService,
	participationService *services.ParticipationService,
) {
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	participationHandler := handlers.NewParticipationHandler(participationService)

	session := middleware.SessionMiddleware(tokenService)

	// Health check and metrics endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)
	router.GET("/metrics", middleware.MetricsHandler())

	// Authentication endpoints
	auth := router.Group("/auth")
	auth.POST("/login", middleware.LoginRateLimitMiddleware(), authHandler.HandleLogin)
	auth.DELETE("/logout", session, authHandler.HandleLogout)
	auth.GET("/renew", authHandler.HandleRenew)

	// Monthly calendar view (public)
	router.GET("/:yearMonth", eventHandler.HandleListMonth)

	// Event endpoints
	router.POST("/event", session, eventHandler.HandleCreate)
	router.GET("/event/:eventID", eventHandler.HandleGet)
	router.PUT("/event/:eventID", session, eventHandler.HandleUpdate)
	router.DELETE("/event/:eventID", session, eventHandler.HandleDelete)

	// Participation endpoints
	router.POST("/event/:eventID/participate", participationHandler.HandleCreate)
	router.GET("/event/:eventID/participate", session, participationHandler.HandleList)
	router.DELETE("/participate/:participationID", session, participationHandler.HandleDelete)
}
