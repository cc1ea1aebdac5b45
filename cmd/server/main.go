package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"tripcraft/docs"
	"tripcraft/internal/auth"
	"tripcraft/internal/cache"
	"tripcraft/internal/config"
	"tripcraft/internal/db"
	"tripcraft/internal/events"
	"tripcraft/internal/handler"
	"tripcraft/internal/logging"
	"tripcraft/internal/repository"
	"tripcraft/internal/router"
	"tripcraft/internal/service"
	"tripcraft/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

// @title Tripcraft API
// @version 1.0
// @description Travel planning API with itinerary generation, city enrichment, hotel search and saved itineraries.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	gormDB, err := db.Open(ctx, db.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		logger.Error("database init", "error", err)
		os.Exit(1)
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn("failed to drop tables", "error", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itineraryRepo := repository.NewItineraryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize upstream clients
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	openAI := upstream.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, service.ItineraryMaxTokens, httpClient)
	unsplash := upstream.NewUnsplashClient(cfg.UnsplashBaseURL, cfg.UnsplashKey, httpClient)
	openWeather := upstream.NewOpenWeatherClient(cfg.OpenWeatherBaseURL, cfg.OpenWeatherKey, httpClient)
	amadeus := upstream.NewAmadeusClient(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, httpClient, tokenStore)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, publisher, cfg.BcryptCost)
	itineraryService := service.NewItineraryService(itineraryRepo, publisher)
	generationService := service.NewGenerationService(openAI)
	enrichmentService := service.NewEnrichmentService(unsplash, openWeather)
	hotelService := service.NewHotelService(amadeus)

	readiness := map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return db.Ping(ctx, gormDB) }),
	}
	if cacheClient.Enabled() {
		readiness["redis"] = cacheClient
	}

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, logger, jwtService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Itinerary: handler.NewItineraryHandler(itineraryService),
		Trip:      handler.NewTripHandler(generationService, enrichmentService),
		Hotel:     handler.NewHotelHandler(hotelService),
		Health:    handler.NewHealthHandler(readiness),
	})

	swaggerURL := "http://" + docs.SwaggerInfo.Host
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		swaggerURL = cfg.SwaggerHost
		if !strings.HasPrefix(swaggerURL, "http://") && !strings.HasPrefix(swaggerURL, "https://") {
			swaggerURL = "http://" + swaggerURL
		}
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(swaggerURL, "https://"), "http://")
	}
	logger.Info("swagger documentation available", "url", swaggerURL+"/swagger/index.html")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("close event publisher", "error", err)
	}
	if err := cacheClient.Close(); err != nil {
		logger.Error("close redis", "error", err)
	}
	if err := db.Close(gormDB); err != nil {
		logger.Error("close database", "error", err)
	}
}
