package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/api/handlers"
	"github.com/ifnbl/statsapi/internal/api/middleware"
	"github.com/ifnbl/statsapi/internal/config"
	"github.com/ifnbl/statsapi/internal/logger"
	"github.com/ifnbl/statsapi/internal/providers"
	"github.com/ifnbl/statsapi/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("ifnbl-stats-api").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"data_host":   cfg.DataBaseURL,
		"season":      cfg.DefaultSeason,
	}).Info("Starting IFNBL stats API")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire up the fetch/aggregate pipeline
	circuitBreaker := services.NewCircuitBreakerService(
		cfg.CircuitBreakerThreshold,
		cfg.FetchTimeout,
		structuredLogger,
	)
	seasonClient := providers.NewSeasonClient(
		cfg.DataBaseURL,
		cfg.MaxWeeks,
		cfg.FetchTimeout,
		circuitBreaker,
		structuredLogger,
	)
	aggregator := services.NewAggregator(cfg.ExcludedPlayers, structuredLogger)
	seasonService := services.NewSeasonService(seasonClient, aggregator, structuredLogger)

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID(), middleware.CORS(cfg.CorsOrigins))

	// Initialize handlers
	leagueHandler := handlers.NewLeagueHandler(cfg, seasonService, structuredLogger)
	healthHandler := handlers.NewHealthHandler(seasonService, circuitBreaker, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/seasons", leagueHandler.ListSeasons)

		season := apiV1.Group("/seasons/:season")
		{
			season.GET("/standings", leagueHandler.GetStandings)
			season.GET("/teams", leagueHandler.ListTeams)
			season.GET("/teams/:team/roster", leagueHandler.GetTeamRoster)
			season.GET("/schedule", leagueHandler.GetSchedule)
			season.GET("/schedule/upcoming", leagueHandler.GetUpcomingGames)
			season.GET("/leaders", leagueHandler.GetLeaders)
			season.GET("/weeks/:week/top-performers", leagueHandler.GetTopPerformers)
			season.GET("/players/:slug", leagueHandler.GetPlayer)
			season.GET("/boxscore/:week/:game", leagueHandler.GetBoxScore)
		}
	}

	// Health check endpoints (support both GET and HEAD)
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)
	router.GET("/metrics", healthHandler.GetMetrics)
	router.HEAD("/metrics", healthHandler.GetMetrics)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("ifnbl-stats-api").WithField("port", cfg.Port).Info("Stats API started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("ifnbl-stats-api").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("ifnbl-stats-api").Info("Shutting down stats API...")

	// The server has 5 seconds to finish the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("ifnbl-stats-api").Fatalf("Stats API forced to shutdown: %v", err)
	}

	logger.WithService("ifnbl-stats-api").Info("Stats API exited")
}
