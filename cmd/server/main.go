package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/api"
	"github.com/saferoute/saferoute-backend-go/internal/config"
	"github.com/saferoute/saferoute-backend-go/internal/database"
	"github.com/saferoute/saferoute-backend-go/internal/handler"
	"github.com/saferoute/saferoute-backend-go/internal/logger"
	"github.com/saferoute/saferoute-backend-go/internal/presence"
	"github.com/saferoute/saferoute-backend-go/internal/provider"
	"github.com/saferoute/saferoute-backend-go/internal/realtime"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
	"github.com/saferoute/saferoute-backend-go/internal/safety"
	"github.com/saferoute/saferoute-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer zlog.Sync()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Providers
	osrm := provider.NewOSRMClient(cfg.OSRMBaseURL, cfg.RoutingTimeout, zlog)
	overpass := provider.NewOverpassClient(cfg.OverpassBaseURL, cfg.ProviderTimeout, zlog)
	traffic := provider.NewTrafficScorer(cfg.TomTomBaseURL, cfg.TomTomAPIKey, cfg.ProviderTimeout, zlog)
	cctv := provider.NewCCTVScorer(overpass, zlog)
	crowd := provider.NewCrowdScorer(overpass, zlog)
	geocoder := provider.NewGeocoder(cfg.NominatimBaseURL, cfg.ProviderTimeout, zlog)

	// Core
	evaluator := safety.NewEvaluator(traffic, cctv, crowd, cfg.ProviderTimeout, zlog)
	registry := presence.NewRegistry(zlog)
	matcher := presence.NewMatcher(registry)
	hub := realtime.NewHub(zlog)
	broadcaster := realtime.NewBroadcaster(hub, registry, zlog)
	gateway := realtime.NewGateway(hub, registry, matcher, broadcaster, zlog)

	// Repositories
	alertRepo := repository.NewAlertRepository(db)
	companionRepo := repository.NewCompanionRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	routeService := service.NewRouteService(osrm, evaluator, zlog)
	alertService := service.NewAlertService(alertRepo, userRepo, companionRepo, broadcaster, zlog)
	companionService := service.NewCompanionService(companionRepo, broadcaster, zlog)
	detectionService := service.NewDetectionService(detectionRepo, zlog)
	userService := service.NewUserService(userRepo)

	router := api.SetupRouter(cfg, zlog, api.Handlers{
		Route:     handler.NewRouteHandler(routeService),
		Geo:       handler.NewGeoHandler(geocoder, overpass, traffic, zlog),
		SOS:       handler.NewSOSHandler(alertService),
		Companion: handler.NewCompanionHandler(companionService),
		Detection: handler.NewDetectionHandler(detectionService),
		User:      handler.NewUserHandler(userService, cfg.JWTSecret),
		Gateway:   gateway,
	})

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("Server starting", zap.String("addr", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("Server shutdown failed", zap.Error(err))
	}
	hub.Close()

	zlog.Info("Server stopped")
}
