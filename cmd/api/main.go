package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gasp-api/docs"
	"gasp-api/internal/config"
	"gasp-api/internal/geocoder"
	"gasp-api/internal/handler"
	"gasp-api/internal/middleware"
	"gasp-api/internal/observability"
	"gasp-api/internal/repository"
	"gasp-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, err := observability.NewLogger(config.Log.Level, config.Log.Format, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build logger")
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	store, closeStore, err := repository.Open(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.Store.Driver).Msg("cannot open store")
	}
	defer closeStore()

	// Initialize layers
	geo := geocoder.NewClient(config.Google.APIKey,
		geocoder.WithBaseURL(config.Google.BaseURL),
		geocoder.WithLanguage(config.Google.Language),
		geocoder.WithTimeout(config.Google.Timeout),
		geocoder.WithMetrics(metrics),
	)

	locationService := service.NewLocationService(geo, store, metrics)
	nearestService := service.NewNearestService(store)

	locationHandler := handler.NewLocationHandler(locationService)
	nearestHandler := handler.NewNearestHandler(nearestService)
	healthHandler := handler.NewHealthHandler(store)

	r := gin.New()
	r.Use(middleware.RequestID(logger), middleware.Recovery())

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	locations := r.Group("/locations")
	locations.POST("/new", locationHandler.AddLocation)
	locations.POST("/lookup", locationHandler.CheckLocation)
	locations.POST("/latlng", locationHandler.LatLng)
	locations.GET("/nearest", nearestHandler.Nearest)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("store", config.Store.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
