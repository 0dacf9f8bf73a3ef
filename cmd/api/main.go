// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"adlaunch/internal/config"
	"adlaunch/internal/launcher"
	"adlaunch/internal/metrics"
	"adlaunch/internal/middleware"
	"adlaunch/internal/routes"
	"adlaunch/internal/services"
)

// @title           adlaunch API
// @version         1.0
// @description     Launches a complete Meta Ads campaign (campaign, ad set, creative and ad) from a single request.
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := middleware.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	m := metrics.New(prometheus.DefaultRegisterer, "adlaunch")

	graph := services.NewMetaClient(cfg.Meta.BaseURL, cfg.Meta.Version)
	graph.SetHTTPClient(&http.Client{Timeout: cfg.Meta.Timeout})
	graph.SetUploadHTTPClient(&http.Client{Timeout: cfg.Meta.UploadTimeout})
	graph.SetMetrics(m)

	var s3cfg *config.S3Config
	if cfg.Media.S3Enabled {
		s3cfg, err = config.NewS3Config(context.Background())
		if err != nil {
			logger.Warn("S3 not available, s3:// media references disabled", zap.Error(err))
			s3cfg = nil
		}
	}
	fetcher := services.NewMediaFetcher(s3cfg, cfg.Media.MaxFetchBytes)
	fetcher.SetHTTPClient(&http.Client{Timeout: cfg.Meta.UploadTimeout})

	l := launcher.New(graph, fetcher, cfg.Launch, cfg.Media, logger, m)

	router := routes.SetupRoutes(&routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Launcher: l,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.HTTP.Port),
			zap.String("env", cfg.Env),
			zap.String("graph_api", cfg.Meta.BaseURL+"/"+cfg.Meta.Version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
