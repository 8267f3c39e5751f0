package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Simplici0/cabinetry/internal/config"
	"github.com/Simplici0/cabinetry/internal/db"
	"github.com/Simplici0/cabinetry/internal/logging"
	"github.com/Simplici0/cabinetry/internal/migrations"
	"github.com/Simplici0/cabinetry/internal/pricing"
	"github.com/Simplici0/cabinetry/internal/seed"
	"github.com/Simplici0/cabinetry/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Must(false).Fatal("failed to load config", zap.Error(err))
	}
	logger := logging.Must(cfg.Dev())
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.Dev() {
		if err := migrations.Up(database); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
		stats, err := seed.Run(database, seed.Config{SampleProject: "Sample kitchen"})
		if err != nil {
			logger.Fatal("failed to seed catalog", zap.Error(err))
		}
		logger.Info("catalog seeded", zap.Int("inserts", stats.Inserts))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &server{
		log:      logger,
		store:    store.New(database),
		engine:   pricing.New(pricing.WithLogger(logger.Named("pricing"))),
		settings: cfg.Engine,
		metrics:  newMetrics(reg),
	}
	if cfg.MetricsEnabled {
		srv.gatherer = reg
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
