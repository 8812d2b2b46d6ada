package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/config"
	"github.com/r0mik/dogecoinanalyzer/internal/domain"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/enhancer"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/logger"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/storage"
	"github.com/r0mik/dogecoinanalyzer/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := storage.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	var enh domain.Enhancer
	if cfg.LocalModel.Enabled {
		model := enhancer.NewLocalModel(
			true,
			cfg.LocalModel.URL,
			time.Duration(cfg.LocalModel.TimeoutSeconds)*time.Second,
			cfg.LocalModel.Temperature,
			cfg.LocalModel.MaxTokens,
			log,
		)
		if model.IsAvailable(context.Background()) {
			log.Info("Local model available", zap.String("url", cfg.LocalModel.URL))
		} else {
			log.Warn("Local model enabled but not reachable", zap.String("url", cfg.LocalModel.URL))
		}
		enh = model
	}

	interval := time.Duration(cfg.Analyzer.IntervalMinutes) * time.Minute
	svc := usecase.NewAnalyzerService(store, store, store, enh, log, interval)

	if err := svc.RunAnalysis(context.Background()); err != nil {
		log.Error("Initial analysis failed", zap.Error(err))
	}

	scheduler := cron.New()
	spec := fmt.Sprintf("@every %dm", cfg.Analyzer.IntervalMinutes)
	if _, err := scheduler.AddFunc(spec, func() {
		if err := svc.RunAnalysis(context.Background()); err != nil {
			log.Error("Scheduled analysis failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("Failed to schedule analysis", zap.Error(err))
	}
	scheduler.Start()
	log.Info("Analyzer started", zap.String("schedule", spec))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	<-scheduler.Stop().Done()
}
