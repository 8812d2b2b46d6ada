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
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/logger"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/marketdata"
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

	timeout := time.Duration(cfg.Collector.RequestTimeoutSeconds) * time.Second
	sources := []domain.Source{
		marketdata.NewCoinGeckoSource(cfg.Collector.CoinGeckoAPIKey, timeout),
		marketdata.NewCryptoCompareSource(cfg.Collector.CryptoCompareAPIKey, timeout),
		marketdata.NewBinanceSource(timeout),
	}

	interval := time.Duration(cfg.Collector.IntervalMinutes) * time.Minute
	svc := usecase.NewCollectorService(sources, store, store, log, interval)

	if err := svc.Collect(context.Background()); err != nil {
		log.Error("Initial collection failed", zap.Error(err))
	}

	scheduler := cron.New()
	spec := fmt.Sprintf("@every %dm", cfg.Collector.IntervalMinutes)
	if _, err := scheduler.AddFunc(spec, func() {
		if err := svc.Collect(context.Background()); err != nil {
			log.Error("Scheduled collection failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("Failed to schedule collection", zap.Error(err))
	}
	scheduler.Start()
	log.Info("Collector started", zap.String("schedule", spec))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	<-scheduler.Stop().Done()
}
