package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/config"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/logger"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/marketdata"
	"github.com/r0mik/dogecoinanalyzer/internal/infrastructure/storage"
	"github.com/r0mik/dogecoinanalyzer/internal/web"
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

	live := web.NewLiveTicker()
	stream := marketdata.NewBinanceStream("", log)
	stream.OnPriceUpdate(func(price float64, at time.Time) {
		live.Set(price, at)
	})
	if err := stream.Start(); err != nil {
		log.Warn("Live stream unavailable", zap.Error(err))
	} else {
		defer stream.Close()
	}

	server := web.NewServer(cfg.Dashboard.Port, store, store, store, live, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
