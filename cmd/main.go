// Command panel runs the coffee-market dashboard backend. It polls the
// public quote feed into a bounded persisted price history, aggregates the
// user's inventory against market prices into revenue projections, and
// serves both over an HTTP JSON API.
//
// Usage:
//
//	panel --config config.yaml
//	panel --setup       (interactive config wizard)
//	panel               (uses CLI flags)
//
// Required environment variables:
//
//	MYSQL_DSN: DSN of the external store holding products, inventory and
//	market prices. Loaded from .env when present.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paineldocafe/panel/config"
	"github.com/paineldocafe/panel/internal"
	"github.com/paineldocafe/panel/internal/clients"
	"github.com/paineldocafe/panel/internal/logger"
	"github.com/paineldocafe/panel/internal/services/analytics"
	"github.com/paineldocafe/panel/internal/services/history"
	"github.com/paineldocafe/panel/internal/setup"
	"github.com/paineldocafe/panel/internal/storage/pricehistory"
	"github.com/paineldocafe/panel/internal/storage/repository"
	"github.com/paineldocafe/panel/internal/web"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "--setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.LogFile)
	defer zlog.Sync()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		log.Fatal("MYSQL_DSN environment variable must be set")
	}

	store, err := repository.Open(dsn, cfg.UserID)
	if err != nil {
		log.Fatal(err)
	}

	walStore, err := pricehistory.NewWALStore(cfg.HistoryDir)
	if err != nil {
		log.Fatal(err)
	}
	defer walStore.Close()

	historyStore := history.NewStore(walStore, cfg.HistoryRetention, zlog)
	analyticsService := analytics.NewService(store, store, store, zlog)
	quotesClient := clients.NewQuotesClient(cfg.QuotesURL)
	weatherClient := clients.NewWeatherClient()

	panel := internal.NewPanel(quotesClient, historyStore, analyticsService,
		cfg.PollInterval, cfg.RefreshInterval, zlog)
	server := web.NewServer(cfg.ListenAddr, historyStore, analyticsService,
		panel, weatherClient, cfg.Weather, zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := panel.Run(ctx); err != nil && ctx.Err() == nil {
			zlog.Fatal("panel loop failed", zap.Error(err))
		}
	}()

	zlog.Info("serving panel API", zap.String("addr", cfg.ListenAddr))
	if err := server.Start(ctx); err != nil {
		zlog.Fatal("http server failed", zap.Error(err))
	}
}
