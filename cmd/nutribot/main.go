package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kerhoff/NutriboT/internal/api"
	"github.com/Kerhoff/NutriboT/internal/config"
	"github.com/Kerhoff/NutriboT/internal/handlers"
	"github.com/Kerhoff/NutriboT/internal/metrics"
	"github.com/Kerhoff/NutriboT/internal/repository/postgres"
	"github.com/Kerhoff/NutriboT/internal/service"
	"github.com/Kerhoff/NutriboT/internal/telegram"
	"github.com/Kerhoff/NutriboT/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting NutriboT...")

	// Database
	db, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseURL, l)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	foodRepo := postgres.NewFoodRepository(db.DB)
	recipeRepo := postgres.NewRecipeRepository(db.DB)

	// Service layer
	svc := service.New(db.DB, l, foodRepo, recipeRepo)

	m := metrics.New()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Keep the catalog gauges current
	go svc.StartCatalogMonitor(ctx, cfg.StatsInterval, func(stats service.CatalogStats) {
		m.SetCatalog(stats.Foods, stats.Recipes)
	})

	// Telegram bot, only when a token is configured
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram bot: %v", err)
		}

		bot.RegisterCommand("start", handlers.NewStartHandler(l))
		bot.RegisterCommand("help", handlers.NewHelpHandler(l))
		bot.RegisterCommand("food", handlers.NewFoodHandler(svc, l))
		bot.RegisterCommand("under", handlers.NewThresholdHandler(svc, service.Under, l))
		bot.RegisterCommand("over", handlers.NewThresholdHandler(svc, service.Over, l))
		bot.RegisterCommand("recipe", handlers.NewRecipeHandler(svc, l))
		bot.OnCommand(m.ObserveCommand)

		go func() {
			if err := bot.Start(ctx); err != nil {
				l.Errorf("Bot error: %v", err)
			}
		}()
	} else {
		l.Warn("TELEGRAM_TOKEN is not set, Telegram bot disabled")
	}

	// HTTP API
	apiServer := api.NewServer(svc, l, m)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	// Prometheus metrics
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", m.Handler())
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Infof("Metrics server listening on :%s", cfg.PrometheusPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("Metrics server error: %v", err)
		}
	}()

	l.Info("NutriboT started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP servers...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("HTTP server shutdown error: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("Metrics server shutdown error: %v", err)
	}

	l.Info("NutriboT stopped")
}
