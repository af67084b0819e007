package main

import (
	"context"
	"log"

	"storefront-checkout/internal/app"
	"storefront-checkout/internal/core/config"
	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"

	"go.uber.org/zap"
)

// @title Storefront Checkout API
// @version 1.0
// @description Bookstore catalog, cart, checkout wizard and order management with mock payment and shipping providers.
// @contact.name API Support
// @contact.email support@storefront.example.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	a, err := app.New(cfg)
	if err != nil {
		l.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	if err := a.Store.Ping(context.Background()); err != nil {
		l.Fatal("Storage Health Check Failed", zap.Error(err))
	}
	l.Info("Storage connection verified", zap.String("driver", cfg.Storage.Driver))

	srv := server.New(cfg, a.Store)

	for _, h := range a.Handlers() {
		h.RegisterRoutes(srv.App)
	}

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
