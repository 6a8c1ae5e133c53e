// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/canteen-backend/internal/config"
	"github.com/your-org/canteen-backend/internal/domain/storefront"
	"github.com/your-org/canteen-backend/internal/domain/user"
	redisdb "github.com/your-org/canteen-backend/internal/infrastructure/database/redis"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/interfaces/http"
	"github.com/your-org/canteen-backend/internal/pkg/auth"
	"github.com/your-org/canteen-backend/internal/pkg/latency"
	"github.com/your-org/canteen-backend/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	store, redisClient, cleanup, err := openStorage(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}
	defer cleanup()

	// Demo accounts are hashed once at startup
	passwords := auth.NewPasswordManager(cfg)
	directory, err := user.NewDemoDirectory(passwords)
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare demo accounts")
	}

	registry := storefront.NewRegistry(storefront.Dependencies{
		Storage:      store,
		Directory:    directory,
		Passwords:    passwords,
		Tokens:       auth.NewTokenManager(cfg.Security.CSRFSecret, cfg.App.Name),
		AuthLatency:  latency.New(cfg.Simulation.AuthDelay),
		OrderLatency: latency.New(cfg.Simulation.OrderDelay),
		Logger:       log,
		SessionTTL:   cfg.Session.UserTTL,
	})

	server := http.NewServer(cfg, log, registry, redisClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// openStorage builds the configured storage backend. The returned Redis
// client is nil unless the redis provider is selected.
func openStorage(cfg *config.Config, log *logrus.Logger) (storage.Store, *redis.Client, func(), error) {
	switch cfg.Storage.Provider {
	case config.StorageFile:
		store, err := storage.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.WithField("path", cfg.Storage.FilePath).Info("Using file storage")
		return store, nil, func() {}, nil

	case config.StorageRedis:
		conn, err := redisdb.NewConnection(cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := conn.Health(context.Background()); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("redis health check failed: %w", err)
		}
		store := storage.NewRedisStore(conn.GetClient(), cfg.Storage.KeyPrefix, cfg.Storage.TTL)
		cleanup := func() {
			if err := conn.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Redis connection")
			}
		}
		return store, conn.GetClient(), cleanup, nil

	default:
		log.Warn("Using in-memory storage, state is lost on restart")
		return storage.NewMemoryStore(), nil, func() {}, nil
	}
}
