package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cjl-232/cryptcord-server/config"
	"github.com/cjl-232/cryptcord-server/internal/relay/delivery"
	httpdelivery "github.com/cjl-232/cryptcord-server/internal/relay/delivery/http"
	tcpdelivery "github.com/cjl-232/cryptcord-server/internal/relay/delivery/tcp"
	relayrepository "github.com/cjl-232/cryptcord-server/internal/relay/repository"
	relayusecase "github.com/cjl-232/cryptcord-server/internal/relay/usecase"
	"github.com/cjl-232/cryptcord-server/internal/storage"
	"github.com/cjl-232/cryptcord-server/internal/user"
	userrepository "github.com/cjl-232/cryptcord-server/internal/user/repository"
	"github.com/cjl-232/cryptcord-server/pkg/logger"
)

func main() {
	cfgName := flag.String("f", "config", "Name of the config file under config/, without extension.")
	flag.Parse()

	v, err := config.LoadConfig(*cfgName)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	db, err := storage.Open(cfg)
	if err != nil {
		appLogger.Fatalf("failed to open storage: %v", err)
	}
	if err := storage.Init(context.Background(), db); err != nil {
		appLogger.Fatalf("failed to initialise storage: %v", err)
	}

	var users user.UserRepository = userrepository.NewUserRepository(db, *appLogger)
	if cfg.Redis.Enabled {
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		users = userrepository.NewCachedUserRepository(users, storage.OpenRedis(cfg), ttl, *appLogger)
	}

	relayRepo := relayrepository.NewRelayRepository(db, *appLogger)
	relayUC := relayusecase.NewRelayUsecase(relayRepo, users, *appLogger, *cfg)
	handlers := delivery.NewHandlers(relayUC, users, *appLogger)

	tcpServer := tcpdelivery.NewServer(handlers, *appLogger, *cfg)
	if err := tcpServer.Start(); err != nil {
		appLogger.Fatalf("failed to start relay listener: %v", err)
	}

	var httpServer *httpdelivery.Server
	if cfg.HTTP.Enabled {
		httpServer = httpdelivery.NewServer(handlers, db, *appLogger, *cfg)
		httpServer.Start()
	}

	haltCh := make(chan os.Signal, 1)
	signal.Notify(haltCh, os.Interrupt, syscall.SIGTERM)
	<-haltCh

	appLogger.Info("shutting down")

	// Stop the HTTP surface first so it can drain, then halt the relay
	// listener, then release storage.
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("http shutdown incomplete", "err", err)
		}
		cancel()
	}
	tcpServer.Halt()

	if err := db.Close(); err != nil {
		appLogger.Warn("storage close failed", "err", err)
	}
	appLogger.Sync()
}
