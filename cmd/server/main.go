package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oakinvest/oak-backend/internal/config"
	"github.com/oakinvest/oak-backend/internal/logger"
	"github.com/oakinvest/oak-backend/internal/server"
	"github.com/oakinvest/oak-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init("oak-backend", cfg.Debug)

	ctx := context.Background()
	userStore, err := postgres.NewUserStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}
	defer userStore.Close()

	srv := server.New(cfg, userStore)

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Msg("OAK backend listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
