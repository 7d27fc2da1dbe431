package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeologic/whatsapp-dashboard/internal/api"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/config"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/db/memory"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/whatsapp"
	"github.com/codeologic/whatsapp-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment itself takes precedence anyway.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	store := memory.NewStore()
	if err := store.Seed(memory.SeedAdmin{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("seeding initial data failed")
	}

	gateway := whatsapp.NewClient(whatsapp.Config{
		PhoneID:    cfg.WhatsApp.PhoneID,
		Token:      cfg.WhatsApp.Token,
		APIVersion: cfg.WhatsApp.APIVersion,
	}, log)

	e := api.NewRouter(cfg, store, gateway, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
