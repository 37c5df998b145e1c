package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"bytepantry/internal/donation"
	"bytepantry/internal/http/handlers"
	httpapi "bytepantry/internal/http/httpapi"
	"bytepantry/internal/infra"
	"bytepantry/internal/pantry"
	"bytepantry/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	shutdownTracing, err := infra.SetupTracing(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up tracing")
	}

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to open storage")
	}
	defer store.Close()

	donations := donation.NewService(store, store,
		donation.WithLogger(logger.With().Str("component", "donation").Logger()),
		donation.WithTracer(otel.GetTracerProvider().Tracer(cfg.ServiceName)),
		donation.WithTxTimeout(cfg.DonationTxTimeout),
		donation.WithMaxAttempts(cfg.DonationMaxAttempts),
	)
	app := handlers.NewApp(
		pantry.NewService(store, store, logger.With().Str("component", "pantry").Logger()),
		donations,
		store,
		logger,
	)

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("driver", cfg.DatabaseDriver).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to flush traces")
	}
	logger.Info().Msg("server stopped")
}
