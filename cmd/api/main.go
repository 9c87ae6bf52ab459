package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodshare-backend/bootstrap"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	app, cfg, err := bootstrap.New()
	if err != nil {
		log.Fatal().Err(err).Msg("app create failed")
	}
	defer app.Close()

	if err := app.Reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("expiry reminders failed to start")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msgf("Server running at http://localhost:%s", cfg.Port)
	log.Info().Msgf("Health check: http://localhost:%s/health/json", cfg.Port)
	if err := app.Fiber.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
