package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"parkscout/internal/camera"
	"parkscout/internal/config"
	"parkscout/internal/db"
	"parkscout/internal/server"
	"parkscout/internal/wire"
	"parkscout/repository"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (optional)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "parkscout").Logger()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Info().Stringer("config", cfg).Msg("configuration loaded")

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn().Err(err).Msg("close db")
		}
	}()

	users := repository.NewUserRepository(d)
	spots := repository.NewSpotRepository(d)
	history := repository.NewHistoryRepository(d)
	images := camera.NewImageStore(cfg.Camera.Dir)

	cipher, err := wire.NewCipher([]byte(cfg.Wire.Key), []byte(cfg.Wire.Nonce))
	if err != nil {
		log.Fatal().Err(err).Msg("init cipher")
	}
	codec := wire.NewCodec(cipher)
	router := server.NewRouter(users, spots, history, images, cfg.Auth.JWTSecret, log)

	// Start TCP server
	addr, shutdown, err := server.Start(cfg, codec, router, log)
	if err != nil {
		log.Fatal().Err(err).Msg("start server")
	}
	log.Info().Str("addr", addr).Int("workers", cfg.Server.MaxWorkers).Msg("listening")

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("shutdown error")
	}
}
