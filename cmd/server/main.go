package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"collegeconnect/internal/config"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/httpserver"
	"collegeconnect/internal/security"
	"collegeconnect/internal/store/postgres"
	"collegeconnect/internal/store/sqlite"
)

// @title           College Connect API
// @version         1.0
// @description     Student directory and direct messaging backend.

// @host            localhost:5000
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var (
		db       *sql.DB
		users    domain.UserRepository
		messages domain.MessageRepository
	)
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		users = postgres.NewUserRepo(db)
		messages = postgres.NewMessageRepo(db)
	default:
		db, err = sqlite.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		if err := sqlite.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		users = sqlite.NewUserRepo(db)
		messages = sqlite.NewMessageRepo(db)
	}
	defer db.Close()

	// Security components
	tokenSvc := security.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenExpireDays)*24*time.Hour)
	passwordHasher := security.NewPasswordHasher(cfg.BcryptCost)

	router := httpserver.NewRouter(cfg, db, users, messages, tokenSvc, passwordHasher)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr()).Str("driver", cfg.DatabaseDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
