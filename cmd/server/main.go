// Package main is the entry point for the agents REST server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/database"
	"github.com/pandeptwidyaop/agents-rest/internal/events"
	"github.com/pandeptwidyaop/agents-rest/internal/logging"
	"github.com/pandeptwidyaop/agents-rest/internal/router"
	"github.com/pandeptwidyaop/agents-rest/internal/services"
	"github.com/pandeptwidyaop/agents-rest/internal/version"
)

func printVersion() {
	fmt.Printf("agents-rest %s\n", version.Version)
	fmt.Printf("Build Time: %s\n", version.BuildTime)
	fmt.Printf("Git Commit: %s\n", version.GitCommit)
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			printVersion()
			os.Exit(0)
		case "hash-secret":
			// Prints a bcrypt hash for an auth.clients[].secret_hash entry.
			if len(os.Args) != 3 {
				fmt.Fprintln(os.Stderr, "usage: server hash-secret <secret>")
				os.Exit(2)
			}
			hash, err := services.HashSecret(os.Args[2], 12)
			if err != nil {
				fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(hash)
			os.Exit(0)
		}
	}

	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
		logging.Setup(cfg.Log)
		log.Warn().Err(err).Str("path", *configPath).Msg("could not load config, using defaults")
	} else {
		logging.Setup(cfg.Log)
	}

	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("auth.enabled requires auth.jwt_secret")
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	hub := events.NewHub(64)

	gin.SetMode(gin.ReleaseMode)
	r, stopRouter := router.New(cfg, router.Services{
		Auth:     services.NewAuthService(cfg.Auth),
		Agents:   services.NewAgentStore(db, cfg.Game, hub),
		Targets:  services.NewTargetStore(db, cfg.Game, hub),
		Missions: services.NewMissionStore(db, cfg.Game, hub),
		Hub:      hub,
	})
	defer stopRouter()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("version", version.Version).
			Str("addr", addr).
			Str("prefix", cfg.Server.PathPrefix).
			Bool("auth", cfg.Auth.Enabled).
			Msg("agents-rest starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
