package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/config"
	"github.com/epicquest/rpg-engine/internal/handlers/httpapi"
	"github.com/epicquest/rpg-engine/internal/metrics"
	"github.com/epicquest/rpg-engine/internal/orchestrators/adventure"
	"github.com/epicquest/rpg-engine/internal/orchestrators/battle"
	"github.com/epicquest/rpg-engine/internal/orchestrators/dungeon"
	"github.com/epicquest/rpg-engine/internal/orchestrators/economy"
	profileorc "github.com/epicquest/rpg-engine/internal/orchestrators/profile"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/pkg/idgen"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
	"github.com/epicquest/rpg-engine/internal/progression"
	"github.com/epicquest/rpg-engine/internal/redis"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the engine HTTP server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		PoolSize:        cfg.RedisPoolSize,
		MinIdleConns:    cfg.RedisMinIdleConns,
		ConnMaxIdleTime: cfg.RedisMaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			slog.Error("failed to close redis client", "error", closeErr)
		}
	}()

	realClock := clock.New()

	cat, err := catalog.Default(rng.New(cfg.ContentSeed))
	if err != nil {
		return err
	}

	repo, err := profilerepo.NewRedis(&profilerepo.RedisConfig{
		Client: redisClient,
		Clock:  realClock,
	})
	if err != nil {
		return err
	}

	prog := progression.New(nil)
	resolver := combat.New(nil)

	profiles, err := profileorc.NewOrchestrator(&profileorc.Config{
		ProfileRepo:    repo,
		Catalog:        cat,
		UpdateAttempts: cfg.MaxUpdateAttempts,
	})
	if err != nil {
		return err
	}

	battles, err := battle.NewOrchestrator(&battle.Config{
		ProfileRepo:    repo,
		Catalog:        cat,
		Resolver:       resolver,
		Progression:    prog,
		Clock:          realClock,
		Cooldown:       cfg.BattleCooldown,
		UpdateAttempts: cfg.MaxUpdateAttempts,
	})
	if err != nil {
		return err
	}

	dungeons, err := dungeon.NewOrchestrator(&dungeon.Config{
		ProfileRepo:    repo,
		Catalog:        cat,
		Resolver:       resolver,
		Progression:    prog,
		IDGenerator:    idgen.NewUUID("run"),
		Clock:          realClock,
		UpdateAttempts: cfg.MaxUpdateAttempts,
	})
	if err != nil {
		return err
	}

	adventures, err := adventure.NewOrchestrator(&adventure.Config{
		ProfileRepo:       repo,
		Catalog:           cat,
		Progression:       prog,
		Clock:             realClock,
		AdventureCooldown: cfg.AdventureCooldown,
		WorkCooldown:      cfg.WorkCooldown,
		DailyCooldown:     cfg.DailyCooldown,
		UpdateAttempts:    cfg.MaxUpdateAttempts,
	})
	if err != nil {
		return err
	}

	econ, err := economy.NewOrchestrator(&economy.Config{
		ProfileRepo:    repo,
		Catalog:        cat,
		UpdateAttempts: cfg.MaxUpdateAttempts,
	})
	if err != nil {
		return err
	}

	handler, err := httpapi.NewHandler(&httpapi.Config{
		Profiles:   profiles,
		Battles:    battles,
		Dungeons:   dungeons,
		Adventures: adventures,
		Economy:    econ,
		Metrics:    metrics.New("rpg_engine"),
	})
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	handler.Register(e)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr)
		if serveErr := e.Start(cfg.HTTPAddr); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			slog.Error("graceful shutdown failed", "error", shutdownErr)
			return shutdownErr
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
