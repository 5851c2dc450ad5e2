package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ewilliams-labs/moodorb/internal/adapters/openai"
	"github.com/ewilliams-labs/moodorb/internal/adapters/postgres"
	"github.com/ewilliams-labs/moodorb/internal/adapters/rest"
	"github.com/ewilliams-labs/moodorb/internal/adapters/spotify"
	"github.com/ewilliams-labs/moodorb/internal/adapters/sqlite"
	"github.com/ewilliams-labs/moodorb/internal/config"
	"github.com/ewilliams-labs/moodorb/internal/core/ports"
	"github.com/ewilliams-labs/moodorb/internal/core/services"
	"github.com/ewilliams-labs/moodorb/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	pool := worker.NewPool(store, cfg.SnapshotQueueSize, log)
	pool.Start(cfg.SnapshotWorkers)
	defer pool.Stop()

	var (
		classifier *services.Classifier
		resolver   ports.TrackResolver
	)
	if cfg.HasOpenAI() {
		generative := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		classifier = services.NewClassifier(generative, log)

		var catalog ports.TrackCatalog
		if cfg.HasSpotify() {
			catalog = spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		} else {
			log.Info("spotify credentials not set, playlists will not be enriched")
		}
		resolver = services.NewResolver(generative, catalog, log)
	} else {
		log.Warn("OPENAI_API_KEY not set, generative endpoints disabled")
	}

	orbs := services.NewManager(resolver, pool, cfg.DebounceDelay, log)
	defer orbs.Close()

	handler := rest.NewHandler(classifier, resolver, orbs, store, log)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (ports.SnapshotStore, func(), error) {
	switch cfg.StorageDriver {
	case "sqlite":
		store, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, errors.New("POSTGRES_DSN is required with the postgres driver")
		}
		store, err := postgres.NewAdapter(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
