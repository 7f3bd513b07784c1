// Package main provides the server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/tunedeck/music-system/internal/api"
	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
	"github.com/tunedeck/music-system/internal/core/service"
	"github.com/tunedeck/music-system/internal/infrastructure/config"
	"github.com/tunedeck/music-system/internal/infrastructure/db/memory"
	"github.com/tunedeck/music-system/internal/infrastructure/db/mongo"
	redisdb "github.com/tunedeck/music-system/internal/infrastructure/db/redis"
	"github.com/tunedeck/music-system/internal/playback"
	"github.com/tunedeck/music-system/pkg/logger"
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	repos, mongoDB, disconnect, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	if disconnect != nil {
		defer disconnect()
	}

	sessions, redisClient, err := buildSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	authService := service.NewAuthService(repos.users, sessions, cfg.JWTSecret, cfg.TokenTTL, cfg.SessionTTL)
	libraryService := service.NewLibraryService(repos.tracks, repos.playlists, repos.recent, log)
	premiumService := service.NewPremiumService(repos.users, repos.subscriptions, log)

	if err := bootstrapAdmin(ctx, authService, repos.users, cfg.AdminPassword, log); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	player := playback.NewManager(libraryService, func() playback.Device {
		return playback.NewClockDevice(time.Second)
	}, log)
	defer player.Close()

	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         authService,
		Library:      libraryService,
		Premium:      premiumService,
		Users:        repos.users,
		Sessions:     sessions,
		Player:       player,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.Env != "development",
		Mongo:        mongoDB,
		Redis:        redisClient,
	})

	serverErrCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("received shutdown signal")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down server")
	}
	log.Info().Msg("server stopped")
	return nil
}

type repositories struct {
	users         ports.UserRepository
	tracks        ports.TrackRepository
	playlists     ports.PlaylistRepository
	recent        ports.RecentlyPlayedRepository
	subscriptions ports.SubscriptionRepository
}

// buildRepositories picks the store backend: MongoDB when a URI is
// configured, the in-memory store otherwise.
func buildRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories, *mongodriver.Database, func(), error) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("no MONGO_URI configured, using in-memory store")
		store := memory.NewStore()
		return repositories{
			users:         memory.NewUserRepository(store),
			tracks:        memory.NewTrackRepository(store),
			playlists:     memory.NewPlaylistRepository(store),
			recent:        memory.NewRecentRepository(store),
			subscriptions: memory.NewSubscriptionRepository(store),
		}, nil, nil, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return repositories{}, nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	disconnect := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return repositories{
		users:         mongo.NewUserRepository(db),
		tracks:        mongo.NewTrackRepository(db),
		playlists:     mongo.NewPlaylistRepository(db),
		recent:        mongo.NewRecentlyPlayedRepository(db),
		subscriptions: mongo.NewSubscriptionRepository(db),
	}, db, disconnect, nil
}

// buildSessions picks the session backend: Redis when an address is
// configured, process memory otherwise.
func buildSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, *redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("no REDIS_ADDR configured, keeping sessions in process memory")
		return memory.NewSessionStore(), nil, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	return redisdb.NewSessionStore(client), client, nil
}

// bootstrapAdmin makes sure the built-in admin account exists so the
// admin-gated routes are reachable on a fresh install.
func bootstrapAdmin(ctx context.Context, auth ports.AuthService, users ports.UserRepository, password string, log zerolog.Logger) error {
	if _, err := users.FindByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := auth.Register(ctx, ports.RegisterInput{
		Username: "admin",
		Email:    "admin@localhost",
		Password: password,
		UserType: domain.TypeAdmin,
	}); err != nil {
		return err
	}

	log.Info().Msg("bootstrapped admin account")
	return nil
}
