package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/devils-dozen/internal/config"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/clock"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/idgen"
	"github.com/KirkDiggler/devils-dozen/internal/redis"
	gamestate "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state"
	"github.com/KirkDiggler/devils-dozen/internal/repositories/lobby"
)

const pingTimeout = 2 * time.Second

// loadConfig reads the environment then applies any flags set on cmd
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = opts.redisAddr
	}
	if flags.Changed("redis-db") {
		cfg.RedisDB = opts.redisDB
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}

	return cfg, nil
}

// newService wires the Redis backed game service
func newService(cmd *cobra.Command, opts *rootOptions) (game.Service, func(), error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{DB: cfg.RedisDB})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create redis client")
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	if err := redis.Ping(cmd.Context(), client, pingTimeout); err != nil {
		cleanup()
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable").
			WithMeta("addr", cfg.RedisAddr)
	}

	svc, err := buildService(client, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	slog.Debug("service ready", "redis_addr", cfg.RedisAddr, "redis_db", cfg.RedisDB)
	return svc, cleanup, nil
}

func buildService(client redis.Client, cfg *config.Config) (game.Service, error) {
	clk := clock.New()

	lobbyRepo, err := lobby.NewRedisRepository(&lobby.Config{
		Client: client,
		Clock:  clk,
		TTL:    cfg.StateTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lobby repository")
	}

	stateRepo, err := gamestate.NewRedisRepository(&gamestate.Config{
		Client: client,
		Clock:  clk,
		TTL:    cfg.StateTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game state repository")
	}

	svc, err := game.NewOrchestrator(&game.Config{
		LobbyRepo:     lobbyRepo,
		GameStateRepo: stateRepo,
		IDGenerator:   idgen.NewUUID(""),
		CodeGenerator: idgen.NewCode(0),
		Roller:        dice.DefaultRoller,
		EventBus:      events.NewBus(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game orchestrator")
	}

	return svc, nil
}
