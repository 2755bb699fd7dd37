package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
)

// serviceFactory builds the game service for commands that need Redis.
// The returned cleanup releases the connection.
type serviceFactory func(cmd *cobra.Command, opts *rootOptions) (game.Service, func(), error)

type rootOptions struct {
	redisAddr string
	redisDB   int
	logLevel  string
	timeout   time.Duration
	asJSON    bool
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "devilsdozen",
		Short: "Devil's Dozen dice games",
		Long: `Devil's Dozen runs five push-your-luck dice games: Peasant's Gamble,
Alchemist's Ascent, Knucklebones, Alien Invasion and Pig.

Lobbies and turn state live in Redis. The score command needs no server.`,
		SilenceUsage: true,
	}

	// Environment configuration is the default; these flags override it
	cmd.PersistentFlags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address")
	cmd.PersistentFlags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print results as JSON")

	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newLobbyCmd(opts, factory))
	cmd.AddCommand(newTurnCmds(opts, factory)...)

	return cmd
}

// withService runs fn against a freshly wired service under the request timeout
func withService(
	cmd *cobra.Command,
	opts *rootOptions,
	factory serviceFactory,
	fn func(ctx context.Context, svc game.Service) error,
) error {
	svc, cleanup, err := factory(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	return fn(ctx, svc)
}
