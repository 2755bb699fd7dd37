package gamestate

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/devils-dozen/internal/redis"
)

const (
	// Key pattern: game_state:{lobby_id}
	stateKeyPrefix = "game_state:"
	defaultTTL     = 24 * time.Hour

	// Error messages
	errStateNil     = "game state cannot be nil"
	errLobbyIDEmpty = "lobby ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL applies to every state key; zero means 24 hours
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for game state
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidInput("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stamps UpdatedAt and writes the state with a fresh TTL
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidInput(errStateNil)
	}
	if input.State.LobbyID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	state := *input.State
	state.UpdatedAt = r.clock.Now()

	if err := r.store(ctx, &state); err != nil {
		return nil, err
	}

	return &SaveOutput{State: &state}, nil
}

// Get retrieves the state for a lobby
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.LobbyID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	result, err := r.client.Get(ctx, stateKeyPrefix+input.LobbyID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("game state for lobby %s not found", input.LobbyID)
		}
		return nil, errors.Wrapf(err, "failed to get game state from Redis")
	}

	var state entities.GameState
	if err := json.Unmarshal([]byte(result), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game state")
	}

	return &GetOutput{State: &state}, nil
}

// Delete removes the state; deleting a missing state is not an error
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.LobbyID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	n, err := r.client.Del(ctx, stateKeyPrefix+input.LobbyID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete game state from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

// ResetTurn clears the turn, alien, die and result fields. Knucklebones
// grids survive since they span the whole game.
func (r *redisRepository) ResetTurn(ctx context.Context, input ResetTurnInput) (*ResetTurnOutput, error) {
	got, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	state := got.State
	state.Turn = nil
	state.Alien = nil
	state.PendingDie = 0
	state.LastResult = nil
	state.TurnNumber++
	state.UpdatedAt = r.clock.Now()

	if err := r.store(ctx, state); err != nil {
		return nil, err
	}

	return &ResetTurnOutput{State: state}, nil
}

func (r *redisRepository) store(ctx context.Context, state *entities.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal game state")
	}

	if err := r.client.Set(ctx, stateKeyPrefix+state.LobbyID, data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to store game state in Redis")
	}

	return nil
}
