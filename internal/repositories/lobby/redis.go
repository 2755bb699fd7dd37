package lobby

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/devils-dozen/internal/redis"
)

const (
	// Key patterns: lobby:{id}, lobby:code:{code}, lobby:{id}:players
	lobbyKeyPrefix = "lobby:"
	codeKeyPrefix  = "lobby:code:"
	playersSuffix  = ":players"
	defaultTTL     = 24 * time.Hour

	// Error messages
	errLobbyNil      = "lobby cannot be nil"
	errLobbyIDEmpty  = "lobby ID cannot be empty"
	errCodeEmpty     = "lobby code cannot be empty"
	errPlayerNil     = "player cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL applies to every lobby key; zero means 24 hours
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

// NewRedisRepository creates a new Redis repository for lobbies
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

// Create stores the lobby. The code key is written first with SETNX so two
// lobbies can never share a code.
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Lobby == nil {
		return nil, errors.InvalidInput(errLobbyNil)
	}
	if input.Lobby.ID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}
	if input.Lobby.Code == "" {
		return nil, errors.InvalidInput(errCodeEmpty)
	}

	lobby := *input.Lobby
	now := r.clock.Now()
	lobby.CreatedAt = now
	lobby.UpdatedAt = now

	reserved, err := r.client.SetNX(ctx, codeKeyPrefix+lobby.Code, lobby.ID, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reserve lobby code")
	}
	if !reserved {
		return nil, errors.AlreadyExistsf("lobby code %s is already in use", lobby.Code).
			WithMeta("code", lobby.Code)
	}

	data, err := json.Marshal(&lobby)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal lobby")
	}

	if err := r.client.Set(ctx, r.lobbyKey(lobby.ID), data, r.ttl).Err(); err != nil {
		// Release the code so a retry can reuse it
		_ = r.client.Del(ctx, codeKeyPrefix+lobby.Code)
		return nil, errors.Wrapf(err, "failed to store lobby in Redis")
	}

	return &CreateOutput{Lobby: &lobby}, nil
}

// Get retrieves a lobby by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	lobby, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Lobby: lobby}, nil
}

// GetByCode resolves the code to an ID and loads the lobby
func (r *redisRepository) GetByCode(ctx context.Context, input GetByCodeInput) (*GetByCodeOutput, error) {
	if input.Code == "" {
		return nil, errors.InvalidInput(errCodeEmpty)
	}

	id, err := r.client.Get(ctx, codeKeyPrefix+input.Code).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no lobby with code %s", input.Code)
		}
		return nil, errors.Wrapf(err, "failed to get lobby code mapping")
	}

	lobby, err := r.load(ctx, id)
	if err != nil {
		// If the lobby is gone, clean up the mapping
		if errors.IsNotFound(err) {
			r.client.Del(ctx, codeKeyPrefix+input.Code)
		}
		return nil, err
	}

	return &GetByCodeOutput{Lobby: lobby}, nil
}

// Update replaces an existing lobby and refreshes its TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Lobby == nil {
		return nil, errors.InvalidInput(errLobbyNil)
	}
	if input.Lobby.ID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	key := r.lobbyKey(input.Lobby.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("lobby with ID %s not found", input.Lobby.ID)
	}

	lobby := *input.Lobby
	lobby.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&lobby)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal lobby")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.Expire(ctx, codeKeyPrefix+lobby.Code, r.ttl)
	pipe.Expire(ctx, r.playersKey(lobby.ID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update lobby")
	}

	return &UpdateOutput{Lobby: &lobby}, nil
}

// Delete removes the lobby with its code mapping and players
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	lobby, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := r.client.HLen(ctx, r.playersKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count players")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.lobbyKey(input.ID))
	pipe.Del(ctx, codeKeyPrefix+lobby.Code)
	pipe.Del(ctx, r.playersKey(input.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete lobby")
	}

	return &DeleteOutput{PlayersDeleted: int(count)}, nil
}

// AddPlayer seats the player; a player ID can be seated only once
func (r *redisRepository) AddPlayer(ctx context.Context, input AddPlayerInput) (*AddPlayerOutput, error) {
	if err := validatePlayer(input.Player); err != nil {
		return nil, err
	}

	if _, err := r.load(ctx, input.Player.LobbyID); err != nil {
		return nil, err
	}

	player := *input.Player
	player.CreatedAt = r.clock.Now()

	data, err := json.Marshal(&player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player")
	}

	key := r.playersKey(player.LobbyID)
	added, err := r.client.HSetNX(ctx, key, player.ID, data).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add player")
	}
	if !added {
		return nil, errors.AlreadyExistsf("player %s is already in lobby %s", player.ID, player.LobbyID)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to set player TTL")
	}

	return &AddPlayerOutput{Player: &player}, nil
}

// ListPlayers returns every seated player sorted by turn order
func (r *redisRepository) ListPlayers(ctx context.Context, input ListPlayersInput) (*ListPlayersOutput, error) {
	if input.LobbyID == "" {
		return nil, errors.InvalidInput(errLobbyIDEmpty)
	}

	raw, err := r.client.HGetAll(ctx, r.playersKey(input.LobbyID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list players")
	}

	players := make([]*entities.Player, 0, len(raw))
	for id, data := range raw {
		var player entities.Player
		if err := json.Unmarshal([]byte(data), &player); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal player %s", id)
		}
		players = append(players, &player)
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].TurnOrder != players[j].TurnOrder {
			return players[i].TurnOrder < players[j].TurnOrder
		}
		return players[i].ID < players[j].ID
	})

	return &ListPlayersOutput{Players: players}, nil
}

// UpdatePlayer replaces a seated player
func (r *redisRepository) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (*UpdatePlayerOutput, error) {
	if err := validatePlayer(input.Player); err != nil {
		return nil, err
	}

	key := r.playersKey(input.Player.LobbyID)
	exists, err := r.client.HExists(ctx, key, input.Player.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check player existence")
	}
	if !exists {
		return nil, errors.NotFoundf("player %s not found in lobby %s", input.Player.ID, input.Player.LobbyID)
	}

	player := *input.Player
	data, err := json.Marshal(&player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player")
	}

	if err := r.client.HSet(ctx, key, player.ID, data).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update player")
	}

	return &UpdatePlayerOutput{Player: &player}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*entities.Lobby, error) {
	result, err := r.client.Get(ctx, r.lobbyKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("lobby with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get lobby from Redis")
	}

	var lobby entities.Lobby
	if err := json.Unmarshal([]byte(result), &lobby); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal lobby")
	}

	return &lobby, nil
}

func validatePlayer(player *entities.Player) error {
	if player == nil {
		return errors.InvalidInput(errPlayerNil)
	}
	if player.ID == "" {
		return errors.InvalidInput(errPlayerIDEmpty)
	}
	if player.LobbyID == "" {
		return errors.InvalidInput(errLobbyIDEmpty)
	}
	return nil
}

func (r *redisRepository) lobbyKey(id string) string {
	return lobbyKeyPrefix + id
}

func (r *redisRepository) playersKey(lobbyID string) string {
	return fmt.Sprintf("%s%s%s", lobbyKeyPrefix, lobbyID, playersSuffix)
}
