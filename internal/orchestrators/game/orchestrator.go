// Package game implements the orchestrator that runs Devil's Dozen lobbies:
// it loads persisted state, dispatches each action to the engine for the
// lobby's game mode, banks scores, advances turns and detects winners.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/devils-dozen/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alchemistsascent"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alieninvasion"
	"github.com/KirkDiggler/devils-dozen/internal/engine/knucklebones"
	"github.com/KirkDiggler/devils-dozen/internal/engine/peasantsgamble"
	"github.com/KirkDiggler/devils-dozen/internal/engine/pig"
	"github.com/KirkDiggler/devils-dozen/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/idgen"
	gamestate "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state"
	"github.com/KirkDiggler/devils-dozen/internal/repositories/lobby"
)

const (
	// MaxNameLength is the longest player name accepted
	MaxNameLength = 30

	// maxCodeAttempts bounds retries when a join code is already taken
	maxCodeAttempts = 5
)

// Service defines the interface for running games
type Service interface {
	// Lobby lifecycle
	CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error)
	JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error)
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// Turn actions, only the current player may take them
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
	Hold(ctx context.Context, input *HoldInput) (*HoldOutput, error)
	Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error)
	Select(ctx context.Context, input *SelectInput) (*SelectOutput, error)
	Place(ctx context.Context, input *PlaceInput) (*PlaceOutput, error)
	Bank(ctx context.Context, input *BankInput) (*BankOutput, error)
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	LobbyRepo     lobby.Repository
	GameStateRepo gamestate.Repository
	IDGenerator   idgen.Generator
	CodeGenerator idgen.Generator
	Roller        dice.Roller
	EventBus      events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.LobbyRepo == nil {
		vb.RequiredField("LobbyRepo")
	}
	if c.GameStateRepo == nil {
		vb.RequiredField("GameStateRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.CodeGenerator == nil {
		vb.RequiredField("CodeGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	lobbyRepo lobby.Repository
	stateRepo gamestate.Repository
	idGen     idgen.Generator
	codeGen   idgen.Generator
	roller    dice.Roller
	publisher *rpgtoolkit.Publisher

	peasant *peasantsgamble.Engine
	ascent  *alchemistsascent.Engine
	knuckle *knucklebones.Engine
	alien   *alieninvasion.Engine
	pig     *pig.Engine
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidInput("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	publisher, err := rpgtoolkit.NewPublisher(&rpgtoolkit.PublisherConfig{EventBus: cfg.EventBus})
	if err != nil {
		return nil, err
	}

	o := &orchestrator{
		lobbyRepo: cfg.LobbyRepo,
		stateRepo: cfg.GameStateRepo,
		idGen:     cfg.IDGenerator,
		codeGen:   cfg.CodeGenerator,
		roller:    cfg.Roller,
		publisher: publisher,
	}

	if o.peasant, err = peasantsgamble.New(&peasantsgamble.Config{Roller: cfg.Roller}); err != nil {
		return nil, err
	}
	if o.ascent, err = alchemistsascent.New(&alchemistsascent.Config{Roller: cfg.Roller}); err != nil {
		return nil, err
	}
	if o.knuckle, err = knucklebones.New(&knucklebones.Config{Roller: cfg.Roller}); err != nil {
		return nil, err
	}
	if o.alien, err = alieninvasion.New(&alieninvasion.Config{Roller: cfg.Roller}); err != nil {
		return nil, err
	}
	if o.pig, err = pig.New(&pig.Config{Roller: cfg.Roller}); err != nil {
		return nil, err
	}

	return o, nil
}

// CreateLobby opens a waiting lobby with a fresh join code and seats the host
func (o *orchestrator) CreateLobby(ctx context.Context, input *CreateLobbyInput) (*CreateLobbyOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}
	name, err := validateName(input.HostName)
	if err != nil {
		return nil, err
	}
	target, err := engine.ValidateGameTarget(input.Mode, input.TargetScore)
	if err != nil {
		return nil, err
	}

	hostID := o.idGen.Generate()
	newLobby := &entities.Lobby{
		ID:          o.idGen.Generate(),
		Mode:        input.Mode,
		TargetScore: target,
		Status:      entities.LobbyStatusWaiting,
		HostID:      hostID,
	}

	var created *entities.Lobby
	for attempt := 1; ; attempt++ {
		newLobby.Code = o.codeGen.Generate()
		out, err := o.lobbyRepo.Create(ctx, lobby.CreateInput{Lobby: newLobby})
		if err == nil {
			created = out.Lobby
			break
		}
		if !errors.IsAlreadyExists(err) || attempt >= maxCodeAttempts {
			return nil, errors.Wrap(err, "failed to create lobby")
		}
		slog.Debug("Join code taken, retrying", "code", newLobby.Code, "attempt", attempt)
	}

	added, err := o.lobbyRepo.AddPlayer(ctx, lobby.AddPlayerInput{Player: &entities.Player{
		ID:          hostID,
		LobbyID:     created.ID,
		Name:        name,
		TurnOrder:   0,
		IsConnected: true,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to seat host")
	}

	slog.Info("Lobby created",
		"lobby_id", created.ID,
		"code", created.Code,
		"mode", created.Mode,
		"target", created.TargetScore,
		"host_id", hostID,
	)

	return &CreateLobbyOutput{
		Lobby: created,
		Host:  added.Player,
	}, nil
}

// JoinLobby seats a new player in a waiting lobby found by join code
func (o *orchestrator) JoinLobby(ctx context.Context, input *JoinLobbyInput) (*JoinLobbyOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if !idgen.IsCode(code) {
		return nil, errors.InvalidInputf("invalid join code: %q", input.Code)
	}
	name, err := validateName(input.PlayerName)
	if err != nil {
		return nil, err
	}

	found, err := o.lobbyRepo.GetByCode(ctx, lobby.GetByCodeInput{Code: code})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find lobby")
	}
	current := found.Lobby
	if current.Status != entities.LobbyStatusWaiting {
		return nil, errors.IllegalOperationf("lobby %s is %s", current.Code, current.Status)
	}

	players, err := o.listPlayers(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	rules, err := engine.GameConfigFor(current.Mode)
	if err != nil {
		return nil, err
	}
	if len(players) >= rules.MaxPlayers {
		return nil, errors.IllegalOperationf("lobby is full (%d players)", rules.MaxPlayers)
	}
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			return nil, errors.AlreadyExistsf("name %q is already taken in this lobby", name)
		}
	}

	added, err := o.lobbyRepo.AddPlayer(ctx, lobby.AddPlayerInput{Player: &entities.Player{
		ID:          o.idGen.Generate(),
		LobbyID:     current.ID,
		Name:        name,
		TurnOrder:   len(players),
		IsConnected: true,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to join lobby")
	}

	slog.Info("Player joined lobby",
		"lobby_id", current.ID,
		"player_id", added.Player.ID,
		"seat", added.Player.TurnOrder,
	)

	return &JoinLobbyOutput{
		Lobby:  current,
		Player: added.Player,
	}, nil
}

// StartGame checks the seat count for the mode and creates the game state
func (o *orchestrator) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.InvalidInput("lobby ID is required")
	}

	current, err := o.getLobby(ctx, input.LobbyID)
	if err != nil {
		return nil, err
	}
	if current.Status != entities.LobbyStatusWaiting {
		return nil, errors.IllegalOperationf("lobby is already %s", current.Status)
	}

	players, err := o.listPlayers(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	if _, err := engine.ValidateGamePlayers(current.Mode, len(players)); err != nil {
		return nil, err
	}

	state := &entities.GameState{
		LobbyID:    current.ID,
		TurnNumber: 1,
	}
	if current.Mode == entities.GameModeKnucklebones {
		state.Grids = make(map[string]entities.GridState, len(players))
		for _, p := range players {
			state.Grids[p.ID] = entities.NewGridState()
		}
	}

	saved, err := o.stateRepo.Save(ctx, gamestate.SaveInput{State: state})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save game state")
	}

	current.Status = entities.LobbyStatusPlaying
	current.CurrentTurnIndex = 0
	if err := o.updateLobby(ctx, current); err != nil {
		return nil, err
	}

	o.publish(ctx, rpgtoolkit.EventGameStarted, players[0], current)
	slog.Info("Game started",
		"lobby_id", current.ID,
		"mode", current.Mode,
		"players", len(players),
	)

	return &StartGameOutput{
		Lobby:   current,
		Players: players,
		State:   saved.State,
	}, nil
}

// GetGame loads the lobby, its players and, once started, the game state
func (o *orchestrator) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.LobbyID == "" {
		return nil, errors.InvalidInput("lobby ID is required")
	}

	current, err := o.getLobby(ctx, input.LobbyID)
	if err != nil {
		return nil, err
	}
	players, err := o.listPlayers(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	out := &GetGameOutput{
		Lobby:   current,
		Players: players,
	}
	if len(players) > 0 {
		out.CurrentPlayer = players[current.CurrentTurnIndex%len(players)]
	}
	if current.Status == entities.LobbyStatusWaiting {
		return out, nil
	}

	got, err := o.stateRepo.Get(ctx, gamestate.GetInput{LobbyID: current.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get game state")
	}
	out.State = got.State

	return out, nil
}

func (o *orchestrator) getLobby(ctx context.Context, lobbyID string) (*entities.Lobby, error) {
	out, err := o.lobbyRepo.Get(ctx, lobby.GetInput{ID: lobbyID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lobby")
	}
	return out.Lobby, nil
}

func (o *orchestrator) listPlayers(ctx context.Context, lobbyID string) ([]*entities.Player, error) {
	out, err := o.lobbyRepo.ListPlayers(ctx, lobby.ListPlayersInput{LobbyID: lobbyID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list players")
	}
	return out.Players, nil
}

func (o *orchestrator) updateLobby(ctx context.Context, l *entities.Lobby) error {
	if _, err := o.lobbyRepo.Update(ctx, lobby.UpdateInput{Lobby: l}); err != nil {
		return errors.Wrap(err, "failed to update lobby")
	}
	return nil
}

func (o *orchestrator) updatePlayer(ctx context.Context, p *entities.Player) error {
	if _, err := o.lobbyRepo.UpdatePlayer(ctx, lobby.UpdatePlayerInput{Player: p}); err != nil {
		return errors.Wrap(err, "failed to update player")
	}
	return nil
}

// publish logs instead of failing the action; events are notifications only
func (o *orchestrator) publish(ctx context.Context, eventType string, p *entities.Player, l *entities.Lobby) {
	if err := o.publisher.Publish(ctx, eventType, p, l); err != nil {
		slog.Warn("Failed to publish event",
			"event", eventType,
			"lobby_id", l.ID,
			"error", err,
		)
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", name, vb)
	errors.ValidateMaxLength("Name", name, MaxNameLength, vb)
	if err := vb.Build(); err != nil {
		return "", err
	}

	return name, nil
}
