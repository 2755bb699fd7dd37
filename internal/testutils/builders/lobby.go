// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// LobbyBuilder provides a fluent interface for building test Lobby instances
type LobbyBuilder struct {
	lobby *entities.Lobby
}

// NewLobbyBuilder creates a playing Peasant's Gamble lobby with minimal defaults
func NewLobbyBuilder() *LobbyBuilder {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	return &LobbyBuilder{
		lobby: &entities.Lobby{
			ID:          "lobby-test-123",
			Code:        "ABC234",
			Mode:        entities.GameModePeasantsGamble,
			TargetScore: 5000,
			Status:      entities.LobbyStatusPlaying,
			HostID:      "player-1",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// WithID sets the lobby ID
func (b *LobbyBuilder) WithID(id string) *LobbyBuilder {
	b.lobby.ID = id
	return b
}

// WithCode sets the join code
func (b *LobbyBuilder) WithCode(code string) *LobbyBuilder {
	b.lobby.Code = code
	return b
}

// WithMode sets the game mode and target score
func (b *LobbyBuilder) WithMode(mode entities.GameMode, target int) *LobbyBuilder {
	b.lobby.Mode = mode
	b.lobby.TargetScore = target
	return b
}

// WithStatus sets the lifecycle status
func (b *LobbyBuilder) WithStatus(status entities.LobbyStatus) *LobbyBuilder {
	b.lobby.Status = status
	return b
}

// WithTurnIndex sets whose turn it is
func (b *LobbyBuilder) WithTurnIndex(index int) *LobbyBuilder {
	b.lobby.CurrentTurnIndex = index
	return b
}

// WithHost sets the host player ID
func (b *LobbyBuilder) WithHost(playerID string) *LobbyBuilder {
	b.lobby.HostID = playerID
	return b
}

// Build returns a copy of the built lobby
func (b *LobbyBuilder) Build() *entities.Lobby {
	out := *b.lobby
	return &out
}
