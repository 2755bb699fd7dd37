package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// Entity types reported through core.Entity
const (
	EntityTypePlayer = "player"
	EntityTypeLobby  = "lobby"
)

// PlayerEntity wraps entities.Player to implement core.Entity
type PlayerEntity struct {
	*entities.Player
}

// GetID returns the player's ID
func (p *PlayerEntity) GetID() string {
	return p.ID
}

// GetType returns the entity type for rpg-toolkit
func (p *PlayerEntity) GetType() string {
	return EntityTypePlayer
}

// LobbyEntity wraps entities.Lobby to implement core.Entity
type LobbyEntity struct {
	*entities.Lobby
}

// GetID returns the lobby's ID
func (l *LobbyEntity) GetID() string {
	return l.ID
}

// GetType returns the entity type for rpg-toolkit
func (l *LobbyEntity) GetType() string {
	return EntityTypeLobby
}

// WrapPlayer converts a player to a PlayerEntity
func WrapPlayer(player *entities.Player) *PlayerEntity {
	return &PlayerEntity{Player: player}
}

// WrapLobby converts a lobby to a LobbyEntity
func WrapLobby(lobby *entities.Lobby) *LobbyEntity {
	return &LobbyEntity{Lobby: lobby}
}

// Compile-time check that our entity wrappers implement core.Entity
var (
	_ core.Entity = (*PlayerEntity)(nil)
	_ core.Entity = (*LobbyEntity)(nil)
)
