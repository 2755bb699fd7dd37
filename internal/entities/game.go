package entities

import (
	"time"
)

// GameMode identifies which rule engine a lobby plays
type GameMode string

// Supported game modes
const (
	GameModePeasantsGamble   GameMode = "peasants_gamble"
	GameModeAlchemistsAscent GameMode = "alchemists_ascent"
	GameModeKnucklebones     GameMode = "knucklebones"
	GameModeAlienInvasion    GameMode = "alien_invasion"
	GameModePig              GameMode = "pig"
)

// AllGameModes lists every mode in menu order
func AllGameModes() []GameMode {
	return []GameMode{
		GameModePeasantsGamble,
		GameModeAlchemistsAscent,
		GameModeKnucklebones,
		GameModeAlienInvasion,
		GameModePig,
	}
}

// GameConfig is the player-count and target rules for a mode
type GameConfig struct {
	Mode          GameMode `json:"mode"`
	MinPlayers    int      `json:"min_players"`
	MaxPlayers    int      `json:"max_players"`
	TargetScores  []int    `json:"target_scores"`
	DefaultTarget int      `json:"default_target"`
	DiceKind      DiceKind `json:"dice_kind"`
}

// LobbyStatus is the lifecycle stage of a lobby
type LobbyStatus string

// Lobby statuses
const (
	LobbyStatusWaiting  LobbyStatus = "waiting"
	LobbyStatusPlaying  LobbyStatus = "playing"
	LobbyStatusFinished LobbyStatus = "finished"
)

// Lobby is a game room players join by code
type Lobby struct {
	ID               string      `json:"id"`
	Code             string      `json:"code"`
	Mode             GameMode    `json:"game_mode"`
	TargetScore      int         `json:"win_condition"`
	CurrentTurnIndex int         `json:"current_turn_index"`
	Status           LobbyStatus `json:"status"`
	HostID           string      `json:"host_id"`
	WinnerID         string      `json:"winner_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Player is a seat in a lobby
type Player struct {
	ID          string    `json:"id"`
	LobbyID     string    `json:"lobby_id"`
	Name        string    `json:"username"`
	TotalScore  int       `json:"total_score"`
	TurnOrder   int       `json:"turn_order"`
	IsConnected bool      `json:"is_connected"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameState is the per-lobby turn record. Exactly one of Turn or Alien is
// set for dice-pool modes; Knucklebones uses Grids and PendingDie.
type GameState struct {
	LobbyID    string                  `json:"lobby_id"`
	TurnNumber int                     `json:"turn_number"`
	Turn       *TurnState              `json:"turn,omitempty"`
	Alien      *AlienInvasionTurnState `json:"alien,omitempty"`
	Grids      map[string]GridState    `json:"grids,omitempty"`
	PendingDie int                     `json:"current_die_value,omitempty"`
	LastResult *ScoringResult          `json:"last_result,omitempty"`
	UpdatedAt  time.Time               `json:"updated_at"`
}
