package game

import (
	"github.com/KirkDiggler/devils-dozen/internal/engine/alchemistsascent"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alieninvasion"
	"github.com/KirkDiggler/devils-dozen/internal/engine/knucklebones"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// CreateLobbyInput defines the request for opening a lobby
type CreateLobbyInput struct {
	Mode entities.GameMode
	// TargetScore of zero selects the mode default
	TargetScore int
	HostName    string
}

// CreateLobbyOutput defines the response for opening a lobby
type CreateLobbyOutput struct {
	Lobby *entities.Lobby
	Host  *entities.Player
}

// JoinLobbyInput defines the request for joining by code
type JoinLobbyInput struct {
	Code       string
	PlayerName string
}

// JoinLobbyOutput defines the response for joining by code
type JoinLobbyOutput struct {
	Lobby  *entities.Lobby
	Player *entities.Player
}

// StartGameInput defines the request for starting a game
type StartGameInput struct {
	LobbyID string
}

// StartGameOutput defines the response for starting a game
type StartGameOutput struct {
	Lobby   *entities.Lobby
	Players []*entities.Player
	State   *entities.GameState
}

// GetGameInput defines the request for loading a game
type GetGameInput struct {
	LobbyID string
}

// GetGameOutput defines the response for loading a game.
// State is nil until the game starts.
type GetGameOutput struct {
	Lobby         *entities.Lobby
	Players       []*entities.Player
	State         *entities.GameState
	CurrentPlayer *entities.Player
}

// TurnResult is what every turn action returns
type TurnResult struct {
	Lobby   *entities.Lobby
	Players []*entities.Player
	State   *entities.GameState
	Result  *entities.ScoringResult
	IsBust  bool
	// TurnEnded is set when the action passed play to the next player
	TurnEnded bool
	// WinnerID is set once the action finished the game
	WinnerID string
}

// RollInput defines the request for rolling. Roll overrides the dice.
type RollInput struct {
	LobbyID  string
	PlayerID string
	Roll     *entities.DiceRoll
}

// RollOutput defines the response for rolling
type RollOutput struct {
	TurnResult
	IsHotDice bool
	// Tier3 is the applied BLUE effect in Alchemist's Ascent
	Tier3 *alchemistsascent.Tier3Result
	// Selections are the Alien Invasion groups open after the roll
	Selections map[entities.FaceType][]int
	// DieValue is the Knucklebones die waiting to be placed
	DieValue int
}

// HoldInput defines the request for committing dice
type HoldInput struct {
	LobbyID  string
	PlayerID string
	Indices  []int
}

// HoldOutput defines the response for committing dice
type HoldOutput struct {
	TurnResult
	IsHotDice bool
}

// RerollInput defines the request for rerolling a GREEN die.
// Value overrides the roller when set.
type RerollInput struct {
	LobbyID  string
	PlayerID string
	Index    int
	Value    *int
}

// RerollOutput defines the response for rerolling a GREEN die
type RerollOutput struct {
	TurnResult
	Reroll alchemistsascent.RerollResult
}

// SelectInput defines the request for an Alien Invasion selection
type SelectInput struct {
	LobbyID  string
	PlayerID string
	Face     entities.FaceType
	Indices  []int
}

// SelectOutput defines the response for an Alien Invasion selection
type SelectOutput struct {
	TurnResult
	Selections   map[entities.FaceType][]int
	TugOfWar     float64
	IsSafeToBank bool
}

// PlaceInput defines the request for placing the Knucklebones die
type PlaceInput struct {
	LobbyID  string
	PlayerID string
	Column   int
}

// PlaceOutput defines the response for placing the Knucklebones die
type PlaceOutput struct {
	TurnResult
	Placement knucklebones.PlacementResult
	GameOver  bool
}

// BankInput defines the request for banking the turn score
type BankInput struct {
	LobbyID  string
	PlayerID string
}

// BankOutput defines the response for banking the turn score
type BankOutput struct {
	TurnResult
	Banked     int
	TotalScore int
	// FinalScore is the Alien Invasion breakdown
	FinalScore *alieninvasion.FinalScore
	TierBefore entities.Tier
	TierAfter  entities.Tier
}

// EndTurnInput defines the request for passing play after a bust
type EndTurnInput struct {
	LobbyID  string
	PlayerID string
}

// EndTurnOutput defines the response for passing play after a bust
type EndTurnOutput struct {
	TurnResult
}
