package builders

import (
	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// GameStateBuilder provides a fluent interface for building test GameState instances
type GameStateBuilder struct {
	state *entities.GameState
}

// NewGameStateBuilder creates the state of a freshly started game
func NewGameStateBuilder(lobbyID string) *GameStateBuilder {
	return &GameStateBuilder{
		state: &entities.GameState{
			LobbyID:    lobbyID,
			TurnNumber: 1,
		},
	}
}

// WithTurnNumber sets the turn counter
func (b *GameStateBuilder) WithTurnNumber(n int) *GameStateBuilder {
	b.state.TurnNumber = n
	return b
}

// WithTurn sets the pool turn
func (b *GameStateBuilder) WithTurn(turn entities.TurnState) *GameStateBuilder {
	t := turn.Clone()
	b.state.Turn = &t
	return b
}

// WithRolledDice sets a pool turn that has just rolled values with held
// dice auto-selected and nothing committed yet
func (b *GameStateBuilder) WithRolledDice(values []int, held ...int) *GameStateBuilder {
	turn := entities.NewTurnState(0)
	turn.ActiveDice = entities.CopyInts(values)
	turn.HeldIndices = entities.NewIndexSet(held...)
	turn.RollCount = 1
	return b.WithTurn(turn)
}

// WithAlien sets the Alien Invasion turn
func (b *GameStateBuilder) WithAlien(turn entities.AlienInvasionTurnState) *GameStateBuilder {
	t := turn.Clone()
	b.state.Alien = &t
	return b
}

// WithGrid sets one player's Knucklebones grid
func (b *GameStateBuilder) WithGrid(playerID string, columns ...[]int) *GameStateBuilder {
	if b.state.Grids == nil {
		b.state.Grids = make(map[string]entities.GridState)
	}
	grid := entities.NewGridState()
	for i, col := range columns {
		if i < entities.GridColumns {
			grid.Columns[i] = entities.CopyInts(col)
		}
	}
	b.state.Grids[playerID] = grid
	return b
}

// WithPendingDie sets the Knucklebones die waiting to be placed
func (b *GameStateBuilder) WithPendingDie(value int) *GameStateBuilder {
	b.state.PendingDie = value
	return b
}

// Build returns the built state
func (b *GameStateBuilder) Build() *entities.GameState {
	return b.state
}
