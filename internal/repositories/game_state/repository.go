// Package gamestate provides the repository for per-lobby turn state
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/KirkDiggler/devils-dozen/internal/repositories/game_state Repository

import (
	"context"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// Repository defines the interface for game state persistence
type Repository interface {
	// Save creates or replaces the state for a lobby
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves the state for a lobby
	// Returns errors.NotFound if the lobby has no state
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the state for a lobby
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ResetTurn clears every in-progress turn field and bumps the turn number
	// Returns errors.NotFound if the lobby has no state
	ResetTurn(ctx context.Context, input ResetTurnInput) (*ResetTurnOutput, error)
}

// SaveInput defines the input for saving game state
type SaveInput struct {
	State *entities.GameState
}

// SaveOutput defines the output for saving game state
type SaveOutput struct {
	State *entities.GameState
}

// GetInput defines the input for getting game state
type GetInput struct {
	LobbyID string
}

// GetOutput defines the output for getting game state
type GetOutput struct {
	State *entities.GameState
}

// DeleteInput defines the input for deleting game state
type DeleteInput struct {
	LobbyID string
}

// DeleteOutput defines the output for deleting game state
type DeleteOutput struct {
	Deleted bool
}

// ResetTurnInput defines the input for resetting the turn
type ResetTurnInput struct {
	LobbyID string
}

// ResetTurnOutput defines the output for resetting the turn
type ResetTurnOutput struct {
	State *entities.GameState
}
