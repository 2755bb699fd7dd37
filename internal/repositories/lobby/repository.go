// Package lobby defines the interface for lobby and player persistence
package lobby

//go:generate mockgen -destination=mock/mock_repository.go -package=lobbymock github.com/KirkDiggler/devils-dozen/internal/repositories/lobby Repository

import (
	"context"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// Repository defines the interface for lobby persistence
type Repository interface {
	// Create stores a new lobby and reserves its join code
	// Returns errors.InvalidInput for validation failures
	// Returns errors.AlreadyExists if the code is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a lobby by ID
	// Returns errors.NotFound if the lobby doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByCode retrieves a lobby by its join code
	// Returns errors.NotFound if no lobby uses the code
	GetByCode(ctx context.Context, input GetByCodeInput) (*GetByCodeOutput, error)

	// Update replaces an existing lobby
	// Returns errors.NotFound if the lobby doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a lobby, its code and its players
	// Returns errors.NotFound if the lobby doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// AddPlayer seats a player in a lobby
	// Returns errors.NotFound if the lobby doesn't exist
	// Returns errors.AlreadyExists if the player is already seated
	AddPlayer(ctx context.Context, input AddPlayerInput) (*AddPlayerOutput, error)

	// ListPlayers returns the lobby's players in turn order
	ListPlayers(ctx context.Context, input ListPlayersInput) (*ListPlayersOutput, error)

	// UpdatePlayer replaces an existing player
	// Returns errors.NotFound if the player isn't seated in the lobby
	UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (*UpdatePlayerOutput, error)
}

// CreateInput defines the input for creating a lobby
type CreateInput struct {
	Lobby *entities.Lobby
}

// CreateOutput defines the output for creating a lobby
type CreateOutput struct {
	Lobby *entities.Lobby
}

// GetInput defines the input for getting a lobby
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a lobby
type GetOutput struct {
	Lobby *entities.Lobby
}

// GetByCodeInput defines the input for looking up a lobby by code
type GetByCodeInput struct {
	Code string
}

// GetByCodeOutput defines the output for looking up a lobby by code
type GetByCodeOutput struct {
	Lobby *entities.Lobby
}

// UpdateInput defines the input for updating a lobby
type UpdateInput struct {
	Lobby *entities.Lobby
}

// UpdateOutput defines the output for updating a lobby
type UpdateOutput struct {
	Lobby *entities.Lobby
}

// DeleteInput defines the input for deleting a lobby
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a lobby
type DeleteOutput struct {
	PlayersDeleted int
}

// AddPlayerInput defines the input for seating a player
type AddPlayerInput struct {
	Player *entities.Player
}

// AddPlayerOutput defines the output for seating a player
type AddPlayerOutput struct {
	Player *entities.Player
}

// ListPlayersInput defines the input for listing a lobby's players
type ListPlayersInput struct {
	LobbyID string
}

// ListPlayersOutput defines the output for listing a lobby's players
type ListPlayersOutput struct {
	Players []*entities.Player
}

// UpdatePlayerInput defines the input for updating a player
type UpdatePlayerInput struct {
	Player *entities.Player
}

// UpdatePlayerOutput defines the output for updating a player
type UpdatePlayerOutput struct {
	Player *entities.Player
}
