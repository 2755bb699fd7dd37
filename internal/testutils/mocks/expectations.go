// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	gamestate "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state"
	gamestatemock "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state/mock"
	"github.com/KirkDiggler/devils-dozen/internal/repositories/lobby"
	lobbymock "github.com/KirkDiggler/devils-dozen/internal/repositories/lobby/mock"
)

// ExpectLobbyGet sets up a mock expectation for getting a lobby.
// The caller receives a copy so the fixture is left untouched.
func ExpectLobbyGet(ctx context.Context, mockRepo *lobbymock.MockRepository, l *entities.Lobby) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, lobby.GetInput{ID: l.ID}).
		DoAndReturn(func(_ context.Context, _ lobby.GetInput) (*lobby.GetOutput, error) {
			cp := *l
			return &lobby.GetOutput{Lobby: &cp}, nil
		})
}

// ExpectListPlayers sets up a mock expectation for listing a lobby's players
func ExpectListPlayers(
	ctx context.Context, mockRepo *lobbymock.MockRepository,
	lobbyID string, players []*entities.Player,
) *gomock.Call {
	return mockRepo.EXPECT().
		ListPlayers(ctx, lobby.ListPlayersInput{LobbyID: lobbyID}).
		DoAndReturn(func(_ context.Context, _ lobby.ListPlayersInput) (*lobby.ListPlayersOutput, error) {
			out := make([]*entities.Player, len(players))
			for i, p := range players {
				cp := *p
				out[i] = &cp
			}
			return &lobby.ListPlayersOutput{Players: out}, nil
		})
}

// ExpectLobbyUpdate echoes the updated lobby back and hands it to capture
func ExpectLobbyUpdate(
	ctx context.Context, mockRepo *lobbymock.MockRepository,
	capture func(*entities.Lobby),
) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input lobby.UpdateInput) (*lobby.UpdateOutput, error) {
			if capture != nil {
				capture(input.Lobby)
			}
			return &lobby.UpdateOutput{Lobby: input.Lobby}, nil
		})
}

// ExpectPlayerUpdate echoes the updated player back and hands it to capture
func ExpectPlayerUpdate(
	ctx context.Context, mockRepo *lobbymock.MockRepository,
	capture func(*entities.Player),
) *gomock.Call {
	return mockRepo.EXPECT().
		UpdatePlayer(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input lobby.UpdatePlayerInput) (*lobby.UpdatePlayerOutput, error) {
			if capture != nil {
				capture(input.Player)
			}
			return &lobby.UpdatePlayerOutput{Player: input.Player}, nil
		})
}

// ExpectStateGet sets up a mock expectation for loading a game state
func ExpectStateGet(
	ctx context.Context, mockRepo *gamestatemock.MockRepository,
	state *entities.GameState, err error,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, gamestate.GetInput{LobbyID: state.LobbyID}).
		Return(&gamestate.GetOutput{State: state}, err)
}

// ExpectStateSave echoes the saved state back and hands it to capture
func ExpectStateSave(
	ctx context.Context, mockRepo *gamestatemock.MockRepository,
	capture func(*entities.GameState),
) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input gamestate.SaveInput) (*gamestate.SaveOutput, error) {
			if capture != nil {
				capture(input.State)
			}
			return &gamestate.SaveOutput{State: input.State}, nil
		})
}

// ExpectResetTurn returns a state with the turn fields cleared
func ExpectResetTurn(
	ctx context.Context, mockRepo *gamestatemock.MockRepository,
	lobbyID string,
) *gomock.Call {
	return mockRepo.EXPECT().
		ResetTurn(ctx, gamestate.ResetTurnInput{LobbyID: lobbyID}).
		Return(&gamestate.ResetTurnOutput{State: &entities.GameState{LobbyID: lobbyID, TurnNumber: 2}}, nil)
}
