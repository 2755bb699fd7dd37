package testutils

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// FixtureTime is the timestamp stamped on every fixture
var FixtureTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// CreateTestPlayers seats one player per name, ids player-1, player-2, ...
func CreateTestPlayers(lobbyID string, names ...string) []*entities.Player {
	players := make([]*entities.Player, 0, len(names))
	for i, name := range names {
		players = append(players, &entities.Player{
			ID:          fmt.Sprintf("player-%d", i+1),
			LobbyID:     lobbyID,
			Name:        name,
			TurnOrder:   i,
			IsConnected: true,
			CreatedAt:   FixtureTime,
		})
	}
	return players
}

// CreateTestPlayersWithScores seats players and gives them banked totals in order
func CreateTestPlayersWithScores(lobbyID string, scores ...int) []*entities.Player {
	names := make([]string, len(scores))
	for i := range scores {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	players := CreateTestPlayers(lobbyID, names...)
	for i, score := range scores {
		players[i].TotalScore = score
	}
	return players
}

// ClonePlayers deep copies players so expectations are not mutated by the code under test
func ClonePlayers(players []*entities.Player) []*entities.Player {
	out := make([]*entities.Player, len(players))
	for i, p := range players {
		cp := *p
		out[i] = &cp
	}
	return out
}
