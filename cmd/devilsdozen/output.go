package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printScoring(w io.Writer, result entities.ScoringResult) {
	for _, b := range result.Breakdown {
		fmt.Fprintf(w, "  %-16s %-20v %6d  %s\n", b.Category, b.DiceValues, b.Points, b.Description)
	}
	if result.IsBust {
		fmt.Fprintln(w, "  BUST")
		return
	}
	fmt.Fprintf(w, "  Total: %d\n", result.Points)
}

func printLobby(w io.Writer, lobby *entities.Lobby, players []*entities.Player) {
	fmt.Fprintf(w, "Lobby %s (code %s)\n", lobby.ID, lobby.Code)
	fmt.Fprintf(w, "  Mode: %s  Target: %d  Status: %s\n", lobby.Mode, lobby.TargetScore, lobby.Status)
	if lobby.WinnerID != "" {
		fmt.Fprintf(w, "  Winner: %s\n", lobby.WinnerID)
	}

	current := ""
	if lobby.Status == entities.LobbyStatusPlaying && len(players) > 0 {
		current = players[lobby.CurrentTurnIndex%len(players)].ID
	}
	for _, p := range players {
		marker := " "
		if p.ID == current {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-30s %6d  %s\n", marker, p.Name, p.TotalScore, p.ID)
	}
}

func printState(w io.Writer, state *entities.GameState) {
	if state == nil {
		return
	}
	fmt.Fprintf(w, "Turn %d\n", state.TurnNumber)

	switch {
	case state.Turn != nil:
		t := state.Turn
		fmt.Fprintf(w, "  Dice: %v  Held: %v  Turn score: %d\n", t.ActiveDice, t.HeldIndices.Slice(), t.TurnScore)
		if t.Tier != 0 {
			fmt.Fprintf(w, "  Tier: %s\n", t.Tier)
		}
	case state.Alien != nil:
		a := state.Alien
		fmt.Fprintf(w, "  Dice: %v  Held: %v\n", a.ActiveDice, a.HeldIndices.Slice())
		fmt.Fprintf(w, "  Earthlings: %d  Death rays: %d  Tanks: %d\n", a.EarthlingsCount, a.DeathRaysCount, a.TanksCount)
	case len(state.Grids) > 0:
		ids := make([]string, 0, len(state.Grids))
		for id := range state.Grids {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "  %s: %s\n", id, formatGrid(state.Grids[id]))
		}
		if state.PendingDie > 0 {
			fmt.Fprintf(w, "  Pending die: %d\n", state.PendingDie)
		}
	}
}

func formatGrid(grid entities.GridState) string {
	cols := make([]string, 0, len(grid.Columns))
	for _, col := range grid.Columns {
		cols = append(cols, fmt.Sprint(col))
	}
	return strings.Join(cols, " | ")
}

func printTurn(w io.Writer, res game.TurnResult) {
	if res.Result != nil {
		printScoring(w, *res.Result)
	} else if res.IsBust {
		fmt.Fprintln(w, "  BUST")
	}
	if res.TurnEnded {
		fmt.Fprintln(w, "Turn over")
	}
	if res.WinnerID != "" {
		fmt.Fprintf(w, "Winner: %s\n", res.WinnerID)
	}
	if res.Lobby != nil {
		printLobby(w, res.Lobby, res.Players)
	}
	printState(w, res.State)
}
