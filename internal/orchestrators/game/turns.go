package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alchemistsascent"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alieninvasion"
	"github.com/KirkDiggler/devils-dozen/internal/engine/knucklebones"
	"github.com/KirkDiggler/devils-dozen/internal/engine/peasantsgamble"
	"github.com/KirkDiggler/devils-dozen/internal/engine/pig"
	"github.com/KirkDiggler/devils-dozen/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	gamestate "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state"
)

// turnContext is everything loaded for one action by the current player
type turnContext struct {
	lobby   *entities.Lobby
	players []*entities.Player
	player  *entities.Player
	state   *entities.GameState
}

func (tc *turnContext) result() TurnResult {
	return TurnResult{
		Lobby:    tc.lobby,
		Players:  tc.players,
		State:    tc.state,
		WinnerID: tc.lobby.WinnerID,
	}
}

func (tc *turnContext) requireMode(action string, modes ...entities.GameMode) error {
	for _, m := range modes {
		if tc.lobby.Mode == m {
			return nil
		}
	}
	return errors.IllegalOperationf("%s is not part of %s", action, tc.lobby.Mode)
}

// holdFunc commits dice for a pool mode
type holdFunc func(entities.TurnState, []int) (entities.TurnState, entities.ScoringResult, error)

// Roll dispatches a roll to the lobby's engine
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	switch tc.lobby.Mode {
	case entities.GameModePeasantsGamble:
		return o.rollPool(ctx, tc, input.Roll, o.peasant.ProcessRoll, peasantsgamble.ProcessHold)
	case entities.GameModeAlchemistsAscent:
		return o.rollAscent(ctx, tc, input.Roll)
	case entities.GameModeKnucklebones:
		return o.rollKnucklebones(ctx, tc, input.Roll)
	case entities.GameModeAlienInvasion:
		return o.rollAlien(ctx, tc, input.Roll)
	case entities.GameModePig:
		return o.rollPig(ctx, tc, input.Roll)
	default:
		return nil, errors.InvalidInputf("unknown game mode: %q", tc.lobby.Mode)
	}
}

func (o *orchestrator) rollPool(
	ctx context.Context,
	tc *turnContext,
	roll *entities.DiceRoll,
	process func(entities.TurnState, *entities.DiceRoll) (entities.TurnState, entities.ScoringResult, error),
	hold holdFunc,
) (*RollOutput, error) {
	turn := currentTurn(tc.state, entities.NewTurnState(0))
	turn, err := commitPending(turn, hold)
	if err != nil {
		return nil, err
	}

	next, result, err := process(turn, roll)
	if err != nil {
		return nil, err
	}
	tc.state.Turn = &next
	tc.state.LastResult = &result

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}
	o.afterPoolRoll(ctx, tc, next)

	out := &RollOutput{
		TurnResult: tc.result(),
		IsHotDice:  next.IsHotDice,
	}
	out.Result = &result
	out.IsBust = next.IsBust
	return out, nil
}

func (o *orchestrator) rollAscent(ctx context.Context, tc *turnContext, roll *entities.DiceRoll) (*RollOutput, error) {
	score := tc.player.TotalScore
	turn := currentTurn(tc.state, alchemistsascent.NewTurn(score))
	if turn.Tier == entities.TierRed {
		var err error
		if turn, err = commitPending(turn, alchemistsascent.ProcessHold); err != nil {
			return nil, err
		}
	}

	lastPlace := alchemistsascent.LastPlace(tc.player.ID, standings(tc.players))
	next, outcome, err := o.ascent.ProcessRoll(turn, score, lastPlace, roll)
	if err != nil {
		return nil, err
	}
	tc.state.Turn = &next

	if outcome.Tier3 != nil {
		return o.applyTier3(ctx, tc, *outcome.Tier3)
	}

	tc.state.LastResult = outcome.Result
	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}
	o.afterPoolRoll(ctx, tc, next)

	out := &RollOutput{
		TurnResult: tc.result(),
		IsHotDice:  next.IsHotDice,
	}
	out.Result = outcome.Result
	out.IsBust = next.IsBust
	return out, nil
}

// applyTier3 moves the BLUE effect into the banked totals and ends the turn
func (o *orchestrator) applyTier3(
	ctx context.Context,
	tc *turnContext,
	effect alchemistsascent.Tier3Result,
) (*RollOutput, error) {
	result := entities.NewScoringResult([]entities.ScoringBreakdown{effect.Breakdown}, entities.NewIndexSet(0))
	tc.state.LastResult = &result

	var beneficiary *entities.Player
	switch {
	case effect.IsReset:
		tc.player.TotalScore = 0
		if err := o.updatePlayer(ctx, tc.player); err != nil {
			return nil, err
		}
		o.publish(ctx, rpgtoolkit.EventReset, tc.player, tc.lobby)
	case effect.IsKingmaker:
		beneficiary = findPlayer(tc.players, effect.BeneficiaryID)
		if beneficiary != nil {
			before := alchemistsascent.TierForScore(beneficiary.TotalScore)
			beneficiary.TotalScore += alchemistsascent.KingmakerPoints
			if err := o.updatePlayer(ctx, beneficiary); err != nil {
				return nil, err
			}
			o.publish(ctx, rpgtoolkit.EventKingmaker, beneficiary, tc.lobby)
			o.checkTierAdvance(ctx, tc, beneficiary, before)
		}
	default:
		tc.player.TotalScore += effect.Delta
		if err := o.updatePlayer(ctx, tc.player); err != nil {
			return nil, err
		}
	}

	slog.Info("Tier three applied",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"die", effect.DieValue,
		"delta", effect.Delta,
		"beneficiary_id", effect.BeneficiaryID,
	)

	out := &RollOutput{Tier3: &effect}
	out.Result = &result
	if err := o.endTurnOrFinish(ctx, tc, &out.TurnResult, tc.player, beneficiary); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) rollKnucklebones(
	ctx context.Context,
	tc *turnContext,
	roll *entities.DiceRoll,
) (*RollOutput, error) {
	if tc.state.PendingDie != 0 {
		return nil, errors.IllegalOperationf("place the %d before rolling again", tc.state.PendingDie)
	}

	var value int
	if roll == nil {
		v, err := o.knuckle.RollDie()
		if err != nil {
			return nil, err
		}
		value = v
	} else {
		r, err := engine.ResolveRoll(o.roller, roll, entities.D6, 1, 1)
		if err != nil {
			return nil, err
		}
		value = r.Values[0]
	}

	ensureGrids(tc)
	tc.state.PendingDie = value
	tc.state.LastResult = nil
	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}

	slog.Info("Die rolled",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"value", value,
	)

	return &RollOutput{
		TurnResult: tc.result(),
		DieValue:   value,
	}, nil
}

func (o *orchestrator) rollAlien(ctx context.Context, tc *turnContext, roll *entities.DiceRoll) (*RollOutput, error) {
	turn := alieninvasion.NewTurn()
	if tc.state.Alien != nil {
		turn = tc.state.Alien.Clone()
	}

	next, err := o.alien.ProcessRoll(turn, roll)
	if err != nil {
		return nil, err
	}
	tc.state.Alien = &next
	tc.state.LastResult = nil

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}

	stuck := alieninvasion.IsStuck(next)
	if stuck {
		o.publish(ctx, rpgtoolkit.EventBust, tc.player, tc.lobby)
	}
	slog.Info("Invasion dice rolled",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"roll", next.RollCount,
		"tanks", next.TanksCount,
		"death_rays", next.DeathRaysCount,
		"stuck", stuck,
	)

	out := &RollOutput{
		TurnResult: tc.result(),
		Selections: alieninvasion.GetAvailableSelections(next),
	}
	out.IsBust = stuck
	return out, nil
}

func (o *orchestrator) rollPig(ctx context.Context, tc *turnContext, roll *entities.DiceRoll) (*RollOutput, error) {
	turn := currentTurn(tc.state, entities.NewTurnState(0))
	if turn.IsBust {
		return nil, errors.IllegalOperation("turn already ended in a bust")
	}

	if roll == nil {
		var err error
		if roll, err = engine.RollDice(o.roller, entities.D6, pig.NumDice); err != nil {
			return nil, err
		}
	}

	score, result, err := o.pig.ProcessRoll(turn.TurnScore, roll)
	if err != nil {
		return nil, err
	}

	next := turn.Clone()
	next.ActiveDice = roll.Dice()
	next.RollCount++
	next.TurnScore = score
	next.IsBust = result.IsBust
	tc.state.Turn = &next
	tc.state.LastResult = &result

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}
	o.afterPoolRoll(ctx, tc, next)

	out := &RollOutput{TurnResult: tc.result()}
	out.Result = &result
	out.IsBust = next.IsBust
	return out, nil
}

func (o *orchestrator) afterPoolRoll(ctx context.Context, tc *turnContext, turn entities.TurnState) {
	switch {
	case turn.IsBust:
		o.publish(ctx, rpgtoolkit.EventBust, tc.player, tc.lobby)
	case turn.IsHotDice:
		o.publish(ctx, rpgtoolkit.EventHotDice, tc.player, tc.lobby)
	}

	slog.Info("Dice rolled",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"dice", turn.ActiveDice,
		"turn_score", turn.TurnScore,
		"bust", turn.IsBust,
		"hot_dice", turn.IsHotDice,
	)
}

// Hold commits scoring dice in Peasant's Gamble and tier RED
func (o *orchestrator) Hold(ctx context.Context, input *HoldInput) (*HoldOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := tc.requireMode("holding dice",
		entities.GameModePeasantsGamble, entities.GameModeAlchemistsAscent); err != nil {
		return nil, err
	}
	if tc.state.Turn == nil {
		return nil, errors.IllegalOperation("roll before holding dice")
	}

	hold := holdFunc(peasantsgamble.ProcessHold)
	if tc.lobby.Mode == entities.GameModeAlchemistsAscent {
		hold = alchemistsascent.ProcessHold
	}

	next, result, err := hold(*tc.state.Turn, input.Indices)
	if err != nil {
		return nil, err
	}
	tc.state.Turn = &next
	tc.state.LastResult = &result

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}
	if next.IsHotDice {
		o.publish(ctx, rpgtoolkit.EventHotDice, tc.player, tc.lobby)
	}

	slog.Info("Dice held",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"indices", result.ScoringIndices,
		"points", result.Points,
		"turn_score", next.TurnScore,
	)

	out := &HoldOutput{
		TurnResult: tc.result(),
		IsHotDice:  next.IsHotDice,
	}
	out.Result = &result
	return out, nil
}

// Reroll rerolls one die of a GREEN turn
func (o *orchestrator) Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := tc.requireMode("rerolling a die", entities.GameModeAlchemistsAscent); err != nil {
		return nil, err
	}
	if tc.state.Turn == nil {
		return nil, errors.IllegalOperation("roll before rerolling a die")
	}

	next, reroll, err := o.ascent.ProcessReroll(*tc.state.Turn, input.Index, input.Value)
	if err != nil {
		return nil, err
	}
	tc.state.Turn = &next
	tc.state.LastResult = &reroll.Result

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}
	if reroll.IsBust {
		o.publish(ctx, rpgtoolkit.EventBust, tc.player, tc.lobby)
	}

	slog.Info("Die rerolled",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"index", reroll.Index,
		"old", reroll.OldValue,
		"new", reroll.NewValue,
		"bust", reroll.IsBust,
	)

	out := &RerollOutput{
		TurnResult: tc.result(),
		Reroll:     reroll,
	}
	out.Result = &reroll.Result
	out.IsBust = reroll.IsBust
	return out, nil
}

// Select abducts a group of earthlings or collects death rays
func (o *orchestrator) Select(ctx context.Context, input *SelectInput) (*SelectOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := tc.requireMode("selecting dice", entities.GameModeAlienInvasion); err != nil {
		return nil, err
	}
	if tc.state.Alien == nil {
		return nil, errors.IllegalOperation("roll before selecting dice")
	}

	next, err := alieninvasion.ProcessSelection(*tc.state.Alien, input.Face, input.Indices)
	if err != nil {
		return nil, err
	}
	tc.state.Alien = &next

	if err := o.saveState(ctx, tc); err != nil {
		return nil, err
	}

	slog.Info("Dice selected",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"face", input.Face,
		"count", len(input.Indices),
		"turn_score", next.TurnScore,
	)

	return &SelectOutput{
		TurnResult:   tc.result(),
		Selections:   alieninvasion.GetAvailableSelections(next),
		TugOfWar:     alieninvasion.TugOfWarRatio(next),
		IsSafeToBank: next.DeathRaysCount >= next.TanksCount,
	}, nil
}

// Place stacks the rolled Knucklebones die and ends the turn
func (o *orchestrator) Place(ctx context.Context, input *PlaceInput) (*PlaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := tc.requireMode("placing a die", entities.GameModeKnucklebones); err != nil {
		return nil, err
	}
	if tc.state.PendingDie == 0 {
		return nil, errors.IllegalOperation("roll before placing a die")
	}

	opponent := opponentOf(tc.players, tc.player.ID)
	if opponent == nil {
		return nil, errors.Internal("knucklebones needs an opponent")
	}

	ensureGrids(tc)
	placement, err := knucklebones.PlaceDie(tc.state.PendingDie, input.Column,
		tc.state.Grids[tc.player.ID], tc.state.Grids[opponent.ID])
	if err != nil {
		return nil, err
	}

	tc.state.Grids[tc.player.ID] = placement.PlayerGrid
	tc.state.Grids[opponent.ID] = placement.OpponentGrid
	tc.state.PendingDie = 0
	result := knucklebones.ScoreGrid(placement.PlayerGrid)
	tc.state.LastResult = &result

	tc.player.TotalScore = knucklebones.CalculateGridScore(placement.PlayerGrid)
	opponent.TotalScore = knucklebones.CalculateGridScore(placement.OpponentGrid)
	if err := o.updatePlayer(ctx, tc.player); err != nil {
		return nil, err
	}
	if err := o.updatePlayer(ctx, opponent); err != nil {
		return nil, err
	}

	if placement.DestroyedCount > 0 {
		o.publish(ctx, rpgtoolkit.EventCrunch, tc.player, tc.lobby)
	}
	slog.Info("Die placed",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"column", placement.ColumnIndex,
		"destroyed", placement.DestroyedCount,
		"score", tc.player.TotalScore,
	)

	out := &PlaceOutput{Placement: placement}
	out.Result = &result

	first, second := tc.players[0], tc.players[1]
	if !knucklebones.IsGameOver(tc.state.Grids[first.ID], tc.state.Grids[second.ID]) {
		if err := o.advanceTurn(ctx, tc); err != nil {
			return nil, err
		}
		out.TurnResult = tc.result()
		out.Result = &result
		out.TurnEnded = true
		return out, nil
	}

	var winner *entities.Player
	switch knucklebones.GetWinner(tc.state.Grids[first.ID], tc.state.Grids[second.ID]) {
	case knucklebones.WinnerPlayerOne:
		winner = first
	case knucklebones.WinnerPlayerTwo:
		winner = second
	}
	if err := o.finishGame(ctx, tc, winner); err != nil {
		return nil, err
	}

	out.TurnResult = tc.result()
	out.Result = &result
	out.GameOver = true
	return out, nil
}

// Bank adds the turn score to the player's total and passes play
func (o *orchestrator) Bank(ctx context.Context, input *BankInput) (*BankOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if tc.lobby.Mode == entities.GameModeKnucklebones {
		return nil, errors.IllegalOperation("knucklebones has no banking, place the die instead")
	}

	out := &BankOutput{}
	points := 0

	if tc.lobby.Mode == entities.GameModeAlienInvasion {
		if tc.state.Alien == nil || tc.state.Alien.RollCount == 0 {
			return nil, errors.IllegalOperation("roll before banking")
		}
		final := alieninvasion.CalculateFinalScore(*tc.state.Alien)
		out.FinalScore = &final
		out.Result = &final.Result
		out.IsBust = final.IsBust
		tc.state.LastResult = &final.Result
		points = final.TotalPoints
		if final.IsBust {
			o.publish(ctx, rpgtoolkit.EventBust, tc.player, tc.lobby)
		}
	} else {
		if tc.state.Turn == nil || tc.state.Turn.RollCount == 0 {
			return nil, errors.IllegalOperation("roll before banking")
		}
		turn := *tc.state.Turn
		if turn.IsBust {
			return nil, errors.IllegalOperation("turn ended in a bust, end the turn instead")
		}
		if turn.Tier == entities.TierBlue {
			return nil, errors.IllegalOperation("tier BLUE applies its die immediately")
		}
		switch {
		case tc.lobby.Mode == entities.GameModePeasantsGamble:
			turn, err = commitPending(turn, peasantsgamble.ProcessHold)
		case tc.lobby.Mode == entities.GameModeAlchemistsAscent && turn.Tier == entities.TierRed:
			turn, err = commitPending(turn, alchemistsascent.ProcessHold)
		}
		if err != nil {
			return nil, err
		}
		tc.state.Turn = &turn
		points = turn.TurnScore
	}

	tierBefore := alchemistsascent.TierForScore(tc.player.TotalScore)
	tc.player.TotalScore += points
	if err := o.updatePlayer(ctx, tc.player); err != nil {
		return nil, err
	}
	out.Banked = points
	out.TotalScore = tc.player.TotalScore

	if !out.IsBust {
		o.publish(ctx, rpgtoolkit.EventBanked, tc.player, tc.lobby)
	}
	if tc.lobby.Mode == entities.GameModeAlchemistsAscent {
		out.TierBefore = tierBefore
		out.TierAfter = alchemistsascent.TierForScore(tc.player.TotalScore)
		o.checkTierAdvance(ctx, tc, tc.player, tierBefore)
	}

	slog.Info("Turn banked",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"points", points,
		"total", tc.player.TotalScore,
	)

	if err := o.endTurnOrFinish(ctx, tc, &out.TurnResult, tc.player); err != nil {
		return nil, err
	}
	return out, nil
}

// EndTurn passes play after a bust or a stuck invasion
func (o *orchestrator) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidInput("input is required")
	}

	tc, err := o.loadTurn(ctx, input.LobbyID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	var over bool
	switch tc.lobby.Mode {
	case entities.GameModeKnucklebones:
		return nil, errors.IllegalOperation("knucklebones turns end by placing the die")
	case entities.GameModeAlienInvasion:
		over = tc.state.Alien != nil && alieninvasion.IsStuck(*tc.state.Alien)
	default:
		over = tc.state.Turn != nil && tc.state.Turn.IsBust
	}
	if !over {
		return nil, errors.IllegalOperation("turn is still live, bank or keep rolling")
	}

	if err := o.advanceTurn(ctx, tc); err != nil {
		return nil, err
	}

	slog.Info("Turn ended",
		"lobby_id", tc.lobby.ID,
		"player_id", tc.player.ID,
		"next_turn_index", tc.lobby.CurrentTurnIndex,
	)

	out := &EndTurnOutput{TurnResult: tc.result()}
	out.IsBust = true
	out.TurnEnded = true
	return out, nil
}

// loadTurn loads a playing lobby and checks it is playerID's turn
func (o *orchestrator) loadTurn(ctx context.Context, lobbyID, playerID string) (*turnContext, error) {
	if lobbyID == "" {
		return nil, errors.InvalidInput("lobby ID is required")
	}
	if playerID == "" {
		return nil, errors.InvalidInput("player ID is required")
	}

	current, err := o.getLobby(ctx, lobbyID)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case entities.LobbyStatusWaiting:
		return nil, errors.IllegalOperation("game has not started")
	case entities.LobbyStatusFinished:
		return nil, errors.IllegalOperation("game is over")
	}

	players, err := o.listPlayers(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, errors.Internalf("lobby %s has no players", current.ID)
	}

	active := players[current.CurrentTurnIndex%len(players)]
	if active.ID != playerID {
		if findPlayer(players, playerID) == nil {
			return nil, errors.NotFoundf("player %s is not in this lobby", playerID)
		}
		return nil, errors.IllegalOperationf("it is %s's turn", active.Name).
			WithMeta("current_player_id", active.ID)
	}

	got, err := o.stateRepo.Get(ctx, gamestate.GetInput{LobbyID: current.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get game state")
	}

	return &turnContext{
		lobby:   current,
		players: players,
		player:  active,
		state:   got.State,
	}, nil
}

func (o *orchestrator) saveState(ctx context.Context, tc *turnContext) error {
	out, err := o.stateRepo.Save(ctx, gamestate.SaveInput{State: tc.state})
	if err != nil {
		return errors.Wrap(err, "failed to save game state")
	}
	tc.state = out.State
	return nil
}

// advanceTurn passes play to the next seat and clears the turn fields
func (o *orchestrator) advanceTurn(ctx context.Context, tc *turnContext) error {
	if err := o.saveState(ctx, tc); err != nil {
		return err
	}

	tc.lobby.CurrentTurnIndex = (tc.lobby.CurrentTurnIndex + 1) % len(tc.players)
	if err := o.updateLobby(ctx, tc.lobby); err != nil {
		return err
	}

	out, err := o.stateRepo.ResetTurn(ctx, gamestate.ResetTurnInput{LobbyID: tc.lobby.ID})
	if err != nil {
		return errors.Wrap(err, "failed to reset turn")
	}
	tc.state = out.State
	return nil
}

// finishGame closes the lobby. A nil winner is a draw.
func (o *orchestrator) finishGame(ctx context.Context, tc *turnContext, winner *entities.Player) error {
	tc.lobby.Status = entities.LobbyStatusFinished
	if winner != nil {
		tc.lobby.WinnerID = winner.ID
	}
	if err := o.updateLobby(ctx, tc.lobby); err != nil {
		return err
	}
	if err := o.saveState(ctx, tc); err != nil {
		return err
	}

	if winner != nil {
		o.publish(ctx, rpgtoolkit.EventWon, winner, tc.lobby)
	}
	slog.Info("Game finished",
		"lobby_id", tc.lobby.ID,
		"winner_id", tc.lobby.WinnerID,
	)
	return nil
}

// endTurnOrFinish finishes the game for the first candidate at the target,
// otherwise passes play, then fills out with the final state.
func (o *orchestrator) endTurnOrFinish(
	ctx context.Context,
	tc *turnContext,
	out *TurnResult,
	candidates ...*entities.Player,
) error {
	result, bust := out.Result, out.IsBust

	var winner *entities.Player
	for _, p := range candidates {
		if p != nil && p.TotalScore >= tc.lobby.TargetScore {
			winner = p
			break
		}
	}

	if winner != nil {
		if err := o.finishGame(ctx, tc, winner); err != nil {
			return err
		}
		*out = tc.result()
	} else {
		if err := o.advanceTurn(ctx, tc); err != nil {
			return err
		}
		*out = tc.result()
		out.TurnEnded = true
	}

	out.Result, out.IsBust = result, bust
	return nil
}

func (o *orchestrator) checkTierAdvance(
	ctx context.Context,
	tc *turnContext,
	p *entities.Player,
	before entities.Tier,
) {
	after := alchemistsascent.TierForScore(p.TotalScore)
	if after <= before {
		return
	}
	o.publish(ctx, rpgtoolkit.EventTierAdvanced, p, tc.lobby)
	slog.Info("Tier advanced",
		"lobby_id", tc.lobby.ID,
		"player_id", p.ID,
		"tier", after.String(),
	)
}

// currentTurn returns a copy of the stored pool turn, or fresh when none exists
func currentTurn(state *entities.GameState, fresh entities.TurnState) entities.TurnState {
	if state.Turn == nil {
		return fresh
	}
	return state.Turn.Clone()
}

// commitPending holds the dice a roll auto-selected when the player never
// held any themselves.
func commitPending(turn entities.TurnState, hold holdFunc) (entities.TurnState, error) {
	if turn.RollCount == 0 || turn.IsBust || turn.ScoredIndices.Len() > 0 || turn.HeldIndices.Len() == 0 {
		return turn, nil
	}
	next, _, err := hold(turn, turn.HeldIndices.Slice())
	if err != nil {
		return turn, err
	}
	return next, nil
}

func ensureGrids(tc *turnContext) {
	if tc.state.Grids == nil {
		tc.state.Grids = make(map[string]entities.GridState, len(tc.players))
	}
	for _, p := range tc.players {
		if _, ok := tc.state.Grids[p.ID]; !ok {
			tc.state.Grids[p.ID] = entities.NewGridState()
		}
	}
}

func standings(players []*entities.Player) []alchemistsascent.Standing {
	out := make([]alchemistsascent.Standing, 0, len(players))
	for _, p := range players {
		out = append(out, alchemistsascent.Standing{PlayerID: p.ID, TotalScore: p.TotalScore})
	}
	return out
}

func findPlayer(players []*entities.Player, id string) *entities.Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func opponentOf(players []*entities.Player, id string) *entities.Player {
	for _, p := range players {
		if p.ID != id {
			return p
		}
	}
	return nil
}
