// Package alchemistsascent implements Alchemist's Ascent, the tiered D20 mode.
//
// RED plays like Peasant's Gamble with eight dice and tier 1 scoring. GREEN
// rolls three dice once, scores them at five times tier 1 and then risks
// single-die rerolls. BLUE rolls one die whose effect lands directly on the
// banked totals.
package alchemistsascent

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// Config holds the dependencies for the engine
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Engine is the Alchemist's Ascent rule set
type Engine struct {
	roller dice.Roller
}

// New creates an engine rolling through cfg.Roller
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{roller: cfg.Roller}, nil
}

// NewTurn returns the starting state for a player with currentScore banked
func NewTurn(currentScore int) entities.TurnState {
	return entities.NewTurnState(TierForScore(currentScore))
}

// RollOutcome carries the pool result for RED and GREEN, or the single-die
// effect for BLUE.
type RollOutcome struct {
	Tier   entities.Tier           `json:"tier"`
	Result *entities.ScoringResult `json:"result,omitempty"`
	Tier3  *Tier3Result            `json:"tier3,omitempty"`
}

// RerollResult is the outcome of a GREEN single-die reroll
type RerollResult struct {
	Index    int                    `json:"index"`
	OldValue int                    `json:"old_value"`
	NewValue int                    `json:"new_value"`
	IsBust   bool                   `json:"is_bust"`
	Result   entities.ScoringResult `json:"result"`
}

// RollDice throws count D20
func (e *Engine) RollDice(count int) (*entities.DiceRoll, error) {
	return engine.RollDice(e.roller, entities.D20, count)
}

// NextRollCount is eight for a fresh RED turn or after every die was held,
// otherwise the unheld count. GREEN and BLUE always roll their fixed count.
func NextRollCount(state entities.TurnState) int {
	if state.Tier != entities.TierRed {
		return DiceCountForTier(state.Tier)
	}
	if state.RollCount == 0 || state.IsHotDice {
		return TierRedDice
	}
	return state.UnheldCount()
}

// ProcessRoll rolls for the tier implied by currentScore, or scores roll when
// it is given. lastPlaceID is only used by a BLUE kingmaker.
func (e *Engine) ProcessRoll(
	state entities.TurnState,
	currentScore int,
	lastPlaceID string,
	roll *entities.DiceRoll,
) (entities.TurnState, RollOutcome, error) {
	if _, err := engine.ValidateScore(currentScore, false); err != nil {
		return state, RollOutcome{}, err
	}
	if state.IsBust {
		return state, RollOutcome{}, errors.IllegalOperation("turn already ended in a bust")
	}

	tier := TierForScore(currentScore)
	if state.RollCount > 0 && state.Tier != tier {
		return state, RollOutcome{}, errors.IllegalOperationf("turn started in tier %s, score now implies %s",
			state.Tier, tier)
	}

	current := state.Clone()
	current.Tier = tier

	switch tier {
	case entities.TierRed:
		return e.rollRed(current, roll)
	case entities.TierGreen:
		return e.rollGreen(current, roll)
	default:
		return e.rollBlue(current, currentScore, lastPlaceID, roll)
	}
}

func (e *Engine) rollRed(state entities.TurnState, roll *entities.DiceRoll) (entities.TurnState, RollOutcome, error) {
	if state.RollCount > 0 && state.ScoredIndices.Len() == 0 {
		return state, RollOutcome{}, errors.IllegalOperation("hold at least one scoring die before rolling again")
	}

	count := NextRollCount(state)
	current, err := engine.ResolveRoll(e.roller, roll, entities.D20, count, count)
	if err != nil {
		return state, RollOutcome{}, err
	}

	result := scoreTier1(current.Values)
	next := entities.TurnState{
		ActiveDice:    current.Dice(),
		HeldIndices:   entities.IndexSet{},
		ScoredIndices: entities.IndexSet{},
		TurnScore:     state.TurnScore,
		RollCount:     state.RollCount + 1,
		Tier:          entities.TierRed,
	}

	if result.IsBust {
		next.TurnScore = 0
		next.IsBust = true
	} else {
		next.HeldIndices = result.ScoringIndices
		next.IsHotDice = result.ScoringIndices.Len() == len(next.ActiveDice)
	}

	return next, RollOutcome{Tier: entities.TierRed, Result: &result}, nil
}

func (e *Engine) rollGreen(state entities.TurnState, roll *entities.DiceRoll) (entities.TurnState, RollOutcome, error) {
	if state.RollCount > 0 {
		return state, RollOutcome{}, errors.IllegalOperation("tier GREEN rolls once per turn, reroll single dice instead")
	}

	current, err := engine.ResolveRoll(e.roller, roll, entities.D20, TierGreenDice, TierGreenDice)
	if err != nil {
		return state, RollOutcome{}, err
	}

	result := scoreTier2(current.Values)
	next := entities.TurnState{
		ActiveDice:    current.Dice(),
		HeldIndices:   entities.IndexSet{},
		ScoredIndices: entities.IndexSet{},
		TurnScore:     result.Points,
		RollCount:     state.RollCount + 1,
		Tier:          entities.TierGreen,
		PreviousDice:  current.Dice(),
	}

	return next, RollOutcome{Tier: entities.TierGreen, Result: &result}, nil
}

func (e *Engine) rollBlue(
	state entities.TurnState,
	currentScore int,
	lastPlaceID string,
	roll *entities.DiceRoll,
) (entities.TurnState, RollOutcome, error) {
	if state.RollCount > 0 {
		return state, RollOutcome{}, errors.IllegalOperation("tier BLUE rolls once per turn")
	}

	current, err := engine.ResolveRoll(e.roller, roll, entities.D20, TierBlueDice, TierBlueDice)
	if err != nil {
		return state, RollOutcome{}, err
	}

	effect, err := CalculateScoreTier3(current.Values[0], currentScore, lastPlaceID)
	if err != nil {
		return state, RollOutcome{}, err
	}

	next := entities.TurnState{
		ActiveDice:    current.Dice(),
		HeldIndices:   entities.IndexSet{},
		ScoredIndices: entities.IndexSet{},
		RollCount:     state.RollCount + 1,
		Tier:          entities.TierBlue,
	}

	return next, RollOutcome{Tier: entities.TierBlue, Tier3: &effect}, nil
}

// ProcessHold commits RED dice with the same rules as Peasant's Gamble:
// every selected die must score under tier 1 and none may be committed twice.
func ProcessHold(state entities.TurnState, indices []int) (entities.TurnState, entities.ScoringResult, error) {
	if state.Tier != entities.TierRed {
		return state, entities.ScoringResult{}, errors.IllegalOperationf("dice can only be held in tier RED, not %s",
			state.Tier)
	}
	if state.IsBust {
		return state, entities.ScoringResult{}, errors.IllegalOperation("turn already ended in a bust")
	}
	if state.RollCount == 0 || len(state.ActiveDice) == 0 {
		return state, entities.ScoringResult{}, errors.IllegalOperation("roll before holding dice")
	}
	if len(indices) == 0 {
		return state, entities.ScoringResult{}, errors.InvalidInput("at least one die must be held")
	}

	selected, err := engine.ValidateHeldIndices(indices, len(state.ActiveDice))
	if err != nil {
		return state, entities.ScoringResult{}, err
	}
	if overlap := selected.Intersect(state.ScoredIndices); overlap.Len() > 0 {
		return state, entities.ScoringResult{}, errors.IllegalOperationf("dice %v are already held", overlap.Slice())
	}

	values := engine.Pick(state.ActiveDice, selected)
	result := scoreTier1(values)
	if result.IsBust || result.ScoringIndices.Len() != len(values) {
		return state, entities.ScoringResult{}, errors.IllegalOperation("cannot hold non-scoring dice").
			WithMeta("dice", values)
	}
	result.ScoringIndices = selected

	next := state.Clone()
	next.TurnScore += result.Points
	next.ScoredIndices = state.ScoredIndices.Union(selected)
	next.HeldIndices = next.ScoredIndices
	next.IsHotDice = next.HeldIndices.Len() == len(next.ActiveDice)

	return next, result, nil
}

// ProcessReroll rerolls one GREEN die. A new value at or below the old one
// busts the whole turn; otherwise every die is rescored and the result
// replaces the turn score. newValue overrides the roller when set.
func (e *Engine) ProcessReroll(
	state entities.TurnState,
	index int,
	newValue *int,
) (entities.TurnState, RerollResult, error) {
	if state.Tier != entities.TierGreen {
		return state, RerollResult{}, errors.IllegalOperationf("dice can only be rerolled in tier GREEN, not %s",
			state.Tier)
	}
	if state.IsBust {
		return state, RerollResult{}, errors.IllegalOperation("turn already ended in a bust")
	}
	if state.RollCount == 0 || len(state.ActiveDice) == 0 {
		return state, RerollResult{}, errors.IllegalOperation("roll before rerolling a die")
	}
	if _, err := engine.ValidateHeldIndices([]int{index}, len(state.ActiveDice)); err != nil {
		return state, RerollResult{}, err
	}

	var value int
	if newValue != nil {
		if _, err := engine.ValidateDiceValues([]int{*newValue}, entities.D20, 1, 1); err != nil {
			return state, RerollResult{}, err
		}
		value = *newValue
	} else {
		r, err := e.RollDice(1)
		if err != nil {
			return state, RerollResult{}, err
		}
		value = r.Values[0]
	}

	oldValue := state.ActiveDice[index]
	next := state.Clone()
	next.PreviousDice = entities.CopyInts(state.ActiveDice)
	next.ActiveDice[index] = value

	out := RerollResult{
		Index:    index,
		OldValue: oldValue,
		NewValue: value,
	}

	if value <= oldValue {
		next.TurnScore = 0
		next.IsBust = true
		out.IsBust = true
		out.Result = entities.BustResult()
		return next, out, nil
	}

	out.Result = scoreTier2(next.ActiveDice)
	next.TurnScore = out.Result.Points
	return next, out, nil
}
