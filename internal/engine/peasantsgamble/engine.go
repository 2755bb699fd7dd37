// Package peasantsgamble implements Peasant's Gamble, the six-dice D6
// press-your-luck mode.
//
// A turn alternates ProcessRoll and ProcessHold. A roll auto-holds its
// scoring dice as a suggestion; the player commits dice with ProcessHold,
// which is the only step that adds to the turn score. At least one die must
// be committed before rolling again.
package peasantsgamble

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// NumDice is the full set rolled at turn start and after hot dice
const NumDice = 6

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

// Engine is the Peasant's Gamble rule set. It keeps no state between calls.
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

// NewTurn returns the state at the start of a turn
func NewTurn() entities.TurnState {
	return entities.NewTurnState(0)
}

// RollDice throws count D6
func (e *Engine) RollDice(count int) (*entities.DiceRoll, error) {
	return engine.RollDice(e.roller, entities.D6, count)
}

// NextRollCount is six on the first roll and after hot dice, otherwise the
// number of dice not held.
func NextRollCount(state entities.TurnState) int {
	if state.RollCount == 0 || state.IsHotDice {
		return NumDice
	}
	return state.UnheldCount()
}

// ProcessRoll rolls the next set of dice, or scores roll when it is given.
// A bust zeroes the turn score and clears every hold. Otherwise the scoring
// dice are auto-held and the turn score is left unchanged.
func (e *Engine) ProcessRoll(
	state entities.TurnState,
	roll *entities.DiceRoll,
) (entities.TurnState, entities.ScoringResult, error) {
	if state.IsBust {
		return state, entities.ScoringResult{}, errors.IllegalOperation("turn already ended in a bust")
	}
	if state.RollCount > 0 && state.ScoredIndices.Len() == 0 {
		return state, entities.ScoringResult{}, errors.IllegalOperation(
			"hold at least one scoring die before rolling again")
	}

	count := NextRollCount(state)
	current, err := engine.ResolveRoll(e.roller, roll, entities.D6, count, count)
	if err != nil {
		return state, entities.ScoringResult{}, err
	}

	result := score(current.Values)
	next := entities.TurnState{
		ActiveDice:    current.Dice(),
		HeldIndices:   entities.IndexSet{},
		ScoredIndices: entities.IndexSet{},
		TurnScore:     state.TurnScore,
		RollCount:     state.RollCount + 1,
		Tier:          state.Tier,
	}

	if result.IsBust {
		next.TurnScore = 0
		next.IsBust = true
		return next, result, nil
	}

	next.HeldIndices = result.ScoringIndices
	next.IsHotDice = result.ScoringIndices.Len() == len(next.ActiveDice)
	return next, result, nil
}

// ProcessHold commits indices of the current roll. Every selected die must
// score and none may have been committed already. The result's scoring
// indices are positions in the active dice.
func ProcessHold(state entities.TurnState, indices []int) (entities.TurnState, entities.ScoringResult, error) {
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
	result := score(values)
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
