// Package pig implements Pig, the single-die press-your-luck mode
package pig

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

const (
	// NumDice is always one
	NumDice = 1
	// BustFace ends the turn with nothing
	BustFace = 1
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

// Engine is the Pig rule set
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

// CalculateScore scores a single die: a one busts, anything else is worth
// its face.
func CalculateScore(values []int) (entities.ScoringResult, error) {
	if _, err := engine.ValidateDiceValues(values, entities.D6, NumDice, NumDice); err != nil {
		return entities.ScoringResult{}, err
	}

	value := values[0]
	if value == BustFace {
		return entities.BustResult(), nil
	}

	return entities.NewScoringResult([]entities.ScoringBreakdown{{
		Category:    entities.CategoryFaceValue,
		DiceValues:  []int{value},
		Points:      value,
		Description: fmt.Sprintf("Rolled %d", value),
	}}, entities.NewIndexSet(0)), nil
}

// IsBust reports whether the die shows a one
func IsBust(values []int) bool {
	return len(values) == NumDice && values[0] == BustFace
}

// ProcessRoll rolls the die, or uses roll when it is given, and returns the
// new turn score. A bust resets the turn score to zero.
func (e *Engine) ProcessRoll(
	turnScore int,
	roll *entities.DiceRoll,
) (int, entities.ScoringResult, error) {
	if _, err := engine.ValidateScore(turnScore, false); err != nil {
		return 0, entities.ScoringResult{}, err
	}

	current, err := engine.ResolveRoll(e.roller, roll, entities.D6, NumDice, NumDice)
	if err != nil {
		return 0, entities.ScoringResult{}, err
	}

	result, err := CalculateScore(current.Values)
	if err != nil {
		return 0, entities.ScoringResult{}, err
	}
	if result.IsBust {
		return 0, result, nil
	}

	return turnScore + result.Points, result, nil
}
