// Package engine holds what every Devil's Dozen rule engine shares: input
// validators, the dice-rolling seam and the per-mode game rules.
package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// RollDice throws count dice of kind through roller
func RollDice(roller dice.Roller, kind entities.DiceKind, count int) (*entities.DiceRoll, error) {
	if roller == nil {
		return nil, errors.Internal("dice roller is required")
	}
	if count <= 0 {
		return nil, errors.InvalidInputf("dice count must be positive, got %d", count)
	}

	values, err := roller.RollN(count, int(kind))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %d%s", count, kind)
	}

	return entities.NewDiceRoll(kind, values...)
}

// ResolveRoll returns injected when it is set, validated against kind and
// maxCount, otherwise rolls count fresh dice.
func ResolveRoll(
	roller dice.Roller,
	injected *entities.DiceRoll,
	kind entities.DiceKind,
	count, maxCount int,
) (*entities.DiceRoll, error) {
	if injected == nil {
		return RollDice(roller, kind, count)
	}

	if injected.Kind != kind {
		return nil, errors.InvalidInputf("expected %s dice, got %s", kind, injected.Kind).
			WithMeta("expected", kind.String()).
			WithMeta("actual", injected.Kind.String())
	}

	values, err := ValidateDiceValues(injected.Values, kind, 1, maxCount)
	if err != nil {
		return nil, err
	}

	return &entities.DiceRoll{Values: values, Kind: kind}, nil
}
