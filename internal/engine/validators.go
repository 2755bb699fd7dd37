package engine

import (
	"fmt"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// Player count bounds shared by the pool modes
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// ValidateDiceValues checks the count and every face of values against kind.
// maxCount <= 0 means no upper bound. Returns a copy of values.
func ValidateDiceValues(values []int, kind entities.DiceKind, minCount, maxCount int) ([]int, error) {
	count := len(values)
	if count < minCount {
		return nil, errors.InvalidInputf("at least %d dice required, got %d", minCount, count).
			WithMeta("expected", fmt.Sprintf(">=%d", minCount)).
			WithMeta("actual", count)
	}
	if maxCount > 0 && count > maxCount {
		return nil, errors.InvalidInputf("at most %d dice allowed, got %d", maxCount, count).
			WithMeta("expected", fmt.Sprintf("<=%d", maxCount)).
			WithMeta("actual", count)
	}

	for i, v := range values {
		if v < 1 || v > int(kind) {
			return nil, errors.InvalidInputf("die value at index %d is %d, must be between 1 and %d for %s",
				i, v, int(kind), kind).
				WithMeta("index", i).
				WithMeta("expected", fmt.Sprintf("1-%d", int(kind))).
				WithMeta("actual", v)
		}
	}

	return entities.CopyInts(values), nil
}

// ValidateHeldIndices checks every index against [0, diceCount) and returns
// them as a set.
func ValidateHeldIndices(indices []int, diceCount int) (entities.IndexSet, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= diceCount {
			return nil, errors.InvalidInputf("held index %d is out of range, must be between 0 and %d",
				idx, diceCount-1).
				WithMeta("index", idx).
				WithMeta("expected", fmt.Sprintf("0-%d", diceCount-1)).
				WithMeta("actual", idx)
		}
	}
	return entities.NewIndexSet(indices...), nil
}

// ValidateScore rejects negative scores unless allowNegative is set
func ValidateScore(score int, allowNegative bool) (int, error) {
	if !allowNegative && score < 0 {
		return 0, errors.InvalidInputf("score cannot be negative, got %d", score).
			WithMeta("expected", ">=0").
			WithMeta("actual", score)
	}
	return score, nil
}

// ValidatePlayerCount checks count against the default 2-4 seat range
func ValidatePlayerCount(count int) (int, error) {
	return validatePlayerRange(count, MinPlayers, MaxPlayers)
}

// ValidateTargetScore requires a positive score and, when allowed is
// non-empty, membership in allowed.
func ValidateTargetScore(score int, allowed []int) (int, error) {
	if score <= 0 {
		return 0, errors.InvalidInputf("target score must be positive, got %d", score).
			WithMeta("expected", ">0").
			WithMeta("actual", score)
	}
	if len(allowed) == 0 {
		return score, nil
	}
	for _, a := range allowed {
		if a == score {
			return score, nil
		}
	}
	return 0, errors.InvalidInputf("target score must be one of %v, got %d", allowed, score).
		WithMeta("expected", allowed).
		WithMeta("actual", score)
}

func validatePlayerRange(count, minPlayers, maxPlayers int) (int, error) {
	if count < minPlayers || count > maxPlayers {
		msg := fmt.Sprintf("player count must be %d-%d, got %d", minPlayers, maxPlayers, count)
		if minPlayers == maxPlayers {
			msg = fmt.Sprintf("exactly %d players required, got %d", minPlayers, count)
		}
		return 0, errors.InvalidInput(msg).
			WithMeta("expected", fmt.Sprintf("%d-%d", minPlayers, maxPlayers)).
			WithMeta("actual", count)
	}
	return count, nil
}
