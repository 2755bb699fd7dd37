package peasantsgamble

import (
	"fmt"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// Scoring values
const (
	SingleOnePoints    = 100
	SingleFivePoints   = 50
	ThreeOnesPoints    = 1000
	LowStraightPoints  = 500
	HighStraightPoints = 750
	FullStraightPoints = 1500
)

// CalculateScore scores up to six D6 values. Straights are checked first,
// then N-of-a-kind for faces 1-6, then leftover 1s and 5s; each die counts
// toward at most one line.
func CalculateScore(values []int) (entities.ScoringResult, error) {
	dice, err := engine.ValidateDiceValues(values, entities.D6, 0, NumDice)
	if err != nil {
		return entities.ScoringResult{}, err
	}
	return score(dice), nil
}

// IsBust reports whether values contain no scoring die
func IsBust(values []int) (bool, error) {
	result, err := CalculateScore(values)
	if err != nil {
		return false, err
	}
	return result.IsBust, nil
}

// IsHotDice reports whether every die in values scores
func IsHotDice(values []int) (bool, error) {
	result, err := CalculateScore(values)
	if err != nil {
		return false, err
	}
	return len(values) > 0 && result.ScoringIndices.Len() == len(values), nil
}

func score(values []int) entities.ScoringResult {
	if len(values) == 0 {
		return entities.BustResult()
	}

	pool := engine.NewPool(values)
	breakdown := make([]entities.ScoringBreakdown, 0, 3)

	if line, ok := scoreStraight(pool); ok {
		breakdown = append(breakdown, line)
	}
	breakdown = append(breakdown, scoreSets(pool)...)
	breakdown = append(breakdown, scoreSingles(pool)...)

	result := entities.NewScoringResult(breakdown, pool.Consumed())
	result.IsBust = result.ScoringIndices.Len() == 0
	return result
}

// straights are mutually exclusive; the full straight needs exactly six dice
func scoreStraight(pool *engine.Pool) (entities.ScoringBreakdown, bool) {
	if pool.Len() == NumDice && hasAll(pool, 1, 2, 3, 4, 5, 6) {
		pool.TakeEach(1, 2, 3, 4, 5, 6)
		return entities.ScoringBreakdown{
			Category:    entities.CategoryFullStraight,
			DiceValues:  []int{1, 2, 3, 4, 5, 6},
			Points:      FullStraightPoints,
			Description: "Full Straight (1-2-3-4-5-6)",
		}, true
	}

	if hasAll(pool, 2, 3, 4, 5, 6) {
		pool.TakeEach(2, 3, 4, 5, 6)
		return entities.ScoringBreakdown{
			Category:    entities.CategoryHighStraight,
			DiceValues:  []int{2, 3, 4, 5, 6},
			Points:      HighStraightPoints,
			Description: "High Straight (2-3-4-5-6)",
		}, true
	}

	if hasAll(pool, 1, 2, 3, 4, 5) {
		pool.TakeEach(1, 2, 3, 4, 5)
		return entities.ScoringBreakdown{
			Category:    entities.CategoryLowStraight,
			DiceValues:  []int{1, 2, 3, 4, 5},
			Points:      LowStraightPoints,
			Description: "Low Straight (1-2-3-4-5)",
		}, true
	}

	return entities.ScoringBreakdown{}, false
}

func scoreSets(pool *engine.Pool) []entities.ScoringBreakdown {
	var lines []entities.ScoringBreakdown
	for face := 1; face <= 6; face++ {
		count := pool.Count(face)
		if count < 3 {
			continue
		}

		points := face * 100
		if face == 1 {
			points = ThreeOnesPoints
		}
		for i := 3; i < count; i++ {
			points *= 2
		}

		pool.Take(face, count)
		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.OfAKindCategory(count),
			DiceValues:  engine.Repeat(face, count),
			Points:      points,
			Description: fmt.Sprintf("%dx %ds", count, face),
		})
	}
	return lines
}

func scoreSingles(pool *engine.Pool) []entities.ScoringBreakdown {
	var lines []entities.ScoringBreakdown

	if n := pool.Count(1); n > 0 {
		pool.Take(1, n)
		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.CategorySingleOne,
			DiceValues:  engine.Repeat(1, n),
			Points:      n * SingleOnePoints,
			Description: singlesDescription(n, 1),
		})
	}

	if n := pool.Count(5); n > 0 {
		pool.Take(5, n)
		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.CategorySingleFive,
			DiceValues:  engine.Repeat(5, n),
			Points:      n * SingleFivePoints,
			Description: singlesDescription(n, 5),
		})
	}

	return lines
}

func singlesDescription(n, face int) string {
	if n == 1 {
		return fmt.Sprintf("1x Single %d", face)
	}
	return fmt.Sprintf("%dx Single %ds", n, face)
}

func hasAll(pool *engine.Pool, faces ...int) bool {
	for _, f := range faces {
		if !pool.Has(f) {
			return false
		}
	}
	return true
}
