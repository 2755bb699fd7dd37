package alchemistsascent

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// CalculateScoreTier1 scores a RED roll in three passes: runs of three or
// more consecutive faces, then pairs and sets, then a lone 1 or 5. A die
// consumed by one pass is invisible to the next. Busts on zero points.
func CalculateScoreTier1(values []int) (entities.ScoringResult, error) {
	dice, err := engine.ValidateDiceValues(values, entities.D20, 0, TierRedDice)
	if err != nil {
		return entities.ScoringResult{}, err
	}
	return scoreTier1(dice), nil
}

// CalculateScoreTier2 is tier 1 scoring with every line multiplied by five.
// A GREEN roll never busts.
func CalculateScoreTier2(values []int) (entities.ScoringResult, error) {
	dice, err := engine.ValidateDiceValues(values, entities.D20, 0, TierRedDice)
	if err != nil {
		return entities.ScoringResult{}, err
	}
	return scoreTier2(dice), nil
}

// CalculateScore scores values under tier. BLUE has no pool scoring and is
// rejected; use CalculateScoreTier3.
func CalculateScore(values []int, tier entities.Tier) (entities.ScoringResult, error) {
	switch tier {
	case entities.TierRed:
		return CalculateScoreTier1(values)
	case entities.TierGreen:
		return CalculateScoreTier2(values)
	case entities.TierBlue:
		return entities.ScoringResult{}, errors.IllegalOperation(
			"tier BLUE scoring requires CalculateScoreTier3")
	default:
		return entities.ScoringResult{}, errors.InvalidInputf("unknown tier: %d", int(tier))
	}
}

// Tier3Result is the effect of a single BLUE die on the persisted totals
type Tier3Result struct {
	DieValue      int                       `json:"die_value"`
	Delta         int                       `json:"delta"`
	IsReset       bool                      `json:"is_reset"`
	IsKingmaker   bool                      `json:"is_kingmaker"`
	BeneficiaryID string                    `json:"beneficiary_id,omitempty"`
	Breakdown     entities.ScoringBreakdown `json:"breakdown"`
}

// CalculateScoreTier3 resolves a BLUE die. A 1 wipes the roller's total, a
// 20 gives KingmakerPoints to lastPlaceID (if any) and nothing to the
// roller, anything else adds its face.
func CalculateScoreTier3(value, currentScore int, lastPlaceID string) (Tier3Result, error) {
	if _, err := engine.ValidateDiceValues([]int{value}, entities.D20, 1, 1); err != nil {
		return Tier3Result{}, err
	}
	if _, err := engine.ValidateScore(currentScore, false); err != nil {
		return Tier3Result{}, err
	}

	switch value {
	case ResetFace:
		return Tier3Result{
			DieValue: value,
			Delta:    -currentScore,
			IsReset:  true,
			Breakdown: entities.ScoringBreakdown{
				Category:    entities.CategoryReset,
				DiceValues:  []int{value},
				Points:      -currentScore,
				Description: "Reset to 0",
			},
		}, nil
	case KingmakerFace:
		description := "Kingmaker (no one to crown)"
		if lastPlaceID != "" {
			description = fmt.Sprintf("Kingmaker (+%d to last place)", KingmakerPoints)
		}
		return Tier3Result{
			DieValue:      value,
			IsKingmaker:   true,
			BeneficiaryID: lastPlaceID,
			Breakdown: entities.ScoringBreakdown{
				Category:    entities.CategoryKingmaker,
				DiceValues:  []int{value},
				Description: description,
			},
		}, nil
	default:
		return Tier3Result{
			DieValue: value,
			Delta:    value,
			Breakdown: entities.ScoringBreakdown{
				Category:    entities.CategoryFaceValue,
				DiceValues:  []int{value},
				Points:      value,
				Description: fmt.Sprintf("Rolled %d", value),
			},
		}, nil
	}
}

func scoreTier1(values []int) entities.ScoringResult {
	if len(values) == 0 {
		return entities.BustResult()
	}

	pool := engine.NewPool(values)
	breakdown := make([]entities.ScoringBreakdown, 0, 4)
	breakdown = append(breakdown, scoreSequences(pool)...)
	breakdown = append(breakdown, scoreSets(pool)...)
	breakdown = append(breakdown, scoreSingles(pool)...)

	result := entities.NewScoringResult(breakdown, pool.Consumed())
	result.IsBust = result.Points == 0
	return result
}

func scoreTier2(values []int) entities.ScoringResult {
	base := scoreTier1(values)

	breakdown := make([]entities.ScoringBreakdown, 0, len(base.Breakdown))
	for _, line := range base.Breakdown {
		breakdown = append(breakdown, entities.ScoringBreakdown{
			Category:    line.Category,
			DiceValues:  line.DiceValues,
			Points:      line.Points * TierGreenMultiplier,
			Description: fmt.Sprintf("%s (×%d)", line.Description, TierGreenMultiplier),
		})
	}

	result := entities.NewScoringResult(breakdown, base.ScoringIndices)
	result.IsBust = false
	return result
}

// maximal runs over the distinct faces; each run takes one die per face
func scoreSequences(pool *engine.Pool) []entities.ScoringBreakdown {
	var lines []entities.ScoringBreakdown

	faces := pool.Faces()
	for i := 0; i < len(faces); {
		j := i + 1
		for j < len(faces) && faces[j] == faces[j-1]+1 {
			j++
		}

		run := faces[i:j]
		if len(run) >= 3 {
			pool.TakeEach(run...)
			lines = append(lines, entities.ScoringBreakdown{
				Category:    entities.CategorySequence,
				DiceValues:  entities.CopyInts(run),
				Points:      10 * (len(run) - 2),
				Description: fmt.Sprintf("Sequence %d-%d", run[0], run[len(run)-1]),
			})
		}
		i = j
	}

	return lines
}

func scoreSets(pool *engine.Pool) []entities.ScoringBreakdown {
	type group struct{ face, count int }

	var groups []group
	for _, face := range pool.Faces() {
		if n := pool.Count(face); n >= 2 {
			groups = append(groups, group{face: face, count: n})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	lines := make([]entities.ScoringBreakdown, 0, len(groups))
	for _, g := range groups {
		pool.Take(g.face, g.count)

		if g.count == 2 {
			lines = append(lines, entities.ScoringBreakdown{
				Category:    entities.CategoryPair,
				DiceValues:  []int{g.face, g.face},
				Points:      pairPoints(g.face),
				Description: fmt.Sprintf("Pair of %ds", g.face),
			})
			continue
		}

		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.CategorySet,
			DiceValues:  engine.Repeat(g.face, g.count),
			Points:      setPoints(g.face, g.count),
			Description: fmt.Sprintf("%d× %ds", g.count, g.face),
		})
	}
	return lines
}

// 1s and 5s double their pair value per extra die; other faces sum
func setPoints(face, count int) int {
	switch face {
	case 1, 5:
		return pairPoints(face) << (count - 2)
	default:
		return face * count
	}
}

func pairPoints(face int) int {
	switch face {
	case 1:
		return 10
	case 5:
		return 20
	default:
		return face
	}
}

func scoreSingles(pool *engine.Pool) []entities.ScoringBreakdown {
	var lines []entities.ScoringBreakdown

	if pool.Count(1) == 1 {
		pool.Take(1, 1)
		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.CategorySingleOne,
			DiceValues:  []int{1},
			Points:      1,
			Description: "Single 1",
		})
	}
	if pool.Count(5) == 1 {
		pool.Take(5, 1)
		lines = append(lines, entities.ScoringBreakdown{
			Category:    entities.CategorySingleFive,
			DiceValues:  []int{5},
			Points:      5,
			Description: "Single 5",
		})
	}

	return lines
}
