package alchemistsascent

import (
	"sort"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// TargetScore wins the game
const TargetScore = 250

// Tier thresholds on the banked total
const (
	TierRedMax   = 100
	TierGreenMax = 200
)

// Dice per tier
const (
	TierRedDice   = 8
	TierGreenDice = 3
	TierBlueDice  = 1
)

// Tier rule constants
const (
	TierGreenMultiplier = 5
	ResetFace           = 1
	KingmakerFace       = 20
	KingmakerPoints     = 20
)

// TierForScore derives the tier from a banked total
func TierForScore(score int) entities.Tier {
	switch {
	case score <= TierRedMax:
		return entities.TierRed
	case score <= TierGreenMax:
		return entities.TierGreen
	default:
		return entities.TierBlue
	}
}

// DiceCountForTier returns how many dice a tier rolls
func DiceCountForTier(tier entities.Tier) int {
	switch tier {
	case entities.TierRed:
		return TierRedDice
	case entities.TierGreen:
		return TierGreenDice
	default:
		return TierBlueDice
	}
}

// Standing is one player's banked total
type Standing struct {
	PlayerID   string
	TotalScore int
}

// LastPlace returns the lowest-scoring player, the earliest listed on a tie.
// It returns "" when that player is the roller or standings is empty.
func LastPlace(rollerID string, standings []Standing) string {
	if len(standings) == 0 {
		return ""
	}

	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore < sorted[j].TotalScore
	})

	if sorted[0].PlayerID == rollerID {
		return ""
	}
	return sorted[0].PlayerID
}
