package entities

// ScoringCategory tags a breakdown line
type ScoringCategory string

// Scoring categories across all modes
const (
	CategorySingleOne    ScoringCategory = "single_one"
	CategorySingleFive   ScoringCategory = "single_five"
	CategoryThreeOfAKind ScoringCategory = "three_of_a_kind"
	CategoryFourOfAKind  ScoringCategory = "four_of_a_kind"
	CategoryFiveOfAKind  ScoringCategory = "five_of_a_kind"
	CategorySixOfAKind   ScoringCategory = "six_of_a_kind"
	CategoryLowStraight  ScoringCategory = "low_straight"
	CategoryHighStraight ScoringCategory = "high_straight"
	CategoryFullStraight ScoringCategory = "full_straight"

	// D20 ascent
	CategorySequence  ScoringCategory = "sequence"
	CategorySet       ScoringCategory = "set"
	CategoryPair      ScoringCategory = "pair"
	CategoryTierBonus ScoringCategory = "tier_bonus"
	CategoryReset     ScoringCategory = "reset"
	CategoryKingmaker ScoringCategory = "kingmaker"

	CategoryFaceValue      ScoringCategory = "face_value"
	CategoryColumn         ScoringCategory = "column"
	CategoryEarthlings     ScoringCategory = "earthlings"
	CategoryDiversityBonus ScoringCategory = "diversity_bonus"
)

// OfAKindCategory returns the N-of-a-kind category for count dice, or ""
// when count is outside 3-6.
func OfAKindCategory(count int) ScoringCategory {
	switch count {
	case 3:
		return CategoryThreeOfAKind
	case 4:
		return CategoryFourOfAKind
	case 5:
		return CategoryFiveOfAKind
	case 6:
		return CategorySixOfAKind
	default:
		return ""
	}
}

// ScoringBreakdown is one line of a scored roll
type ScoringBreakdown struct {
	Category    ScoringCategory `json:"category"`
	DiceValues  []int           `json:"dice_values"`
	Points      int             `json:"points"`
	Description string          `json:"description"`
}

// ScoringResult is the full evaluation of a roll.
// Points always equals the sum of the breakdown points.
type ScoringResult struct {
	Points         int                `json:"points"`
	Breakdown      []ScoringBreakdown `json:"breakdown"`
	ScoringIndices IndexSet           `json:"scoring_indices"`
	IsBust         bool               `json:"is_bust"`
}

// NewScoringResult totals breakdown into a result. Bust is left to the
// caller since each mode defines it differently.
func NewScoringResult(breakdown []ScoringBreakdown, indices IndexSet) ScoringResult {
	total := 0
	for _, b := range breakdown {
		total += b.Points
	}
	if breakdown == nil {
		breakdown = []ScoringBreakdown{}
	}
	if indices == nil {
		indices = IndexSet{}
	}
	return ScoringResult{
		Points:         total,
		Breakdown:      breakdown,
		ScoringIndices: indices,
	}
}

// BustResult is the zero-point result for a roll that scored nothing
func BustResult() ScoringResult {
	return ScoringResult{
		Breakdown:      []ScoringBreakdown{},
		ScoringIndices: IndexSet{},
		IsBust:         true,
	}
}
