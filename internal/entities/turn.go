package entities

// Tier is the Alchemist's Ascent stage derived from a player's banked total
type Tier int

// Ascent tiers
const (
	TierRed   Tier = 1
	TierGreen Tier = 2
	TierBlue  Tier = 3
)

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierRed:
		return "RED"
	case TierGreen:
		return "GREEN"
	case TierBlue:
		return "BLUE"
	default:
		return "UNKNOWN"
	}
}

// TurnState is the in-progress turn for Peasant's Gamble and Alchemist's
// Ascent. Engines return a new value on every transition.
type TurnState struct {
	ActiveDice  []int    `json:"active_dice"`
	HeldIndices IndexSet `json:"held_indices"`
	// ScoredIndices are the held positions already added to TurnScore
	ScoredIndices IndexSet `json:"scored_indices"`
	TurnScore     int      `json:"turn_score"`
	RollCount     int      `json:"roll_count"`
	IsHotDice     bool     `json:"is_hot_dice"`
	IsBust        bool     `json:"is_bust"`
	Tier          Tier     `json:"tier,omitempty"`
	PreviousDice  []int    `json:"previous_dice,omitempty"`
}

// NewTurnState returns the state at the start of a turn
func NewTurnState(tier Tier) TurnState {
	return TurnState{
		ActiveDice:    []int{},
		HeldIndices:   IndexSet{},
		ScoredIndices: IndexSet{},
		Tier:          tier,
	}
}

// Clone returns a deep copy
func (s TurnState) Clone() TurnState {
	out := s
	out.ActiveDice = CopyInts(s.ActiveDice)
	out.HeldIndices = IndexSet(CopyInts(s.HeldIndices))
	out.ScoredIndices = IndexSet(CopyInts(s.ScoredIndices))
	out.PreviousDice = CopyInts(s.PreviousDice)
	return out
}

// UnheldCount is the number of active dice not yet held
func (s TurnState) UnheldCount() int {
	return len(s.ActiveDice) - len(s.HeldIndices)
}
