package entities

// FaceType is what an Alien Invasion die face represents
type FaceType string

// Alien Invasion face types
const (
	FaceHuman    FaceType = "human"
	FaceCow      FaceType = "cow"
	FaceChicken  FaceType = "chicken"
	FaceDeathRay FaceType = "death_ray"
	FaceTank     FaceType = "tank"
)

// IsEarthling reports whether f is one of the three abductable types
func (f FaceType) IsEarthling() bool {
	return f == FaceHuman || f == FaceCow || f == FaceChicken
}

// AlienInvasionTurnState accumulates selections across every roll of a turn
type AlienInvasionTurnState struct {
	ActiveDice      []int    `json:"active_dice"`
	HeldIndices     IndexSet `json:"held_indices"`
	TanksCount      int      `json:"tanks_count"`
	DeathRaysCount  int      `json:"death_rays_count"`
	EarthlingsCount int      `json:"earthlings_count"`
	// SelectedTypes has one entry per abducted die, in selection order
	SelectedTypes []FaceType `json:"selected_types"`
	TurnScore     int        `json:"turn_score"`
	RollCount     int        `json:"roll_count"`
}

// NewAlienInvasionTurnState returns the state at the start of a turn
func NewAlienInvasionTurnState() AlienInvasionTurnState {
	return AlienInvasionTurnState{
		ActiveDice:    []int{},
		HeldIndices:   IndexSet{},
		SelectedTypes: []FaceType{},
	}
}

// Clone returns a deep copy
func (s AlienInvasionTurnState) Clone() AlienInvasionTurnState {
	out := s
	out.ActiveDice = CopyInts(s.ActiveDice)
	out.HeldIndices = IndexSet(CopyInts(s.HeldIndices))
	out.SelectedTypes = make([]FaceType, len(s.SelectedTypes))
	copy(out.SelectedTypes, s.SelectedTypes)
	return out
}

// HasSelected reports whether face was abducted earlier this turn
func (s AlienInvasionTurnState) HasSelected(face FaceType) bool {
	for _, t := range s.SelectedTypes {
		if t == face {
			return true
		}
	}
	return false
}

// DistinctEarthlings counts the distinct earthling types selected
func (s AlienInvasionTurnState) DistinctEarthlings() int {
	seen := make(map[FaceType]struct{}, 3)
	for _, t := range s.SelectedTypes {
		seen[t] = struct{}{}
	}
	return len(seen)
}
