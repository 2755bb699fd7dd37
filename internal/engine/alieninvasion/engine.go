// Package alieninvasion implements the thirteen-dice set-collection mode.
//
// Tanks lock themselves as they are rolled. After every roll the player
// abducts one group of earthlings or collects death rays, then rolls the
// rest again or banks. The turn busts when tanks outnumber death rays.
package alieninvasion

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

const (
	// NumDice is the number of dice thrown on the first roll of a turn
	NumDice = 13
	// DiversityBonus is awarded for abducting all three earthling types
	DiversityBonus = 3
	// EarthlingTypes is how many distinct earthlings earn the bonus
	EarthlingTypes = 3
)

var faceMapping = map[int]entities.FaceType{
	1: entities.FaceHuman,
	2: entities.FaceCow,
	3: entities.FaceChicken,
	4: entities.FaceDeathRay,
	5: entities.FaceDeathRay,
	6: entities.FaceTank,
}

// selectable lists the face types a player may choose, in display order
var selectable = []entities.FaceType{
	entities.FaceHuman,
	entities.FaceCow,
	entities.FaceChicken,
	entities.FaceDeathRay,
}

// FinalScore is the banked outcome of a turn
type FinalScore struct {
	EarthlingsPoints int                    `json:"earthlings_points"`
	DiversityBonus   int                    `json:"diversity_bonus"`
	TotalPoints      int                    `json:"total_points"`
	IsBust           bool                   `json:"is_bust"`
	IsSafeToBank     bool                   `json:"is_safe_to_bank"`
	Result           entities.ScoringResult `json:"result"`
}

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

// Engine is the Alien Invasion rule set
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
func NewTurn() entities.AlienInvasionTurnState {
	return entities.NewAlienInvasionTurnState()
}

// FaceOf maps a D6 value to its face type. Out of range values map to "".
func FaceOf(value int) entities.FaceType {
	return faceMapping[value]
}

// ClassifyDice groups die positions by face type. Every type is present in
// the result, possibly with no indices.
func ClassifyDice(values []int) (map[entities.FaceType][]int, error) {
	if _, err := engine.ValidateDiceValues(values, entities.D6, 0, 0); err != nil {
		return nil, err
	}

	out := map[entities.FaceType][]int{
		entities.FaceHuman:    {},
		entities.FaceCow:      {},
		entities.FaceChicken:  {},
		entities.FaceDeathRay: {},
		entities.FaceTank:     {},
	}
	for i, v := range values {
		face := faceMapping[v]
		out[face] = append(out[face], i)
	}
	return out, nil
}

// NextRollCount is thirteen on the first roll, otherwise the dice not held
func NextRollCount(state entities.AlienInvasionTurnState) int {
	if state.RollCount == 0 {
		return NumDice
	}
	return len(state.ActiveDice) - state.HeldIndices.Len()
}

// ProcessRoll rolls the unheld dice, or uses roll when it is given. The new
// roll replaces the active dice and every tank in it is held and counted.
// After the first roll a group must be selected before rolling again.
func (e *Engine) ProcessRoll(
	state entities.AlienInvasionTurnState,
	roll *entities.DiceRoll,
) (entities.AlienInvasionTurnState, error) {
	if state.RollCount > 0 {
		if !selectedSinceRoll(state) {
			return state, errors.IllegalOperation("select a group of dice before rolling again")
		}
		if NextRollCount(state) == 0 {
			return state, errors.IllegalOperation("no dice left to roll")
		}
	}

	count := NextRollCount(state)
	current, err := engine.ResolveRoll(e.roller, roll, entities.D6, count, count)
	if err != nil {
		return state, err
	}

	tanks := make([]int, 0, current.Len())
	for i, v := range current.Values {
		if faceMapping[v] == entities.FaceTank {
			tanks = append(tanks, i)
		}
	}

	next := state.Clone()
	next.ActiveDice = current.Dice()
	next.HeldIndices = entities.NewIndexSet(tanks...)
	next.TanksCount += len(tanks)
	next.RollCount++

	return next, nil
}

// GetAvailableSelections lists the unheld indices of every face type the
// player may still select. Tanks are never selectable and an earthling type
// is excluded for the rest of the turn once it has been abducted.
func GetAvailableSelections(state entities.AlienInvasionTurnState) map[entities.FaceType][]int {
	available := make(map[entities.FaceType][]int)
	for i, v := range state.ActiveDice {
		if state.HeldIndices.Contains(i) {
			continue
		}
		face := faceMapping[v]
		if face == entities.FaceTank || face == "" {
			continue
		}
		if face.IsEarthling() && state.HasSelected(face) {
			continue
		}
		available[face] = append(available[face], i)
	}
	return available
}

// SelectableFaces returns the available face types in display order
func SelectableFaces(state entities.AlienInvasionTurnState) []entities.FaceType {
	available := GetAvailableSelections(state)
	out := make([]entities.FaceType, 0, len(available))
	for _, face := range selectable {
		if _, ok := available[face]; ok {
			out = append(out, face)
		}
	}
	return out
}

// ProcessSelection holds indices as a group of face. Death rays add to the
// defense count; earthlings are abducted and lock their type for the turn.
func ProcessSelection(
	state entities.AlienInvasionTurnState,
	face entities.FaceType,
	indices []int,
) (entities.AlienInvasionTurnState, error) {
	switch {
	case face == entities.FaceTank:
		return state, errors.IllegalOperation("tanks are locked automatically and cannot be selected")
	case face != entities.FaceDeathRay && !face.IsEarthling():
		return state, errors.InvalidInputf("unknown face type %q", face).
			WithMeta("actual", string(face))
	case face.IsEarthling() && state.HasSelected(face):
		return state, errors.IllegalOperationf("%s already selected this turn", face)
	}
	if state.RollCount == 0 {
		return state, errors.IllegalOperation("roll before selecting dice")
	}
	if len(indices) == 0 {
		return state, errors.InvalidInput("at least one die must be selected")
	}

	selected, err := engine.ValidateHeldIndices(indices, len(state.ActiveDice))
	if err != nil {
		return state, err
	}
	if overlap := selected.Intersect(state.HeldIndices); overlap.Len() > 0 {
		return state, errors.IllegalOperationf("dice %v are already held", overlap.Slice())
	}
	for _, i := range selected {
		if actual := faceMapping[state.ActiveDice[i]]; actual != face {
			return state, errors.IllegalOperationf("die %d is a %s, not a %s", i, actual, face).
				WithMeta("index", i).
				WithMeta("expected", string(face)).
				WithMeta("actual", string(actual))
		}
	}

	next := state.Clone()
	next.HeldIndices = state.HeldIndices.Union(selected)
	if face == entities.FaceDeathRay {
		next.DeathRaysCount += selected.Len()
	} else {
		next.EarthlingsCount += selected.Len()
		for range selected {
			next.SelectedTypes = append(next.SelectedTypes, face)
		}
	}
	next.TurnScore = potentialScore(next)

	return next, nil
}

// CalculateFinalScore applies the bust rule: when tanks outnumber death rays
// the turn is worth nothing, however many earthlings were abducted.
func CalculateFinalScore(state entities.AlienInvasionTurnState) FinalScore {
	final := FinalScore{
		EarthlingsPoints: state.EarthlingsCount,
		DiversityBonus:   diversityBonus(state),
		IsBust:           state.TanksCount > state.DeathRaysCount,
		IsSafeToBank:     state.DeathRaysCount >= state.TanksCount,
	}

	if final.IsBust {
		final.Result = entities.BustResult()
		return final
	}

	final.TotalPoints = final.EarthlingsPoints + final.DiversityBonus
	final.Result = entities.NewScoringResult(breakdown(state, final), nil)
	return final
}

// TugOfWarRatio places the death ray and tank balance in [0, 1). Equal
// counts sit near the middle and no counts at all sit exactly on it.
func TugOfWarRatio(state entities.AlienInvasionTurnState) float64 {
	total := state.DeathRaysCount + state.TanksCount
	if total == 0 {
		return 0.5
	}
	return float64(state.DeathRaysCount) / float64(total+1)
}

// IsStuck reports a forced bust: the player has rolled, has nothing left to
// select and has not abducted a single earthling.
func IsStuck(state entities.AlienInvasionTurnState) bool {
	if state.RollCount == 0 {
		return false
	}
	return len(GetAvailableSelections(state)) == 0 && state.EarthlingsCount == 0
}

func selectedSinceRoll(state entities.AlienInvasionTurnState) bool {
	tanks := 0
	for _, v := range state.ActiveDice {
		if faceMapping[v] == entities.FaceTank {
			tanks++
		}
	}
	return state.HeldIndices.Len() > tanks
}

func diversityBonus(state entities.AlienInvasionTurnState) int {
	if state.DistinctEarthlings() == EarthlingTypes {
		return DiversityBonus
	}
	return 0
}

func potentialScore(state entities.AlienInvasionTurnState) int {
	return state.EarthlingsCount + diversityBonus(state)
}

func breakdown(state entities.AlienInvasionTurnState, final FinalScore) []entities.ScoringBreakdown {
	out := make([]entities.ScoringBreakdown, 0, 2)
	if final.EarthlingsPoints > 0 {
		values := make([]int, 0, state.EarthlingsCount)
		for _, face := range state.SelectedTypes {
			values = append(values, faceValue(face))
		}
		out = append(out, entities.ScoringBreakdown{
			Category:    entities.CategoryEarthlings,
			DiceValues:  values,
			Points:      final.EarthlingsPoints,
			Description: fmt.Sprintf("%d earthlings abducted", final.EarthlingsPoints),
		})
	}
	if final.DiversityBonus > 0 {
		out = append(out, entities.ScoringBreakdown{
			Category:    entities.CategoryDiversityBonus,
			DiceValues:  []int{1, 2, 3},
			Points:      final.DiversityBonus,
			Description: "All three earthling types",
		})
	}
	return out
}

func faceValue(face entities.FaceType) int {
	switch face {
	case entities.FaceHuman:
		return 1
	case entities.FaceCow:
		return 2
	case entities.FaceChicken:
		return 3
	}
	return 0
}
