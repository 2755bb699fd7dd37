package peasantsgamble_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/devils-dozen/internal/engine/peasantsgamble"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	roller *testutils.ScriptedRoller
	engine *peasantsgamble.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.roller = testutils.NewScriptedRoller()

	var err error
	s.engine, err = peasantsgamble.New(&peasantsgamble.Config{Roller: s.roller})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) roll(values ...int) *entities.DiceRoll {
	r, err := entities.NewDiceRoll(entities.D6, values...)
	s.Require().NoError(err)
	return r
}

func (s *EngineTestSuite) TestNewRequiresRoller() {
	_, err := peasantsgamble.New(&peasantsgamble.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *EngineTestSuite) TestFirstRollUsesSixDice() {
	s.roller.Queue(1, 2, 2, 3, 4, 6)

	state, result, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), nil)
	s.Require().NoError(err)

	s.Assert().Equal([]int{1, 2, 2, 3, 4, 6}, state.ActiveDice)
	s.Assert().Equal(1, state.RollCount)
	s.Assert().Equal(100, result.Points)
	s.Assert().Equal([]int{0}, state.HeldIndices.Slice())
	s.Assert().Empty(state.ScoredIndices)
	s.Assert().Equal(0, state.TurnScore)
	s.Assert().False(state.IsHotDice)
	s.Assert().Equal(0, s.roller.Remaining())
}

func (s *EngineTestSuite) TestRollHoldRollAccumulates() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 5, 2, 3, 4, 6))
	s.Require().NoError(err)

	// a full straight; committing only the one is still allowed
	s.Assert().Equal([]int{0, 1, 2, 3, 4, 5}, state.HeldIndices.Slice())

	state, held, err := peasantsgamble.ProcessHold(state, []int{0})
	s.Require().NoError(err)
	s.Assert().Equal(100, held.Points)
	s.Assert().Equal(100, state.TurnScore)
	s.Assert().Equal([]int{0}, state.HeldIndices.Slice())
	s.Assert().Equal(5, peasantsgamble.NextRollCount(state))

	s.roller.Queue(5, 2, 3, 4, 6)
	state, result, err := s.engine.ProcessRoll(state, nil)
	s.Require().NoError(err)
	s.Assert().Equal(750, result.Points)
	s.Assert().Equal(100, state.TurnScore)
	s.Assert().Equal(2, state.RollCount)
	s.Assert().True(state.IsHotDice)

	state, _, err = peasantsgamble.ProcessHold(state, []int{0, 1, 2, 3, 4})
	s.Require().NoError(err)
	s.Assert().Equal(850, state.TurnScore)
	s.Assert().True(state.IsHotDice)
	s.Assert().Equal(peasantsgamble.NumDice, peasantsgamble.NextRollCount(state))
}

func (s *EngineTestSuite) TestBustZeroesTurn() {
	state := entities.TurnState{
		ActiveDice:    []int{1, 2, 3, 4, 6, 6},
		HeldIndices:   entities.NewIndexSet(0),
		ScoredIndices: entities.NewIndexSet(0),
		TurnScore:     450,
		RollCount:     2,
	}

	next, result, err := s.engine.ProcessRoll(state, s.roll(2, 3, 4, 6, 6))
	s.Require().NoError(err)
	s.Assert().True(result.IsBust)
	s.Assert().True(next.IsBust)
	s.Assert().Equal(0, next.TurnScore)
	s.Assert().Empty(next.HeldIndices)
	s.Assert().Equal(3, next.RollCount)

	// the input is untouched
	s.Assert().Equal(450, state.TurnScore)

	_, _, err = s.engine.ProcessRoll(next, nil)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *EngineTestSuite) TestRollWithoutHoldingIsIllegal() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 1, 2, 3, 4, 6))
	s.Require().NoError(err)

	_, _, err = s.engine.ProcessRoll(state, s.roll(1, 1, 1, 1))
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *EngineTestSuite) TestInjectedRollLimitedToUnheldDice() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 1, 1, 2, 3, 4))
	s.Require().NoError(err)

	state, _, err = peasantsgamble.ProcessHold(state, []int{0, 1, 2})
	s.Require().NoError(err)
	s.Require().Equal(3, peasantsgamble.NextRollCount(state))

	_, _, err = s.engine.ProcessRoll(state, s.roll(1, 1, 1, 1, 1, 1))
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))

	next, _, err := s.engine.ProcessRoll(state, s.roll(2, 3, 5))
	s.Require().NoError(err)
	s.Assert().Equal([]int{2, 3, 5}, next.ActiveDice)
}

func (s *EngineTestSuite) TestHoldRejectsJunkDice() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 2, 2, 3, 4, 6))
	s.Require().NoError(err)

	_, _, err = peasantsgamble.ProcessHold(state, []int{0, 1})
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))

	_, _, err = peasantsgamble.ProcessHold(state, []int{1})
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *EngineTestSuite) TestHoldRejectsDoubleCommit() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 5, 2, 2, 3, 6))
	s.Require().NoError(err)

	state, _, err = peasantsgamble.ProcessHold(state, []int{0})
	s.Require().NoError(err)

	_, _, err = peasantsgamble.ProcessHold(state, []int{0, 1})
	s.Assert().True(errors.IsIllegalOperation(err))

	state, result, err := peasantsgamble.ProcessHold(state, []int{1})
	s.Require().NoError(err)
	s.Assert().Equal(50, result.Points)
	s.Assert().Equal(150, state.TurnScore)
	s.Assert().Equal([]int{0, 1}, state.HeldIndices.Slice())
}

func (s *EngineTestSuite) TestHoldScoresSetsTogether() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(3, 3, 2, 3, 4, 6))
	s.Require().NoError(err)

	state, result, err := peasantsgamble.ProcessHold(state, []int{0, 1, 3})
	s.Require().NoError(err)
	s.Assert().Equal(300, result.Points)
	s.Assert().Equal([]int{0, 1, 3}, result.ScoringIndices.Slice())
	s.Assert().Equal(300, state.TurnScore)
	s.Assert().False(state.IsHotDice)
	s.Assert().Equal(3, peasantsgamble.NextRollCount(state))
}

func (s *EngineTestSuite) TestHoldValidatesInput() {
	state, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), s.roll(1, 5, 5))
	s.Require().NoError(err)

	_, _, err = peasantsgamble.ProcessHold(state, []int{3})
	s.Assert().True(errors.IsInvalidInput(err))

	_, _, err = peasantsgamble.ProcessHold(state, nil)
	s.Assert().True(errors.IsInvalidInput(err))

	_, _, err = peasantsgamble.ProcessHold(peasantsgamble.NewTurn(), []int{0})
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *EngineTestSuite) TestInjectedRollMustBeD6() {
	d20, err := entities.NewDiceRoll(entities.D20, 12, 1)
	s.Require().NoError(err)

	_, _, err = s.engine.ProcessRoll(peasantsgamble.NewTurn(), d20)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *EngineTestSuite) TestRollerErrorIsWrapped() {
	_, _, err := s.engine.ProcessRoll(peasantsgamble.NewTurn(), nil)
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
}

func (s *EngineTestSuite) TestProcessRollIsDeterministic() {
	state := peasantsgamble.NewTurn()
	first, firstResult, err := s.engine.ProcessRoll(state, s.roll(1, 1, 1, 5, 2, 2))
	s.Require().NoError(err)
	second, secondResult, err := s.engine.ProcessRoll(state, s.roll(1, 1, 1, 5, 2, 2))
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
	s.Assert().Equal(firstResult, secondResult)
}
