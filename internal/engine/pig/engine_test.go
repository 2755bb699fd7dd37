package pig_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/devils-dozen/internal/engine/pig"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	roller *testutils.ScriptedRoller
	engine *pig.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.roller = testutils.NewScriptedRoller()

	var err error
	s.engine, err = pig.New(&pig.Config{Roller: s.roller})
	s.Require().NoError(err)
}

func (s *EngineTestSuite) TestCalculateScore() {
	for face := 2; face <= 6; face++ {
		result, err := pig.CalculateScore([]int{face})
		s.Require().NoError(err)
		s.Assert().Equal(face, result.Points)
		s.Assert().False(result.IsBust)
		s.Assert().Equal([]int{0}, result.ScoringIndices.Slice())
		s.Require().Len(result.Breakdown, 1)
		s.Assert().Equal(entities.CategoryFaceValue, result.Breakdown[0].Category)
	}

	result, err := pig.CalculateScore([]int{6})
	s.Require().NoError(err)
	s.Assert().Equal("Rolled 6", result.Breakdown[0].Description)
}

func (s *EngineTestSuite) TestOneBusts() {
	result, err := pig.CalculateScore([]int{1})
	s.Require().NoError(err)
	s.Assert().True(result.IsBust)
	s.Assert().Equal(0, result.Points)
	s.Assert().Empty(result.Breakdown)
	s.Assert().True(pig.IsBust([]int{1}))
	s.Assert().False(pig.IsBust([]int{4}))
}

func (s *EngineTestSuite) TestCalculateScoreRejectsBadInput() {
	testCases := []struct {
		name   string
		values []int
	}{
		{name: "empty", values: []int{}},
		{name: "two dice", values: []int{2, 3}},
		{name: "out of range", values: []int{7}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := pig.CalculateScore(tc.values)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidInput(err))
		})
	}
}

func (s *EngineTestSuite) TestProcessRollAccumulates() {
	s.roller.Queue(4, 6)

	score, result, err := s.engine.ProcessRoll(0, nil)
	s.Require().NoError(err)
	s.Assert().Equal(4, score)
	s.Assert().Equal(4, result.Points)

	score, _, err = s.engine.ProcessRoll(score, nil)
	s.Require().NoError(err)
	s.Assert().Equal(10, score)
}

func (s *EngineTestSuite) TestProcessRollBustResets() {
	s.roller.Queue(1)

	score, result, err := s.engine.ProcessRoll(17, nil)
	s.Require().NoError(err)
	s.Assert().Equal(0, score)
	s.Assert().True(result.IsBust)
}

func (s *EngineTestSuite) TestProcessRollInjected() {
	roll, err := entities.NewDiceRoll(entities.D6, 3)
	s.Require().NoError(err)

	score, _, err := s.engine.ProcessRoll(5, roll)
	s.Require().NoError(err)
	s.Assert().Equal(8, score)
	s.Assert().Equal(0, s.roller.Calls())
}

func (s *EngineTestSuite) TestProcessRollErrors() {
	_, _, err := s.engine.ProcessRoll(-1, nil)
	s.Assert().True(errors.IsInvalidInput(err))

	_, _, err = s.engine.ProcessRoll(0, nil)
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err), "an empty roller surfaces as internal")
}
