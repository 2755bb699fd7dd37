package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) TestValidateDiceValues() {
	testCases := []struct {
		name     string
		values   []int
		kind     entities.DiceKind
		min, max int
		meta     map[string]any
	}{
		{
			name: "too few", values: []int{1}, kind: entities.D6, min: 2, max: 6,
			meta: map[string]any{"expected": ">=2", "actual": 1},
		},
		{
			name: "too many", values: []int{1, 2, 3}, kind: entities.D6, min: 1, max: 2,
			meta: map[string]any{"expected": "<=2", "actual": 3},
		},
		{
			name: "face too high", values: []int{20, 21}, kind: entities.D20, min: 1, max: 8,
			meta: map[string]any{"index": 1, "expected": "1-20", "actual": 21},
		},
		{
			name: "zero face", values: []int{0}, kind: entities.D6, min: 1, max: 6,
			meta: map[string]any{"index": 0, "expected": "1-6", "actual": 0},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := engine.ValidateDiceValues(tc.values, tc.kind, tc.min, tc.max)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidInput(err))
			meta := errors.GetMeta(err)
			for k, v := range tc.meta {
				s.Assert().Equal(v, meta[k], k)
			}
		})
	}

	values := []int{2, 3}
	out, err := engine.ValidateDiceValues(values, entities.D6, 0, 0)
	s.Require().NoError(err)
	out[0] = 6
	s.Assert().Equal(2, values[0])
}

func (s *EngineTestSuite) TestValidateHeldIndices() {
	set, err := engine.ValidateHeldIndices([]int{3, 0, 3}, 6)
	s.Require().NoError(err)
	s.Assert().Equal([]int{0, 3}, set.Slice())

	_, err = engine.ValidateHeldIndices([]int{6}, 6)
	s.Require().Error(err)
	s.Assert().Equal("0-5", errors.GetMeta(err)["expected"])

	_, err = engine.ValidateHeldIndices([]int{-1}, 6)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *EngineTestSuite) TestValidateScore() {
	_, err := engine.ValidateScore(-5, false)
	s.Assert().True(errors.IsInvalidInput(err))

	score, err := engine.ValidateScore(-5, true)
	s.Require().NoError(err)
	s.Assert().Equal(-5, score)
}

func (s *EngineTestSuite) TestValidatePlayerCount() {
	for _, n := range []int{2, 3, 4} {
		_, err := engine.ValidatePlayerCount(n)
		s.Assert().NoError(err)
	}
	for _, n := range []int{0, 1, 5} {
		_, err := engine.ValidatePlayerCount(n)
		s.Assert().True(errors.IsInvalidInput(err), "count %d", n)
	}
}

func (s *EngineTestSuite) TestValidateTargetScore() {
	_, err := engine.ValidateTargetScore(0, nil)
	s.Assert().True(errors.IsInvalidInput(err))

	score, err := engine.ValidateTargetScore(123, nil)
	s.Require().NoError(err)
	s.Assert().Equal(123, score)

	_, err = engine.ValidateTargetScore(4000, []int{3000, 5000})
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *EngineTestSuite) TestGameRules() {
	testCases := []struct {
		name     string
		mode     entities.GameMode
		target   int
		expected int
		players  []int
		rejected []int
	}{
		{name: "peasants gamble", mode: entities.GameModePeasantsGamble, target: 0, expected: 5000,
			players: []int{2, 4}, rejected: []int{1, 5}},
		{name: "alchemists ascent", mode: entities.GameModeAlchemistsAscent, target: 250, expected: 250,
			players: []int{2, 4}, rejected: []int{5}},
		{name: "knucklebones", mode: entities.GameModeKnucklebones, target: 0, expected: 0,
			players: []int{2}, rejected: []int{3}},
		{name: "alien invasion", mode: entities.GameModeAlienInvasion, target: 75, expected: 75,
			players: []int{3}, rejected: []int{6}},
		{name: "pig", mode: entities.GameModePig, target: 50, expected: 50,
			players: []int{2, 10}, rejected: []int{11}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			target, err := engine.ValidateGameTarget(tc.mode, tc.target)
			s.Require().NoError(err)
			s.Assert().Equal(tc.expected, target)

			for _, n := range tc.players {
				_, err := engine.ValidateGamePlayers(tc.mode, n)
				s.Assert().NoError(err, "players %d", n)
			}
			for _, n := range tc.rejected {
				_, err := engine.ValidateGamePlayers(tc.mode, n)
				s.Assert().True(errors.IsInvalidInput(err), "players %d", n)
			}
		})
	}

	_, err := engine.ValidateGameTarget(entities.GameModePeasantsGamble, 4000)
	s.Assert().True(errors.IsInvalidInput(err))

	_, err = engine.GameConfigFor("yahtzee")
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *EngineTestSuite) TestGameConfigIsCopied() {
	cfg, err := engine.GameConfigFor(entities.GameModePig)
	s.Require().NoError(err)
	cfg.TargetScores[0] = 1

	again, err := engine.GameConfigFor(entities.GameModePig)
	s.Require().NoError(err)
	s.Assert().Equal([]int{50, 100, 250}, again.TargetScores)
}

func (s *EngineTestSuite) TestRollDice() {
	roller := testutils.NewScriptedRoller(4, 20, 1)

	roll, err := engine.RollDice(roller, entities.D20, 3)
	s.Require().NoError(err)
	s.Assert().Equal([]int{4, 20, 1}, roll.Values)
	s.Assert().Equal(entities.D20, roll.Kind)

	_, err = engine.RollDice(roller, entities.D6, 0)
	s.Assert().True(errors.IsInvalidInput(err))

	_, err = engine.RollDice(nil, entities.D6, 1)
	s.Assert().True(errors.IsInternal(err))

	_, err = engine.RollDice(roller, entities.D6, 1)
	s.Assert().True(errors.IsInternal(err), "exhausted roller")
}

func (s *EngineTestSuite) TestResolveRollPrefersInjected() {
	roller := testutils.NewScriptedRoller()
	injected, err := entities.NewDiceRoll(entities.D6, 5, 5)
	s.Require().NoError(err)

	roll, err := engine.ResolveRoll(roller, injected, entities.D6, 6, 6)
	s.Require().NoError(err)
	s.Assert().Equal([]int{5, 5}, roll.Values)
	s.Assert().Equal(0, roller.Calls())

	_, err = engine.ResolveRoll(roller, injected, entities.D6, 1, 1)
	s.Assert().True(errors.IsInvalidInput(err), "more dice than allowed")

	_, err = engine.ResolveRoll(roller, injected, entities.D20, 1, 8)
	s.Assert().True(errors.IsInvalidInput(err), "wrong kind")

	_, err = engine.ResolveRoll(roller, &entities.DiceRoll{Kind: entities.D6}, entities.D6, 1, 6)
	s.Assert().True(errors.IsInvalidInput(err), "empty roll")
}

func (s *EngineTestSuite) TestPool() {
	pool := engine.NewPool([]int{5, 1, 5, 5, 2})

	s.Assert().Equal(3, pool.Count(5))
	s.Assert().Equal([]int{0, 2}, pool.Take(5, 2))
	s.Assert().Equal(1, pool.Count(5))
	s.Assert().Equal([]int{1, 4}, pool.TakeEach(1, 2, 6))
	s.Assert().False(pool.Has(1))
	s.Assert().Equal([]int{5}, pool.Faces())
	s.Assert().Equal([]int{0, 1, 2, 4}, pool.Consumed().Slice())

	s.Assert().Equal([]int{3, 3, 3}, engine.Repeat(3, 3))
	s.Assert().Equal([]int{5, 2}, engine.Pick([]int{5, 1, 5, 5, 2}, entities.NewIndexSet(4, 0)))
}
