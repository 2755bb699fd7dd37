package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/devils-dozen/internal/config"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/devils-dozen/internal/orchestrators/game/mock"
	"github.com/KirkDiggler/devils-dozen/internal/testutils"
	"github.com/KirkDiggler/devils-dozen/internal/testutils/builders"
)

type CommandTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	svc     *gamemock.MockService
	factory serviceFactory
	calls   int
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = gamemock.NewMockService(s.ctrl)
	s.calls = 0
	s.factory = func(_ *cobra.Command, _ *rootOptions) (game.Service, func(), error) {
		s.calls++
		return s.svc, func() {}, nil
	}
}

func (s *CommandTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CommandTestSuite) run(args ...string) (string, error) {
	cmd := newRootCmd(s.factory)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (s *CommandTestSuite) TestScorePeasantsGamble() {
	out, err := s.run("score", "peasants_gamble", "1", "5", "2", "3", "3", "6")

	s.Require().NoError(err)
	s.Assert().Contains(out, "Total: 150")
	s.Assert().Equal(0, s.calls, "scoring needs no service")
}

func (s *CommandTestSuite) TestScorePigBust() {
	out, err := s.run("score", "pig", "1")

	s.Require().NoError(err)
	s.Assert().Contains(out, "BUST")
}

func (s *CommandTestSuite) TestScoreKnucklebonesColumn() {
	out, err := s.run("score", "knucklebones", "4", "4", "2")

	s.Require().NoError(err)
	s.Assert().Contains(out, "Column score: 18")
}

func (s *CommandTestSuite) TestScoreAlienInvasionJSON() {
	out, err := s.run("score", "alien_invasion", "1", "2", "4", "6", "6", "--json")
	s.Require().NoError(err)

	var groups map[string][]int
	s.Require().NoError(json.Unmarshal([]byte(out), &groups))
	s.Assert().Equal([]int{0}, groups["human"])
	s.Assert().Equal([]int{1}, groups["cow"])
	s.Assert().Empty(groups["chicken"])
	s.Assert().Equal([]int{2}, groups["death_ray"])
	s.Assert().Equal([]int{3, 4}, groups["tank"])
}

func (s *CommandTestSuite) TestScoreAscentKingmaker() {
	out, err := s.run("score", "alchemists_ascent", "--tier", "3", "--current", "120", "--last-place", "p2", "20")

	s.Require().NoError(err)
	s.Assert().Contains(out, "kingmaker")
	s.Assert().Contains(out, "+20 to p2")
}

func (s *CommandTestSuite) TestScoreRejectsBadInput() {
	testCases := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"score", "yahtzee", "1"}},
		{"not a number", []string{"score", "pig", "six"}},
		{"face out of range", []string{"score", "peasants_gamble", "7"}},
		{"tier 3 with two dice", []string{"score", "alchemists_ascent", "--tier", "3", "4", "5"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.run(tc.args...)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidInput(err), "got %v", err)
		})
	}
}

func (s *CommandTestSuite) TestLobbyCreate() {
	lobby := builders.NewLobbyBuilder().
		WithMode(entities.GameModePig, 50).
		WithStatus(entities.LobbyStatusWaiting).
		Build()
	host := testutils.CreateTestPlayers(lobby.ID, "Ada")[0]

	s.svc.EXPECT().
		CreateLobby(gomock.Any(), &game.CreateLobbyInput{
			Mode:        entities.GameModePig,
			TargetScore: 50,
			HostName:    "Ada",
		}).
		Return(&game.CreateLobbyOutput{Lobby: lobby, Host: host}, nil)

	out, err := s.run("lobby", "create", "--mode", "pig", "--target", "50", "--name", "Ada")

	s.Require().NoError(err)
	s.Assert().Contains(out, "share code ABC234")
	s.Assert().Contains(out, "Host player ID: player-1")
}

func (s *CommandTestSuite) TestLobbyCreateRequiresName() {
	_, err := s.run("lobby", "create", "--mode", "pig")

	s.Require().Error(err)
	s.Assert().Equal(0, s.calls)
}

func (s *CommandTestSuite) TestLobbyShowMarksCurrentPlayer() {
	lobby := builders.NewLobbyBuilder().WithTurnIndex(1).Build()
	players := testutils.CreateTestPlayers(lobby.ID, "Ada", "Bob")
	players[0].TotalScore = 300
	players[1].TotalScore = 450

	s.svc.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{LobbyID: lobby.ID}).
		Return(&game.GetGameOutput{Lobby: lobby, Players: players, CurrentPlayer: players[1]}, nil)

	out, err := s.run("lobby", "show", lobby.ID)

	s.Require().NoError(err)
	s.Assert().Contains(out, "Lobby lobby-test-123 (code ABC234)")
	s.Assert().Regexp(`\* Bob\s+450  player-2`, out)
}

func (s *CommandTestSuite) TestRollWithFacesUsesD20ForAscent() {
	lobby := builders.NewLobbyBuilder().WithMode(entities.GameModeAlchemistsAscent, 250).Build()
	players := testutils.CreateTestPlayers(lobby.ID, "Ada", "Bob")

	s.svc.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{LobbyID: lobby.ID}).
		Return(&game.GetGameOutput{Lobby: lobby, Players: players}, nil)

	var captured *game.RollInput
	s.svc.EXPECT().
		Roll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input *game.RollInput) (*game.RollOutput, error) {
			captured = input
			result := entities.BustResult()
			return &game.RollOutput{TurnResult: game.TurnResult{
				Lobby:   lobby,
				Players: players,
				Result:  &result,
				IsBust:  true,
			}}, nil
		})

	out, err := s.run("roll", lobby.ID, "player-1", "12", "17", "8")

	s.Require().NoError(err)
	s.Require().NotNil(captured)
	s.Require().NotNil(captured.Roll)
	s.Assert().Equal(entities.D20, captured.Roll.Kind)
	s.Assert().Equal([]int{12, 17, 8}, captured.Roll.Values)
	s.Assert().Contains(out, "BUST")
}

func (s *CommandTestSuite) TestSelectPassesFaceAndIndices() {
	s.svc.EXPECT().
		Select(gomock.Any(), &game.SelectInput{
			LobbyID:  "lobby-1",
			PlayerID: "player-1",
			Face:     entities.FaceDeathRay,
			Indices:  []int{4, 5},
		}).
		Return(&game.SelectOutput{TugOfWar: 0.5, IsSafeToBank: true}, nil)

	out, err := s.run("select", "lobby-1", "player-1", "death_ray", "4", "5")

	s.Require().NoError(err)
	s.Assert().Contains(out, "Safe to bank: true")
}

func (s *CommandTestSuite) TestRerollValueFlag() {
	s.svc.EXPECT().
		Reroll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input *game.RerollInput) (*game.RerollOutput, error) {
			s.Assert().Equal(2, input.Index)
			s.Require().NotNil(input.Value)
			s.Assert().Equal(9, *input.Value)
			return &game.RerollOutput{}, nil
		})

	_, err := s.run("reroll", "lobby-1", "player-1", "2", "--value", "9")

	s.Require().NoError(err)
}

func (s *CommandTestSuite) TestServiceErrorsSurface() {
	s.svc.EXPECT().
		Bank(gomock.Any(), &game.BankInput{LobbyID: "lobby-1", PlayerID: "player-2"}).
		Return(nil, errors.IllegalOperation("it is not your turn"))

	_, err := s.run("bank", "lobby-1", "player-2")

	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *CommandTestSuite) TestFlagsOverrideEnvironment() {
	s.T().Setenv("DEVILS_DOZEN_REDIS_ADDR", "redis.internal:6379")
	s.T().Setenv("DEVILS_DOZEN_LOG_LEVEL", "warn")

	var captured *config.Config
	s.factory = func(cmd *cobra.Command, opts *rootOptions) (game.Service, func(), error) {
		cfg, err := loadConfig(cmd, opts)
		if err != nil {
			return nil, nil, err
		}
		captured = cfg
		return s.svc, func() {}, nil
	}

	lobby := builders.NewLobbyBuilder().Build()
	s.svc.EXPECT().
		GetGame(gomock.Any(), gomock.Any()).
		Return(&game.GetGameOutput{Lobby: lobby}, nil)

	_, err := s.run("lobby", "show", lobby.ID, "--redis-addr", "localhost:6380", "--redis-db", "2")

	s.Require().NoError(err)
	s.Require().NotNil(captured)
	s.Assert().Equal("localhost:6380", captured.RedisAddr)
	s.Assert().Equal(2, captured.RedisDB)
	s.Assert().Equal("warn", captured.LogLevel)
}

func (s *CommandTestSuite) TestInvalidFlagOverride() {
	s.factory = func(cmd *cobra.Command, opts *rootOptions) (game.Service, func(), error) {
		_, err := loadConfig(cmd, opts)
		return nil, nil, err
	}

	_, err := s.run("lobby", "show", "lobby-1", "--log-level", "loud")

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}
