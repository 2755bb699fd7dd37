package game_test

import (
	"context"
	"strings"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/devils-dozen/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
	"github.com/KirkDiggler/devils-dozen/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/devils-dozen/internal/pkg/idgen/mock"
	gamestatemock "github.com/KirkDiggler/devils-dozen/internal/repositories/game_state/mock"
	"github.com/KirkDiggler/devils-dozen/internal/repositories/lobby"
	lobbymock "github.com/KirkDiggler/devils-dozen/internal/repositories/lobby/mock"
	"github.com/KirkDiggler/devils-dozen/internal/testutils"
	"github.com/KirkDiggler/devils-dozen/internal/testutils/builders"
	"github.com/KirkDiggler/devils-dozen/internal/testutils/mocks"
)

// recordingBus keeps the type of every published event
type recordingBus struct {
	types []string
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.types = append(b.types, e.Type())
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	lobbyRepo *lobbymock.MockRepository
	stateRepo *gamestatemock.MockRepository
	codeGen   *idgenmock.MockGenerator
	roller    *testutils.ScriptedRoller
	bus       *recordingBus
	svc       game.Service
	ctx       context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.lobbyRepo = lobbymock.NewMockRepository(s.ctrl)
	s.stateRepo = gamestatemock.NewMockRepository(s.ctrl)
	s.codeGen = idgenmock.NewMockGenerator(s.ctrl)
	s.roller = testutils.NewScriptedRoller()
	s.bus = &recordingBus{}
	s.ctx = context.Background()

	svc, err := game.NewOrchestrator(&game.Config{
		LobbyRepo:     s.lobbyRepo,
		GameStateRepo: s.stateRepo,
		IDGenerator:   idgen.NewSequential("id"),
		CodeGenerator: s.codeGen,
		Roller:        s.roller,
		EventBus:      s.bus,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectTurn sets up the loads every turn action performs
func (s *OrchestratorTestSuite) expectTurn(
	l *entities.Lobby,
	players []*entities.Player,
	state *entities.GameState,
) {
	mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, l)
	mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, l.ID, players)
	mocks.ExpectStateGet(s.ctx, s.stateRepo, state, nil)
}

// expectAdvance sets up the writes of passing play and returns the captured lobby
func (s *OrchestratorTestSuite) expectAdvance(lobbyID string) *entities.Lobby {
	updated := &entities.Lobby{}
	mocks.ExpectStateSave(s.ctx, s.stateRepo, nil)
	mocks.ExpectLobbyUpdate(s.ctx, s.lobbyRepo, func(l *entities.Lobby) { *updated = *l })
	mocks.ExpectResetTurn(s.ctx, s.stateRepo, lobbyID)
	return updated
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := game.NewOrchestrator(&game.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
	s.Assert().Contains(err.Error(), "LobbyRepo")
	s.Assert().Contains(err.Error(), "EventBus")

	_, err = game.NewOrchestrator(nil)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *OrchestratorTestSuite) TestCreateLobbyRetriesTakenCode() {
	gomock.InOrder(
		s.codeGen.EXPECT().Generate().Return("AAAAAA"),
		s.codeGen.EXPECT().Generate().Return("BBBBBB"),
	)
	gomock.InOrder(
		s.lobbyRepo.EXPECT().Create(s.ctx, gomock.Any()).
			Return(nil, errors.AlreadyExists("code AAAAAA is taken")),
		s.lobbyRepo.EXPECT().Create(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input lobby.CreateInput) (*lobby.CreateOutput, error) {
				s.Equal("BBBBBB", input.Lobby.Code)
				return &lobby.CreateOutput{Lobby: input.Lobby}, nil
			}),
	)
	s.lobbyRepo.EXPECT().AddPlayer(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input lobby.AddPlayerInput) (*lobby.AddPlayerOutput, error) {
			return &lobby.AddPlayerOutput{Player: input.Player}, nil
		})

	out, err := s.svc.CreateLobby(s.ctx, &game.CreateLobbyInput{
		Mode:     entities.GameModePeasantsGamble,
		HostName: "  Ada  ",
	})
	s.Require().NoError(err)

	s.Assert().Equal("BBBBBB", out.Lobby.Code)
	s.Assert().Equal(5000, out.Lobby.TargetScore)
	s.Assert().Equal(entities.LobbyStatusWaiting, out.Lobby.Status)
	s.Assert().Equal("Ada", out.Host.Name)
	s.Assert().Equal(0, out.Host.TurnOrder)
	s.Assert().Equal(out.Host.ID, out.Lobby.HostID)
	s.Assert().Equal(out.Lobby.ID, out.Host.LobbyID)
}

func (s *OrchestratorTestSuite) TestCreateLobbyGivesUpAfterRepeatedCollisions() {
	s.codeGen.EXPECT().Generate().Return("AAAAAA").Times(5)
	s.lobbyRepo.EXPECT().Create(s.ctx, gomock.Any()).
		Return(nil, errors.AlreadyExists("code AAAAAA is taken")).Times(5)

	_, err := s.svc.CreateLobby(s.ctx, &game.CreateLobbyInput{
		Mode:     entities.GameModePig,
		HostName: "Ada",
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestCreateLobbyValidation() {
	testCases := []struct {
		name  string
		input *game.CreateLobbyInput
	}{
		{
			name:  "missing input",
			input: nil,
		},
		{
			name:  "blank name",
			input: &game.CreateLobbyInput{Mode: entities.GameModePig, HostName: "   "},
		},
		{
			name:  "name too long",
			input: &game.CreateLobbyInput{Mode: entities.GameModePig, HostName: strings.Repeat("a", 31)},
		},
		{
			name:  "unknown mode",
			input: &game.CreateLobbyInput{Mode: "yahtzee", HostName: "Ada"},
		},
		{
			name:  "target not offered",
			input: &game.CreateLobbyInput{Mode: entities.GameModePeasantsGamble, TargetScore: 1234, HostName: "Ada"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.CreateLobby(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidInput(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestJoinLobby() {
	waiting := builders.NewLobbyBuilder().WithStatus(entities.LobbyStatusWaiting).Build()
	players := testutils.CreateTestPlayers(waiting.ID, "Ada")

	s.lobbyRepo.EXPECT().GetByCode(s.ctx, lobby.GetByCodeInput{Code: "ABC234"}).
		Return(&lobby.GetByCodeOutput{Lobby: waiting}, nil)
	mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, waiting.ID, players)
	s.lobbyRepo.EXPECT().AddPlayer(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input lobby.AddPlayerInput) (*lobby.AddPlayerOutput, error) {
			return &lobby.AddPlayerOutput{Player: input.Player}, nil
		})

	out, err := s.svc.JoinLobby(s.ctx, &game.JoinLobbyInput{Code: " abc234 ", PlayerName: "Bob"})
	s.Require().NoError(err)

	s.Assert().Equal(waiting.ID, out.Lobby.ID)
	s.Assert().Equal("Bob", out.Player.Name)
	s.Assert().Equal(1, out.Player.TurnOrder)
	s.Assert().Equal(waiting.ID, out.Player.LobbyID)
}

func (s *OrchestratorTestSuite) TestJoinLobbyInvalidCode() {
	_, err := s.svc.JoinLobby(s.ctx, &game.JoinLobbyInput{Code: "ab", PlayerName: "Bob"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *OrchestratorTestSuite) TestJoinLobbyRejections() {
	testCases := []struct {
		name    string
		lobby   *entities.Lobby
		players []*entities.Player
		joiner  string
		check   func(error) bool
	}{
		{
			name:   "game already started",
			lobby:  builders.NewLobbyBuilder().Build(),
			joiner: "Bob",
			check:  errors.IsIllegalOperation,
		},
		{
			name: "knucklebones seats two",
			lobby: builders.NewLobbyBuilder().
				WithStatus(entities.LobbyStatusWaiting).
				WithMode(entities.GameModeKnucklebones, 0).
				Build(),
			players: testutils.CreateTestPlayers("lobby-test-123", "Ada", "Cy"),
			joiner:  "Bob",
			check:   errors.IsIllegalOperation,
		},
		{
			name:    "name taken ignoring case",
			lobby:   builders.NewLobbyBuilder().WithStatus(entities.LobbyStatusWaiting).Build(),
			players: testutils.CreateTestPlayers("lobby-test-123", "Ada"),
			joiner:  "ADA",
			check:   errors.IsAlreadyExists,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.lobbyRepo.EXPECT().GetByCode(s.ctx, lobby.GetByCodeInput{Code: tc.lobby.Code}).
				Return(&lobby.GetByCodeOutput{Lobby: tc.lobby}, nil)
			if tc.players != nil {
				mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, tc.lobby.ID, tc.players)
			}

			_, err := s.svc.JoinLobby(s.ctx, &game.JoinLobbyInput{Code: tc.lobby.Code, PlayerName: tc.joiner})
			s.Require().Error(err)
			s.Assert().True(tc.check(err), err.Error())
		})
	}
}

func (s *OrchestratorTestSuite) TestStartGameNeedsEnoughPlayers() {
	waiting := builders.NewLobbyBuilder().WithStatus(entities.LobbyStatusWaiting).Build()
	mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, waiting)
	mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, waiting.ID, testutils.CreateTestPlayers(waiting.ID, "Ada"))

	_, err := s.svc.StartGame(s.ctx, &game.StartGameInput{LobbyID: waiting.ID})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidInput(err))
}

func (s *OrchestratorTestSuite) TestStartGameKnucklebonesCreatesGrids() {
	waiting := builders.NewLobbyBuilder().
		WithStatus(entities.LobbyStatusWaiting).
		WithMode(entities.GameModeKnucklebones, 0).
		Build()
	players := testutils.CreateTestPlayers(waiting.ID, "Ada", "Bob")

	var saved *entities.GameState
	mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, waiting)
	mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, waiting.ID, players)
	mocks.ExpectStateSave(s.ctx, s.stateRepo, func(st *entities.GameState) { saved = st })
	mocks.ExpectLobbyUpdate(s.ctx, s.lobbyRepo, nil)

	out, err := s.svc.StartGame(s.ctx, &game.StartGameInput{LobbyID: waiting.ID})
	s.Require().NoError(err)

	s.Assert().Equal(entities.LobbyStatusPlaying, out.Lobby.Status)
	s.Require().NotNil(saved)
	s.Assert().Equal(1, saved.TurnNumber)
	s.Assert().Len(saved.Grids, 2)
	s.Assert().Equal(0, saved.Grids["player-1"].DiceCount())
	s.Assert().Equal([]string{rpgtoolkit.EventGameStarted}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestOnlyCurrentPlayerMayAct() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")

	s.Run("other seated player", func() {
		mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, playing)
		mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, playing.ID, players)

		_, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-2"})
		s.Require().Error(err)
		s.Assert().True(errors.IsIllegalOperation(err))
		s.Assert().Equal("player-1", errors.GetMeta(err)["current_player_id"])
	})

	s.Run("stranger", func() {
		mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, playing)
		mocks.ExpectListPlayers(s.ctx, s.lobbyRepo, playing.ID, players)

		_, err := s.svc.Bank(s.ctx, &game.BankInput{LobbyID: playing.ID, PlayerID: "player-9"})
		s.Require().Error(err)
		s.Assert().True(errors.IsNotFound(err))
	})

	s.Run("finished game", func() {
		finished := builders.NewLobbyBuilder().WithStatus(entities.LobbyStatusFinished).Build()
		mocks.ExpectLobbyGet(s.ctx, s.lobbyRepo, finished)

		_, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: finished.ID, PlayerID: "player-1"})
		s.Require().Error(err)
		s.Assert().True(errors.IsIllegalOperation(err))
	})
}

func (s *OrchestratorTestSuite) TestActionOutsideMode() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModePig, 100).Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).Build())

	_, err := s.svc.Select(s.ctx, &game.SelectInput{
		LobbyID:  playing.ID,
		PlayerID: "player-1",
		Face:     entities.FaceHuman,
		Indices:  []int{0},
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *OrchestratorTestSuite) TestRollPeasantsGambleAutoHoldsScoringDice() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).Build())

	var saved *entities.GameState
	mocks.ExpectStateSave(s.ctx, s.stateRepo, func(st *entities.GameState) { saved = st })
	s.roller.Queue(1, 5, 2, 3, 3, 6)

	out, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Require().NotNil(out.Result)
	s.Assert().Equal(150, out.Result.Points)
	s.Assert().False(out.IsBust)
	s.Assert().False(out.TurnEnded)

	s.Require().NotNil(saved.Turn)
	s.Assert().Equal([]int{1, 5, 2, 3, 3, 6}, saved.Turn.ActiveDice)
	s.Assert().Equal(entities.IndexSet{0, 1}, saved.Turn.HeldIndices)
	s.Assert().Equal(1, saved.Turn.RollCount)
	s.Assert().Equal(0, saved.Turn.TurnScore)
	s.Assert().Empty(s.bus.types)
}

func (s *OrchestratorTestSuite) TestBankCommitsAutoHeldDice() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	state := builders.NewGameStateBuilder(playing.ID).WithRolledDice([]int{1, 5, 2, 3, 3, 6}, 0, 1).Build()
	s.expectTurn(playing, players, state)

	var banked *entities.Player
	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, func(p *entities.Player) { banked = p })
	updated := s.expectAdvance(playing.ID)

	out, err := s.svc.Bank(s.ctx, &game.BankInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Assert().Equal(150, out.Banked)
	s.Assert().Equal(150, out.TotalScore)
	s.Assert().True(out.TurnEnded)
	s.Assert().Empty(out.WinnerID)
	s.Require().NotNil(banked)
	s.Assert().Equal(150, banked.TotalScore)
	s.Assert().Equal(1, updated.CurrentTurnIndex)
	s.Assert().Equal([]string{rpgtoolkit.EventBanked}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestBankReachingTargetWins() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayersWithScores(playing.ID, 4900, 300)
	state := builders.NewGameStateBuilder(playing.ID).WithRolledDice([]int{1, 5, 2, 3, 3, 6}, 0, 1).Build()
	s.expectTurn(playing, players, state)

	finished := &entities.Lobby{}
	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, nil)
	mocks.ExpectLobbyUpdate(s.ctx, s.lobbyRepo, func(l *entities.Lobby) { *finished = *l })
	mocks.ExpectStateSave(s.ctx, s.stateRepo, nil)

	out, err := s.svc.Bank(s.ctx, &game.BankInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Assert().Equal(5050, out.TotalScore)
	s.Assert().Equal("player-1", out.WinnerID)
	s.Assert().False(out.TurnEnded)
	s.Assert().Equal(entities.LobbyStatusFinished, finished.Status)
	s.Assert().Equal("player-1", finished.WinnerID)
	s.Assert().Equal([]string{rpgtoolkit.EventBanked, rpgtoolkit.EventWon}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestBankAfterBustIsRejected() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	turn := entities.NewTurnState(0)
	turn.ActiveDice = []int{2, 3, 4}
	turn.RollCount = 2
	turn.IsBust = true
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).WithTurn(turn).Build())

	_, err := s.svc.Bank(s.ctx, &game.BankInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *OrchestratorTestSuite) TestEndTurnRequiresBust() {
	playing := builders.NewLobbyBuilder().Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	state := builders.NewGameStateBuilder(playing.ID).WithRolledDice([]int{1, 5, 2, 3, 3, 6}, 0, 1).Build()
	s.expectTurn(playing, players, state)

	_, err := s.svc.EndTurn(s.ctx, &game.EndTurnInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *OrchestratorTestSuite) TestAscentKingmakerCrownsLastPlace() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModeAlchemistsAscent, 250).Build()
	players := testutils.CreateTestPlayersWithScores(playing.ID, 210, 40, 90)
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).Build())

	var crowned *entities.Player
	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, func(p *entities.Player) { crowned = p })
	updated := s.expectAdvance(playing.ID)
	s.roller.Queue(20)

	out, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Require().NotNil(out.Tier3)
	s.Assert().True(out.Tier3.IsKingmaker)
	s.Assert().Equal("player-2", out.Tier3.BeneficiaryID)
	s.Require().NotNil(crowned)
	s.Assert().Equal("player-2", crowned.ID)
	s.Assert().Equal(60, crowned.TotalScore)
	s.Assert().True(out.TurnEnded)
	s.Assert().Equal(1, updated.CurrentTurnIndex)
	s.Assert().Equal([]string{rpgtoolkit.EventKingmaker}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestAscentBlueOneResetsRoller() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModeAlchemistsAscent, 250).Build()
	players := testutils.CreateTestPlayersWithScores(playing.ID, 220, 10)
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).Build())

	var reset *entities.Player
	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, func(p *entities.Player) { reset = p })
	s.expectAdvance(playing.ID)
	s.roller.Queue(1)

	out, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Require().NotNil(out.Tier3)
	s.Assert().True(out.Tier3.IsReset)
	s.Require().NotNil(out.Result)
	s.Assert().Equal(-220, out.Result.Points)
	s.Assert().Equal("player-1", reset.ID)
	s.Assert().Equal(0, reset.TotalScore)
	s.Assert().Equal([]string{rpgtoolkit.EventReset}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestAscentBlueFaceReachesTarget() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModeAlchemistsAscent, 250).Build()
	players := testutils.CreateTestPlayersWithScores(playing.ID, 245, 10)
	s.expectTurn(playing, players, builders.NewGameStateBuilder(playing.ID).Build())

	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, nil)
	mocks.ExpectLobbyUpdate(s.ctx, s.lobbyRepo, nil)
	mocks.ExpectStateSave(s.ctx, s.stateRepo, nil)
	s.roller.Queue(7)

	out, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	s.Assert().Equal("player-1", out.WinnerID)
	s.Assert().Equal(entities.LobbyStatusFinished, out.Lobby.Status)
	s.Assert().Equal(7, out.Result.Points)
	s.Assert().Equal([]string{rpgtoolkit.EventWon}, s.bus.types)
}

func (s *OrchestratorTestSuite) TestKnucklebonesRollRequiresPlacement() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModeKnucklebones, 0).Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	state := builders.NewGameStateBuilder(playing.ID).
		WithGrid("player-1").
		WithGrid("player-2").
		WithPendingDie(3).
		Build()
	s.expectTurn(playing, players, state)

	_, err := s.svc.Roll(s.ctx, &game.RollInput{LobbyID: playing.ID, PlayerID: "player-1"})
	s.Require().Error(err)
	s.Assert().True(errors.IsIllegalOperation(err))
}

func (s *OrchestratorTestSuite) TestKnucklebonesFinalPlacementDecidesWinner() {
	playing := builders.NewLobbyBuilder().WithMode(entities.GameModeKnucklebones, 0).Build()
	players := testutils.CreateTestPlayers(playing.ID, "Ada", "Bob")
	state := builders.NewGameStateBuilder(playing.ID).
		WithGrid("player-1", []int{6, 6, 6}, []int{5, 5, 5}, []int{4, 4}).
		WithGrid("player-2", []int{1}, []int{2}, []int{3}).
		WithPendingDie(3).
		Build()
	s.expectTurn(playing, players, state)

	mocks.ExpectPlayerUpdate(s.ctx, s.lobbyRepo, nil).Times(2)
	mocks.ExpectLobbyUpdate(s.ctx, s.lobbyRepo, nil)
	mocks.ExpectStateSave(s.ctx, s.stateRepo, nil)

	out, err := s.svc.Place(s.ctx, &game.PlaceInput{LobbyID: playing.ID, PlayerID: "player-1", Column: 2})
	s.Require().NoError(err)

	s.Assert().True(out.GameOver)
	s.Assert().Equal("player-1", out.WinnerID)
	s.Assert().Equal(1, out.Placement.DestroyedCount)
	s.Assert().Equal(0, out.State.PendingDie)
	s.Assert().Equal([]int{4, 4, 3}, out.State.Grids["player-1"].Columns[2])
	s.Assert().Empty(out.State.Grids["player-2"].Columns[2])
	s.Assert().Equal([]string{rpgtoolkit.EventCrunch, rpgtoolkit.EventWon}, s.bus.types)
}
