// Package knucklebones implements the two-player grid placement mode.
//
// Each player fills a 3x3 grid one die at a time. Matching faces in a column
// multiply, and placing a die crunches every equal die in the opponent's
// same column.
package knucklebones

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// Winner identifies the winning grid
type Winner int

// Winners
const (
	WinnerNone Winner = iota
	WinnerPlayerOne
	WinnerPlayerTwo
)

// PlacementResult is the outcome of PlaceDie
type PlacementResult struct {
	PlayerGrid         entities.GridState `json:"player_grid"`
	OpponentGrid       entities.GridState `json:"opponent_grid"`
	PlayerScoreDelta   int                `json:"player_score_delta"`
	OpponentScoreDelta int                `json:"opponent_score_delta"`
	DestroyedCount     int                `json:"destroyed_count"`
	ColumnIndex        int                `json:"column_index"`
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

// Engine rolls the die to place; the rules themselves are package functions
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

// RollDie rolls the single D6 a player must place
func (e *Engine) RollDie() (int, error) {
	r, err := engine.RollDice(e.roller, entities.D6, 1)
	if err != nil {
		return 0, err
	}
	return r.Values[0], nil
}

// ValidateGrid checks column sizes and faces
func ValidateGrid(grid entities.GridState) error {
	for i, col := range grid.Columns {
		if len(col) > entities.ColumnCapacity {
			return errors.InvalidInputf("column %d has %d dice, max %d", i, len(col), entities.ColumnCapacity).
				WithMeta("index", i).
				WithMeta("actual", len(col))
		}
		if _, err := engine.ValidateDiceValues(col, entities.D6, 0, entities.ColumnCapacity); err != nil {
			return errors.Wrapf(err, "invalid column %d", i)
		}
	}
	return nil
}

// CalculateColumnScore sums face*count*count for every distinct face, so a
// pair scores (f*2)*2 and a triple (f*3)*3.
func CalculateColumnScore(column []int) int {
	counts := make(map[int]int, len(column))
	for _, v := range column {
		counts[v]++
	}

	total := 0
	for face, n := range counts {
		total += face * n * n
	}
	return total
}

// CalculateGridScore sums the three column scores
func CalculateGridScore(grid entities.GridState) int {
	total := 0
	for _, col := range grid.Columns {
		total += CalculateColumnScore(col)
	}
	return total
}

// ScoreGrid returns the grid score with one breakdown line per non-empty column
func ScoreGrid(grid entities.GridState) entities.ScoringResult {
	breakdown := make([]entities.ScoringBreakdown, 0, entities.GridColumns)
	var indices []int
	for i, col := range grid.Columns {
		if len(col) == 0 {
			continue
		}
		indices = append(indices, i)
		breakdown = append(breakdown, entities.ScoringBreakdown{
			Category:    entities.CategoryColumn,
			DiceValues:  entities.CopyInts(col),
			Points:      CalculateColumnScore(col),
			Description: fmt.Sprintf("Column %d", i+1),
		})
	}

	result := entities.NewScoringResult(breakdown, entities.NewIndexSet(indices...))
	result.IsBust = false
	return result
}

// PlaceDie stacks value on the player's column and removes every die of the
// same face from the opponent's matching column.
func PlaceDie(value, column int, player, opponent entities.GridState) (PlacementResult, error) {
	if value < 1 || value > int(entities.D6) {
		return PlacementResult{}, errors.InvalidInputf("die value must be 1-6, got %d", value).
			WithMeta("expected", "1-6").
			WithMeta("actual", value)
	}
	if column < 0 || column >= entities.GridColumns {
		return PlacementResult{}, errors.InvalidInputf("column index must be 0-%d, got %d",
			entities.GridColumns-1, column).
			WithMeta("expected", fmt.Sprintf("0-%d", entities.GridColumns-1)).
			WithMeta("actual", column)
	}
	if err := ValidateGrid(player); err != nil {
		return PlacementResult{}, err
	}
	if err := ValidateGrid(opponent); err != nil {
		return PlacementResult{}, err
	}
	if len(player.Columns[column]) >= entities.ColumnCapacity {
		return PlacementResult{}, errors.IllegalOperationf("column %d is full", column)
	}

	playerBefore := CalculateColumnScore(player.Columns[column])
	opponentBefore := CalculateColumnScore(opponent.Columns[column])

	nextPlayer := player.Clone()
	nextPlayer.Columns[column] = append(nextPlayer.Columns[column], value)

	nextOpponent := opponent.Clone()
	kept := make([]int, 0, len(opponent.Columns[column]))
	for _, v := range opponent.Columns[column] {
		if v != value {
			kept = append(kept, v)
		}
	}
	destroyed := len(opponent.Columns[column]) - len(kept)
	nextOpponent.Columns[column] = kept

	return PlacementResult{
		PlayerGrid:         nextPlayer,
		OpponentGrid:       nextOpponent,
		PlayerScoreDelta:   CalculateColumnScore(nextPlayer.Columns[column]) - playerBefore,
		OpponentScoreDelta: CalculateColumnScore(nextOpponent.Columns[column]) - opponentBefore,
		DestroyedCount:     destroyed,
		ColumnIndex:        column,
	}, nil
}

// IsGameOver reports whether either grid holds nine dice
func IsGameOver(playerOne, playerTwo entities.GridState) bool {
	return playerOne.IsFull() || playerTwo.IsFull()
}

// GetWinner compares grid scores; a tie has no winner
func GetWinner(playerOne, playerTwo entities.GridState) Winner {
	one := CalculateGridScore(playerOne)
	two := CalculateGridScore(playerTwo)
	switch {
	case one > two:
		return WinnerPlayerOne
	case two > one:
		return WinnerPlayerTwo
	default:
		return WinnerNone
	}
}

// AvailableColumns lists the columns with room for another die
func AvailableColumns(grid entities.GridState) []int {
	out := make([]int, 0, entities.GridColumns)
	for i, col := range grid.Columns {
		if len(col) < entities.ColumnCapacity {
			out = append(out, i)
		}
	}
	return out
}
