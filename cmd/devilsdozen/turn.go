package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
)

// turnAction runs one turn command against the service
type turnAction func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error

func newTurnCmds(opts *rootOptions, factory serviceFactory) []*cobra.Command {
	var rerollValue int

	reroll := turnCmd(opts, factory, "reroll [lobby-id] [player-id] [index]",
		"Reroll one GREEN die in Alchemist's Ascent", cobra.ExactArgs(3),
		func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error {
			index, err := parseInts(rest)
			if err != nil {
				return err
			}
			input := &game.RerollInput{LobbyID: lobbyID, PlayerID: playerID, Index: index[0]}
			if rerollValue > 0 {
				input.Value = &rerollValue
			}

			out, err := svc.Reroll(ctx, input)
			if err != nil {
				return err
			}
			return render(w, opts.asJSON, out, func() {
				fmt.Fprintf(w, "Die %d: %d -> %d\n", out.Reroll.Index, out.Reroll.OldValue, out.Reroll.NewValue)
				printTurn(w, out.TurnResult)
			})
		})
	reroll.Flags().IntVar(&rerollValue, "value", 0, "Use this face instead of rolling")

	return []*cobra.Command{
		turnCmd(opts, factory, "roll [lobby-id] [player-id] [values...]",
			"Roll for the current player, optionally with given faces", cobra.MinimumNArgs(2),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error {
				input := &game.RollInput{LobbyID: lobbyID, PlayerID: playerID}
				if len(rest) > 0 {
					roll, err := injectedRoll(ctx, svc, lobbyID, rest)
					if err != nil {
						return err
					}
					input.Roll = roll
				}

				out, err := svc.Roll(ctx, input)
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() { printRoll(w, out) })
			}),

		turnCmd(opts, factory, "hold [lobby-id] [player-id] [indices...]",
			"Set aside scoring dice", cobra.MinimumNArgs(3),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error {
				indices, err := parseInts(rest)
				if err != nil {
					return err
				}

				out, err := svc.Hold(ctx, &game.HoldInput{LobbyID: lobbyID, PlayerID: playerID, Indices: indices})
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() {
					if out.IsHotDice {
						fmt.Fprintln(w, "Hot dice!")
					}
					printTurn(w, out.TurnResult)
				})
			}),

		reroll,

		turnCmd(opts, factory, "select [lobby-id] [player-id] [face] [indices...]",
			"Take a group of Alien Invasion dice", cobra.MinimumNArgs(4),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error {
				indices, err := parseInts(rest[1:])
				if err != nil {
					return err
				}

				out, err := svc.Select(ctx, &game.SelectInput{
					LobbyID:  lobbyID,
					PlayerID: playerID,
					Face:     entities.FaceType(rest[0]),
					Indices:  indices,
				})
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() {
					fmt.Fprintf(w, "Tug of war: %.2f  Safe to bank: %t\n", out.TugOfWar, out.IsSafeToBank)
					printSelections(w, out.Selections)
					printTurn(w, out.TurnResult)
				})
			}),

		turnCmd(opts, factory, "place [lobby-id] [player-id] [column]",
			"Place the Knucklebones die in a column", cobra.ExactArgs(3),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, rest []string) error {
				column, err := parseInts(rest)
				if err != nil {
					return err
				}

				out, err := svc.Place(ctx, &game.PlaceInput{LobbyID: lobbyID, PlayerID: playerID, Column: column[0]})
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() {
					p := out.Placement
					fmt.Fprintf(w, "Column %d: %+d to you, %+d to opponent, %d crushed\n",
						p.ColumnIndex, p.PlayerScoreDelta, p.OpponentScoreDelta, p.DestroyedCount)
					if out.GameOver {
						fmt.Fprintln(w, "Game over")
					}
					printTurn(w, out.TurnResult)
				})
			}),

		turnCmd(opts, factory, "bank [lobby-id] [player-id]",
			"Bank the turn score and pass play", cobra.ExactArgs(2),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, _ []string) error {
				out, err := svc.Bank(ctx, &game.BankInput{LobbyID: lobbyID, PlayerID: playerID})
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() {
					fmt.Fprintf(w, "Banked %d, total %d\n", out.Banked, out.TotalScore)
					if out.TierAfter > out.TierBefore {
						fmt.Fprintf(w, "Advanced to %s\n", out.TierAfter)
					}
					printTurn(w, out.TurnResult)
				})
			}),

		turnCmd(opts, factory, "end-turn [lobby-id] [player-id]",
			"Pass play after a bust", cobra.ExactArgs(2),
			func(ctx context.Context, svc game.Service, w io.Writer, lobbyID, playerID string, _ []string) error {
				out, err := svc.EndTurn(ctx, &game.EndTurnInput{LobbyID: lobbyID, PlayerID: playerID})
				if err != nil {
					return err
				}
				return render(w, opts.asJSON, out, func() { printTurn(w, out.TurnResult) })
			}),
	}
}

func turnCmd(
	opts *rootOptions,
	factory serviceFactory,
	use, short string,
	args cobra.PositionalArgs,
	action turnAction,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, factory, func(ctx context.Context, svc game.Service) error {
				return action(ctx, svc, cmd.OutOrStdout(), args[0], args[1], args[2:])
			})
		},
	}
}

func render(w io.Writer, asJSON bool, v any, text func()) error {
	if asJSON {
		return writeJSON(w, v)
	}
	text()
	return nil
}

// injectedRoll builds a roll from the given faces, D20 for Alchemist's Ascent
func injectedRoll(ctx context.Context, svc game.Service, lobbyID string, args []string) (*entities.DiceRoll, error) {
	values, err := parseInts(args)
	if err != nil {
		return nil, err
	}

	current, err := svc.GetGame(ctx, &game.GetGameInput{LobbyID: lobbyID})
	if err != nil {
		return nil, err
	}

	kind := entities.D6
	if current.Lobby.Mode == entities.GameModeAlchemistsAscent {
		kind = entities.D20
	}

	roll, err := entities.NewDiceRoll(kind, values...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dice")
	}
	return roll, nil
}

func printRoll(w io.Writer, out *game.RollOutput) {
	if out.DieValue > 0 {
		fmt.Fprintf(w, "Rolled %d, choose a column\n", out.DieValue)
	}
	if out.IsHotDice {
		fmt.Fprintln(w, "Hot dice!")
	}
	if out.Tier3 != nil {
		b := out.Tier3.Breakdown
		fmt.Fprintf(w, "Rolled %d: %s\n", out.Tier3.DieValue, b.Description)
	}
	printSelections(w, out.Selections)
	printTurn(w, out.TurnResult)
}

func printSelections(w io.Writer, selections map[entities.FaceType][]int) {
	if len(selections) == 0 {
		return
	}
	fmt.Fprintln(w, "Selectable:")
	for _, face := range []entities.FaceType{
		entities.FaceHuman,
		entities.FaceCow,
		entities.FaceChicken,
		entities.FaceDeathRay,
	} {
		if indices, ok := selections[face]; ok {
			fmt.Fprintf(w, "  %-10s %v\n", face, indices)
		}
	}
}
