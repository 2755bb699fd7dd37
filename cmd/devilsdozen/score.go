package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/devils-dozen/internal/engine"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alchemistsascent"
	"github.com/KirkDiggler/devils-dozen/internal/engine/alieninvasion"
	"github.com/KirkDiggler/devils-dozen/internal/engine/knucklebones"
	"github.com/KirkDiggler/devils-dozen/internal/engine/peasantsgamble"
	"github.com/KirkDiggler/devils-dozen/internal/engine/pig"
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

type scoreOptions struct {
	tier      int
	current   int
	lastPlace string
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score [mode] [values...]",
		Short: "Score dice without a game",
		Long: `Score a set of face values under one game mode. Examples:

  score peasants_gamble 1 5 2 3 3 6
  score alchemists_ascent --tier 2 3 4 5 11
  score alchemists_ascent --tier 3 --current 120 --last-place p2 20
  score alien_invasion 1 2 4 6 6
  score knucklebones 4 4 2
  score pig 5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, opts, root.asJSON, args)
		},
	}

	cmd.Flags().IntVar(&opts.tier, "tier", 1, "Alchemist's Ascent tier (1 RED, 2 GREEN, 3 BLUE)")
	cmd.Flags().IntVar(&opts.current, "current", 0, "Banked total of the roller, for tier 3")
	cmd.Flags().StringVar(&opts.lastPlace, "last-place", "", "Player in last place, for tier 3")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOptions, asJSON bool, args []string) error {
	mode := entities.GameMode(args[0])
	if _, err := engine.GameConfigFor(mode); err != nil {
		return err
	}

	values, err := parseInts(args[1:])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	switch mode {
	case entities.GameModeAlienInvasion:
		groups, err := alieninvasion.ClassifyDice(values)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(w, groups)
		}
		for _, face := range []entities.FaceType{
			entities.FaceHuman,
			entities.FaceCow,
			entities.FaceChicken,
			entities.FaceDeathRay,
			entities.FaceTank,
		} {
			fmt.Fprintf(w, "  %-10s %v\n", face, groups[face])
		}
		return nil

	case entities.GameModeKnucklebones:
		if _, err := engine.ValidateDiceValues(values, entities.D6, 1, entities.ColumnCapacity); err != nil {
			return err
		}
		score := knucklebones.CalculateColumnScore(values)
		if asJSON {
			return writeJSON(w, map[string]int{"column_score": score})
		}
		fmt.Fprintf(w, "  Column score: %d\n", score)
		return nil

	case entities.GameModeAlchemistsAscent:
		if entities.Tier(opts.tier) == entities.TierBlue {
			if len(values) != 1 {
				return errors.InvalidInput("tier 3 scores exactly one die")
			}
			res, err := alchemistsascent.CalculateScoreTier3(values[0], opts.current, opts.lastPlace)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(w, res)
			}
			b := res.Breakdown
			fmt.Fprintf(w, "  %-16s %-20v %6d  %s\n", b.Category, b.DiceValues, b.Points, b.Description)
			if res.IsKingmaker && res.BeneficiaryID != "" {
				fmt.Fprintf(w, "  +%d to %s\n", alchemistsascent.KingmakerPoints, res.BeneficiaryID)
			}
			return nil
		}
	}

	result, err := scoreValues(mode, entities.Tier(opts.tier), values)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, result)
	}
	printScoring(w, result)
	return nil
}

func scoreValues(mode entities.GameMode, tier entities.Tier, values []int) (entities.ScoringResult, error) {
	switch mode {
	case entities.GameModePeasantsGamble:
		return peasantsgamble.CalculateScore(values)
	case entities.GameModeAlchemistsAscent:
		return alchemistsascent.CalculateScore(values, tier)
	case entities.GameModePig:
		return pig.CalculateScore(values)
	default:
		return entities.ScoringResult{}, errors.InvalidInputf("mode %s has no roll scoring", mode)
	}
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.InvalidInputf("not a number: %q", arg).WithMeta("value", arg)
		}
		out = append(out, v)
	}
	return out, nil
}
