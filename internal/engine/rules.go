package engine

import (
	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

var gameConfigs = map[entities.GameMode]entities.GameConfig{
	entities.GameModePeasantsGamble: {
		Mode:          entities.GameModePeasantsGamble,
		MinPlayers:    MinPlayers,
		MaxPlayers:    MaxPlayers,
		TargetScores:  []int{3000, 5000, 10000},
		DefaultTarget: 5000,
		DiceKind:      entities.D6,
	},
	entities.GameModeAlchemistsAscent: {
		Mode:          entities.GameModeAlchemistsAscent,
		MinPlayers:    MinPlayers,
		MaxPlayers:    MaxPlayers,
		TargetScores:  []int{250},
		DefaultTarget: 250,
		DiceKind:      entities.D20,
	},
	// Knucklebones ends on a full grid; the target is unused
	entities.GameModeKnucklebones: {
		Mode:       entities.GameModeKnucklebones,
		MinPlayers: 2,
		MaxPlayers: 2,
		DiceKind:   entities.D6,
	},
	entities.GameModeAlienInvasion: {
		Mode:          entities.GameModeAlienInvasion,
		MinPlayers:    MinPlayers,
		MaxPlayers:    MaxPlayers,
		TargetScores:  []int{25, 50, 75},
		DefaultTarget: 25,
		DiceKind:      entities.D6,
	},
	entities.GameModePig: {
		Mode:          entities.GameModePig,
		MinPlayers:    2,
		MaxPlayers:    10,
		TargetScores:  []int{50, 100, 250},
		DefaultTarget: 100,
		DiceKind:      entities.D6,
	},
}

// GameConfigFor returns the rules for mode
func GameConfigFor(mode entities.GameMode) (entities.GameConfig, error) {
	cfg, ok := gameConfigs[mode]
	if !ok {
		return entities.GameConfig{}, errors.InvalidInputf("unknown game mode: %q", mode)
	}
	cfg.TargetScores = entities.CopyInts(cfg.TargetScores)
	return cfg, nil
}

// ValidateGameTarget checks target against the mode's allowed targets.
// Zero selects the mode default.
func ValidateGameTarget(mode entities.GameMode, target int) (int, error) {
	cfg, err := GameConfigFor(mode)
	if err != nil {
		return 0, err
	}
	if len(cfg.TargetScores) == 0 {
		return target, nil
	}
	if target == 0 {
		return cfg.DefaultTarget, nil
	}
	return ValidateTargetScore(target, cfg.TargetScores)
}

// ValidateGamePlayers checks count against the mode's seat range
func ValidateGamePlayers(mode entities.GameMode, count int) (int, error) {
	cfg, err := GameConfigFor(mode)
	if err != nil {
		return 0, err
	}
	return validatePlayerRange(count, cfg.MinPlayers, cfg.MaxPlayers)
}
