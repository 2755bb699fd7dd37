// Package entities provides the value types shared by the Devil's Dozen
// engines and the records the orchestrator persists.
package entities

import (
	"fmt"

	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// DiceKind is the number of faces on a die
type DiceKind int

// Supported dice kinds
const (
	D6  DiceKind = 6
	D20 DiceKind = 20
)

// String returns the conventional name, e.g. "d6"
func (k DiceKind) String() string {
	return fmt.Sprintf("d%d", int(k))
}

// Valid reports whether k is a supported kind
func (k DiceKind) Valid() bool {
	return k == D6 || k == D20
}

// DiceRoll is an ordered set of face values from one throw.
// Construct it with NewDiceRoll; the values are never shared with the caller.
type DiceRoll struct {
	Values []int    `json:"values"`
	Kind   DiceKind `json:"kind"`
}

// NewDiceRoll validates every value against kind and returns a roll owning a
// private copy of values.
func NewDiceRoll(kind DiceKind, values ...int) (*DiceRoll, error) {
	if !kind.Valid() {
		return nil, errors.InvalidInputf("unsupported dice kind: %d", int(kind))
	}
	for i, v := range values {
		if v < 1 || v > int(kind) {
			return nil, errors.InvalidInputf("dice value at index %d out of range", i).
				WithMeta("index", i).
				WithMeta("expected", fmt.Sprintf("1-%d", int(kind))).
				WithMeta("actual", v)
		}
	}
	return &DiceRoll{
		Values: CopyInts(values),
		Kind:   kind,
	}, nil
}

// Len returns the number of dice in the roll
func (r *DiceRoll) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Values)
}

// Dice returns a copy of the face values
func (r *DiceRoll) Dice() []int {
	if r == nil {
		return nil
	}
	return CopyInts(r.Values)
}

// CopyInts returns an independent copy of values; nil stays nil.
func CopyInts(values []int) []int {
	if values == nil {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}
