package entities

// Knucklebones grid dimensions
const (
	GridColumns    = 3
	ColumnCapacity = 3
)

// GridState is one player's Knucklebones board. Each column is a bottom-to-top
// stack of at most three faces.
type GridState struct {
	Columns [GridColumns][]int `json:"columns"`
}

// NewGridState returns an empty grid
func NewGridState() GridState {
	return GridState{Columns: [GridColumns][]int{{}, {}, {}}}
}

// Clone returns a deep copy
func (g GridState) Clone() GridState {
	var out GridState
	for i, col := range g.Columns {
		out.Columns[i] = make([]int, len(col))
		copy(out.Columns[i], col)
	}
	return out
}

// DiceCount is the number of dice placed across all columns
func (g GridState) DiceCount() int {
	n := 0
	for _, col := range g.Columns {
		n += len(col)
	}
	return n
}

// IsFull reports whether every column is at capacity
func (g GridState) IsFull() bool {
	return g.DiceCount() == GridColumns*ColumnCapacity
}
