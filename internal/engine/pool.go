package engine

import (
	"sort"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
)

// Pool tracks which positions of a roll have been consumed by a scoring
// pass. Passes run in a fixed order and a consumed die is never reused.
type Pool struct {
	values   []int
	consumed []bool
}

// NewPool wraps values; the slice is copied
func NewPool(values []int) *Pool {
	return &Pool{
		values:   entities.CopyInts(values),
		consumed: make([]bool, len(values)),
	}
}

// Len is the size of the roll
func (p *Pool) Len() int {
	return len(p.values)
}

// Count returns how many unconsumed dice show face
func (p *Pool) Count(face int) int {
	n := 0
	for i, v := range p.values {
		if v == face && !p.consumed[i] {
			n++
		}
	}
	return n
}

// Has reports whether at least one unconsumed die shows face
func (p *Pool) Has(face int) bool {
	return p.Count(face) > 0
}

// Take consumes the first n unconsumed dice showing face and returns their
// positions. It takes fewer when fewer are available.
func (p *Pool) Take(face, n int) []int {
	taken := make([]int, 0, n)
	for i, v := range p.values {
		if len(taken) == n {
			break
		}
		if v == face && !p.consumed[i] {
			p.consumed[i] = true
			taken = append(taken, i)
		}
	}
	return taken
}

// TakeEach consumes one die of every face in faces
func (p *Pool) TakeEach(faces ...int) []int {
	taken := make([]int, 0, len(faces))
	for _, f := range faces {
		taken = append(taken, p.Take(f, 1)...)
	}
	return taken
}

// Faces returns the distinct unconsumed faces in ascending order
func (p *Pool) Faces() []int {
	seen := make(map[int]struct{})
	for i, v := range p.values {
		if !p.consumed[i] {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Consumed returns every position taken so far
func (p *Pool) Consumed() entities.IndexSet {
	out := make([]int, 0, len(p.values))
	for i, c := range p.consumed {
		if c {
			out = append(out, i)
		}
	}
	return entities.NewIndexSet(out...)
}

// Repeat returns face repeated n times
func Repeat(face, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = face
	}
	return out
}

// Pick returns values at the given positions, in index order
func Pick(values []int, indices entities.IndexSet) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		out = append(out, values[i])
	}
	return out
}
