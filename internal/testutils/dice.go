package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller is a dice.Roller that replays queued values in order.
// It fails when the queue runs dry or a value does not fit the die size.
type ScriptedRoller struct {
	mu     sync.Mutex
	values []int
	calls  int
}

// NewScriptedRoller queues values for playback
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: append([]int(nil), values...)}
}

// Queue appends more values to replay
func (r *ScriptedRoller) Queue(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, values...)
}

// Remaining returns how many queued values are left
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Calls returns how many Roll or RollN calls were made
func (r *ScriptedRoller) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Roll returns the next queued value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.next(size)
}

// RollN returns the next count queued values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.next(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *ScriptedRoller) next(size int) (int, error) {
	if len(r.values) == 0 {
		return 0, fmt.Errorf("scripted roller: no values left")
	}
	v := r.values[0]
	if v < 1 || v > size {
		return 0, fmt.Errorf("scripted roller: value %d does not fit d%d", v, size)
	}
	r.values = r.values[1:]
	return v, nil
}
