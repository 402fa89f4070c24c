// Package tabular implements the value table and episode loop shared
// by tabular agents.
//
// A Table maps (state, action) pairs to value estimates. Pairs which
// have never been updated are not stored and read as 0.0, so the table
// only grows as new pairs are visited during learning.
package tabular

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/tabular/utils/floatutils"
)

// Key is a (state, action) pair which indexes a Table
type Key[S, A comparable] struct {
	State  S
	Action A
}

// Table is a lookup table of action values
type Table[S, A comparable] struct {
	values map[Key[S, A]]float64
}

// NewTable returns a new, empty Table
func NewTable[S, A comparable]() *Table[S, A] {
	return &Table[S, A]{values: make(map[Key[S, A]]float64)}
}

// Get returns the value of taking action in state, or 0.0 if the pair
// has never been set
func (t *Table[S, A]) Get(state S, action A) float64 {
	return t.values[Key[S, A]{state, action}]
}

// Lookup returns the value of taking action in state and whether the
// pair has been set
func (t *Table[S, A]) Lookup(state S, action A) (float64, bool) {
	v, ok := t.values[Key[S, A]{state, action}]
	return v, ok
}

// Set sets the value of taking action in state
func (t *Table[S, A]) Set(state S, action A, value float64) {
	t.values[Key[S, A]{state, action}] = value
}

// Len returns the number of (state, action) pairs stored
func (t *Table[S, A]) Len() int {
	return len(t.values)
}

// Values returns the values of each action in state, in the order of
// actions
func (t *Table[S, A]) Values(state S, actions []A) []float64 {
	values := make([]float64, len(actions))
	for i, action := range actions {
		values[i] = t.Get(state, action)
	}
	return values
}

// Max returns the maximum value over actions in state. If no actions
// are given, Max returns 0.0.
func (t *Table[S, A]) Max(state S, actions []A) float64 {
	if len(actions) == 0 {
		return 0.0
	}
	max, _ := floatutils.MaxSlice(t.Values(state, actions))
	return max
}

// Argmax returns the action with the maximum value in state. Ties are
// broken in favour of the action appearing first in actions. Argmax
// panics if actions is empty.
func (t *Table[S, A]) Argmax(state S, actions []A) A {
	if len(actions) == 0 {
		panic("argmax: there must always be at least one action available")
	}
	_, indices := floatutils.MaxSlice(t.Values(state, actions))
	return actions[indices[0]]
}

// Range calls f for each (state, action) pair in the table, in no
// particular order. Range stops if f returns false.
func (t *Table[S, A]) Range(f func(state S, action A, value float64) bool) {
	for k, v := range t.values {
		if !f(k.State, k.Action, v) {
			return
		}
	}
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table[S, A]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(t.values); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode table: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *Table[S, A]) GobDecode(in []byte) error {
	values := make(map[Key[S, A]]float64)
	dec := gob.NewDecoder(bytes.NewReader(in))
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("gobDecode: could not decode table: %w", err)
	}
	t.values = values
	return nil
}

// Save saves the table to a file
func (t *Table[S, A]) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(t); err != nil {
		return fmt.Errorf("save: could not encode table: %w", err)
	}
	return nil
}

// Load replaces the contents of the table with a table previously
// saved to a file
func (t *Table[S, A]) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(t); err != nil {
		return fmt.Errorf("load: could not decode table: %w", err)
	}
	return nil
}
