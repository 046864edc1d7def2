package matcher

import "sync/atomic"

// table is a dense transition table: cell q*width+c holds the successor of
// state q on column c, or nil while unknown. Columns are the atoms plus one
// reserved column for a '\n' that ends the input.
//
// A table is never resized in place. Growth copies the cells into a larger
// table that is then published, so readers holding the old one see at worst
// an unset cell and take the locked path.
type table[P comparable] struct {
	width int
	cells []atomic.Pointer[State[P]]
}

func newTable[P comparable](states, width int) *table[P] {
	return &table[P]{width: width, cells: make([]atomic.Pointer[State[P]], states*width)}
}

func (t *table[P]) capacity() int { return len(t.cells) / t.width }

// get returns the successor of state id on column col, or nil.
func (t *table[P]) get(id, col int) *State[P] {
	off := id*t.width + col
	if off >= len(t.cells) {
		return nil
	}
	return t.cells[off].Load()
}

// grown returns a copy of t able to hold states, with every set cell kept.
func (t *table[P]) grown(states int) *table[P] {
	capacity := max(2*t.capacity(), states)
	g := newTable[P](capacity, t.width)
	for i := range t.cells {
		if p := t.cells[i].Load(); p != nil {
			g.cells[i].Store(p)
		}
	}
	return g
}
