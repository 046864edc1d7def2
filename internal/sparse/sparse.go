// Package sparse provides a sparse set of integer ids with O(1) insertion,
// membership testing and clearing.
//
// The set keeps a dense list of its members in insertion order, which makes
// it a natural worklist for breadth-first exploration of automaton states:
// iterate the dense list by index while inserting newly discovered ids.
package sparse

// SparseSet is a set of uint32 ids that supports O(1) operations.
// It maintains a sparse array (value -> dense index) and a dense array
// (members in insertion order).
//
// Unlike a fixed-universe sparse set, the sparse array grows on demand, since
// automaton state ids are allocated while the set is in use.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a new sparse set able to hold ids below capacity
// without growing.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if int(value) >= len(s.sparse) {
		grown := make([]uint32, 2*int(value)+1)
		copy(grown, s.sparse)
		s.sparse = grown
	}
	s.sparse[value] = uint32(len(s.dense)) //nolint:gosec // dense never exceeds the uint32 id space
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements in O(1) time.
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// At returns the i-th inserted element.
func (s *SparseSet) At(i int) uint32 {
	return s.dense[i]
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
