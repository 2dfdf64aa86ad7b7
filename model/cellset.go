package model

// CellSet is an insertion-ordered set of cells, deduplicated by coordinates.
// The zero value is ready to use.
type CellSet struct {
	index map[Cell]struct{}
	items []Cell
}

// NewCellSet creates a set holding the given cells in order.
func NewCellSet(cells ...Cell) *CellSet {
	s := &CellSet{index: make(map[Cell]struct{}, len(cells))}
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s *CellSet) Add(c Cell) bool {
	if s.index == nil {
		s.index = make(map[Cell]struct{})
	}
	if _, ok := s.index[c]; ok {
		return false
	}
	s.index[c] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// Has reports whether c is in the set
func (s *CellSet) Has(c Cell) bool {
	_, ok := s.index[c]
	return ok
}

// Len returns the number of cells in the set
func (s *CellSet) Len() int {
	return len(s.items)
}

// Cells returns the cells in insertion order. The returned slice is a copy.
func (s *CellSet) Cells() []Cell {
	out := make([]Cell, len(s.items))
	copy(out, s.items)
	return out
}

// Filter returns a new set holding the cells for which keep returns true.
func (s *CellSet) Filter(keep func(Cell) bool) *CellSet {
	out := NewCellSet()
	for _, c := range s.items {
		if keep(c) {
			out.Add(c)
		}
	}
	return out
}
