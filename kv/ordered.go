package kv

import (
	"iter"

	"github.com/google/btree"
	"github.com/hupe1980/sptensor/coord"
)

// Ordered is a Store backed by a balanced B-tree ordered by coordinate key.
type Ordered struct {
	tree *btree.BTreeG[entry]
}

var _ Store = (*Ordered)(nil)

// NewOrdered creates an empty ordered store. A degree below 2 selects 32.
func NewOrdered(degree int) *Ordered {
	if degree < 2 {
		degree = 32
	}
	return &Ordered{
		tree: btree.NewG(degree, func(a, b entry) bool { return a.key < b.key }),
	}
}

// Insert implements Store.
func (s *Ordered) Insert(c coord.Coords, v float64) error {
	e, err := newEntry(c, v)
	if err != nil {
		return err
	}
	s.tree.ReplaceOrInsert(e)
	return nil
}

// Get implements Store.
func (s *Ordered) Get(c coord.Coords) (float64, bool, error) {
	k, err := coord.Encode(c)
	if err != nil {
		return 0, false, err
	}
	e, ok := s.tree.Get(entry{key: k})
	if !ok {
		return 0, false, nil
	}
	return e.value, true, nil
}

// All implements Store.
func (s *Ordered) All() iter.Seq2[coord.Coords, float64] {
	return func(yield func(coord.Coords, float64) bool) {
		s.tree.Ascend(func(e entry) bool {
			return yield(e.coords, e.value)
		})
	}
}

// Len implements Store.
func (s *Ordered) Len() int { return s.tree.Len() }

// Kind implements Store.
func (s *Ordered) Kind() Kind { return KindOrdered }

// Clone implements Store. The copy is copy-on-write; writes to either side
// are never visible through the other.
func (s *Ordered) Clone() Store {
	return &Ordered{tree: s.tree.Clone()}
}
