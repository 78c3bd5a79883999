package kv

import (
	"iter"
	"maps"

	"github.com/hupe1980/sptensor/coord"
)

// Hash is an unordered Store backed by a Go map keyed by coordinate key.
type Hash struct {
	m map[coord.Key]entry
}

var _ Store = (*Hash)(nil)

// NewHash creates an empty hash store.
func NewHash() *Hash {
	return &Hash{m: make(map[coord.Key]entry)}
}

// Insert implements Store.
func (s *Hash) Insert(c coord.Coords, v float64) error {
	k, err := coord.Encode(c)
	if err != nil {
		return err
	}
	if e, ok := s.m[k]; ok {
		e.value = v
		s.m[k] = e
		return nil
	}
	s.m[k] = entry{key: k, coords: c.Clone(), value: v}
	return nil
}

// Get implements Store.
func (s *Hash) Get(c coord.Coords) (float64, bool, error) {
	k, err := coord.Encode(c)
	if err != nil {
		return 0, false, err
	}
	e, ok := s.m[k]
	return e.value, ok, nil
}

// All implements Store. Iteration order is unspecified.
func (s *Hash) All() iter.Seq2[coord.Coords, float64] {
	return func(yield func(coord.Coords, float64) bool) {
		for _, e := range s.m {
			if !yield(e.coords, e.value) {
				return
			}
		}
	}
}

// Len implements Store.
func (s *Hash) Len() int { return len(s.m) }

// Kind implements Store.
func (s *Hash) Kind() Kind { return KindHash }

// Clone implements Store. Coordinates are immutable once stored, so only
// the map itself is copied.
func (s *Hash) Clone() Store {
	return &Hash{m: maps.Clone(s.m)}
}
