package kv

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/sptensor/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[Kind]Store {
	t.Helper()
	out := make(map[Kind]Store, len(Kinds))
	for _, k := range Kinds {
		s, err := New(k, func(o *Options) { o.BranchingFactor = 4 })
		require.NoError(t, err)
		require.Equal(t, k, s.Kind())
		out[k] = s
	}
	return out
}

func collect(s Store) map[coord.Key]float64 {
	out := make(map[coord.Key]float64)
	for c, v := range s.All() {
		k, _ := coord.Encode(c)
		out[k] = v
	}
	return out
}

func TestStoreContract(t *testing.T) {
	for kind, s := range newStores(t) {
		t.Run(kind.String(), func(t *testing.T) {
			_, ok, err := s.Get(coord.Coords{0, 0})
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, 0, s.Len())

			require.NoError(t, s.Insert(coord.Coords{1, 2}, 3.5))
			require.NoError(t, s.Insert(coord.Coords{0, 7}, -1))

			v, ok, err := s.Get(coord.Coords{1, 2})
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 3.5, v)

			// Upsert replaces.
			require.NoError(t, s.Insert(coord.Coords{1, 2}, 9))
			v, ok, err = s.Get(coord.Coords{1, 2})
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 9.0, v)
			assert.Equal(t, 2, s.Len())

			_, ok, err = s.Get(coord.Coords{2, 1})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreEncodingErrors(t *testing.T) {
	for kind, s := range newStores(t) {
		t.Run(kind.String(), func(t *testing.T) {
			err := s.Insert(make(coord.Coords, coord.MaxOrder+1), 1)
			assert.ErrorIs(t, err, coord.ErrCapacity)

			_, _, err = s.Get(coord.Coords{coord.MaxMode + 1})
			assert.ErrorIs(t, err, coord.ErrCapacity)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestStoreIterationIsRestartable(t *testing.T) {
	for kind, s := range newStores(t) {
		t.Run(kind.String(), func(t *testing.T) {
			for i := range 50 {
				require.NoError(t, s.Insert(coord.Coords{coord.Mode(i % 7), coord.Mode(i)}, float64(i+1)))
			}

			first := collect(s)
			second := collect(s)
			assert.Len(t, first, 50)
			assert.Equal(t, first, second)

			// Early termination leaves the store usable.
			n := 0
			for range s.All() {
				n++
				if n == 3 {
					break
				}
			}
			assert.Equal(t, 3, n)
			assert.Equal(t, first, collect(s))
		})
	}
}

func TestStoreSameContentAcrossKinds(t *testing.T) {
	stores := newStores(t)
	rng := rand.New(rand.NewSource(1))

	for range 2000 {
		c := coord.Coords{coord.Mode(rng.Intn(20)), coord.Mode(rng.Intn(20)), coord.Mode(rng.Intn(5))}
		v := float64(rng.Intn(100) + 1)
		for _, s := range stores {
			require.NoError(t, s.Insert(c, v))
		}
	}

	want := collect(stores[KindHash])
	for kind, s := range stores {
		assert.Equal(t, want, collect(s), kind.String())
		assert.Equal(t, len(want), s.Len(), kind.String())
	}
}

func TestOrderedKindsIterateAscending(t *testing.T) {
	for kind, s := range newStores(t) {
		if !kind.Ordered() {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			for range 500 {
				c := coord.Coords{coord.Mode(rng.Intn(50)), coord.Mode(rng.Intn(50))}
				require.NoError(t, s.Insert(c, 1))
			}

			var prev coord.Coords
			for c := range s.All() {
				if prev != nil {
					lt, err := coord.Less(prev, c)
					require.NoError(t, err)
					assert.True(t, lt, "%v !< %v", prev, c)
				}
				prev = c.Clone()
			}
		})
	}
}

func TestStoreCloneIsIndependent(t *testing.T) {
	for kind, s := range newStores(t) {
		t.Run(kind.String(), func(t *testing.T) {
			for i := range 20 {
				require.NoError(t, s.Insert(coord.Coords{coord.Mode(i)}, float64(i+1)))
			}
			c := s.Clone()
			require.Equal(t, kind, c.Kind())

			require.NoError(t, c.Insert(coord.Coords{0}, 100))
			require.NoError(t, c.Insert(coord.Coords{99}, 5))
			require.NoError(t, s.Insert(coord.Coords{1}, -3))

			v, _, _ := s.Get(coord.Coords{0})
			assert.Equal(t, 1.0, v)
			_, ok, _ := s.Get(coord.Coords{99})
			assert.False(t, ok)

			v, _, _ = c.Get(coord.Coords{1})
			assert.Equal(t, 2.0, v)
			assert.Equal(t, 20, s.Len())
			assert.Equal(t, 21, c.Len())
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("BPTree")
	require.NoError(t, err)
	assert.Equal(t, KindBPTree, got)

	_, err = ParseKind("skiplist")
	assert.Error(t, err)

	_, err = New(Kind(42))
	assert.Error(t, err)
	assert.Equal(t, "kind(42)", Kind(42).String())
}
