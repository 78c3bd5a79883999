package kv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/sptensor/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkTree verifies the structural invariants of t and returns the leaf depth.
func checkTree(t *testing.T, tree *BPTree) {
	t.Helper()

	minFill := (tree.order + 1) / 2
	leafDepth := -1

	var visit func(n node, depth int, isRoot bool, lo coord.Key, hasLo bool)
	visit = func(n node, depth int, isRoot bool, lo coord.Key, hasLo bool) {
		switch x := n.(type) {
		case *leafNode:
			if leafDepth == -1 {
				leafDepth = depth
			}
			require.Equal(t, leafDepth, depth, "leaves at different depths")
			require.LessOrEqual(t, len(x.entries), tree.order)
			if !isRoot {
				require.GreaterOrEqual(t, len(x.entries), minFill)
			}
			for i, e := range x.entries {
				if i > 0 {
					require.Less(t, x.entries[i-1].key, e.key)
				}
				if hasLo {
					require.Greater(t, e.key, lo)
				}
				k, err := coord.Encode(e.coords)
				require.NoError(t, err)
				require.Equal(t, k, e.key)
			}
		case *internalNode:
			require.LessOrEqual(t, len(x.children), tree.order)
			if isRoot {
				require.GreaterOrEqual(t, len(x.children), 2)
			} else {
				require.GreaterOrEqual(t, len(x.children), minFill)
			}
			for i, c := range x.children {
				require.Equal(t, c.node.maxKey(), c.bound, "stale bound")
				if i > 0 {
					require.Less(t, x.children[i-1].bound, c.bound)
				}
				childLo, childHasLo := lo, hasLo
				if i > 0 {
					childLo, childHasLo = x.children[i-1].bound, true
				}
				visit(c.node, depth+1, false, childLo, childHasLo)
			}
		default:
			t.Fatalf("unexpected node %T", n)
		}
	}
	visit(tree.root, 1, true, 0, false)
}

func TestNewBPTreeRejectsSmallOrder(t *testing.T) {
	_, err := NewBPTree(2)
	assert.Error(t, err)

	_, err = New(KindBPTree, func(o *Options) { o.BranchingFactor = 1 })
	assert.Error(t, err)

	tree, err := NewBPTree(MinBranchingFactor)
	require.NoError(t, err)
	assert.Equal(t, MinBranchingFactor, tree.BranchingFactor())
}

func TestBPTreeEmptyRootIsLeaf(t *testing.T) {
	tree, err := NewBPTree(DefaultBranchingFactor)
	require.NoError(t, err)

	_, ok := tree.root.(*leafNode)
	assert.True(t, ok)

	st := tree.Stats()
	assert.Equal(t, TreeStats{Height: 1, Leaves: 1}, st)

	n := 0
	for range tree.All() {
		n++
	}
	assert.Zero(t, n)
}

func TestBPTreeRootSplit(t *testing.T) {
	tree, err := NewBPTree(4)
	require.NoError(t, err)

	for i := range 4 {
		require.NoError(t, tree.Insert(coord.Coords{coord.Mode(i)}, float64(i+1)))
	}
	assert.Equal(t, 1, tree.Stats().Height)

	// Fifth entry overflows the root leaf.
	require.NoError(t, tree.Insert(coord.Coords{4}, 5))
	st := tree.Stats()
	assert.Equal(t, 2, st.Height)
	assert.Equal(t, 2, st.Leaves)
	assert.Equal(t, 1, st.InternalNodes)
	assert.Equal(t, 5, st.Entries)
	checkTree(t, tree)

	root := tree.root.(*internalNode)
	require.Len(t, root.children, 2)
	assert.Len(t, root.children[0].node.(*leafNode).entries, 3)
	assert.Len(t, root.children[1].node.(*leafNode).entries, 2)
	assert.Equal(t, coord.Key(2), root.children[0].bound)
	assert.Equal(t, coord.Key(4), root.children[1].bound)
}

func TestBPTreeUpdateInFullLeafDoesNotSplit(t *testing.T) {
	tree, err := NewBPTree(3)
	require.NoError(t, err)
	for i := range 3 {
		require.NoError(t, tree.Insert(coord.Coords{coord.Mode(i)}, 1))
	}
	require.NoError(t, tree.Insert(coord.Coords{1}, 7))

	assert.Equal(t, 1, tree.Stats().Height)
	assert.Equal(t, 3, tree.Len())
	v, ok, err := tree.Get(coord.Coords{1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestBPTreeRandomInsertsMatchOrdered(t *testing.T) {
	for _, order := range []int{3, 4, 5, 8, 32} {
		for _, seed := range []int64{1, 2, 3} {
			tree, err := NewBPTree(order)
			require.NoError(t, err)
			ref := NewOrdered(2)
			last := make(map[coord.Key]float64)

			rng := rand.New(rand.NewSource(seed))
			for i := range 3000 {
				c := coord.Coords{coord.Mode(rng.Intn(40)), coord.Mode(rng.Intn(40))}
				v := float64(i + 1)
				require.NoError(t, tree.Insert(c, v))
				require.NoError(t, ref.Insert(c, v))
				k, _ := coord.Encode(c)
				last[k] = v
			}
			checkTree(t, tree)
			assert.Equal(t, len(last), tree.Len())

			for k, want := range last {
				c, err := coord.Decode(2, k)
				require.NoError(t, err)
				got, ok, err := tree.Get(c)
				require.NoError(t, err)
				require.True(t, ok, "missing %v", c)
				require.Equal(t, want, got)
			}

			type kvPair struct {
				c coord.Coords
				v float64
			}
			var gotSeq, wantSeq []kvPair
			for c, v := range tree.All() {
				gotSeq = append(gotSeq, kvPair{c.Clone(), v})
			}
			for c, v := range ref.All() {
				wantSeq = append(wantSeq, kvPair{c.Clone(), v})
			}
			require.Equal(t, wantSeq, gotSeq, "order=%d seed=%d", order, seed)
		}
	}
}

func TestBPTreeSequentialPatterns(t *testing.T) {
	patterns := map[string]func(i, n int) coord.Mode{
		"ascending":  func(i, _ int) coord.Mode { return coord.Mode(i) },
		"descending": func(i, n int) coord.Mode { return coord.Mode(n - 1 - i) },
		"zigzag": func(i, n int) coord.Mode {
			if i%2 == 0 {
				return coord.Mode(i / 2)
			}
			return coord.Mode(n - 1 - i/2)
		},
	}

	for name, pat := range patterns {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			tree, err := NewBPTree(4)
			require.NoError(t, err)
			for i := range n {
				require.NoError(t, tree.Insert(coord.Coords{pat(i, n)}, float64(pat(i, n))+1))
			}
			checkTree(t, tree)

			st := tree.Stats()
			assert.Equal(t, n, st.Entries)
			bound := int(math.Ceil(math.Log(n)/math.Log(2))) + 1
			assert.LessOrEqual(t, st.Height, bound)

			i := 0
			for c, v := range tree.All() {
				require.Equal(t, coord.Coords{coord.Mode(i)}, c)
				require.Equal(t, float64(i+1), v)
				i++
			}
			assert.Equal(t, n, i)
		})
	}
}

func TestBPTreeCloneIsDeep(t *testing.T) {
	tree, err := NewBPTree(3)
	require.NoError(t, err)
	for i := range 100 {
		require.NoError(t, tree.Insert(coord.Coords{coord.Mode(i)}, 1))
	}
	c := tree.Clone().(*BPTree)
	for i := range 100 {
		require.NoError(t, c.Insert(coord.Coords{coord.Mode(i + 100)}, 2))
		require.NoError(t, c.Insert(coord.Coords{coord.Mode(i)}, 3))
	}
	checkTree(t, tree)
	checkTree(t, c)

	assert.Equal(t, 100, tree.Len())
	assert.Equal(t, 200, c.Len())
	for cc, v := range tree.All() {
		require.Less(t, cc[0], coord.Mode(100))
		require.Equal(t, 1.0, v)
	}
}
