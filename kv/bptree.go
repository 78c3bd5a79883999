package kv

import (
	"fmt"
	"iter"
	"sort"

	"github.com/hupe1980/sptensor/coord"
)

const (
	// DefaultBranchingFactor is the B+Tree node capacity used by New.
	DefaultBranchingFactor = 32

	// MinBranchingFactor is the smallest capacity for which splitting keeps
	// both halves non-trivial.
	MinBranchingFactor = 3
)

// BPTree is a Store backed by an in-memory B+Tree.
//
// Leaves hold up to order entries sorted by key. Internal nodes hold up to
// order children, each tagged with the largest key reachable through it.
// The root is never nil: an empty tree is a single leaf with no entries.
// A full node splits into two halves of at least ceil(order/2) items and
// hands the new right sibling to its parent; a split that reaches the root
// grows the tree by one level. Deletion is not supported.
type BPTree struct {
	order int
	root  node
	size  int
}

var _ Store = (*BPTree)(nil)

// node is either *leafNode or *internalNode.
type node interface {
	maxKey() coord.Key
}

type leafNode struct {
	entries []entry
}

type internalNode struct {
	children []child
}

// child pairs a subtree with the largest key reachable through it.
type child struct {
	bound coord.Key
	node  node
}

func (l *leafNode) maxKey() coord.Key {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].key
}

func (n *internalNode) maxKey() coord.Key {
	return n.children[len(n.children)-1].bound
}

// NewBPTree creates an empty B+Tree with the given branching factor.
func NewBPTree(order int) (*BPTree, error) {
	if order < MinBranchingFactor {
		return nil, fmt.Errorf("kv: branching factor %d below minimum %d", order, MinBranchingFactor)
	}
	return &BPTree{
		order: order,
		root:  &leafNode{entries: make([]entry, 0, order)},
	}, nil
}

// BranchingFactor returns the node capacity of the tree.
func (t *BPTree) BranchingFactor() int { return t.order }

// Insert implements Store.
func (t *BPTree) Insert(c coord.Coords, v float64) error {
	e, err := newEntry(c, v)
	if err != nil {
		return err
	}

	pending, added := t.insert(t.root, e)
	if added {
		t.size++
	}
	if pending != nil {
		old := t.root
		children := make([]child, 0, t.order)
		children = append(children, child{bound: old.maxKey(), node: old}, *pending)
		t.root = &internalNode{children: children}
	}
	return nil
}

// insert places e below n. It returns the right half of n when n had to
// split, and whether a new entry was created (as opposed to updated).
func (t *BPTree) insert(n node, e entry) (*child, bool) {
	switch x := n.(type) {
	case *leafNode:
		i, found := x.search(e.key)
		if found {
			x.entries[i].value = e.value
			return nil, false
		}
		if len(x.entries) < t.order {
			x.entries = insertAt(x.entries, i, e)
			return nil, true
		}
		right := splitInto(&x.entries, i, e, t.order)
		sib := &leafNode{entries: right}
		return &child{bound: sib.maxKey(), node: sib}, true

	case *internalNode:
		i := x.route(e.key)
		pending, added := t.insert(x.children[i].node, e)
		x.children[i].bound = x.children[i].node.maxKey()
		if pending == nil {
			return nil, added
		}
		if len(x.children) < t.order {
			x.children = insertAt(x.children, i+1, *pending)
			return nil, added
		}
		right := splitInto(&x.children, i+1, *pending, t.order)
		sib := &internalNode{children: right}
		return &child{bound: sib.maxKey(), node: sib}, added

	default:
		panic(fmt.Sprintf("kv: unexpected node type %T", n))
	}
}

// insertAt inserts v at position i, shifting the tail right.
func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// splitInto merges v at position i into the full slice *s, keeps the lower
// half in *s and returns the upper half. With order+1 items the lower half
// gets ceil((order+1)/2) and the upper half floor((order+1)/2), both of
// which are at least ceil(order/2).
func splitInto[T any](s *[]T, i int, v T, order int) []T {
	merged := make([]T, 0, len(*s)+1)
	merged = append(merged, (*s)[:i]...)
	merged = append(merged, v)
	merged = append(merged, (*s)[i:]...)

	mid := (len(merged) + 1) / 2
	*s = append((*s)[:0], merged[:mid]...)

	right := make([]T, 0, order)
	return append(right, merged[mid:]...)
}

// search returns the position of k in the leaf, or the position where it
// would be inserted.
func (l *leafNode) search(k coord.Key) (int, bool) {
	i := sort.Search(len(l.entries), func(j int) bool { return l.entries[j].key >= k })
	return i, i < len(l.entries) && l.entries[i].key == k
}

// route picks the first child whose bound is at least k, falling back to
// the last child for keys beyond every bound.
func (n *internalNode) route(k coord.Key) int {
	i := sort.Search(len(n.children), func(j int) bool { return n.children[j].bound >= k })
	if i == len(n.children) {
		i--
	}
	return i
}

// Get implements Store.
func (t *BPTree) Get(c coord.Coords) (float64, bool, error) {
	k, err := coord.Encode(c)
	if err != nil {
		return 0, false, err
	}

	n := t.root
	for {
		switch x := n.(type) {
		case *internalNode:
			n = x.children[x.route(k)].node
		case *leafNode:
			i, found := x.search(k)
			if !found {
				return 0, false, nil
			}
			return x.entries[i].value, true, nil
		default:
			panic(fmt.Sprintf("kv: unexpected node type %T", n))
		}
	}
}

// All implements Store. Entries are yielded in ascending key order by a
// depth-first walk; no cursor state outlives the call.
func (t *BPTree) All() iter.Seq2[coord.Coords, float64] {
	return func(yield func(coord.Coords, float64) bool) {
		walk(t.root, yield)
	}
}

func walk(n node, yield func(coord.Coords, float64) bool) bool {
	switch x := n.(type) {
	case *leafNode:
		for _, e := range x.entries {
			if !yield(e.coords, e.value) {
				return false
			}
		}
	case *internalNode:
		for _, c := range x.children {
			if !walk(c.node, yield) {
				return false
			}
		}
	}
	return true
}

// Len implements Store.
func (t *BPTree) Len() int { return t.size }

// Kind implements Store.
func (t *BPTree) Kind() Kind { return KindBPTree }

// Clone implements Store.
func (t *BPTree) Clone() Store {
	return &BPTree{
		order: t.order,
		root:  cloneNode(t.root, t.order),
		size:  t.size,
	}
}

func cloneNode(n node, order int) node {
	switch x := n.(type) {
	case *leafNode:
		entries := make([]entry, len(x.entries), order)
		copy(entries, x.entries)
		return &leafNode{entries: entries}
	case *internalNode:
		children := make([]child, len(x.children), order)
		for i, c := range x.children {
			children[i] = child{bound: c.bound, node: cloneNode(c.node, order)}
		}
		return &internalNode{children: children}
	default:
		panic(fmt.Sprintf("kv: unexpected node type %T", n))
	}
}

// TreeStats describes the shape of a B+Tree.
type TreeStats struct {
	Height        int // levels including the leaf level
	InternalNodes int
	Leaves        int
	Entries       int
}

// Nodes returns the total node count.
func (s TreeStats) Nodes() int { return s.InternalNodes + s.Leaves }

// Stats walks the tree and reports its shape.
func (t *BPTree) Stats() TreeStats {
	var st TreeStats
	var visit func(n node, depth int)
	visit = func(n node, depth int) {
		if depth > st.Height {
			st.Height = depth
		}
		switch x := n.(type) {
		case *leafNode:
			st.Leaves++
			st.Entries += len(x.entries)
		case *internalNode:
			st.InternalNodes++
			for _, c := range x.children {
				visit(c.node, depth+1)
			}
		}
	}
	visit(t.root, 1)
	return st
}
