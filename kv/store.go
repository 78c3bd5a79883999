package kv

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/sptensor/coord"
)

// Kind selects a Store implementation.
type Kind uint8

const (
	// KindBPTree selects the B+Tree engine.
	KindBPTree Kind = iota
	// KindOrdered selects the balanced ordered map.
	KindOrdered
	// KindHash selects the unordered hash map.
	KindHash
)

// Kinds lists every available store kind.
var Kinds = []Kind{KindBPTree, KindOrdered, KindHash}

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBPTree:
		return "bptree"
	case KindOrdered:
		return "ordered"
	case KindHash:
		return "hash"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Ordered reports whether stores of this kind iterate in ascending key order.
func (k Kind) Ordered() bool { return k != KindHash }

// ParseKind parses a kind name as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("kv: unknown store kind %q", s)
}

// Store is the capability every tensor backing store provides.
type Store interface {
	// Insert upserts the value stored at c.
	Insert(c coord.Coords, v float64) error

	// Get returns the value stored at c. A missing entry is reported with
	// ok == false and a nil error.
	Get(c coord.Coords) (v float64, ok bool, err error)

	// All yields every stored entry. Each call starts a fresh enumeration.
	// Ordered kinds yield ascending by key. The yielded coordinates are
	// owned by the store and must not be modified.
	All() iter.Seq2[coord.Coords, float64]

	// Len returns the number of stored entries.
	Len() int

	// Kind returns the implementation kind.
	Kind() Kind

	// Clone returns an independent copy of the store.
	Clone() Store
}

// Options configures store construction.
type Options struct {
	// BranchingFactor is the maximum number of entries (leaves) or children
	// (internal nodes) per B+Tree node. Must be at least 3.
	BranchingFactor int

	// Degree is the google/btree degree used by the ordered store.
	Degree int
}

// DefaultOptions holds the defaults used by New.
var DefaultOptions = Options{
	BranchingFactor: DefaultBranchingFactor,
	Degree:          32,
}

// New returns an empty store of the given kind.
func New(kind Kind, optFns ...func(o *Options)) (Store, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	switch kind {
	case KindBPTree:
		return NewBPTree(opts.BranchingFactor)
	case KindOrdered:
		return NewOrdered(opts.Degree), nil
	case KindHash:
		return NewHash(), nil
	default:
		return nil, fmt.Errorf("kv: unknown store kind %d", kind)
	}
}

// entry is one stored (coordinate, value) pair together with its packed key.
type entry struct {
	key    coord.Key
	coords coord.Coords
	value  float64
}

func newEntry(c coord.Coords, v float64) (entry, error) {
	k, err := coord.Encode(c)
	if err != nil {
		return entry{}, err
	}
	return entry{key: k, coords: c.Clone(), value: v}, nil
}
