package sptensor

import (
	"fmt"
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/sptensor/coord"
	"github.com/hupe1980/sptensor/kv"
)

// Tensor is a sparse tensor: a shape plus a store of nonzero entries.
type Tensor struct {
	shape coord.Coords
	store kv.Store
	opts  options
}

// New creates a tensor of the given shape with no stored entries, so every
// in-bounds Get returns zero.
func New(shape coord.Coords, optFns ...Option) (*Tensor, error) {
	return newTensor(shape, defaultOptions().with(optFns))
}

func newTensor(shape coord.Coords, opts options) (*Tensor, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	store, err := opts.newStore()
	if err != nil {
		return nil, err
	}
	return &Tensor{
		shape: shape.Clone(),
		store: store,
		opts:  opts,
	}, nil
}

func validateShape(shape coord.Coords) error {
	if len(shape) > coord.MaxOrder {
		return fmt.Errorf("%w: order %d exceeds maximum %d", ErrBadShape, len(shape), coord.MaxOrder)
	}
	for axis, extent := range shape {
		if extent == 0 || extent > coord.MaxMode+1 {
			return fmt.Errorf("%w: extent %d at axis %d not in [1, %d]", ErrBadShape, extent, axis, coord.MaxMode+1)
		}
	}
	return nil
}

// Scalar creates an order-0 tensor holding v.
func Scalar(v float64, optFns ...Option) (*Tensor, error) {
	t, err := New(nil, optFns...)
	if err != nil {
		return nil, err
	}
	if err := t.Insert(coord.Coords{}, v); err != nil {
		return nil, err
	}
	return t, nil
}

// Order returns the number of axes.
func (t *Tensor) Order() int { return len(t.shape) }

// Shape returns a copy of the per-axis extents.
func (t *Tensor) Shape() coord.Coords { return t.shape.Clone() }

// NNZ returns the number of stored entries, including explicit zeros
// produced by Add.
func (t *Tensor) NNZ() int { return t.store.Len() }

// Store returns the backing store. Writing to it bypasses bounds checks.
func (t *Tensor) Store() kv.Store { return t.store }

func (t *Tensor) check(c coord.Coords) error {
	if len(c) != len(t.shape) {
		return fmt.Errorf("%w: %d coordinates for order %d", ErrDimensionMismatch, len(c), len(t.shape))
	}
	for axis, idx := range c {
		if idx >= t.shape[axis] {
			return &BoundsError{Axis: axis, Index: idx, Extent: t.shape[axis]}
		}
	}
	return nil
}

// Insert stores v at c. Inserting zero is a no-op.
func (t *Tensor) Insert(c coord.Coords, v float64) error {
	if err := t.check(c); err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	return t.store.Insert(c, v)
}

// Get returns the value at c, or zero when nothing is stored there.
func (t *Tensor) Get(c coord.Coords) (float64, error) {
	if err := t.check(c); err != nil {
		return 0, err
	}
	v, _, err := t.store.Get(c)
	return v, err
}

// Add adds v to the value at c. An existing entry is overwritten with the
// sum even when the sum is zero, leaving an explicit zero in the store.
func (t *Tensor) Add(c coord.Coords, v float64) error {
	if err := t.check(c); err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	cur, ok, err := t.store.Get(c)
	if err != nil {
		return err
	}
	if !ok {
		return t.store.Insert(c, v)
	}
	return t.store.Insert(c, cur+v)
}

// Entries yields every stored entry in the store's iteration order.
// The yielded coordinates must not be modified.
func (t *Tensor) Entries() iter.Seq2[coord.Coords, float64] {
	return t.store.All()
}

// Clone returns a tensor with the same shape and options and an
// independent copy of the store.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		shape: t.shape.Clone(),
		store: t.store.Clone(),
		opts:  t.opts,
	}
}

// Support returns the set of keys whose stored value is nonzero.
func (t *Tensor) Support() *roaring64.Bitmap {
	bm := roaring64.New()
	for c, v := range t.store.All() {
		if v == 0 {
			continue
		}
		k, err := coord.Encode(c)
		if err != nil {
			continue // unreachable for a validated shape
		}
		bm.Add(uint64(k))
	}
	return bm
}

// Equal reports whether t and o have the same shape and the same nonzero
// entries. Store kinds and explicit zeros are ignored.
func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.shape.Equal(o.shape) {
		return false
	}
	if !t.Support().Equals(o.Support()) {
		return false
	}
	for c, v := range t.store.All() {
		if v == 0 {
			continue
		}
		w, _, err := o.store.Get(c)
		if err != nil || w != v {
			return false
		}
	}
	return true
}

// String renders the shape followed by one line per stored entry.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "shape is %s\ncontents is:", t.shape)
	for c, v := range t.store.All() {
		fmt.Fprintf(&sb, "\n  %s = %g", c, v)
	}
	sb.WriteByte('\n')
	return sb.String()
}
