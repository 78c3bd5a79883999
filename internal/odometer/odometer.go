// Package odometer enumerates multi-index spaces by increment-with-carry.
package odometer

import (
	"iter"
	"slices"

	"github.com/hupe1980/sptensor/coord"
)

// Walk yields every combination of indices below extents, skipping the
// axis positions listed in fixed. The last free axis moves fastest; when
// it reaches its extent it resets to zero and carries into the next free
// axis to its left. Fixed positions are left at zero and never touched,
// so callers may overwrite them inside the loop body.
//
// The yielded slice is reused between iterations and must not be retained.
// When every axis is fixed the space has exactly one point. Any free axis
// with extent zero makes the space empty. Each call to the returned
// sequence restarts from the all-zero combination.
func Walk(extents coord.Coords, fixed ...int) iter.Seq[coord.Coords] {
	free := make([]int, 0, len(extents))
	for axis := range extents {
		if !slices.Contains(fixed, axis) {
			free = append(free, axis)
		}
	}

	return func(yield func(coord.Coords) bool) {
		for _, axis := range free {
			if extents[axis] == 0 {
				return
			}
		}

		idx := make(coord.Coords, len(extents))
		for {
			if !yield(idx) {
				return
			}
			if !advance(idx, extents, free) {
				return
			}
		}
	}
}

// advance increments idx by one step. It returns false after the most
// significant free axis carries out.
func advance(idx, extents coord.Coords, free []int) bool {
	for i := len(free) - 1; i >= 0; i-- {
		axis := free[i]
		idx[axis]++
		if idx[axis] < extents[axis] {
			return true
		}
		idx[axis] = 0
	}
	return false
}

// Drop returns idx with the fixed positions removed, preserving the order
// of the remaining axes.
func Drop(idx coord.Coords, fixed ...int) coord.Coords {
	out := make(coord.Coords, 0, len(idx))
	for axis, v := range idx {
		if !slices.Contains(fixed, axis) {
			out = append(out, v)
		}
	}
	return out
}
