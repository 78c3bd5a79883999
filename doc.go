// Package sptensor stores and manipulates sparse multi-dimensional arrays.
//
// A Tensor has a fixed shape and keeps only its nonzero entries in a
// pluggable key-value store (see package kv). Coordinates are packed into
// 64-bit keys (see package coord), which gives every ordered store a total
// order over coordinates of the same length.
//
// # Quick Start
//
//	a, _ := sptensor.New(coord.Coords{2, 2})
//	_ = a.Insert(coord.Coords{0, 0}, 1)
//	_ = a.Insert(coord.Coords{1, 1}, 1)
//
//	tr, _ := sptensor.Trace(a, 0, 1) // order-0 tensor holding 2
//	v, _ := tr.Get(coord.Coords{})
//
// # Stores
//
// The backing store is chosen per tensor and stays fixed for its lifetime:
//
//	sptensor.New(shape, sptensor.WithStore(kv.KindBPTree)) // default, ordered
//	sptensor.New(shape, sptensor.WithStore(kv.KindOrdered))
//	sptensor.New(shape, sptensor.WithStore(kv.KindHash))   // unordered
//
// All three produce identical results; they differ only in iteration order
// and cost.
//
// # Operators
//
// Trace sums a tensor over two axes of equal extent. Contract sums the
// product of two tensors over one axis each. Both enumerate the full free
// index space of the result, so their cost grows with the product of the
// free extents. They run synchronously with no cancellation.
//
// # Zero handling
//
// Inserting zero is a no-op. Add writes through to an existing entry even
// when the sum becomes zero, so such an entry stays stored as an explicit
// zero. Get cannot tell the two apart; Support and Equal ignore explicit
// zeros.
//
// Tensors are not safe for concurrent use.
package sptensor
