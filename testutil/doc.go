// Package testutil provides testing utilities for sptensor.
//
// This package is intended for use in tests, benchmarks and the tensor
// generator. It provides a seeded, thread-safe RNG and helpers for drawing
// random coordinates and random sparse tensors.
//
// # Random Tensors
//
//	rng := testutil.NewRNG(seed)
//	t, err := rng.Tensor(coord.Coords{10, 10}, 0.05) // about 5 entries
package testutil
