package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/coord"
)

// Values drawn by Value and Tensor are integers in [MinValue, MaxValue].
const (
	MinValue = 1
	MaxValue = 50
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Value returns a whole number in [MinValue, MaxValue] as a float64.
func (r *RNG) Value() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.valueLocked()
}

func (r *RNG) valueLocked() float64 {
	return float64(MinValue + r.rand.Intn(MaxValue-MinValue+1))
}

// Coords returns a uniformly drawn in-bounds coordinate for shape.
func (r *RNG) Coords(shape coord.Coords) coord.Coords {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := make(coord.Coords, len(shape))
	r.fillCoordsLocked(c, shape)
	return c
}

func (r *RNG) fillCoordsLocked(dst, shape coord.Coords) {
	for i, extent := range shape {
		dst[i] = coord.Mode(r.rand.Intn(int(extent)))
	}
}

// Volume returns the number of positions of shape as a float64, which
// cannot overflow for any valid shape.
func Volume(shape coord.Coords) float64 {
	v := 1.0
	for _, extent := range shape {
		v *= float64(extent)
	}
	return v
}

// Draws returns the number of random entries drawn for a density, which is
// volume * density rounded down.
func Draws(shape coord.Coords, density float64) int {
	return int(Volume(shape) * density)
}

// Tensor generates a random sparse tensor. It draws Draws(shape, density)
// coordinates uniformly with replacement and stores a value from Value at
// each one, so repeated draws overwrite and NNZ may be smaller.
func (r *RNG) Tensor(shape coord.Coords, density float64, optFns ...sptensor.Option) (*sptensor.Tensor, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("testutil: density %g not in [0, 1]", density)
	}

	t, err := sptensor.New(shape, optFns...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := Draws(shape, density)
	c := make(coord.Coords, len(shape))
	for range n {
		r.fillCoordsLocked(c, shape)
		if err := t.Insert(c, r.valueLocked()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Dense returns the value of every position of t keyed by the coordinate
// string, skipping zeros. It is a reference for checking operator results.
func Dense(t *sptensor.Tensor) map[string]float64 {
	out := make(map[string]float64)
	for c, v := range t.Entries() {
		if v != 0 {
			out[c.String()] = v
		}
	}
	return out
}
