package sptensor

import (
	"time"

	"github.com/hupe1980/sptensor/coord"
	"github.com/hupe1980/sptensor/internal/odometer"
)

// Trace sums t over the axis pair (modeA, modeB). The result drops both
// axes and keeps the remaining ones in order; each of its entries is
//
//	sum over k of t[..., k (at modeA), ..., k (at modeB), ...]
//
// Both modes must be distinct, in range and of equal extent, otherwise an
// error wrapping ErrModeMismatch is returned. The result uses t's options
// overridden by optFns.
func Trace(t *Tensor, modeA, modeB int, optFns ...Option) (*Tensor, error) {
	if t == nil {
		return nil, ErrNilTensor
	}
	opts := t.opts.with(optFns)

	start := time.Now()
	out, stats, err := trace(t, modeA, modeB, opts)
	elapsed := time.Since(start)

	opts.logger.LogTrace(modeA, modeB, stats, elapsed, err)
	opts.metricsCollector.RecordTrace(stats, elapsed, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func trace(t *Tensor, modeA, modeB int, opts options) (*Tensor, Stats, error) {
	var stats Stats

	order := t.Order()
	switch {
	case modeA < 0 || modeB < 0 || modeA >= order || modeB >= order:
		return nil, stats, &ModeError{Op: "trace", ModeA: modeA, ModeB: modeB, Reason: "mode out of range"}
	case modeA == modeB:
		return nil, stats, &ModeError{Op: "trace", ModeA: modeA, ModeB: modeB, Reason: "modes must differ"}
	case t.shape[modeA] != t.shape[modeB]:
		return nil, stats, &ModeError{Op: "trace", ModeA: modeA, ModeB: modeB, ExtentA: t.shape[modeA], ExtentB: t.shape[modeB]}
	}

	out, err := newTensor(odometer.Drop(t.shape, modeA, modeB), opts)
	if err != nil {
		return nil, stats, err
	}

	kmax := t.shape[modeA]
	for idx := range odometer.Walk(t.shape, modeA, modeB) {
		var acc float64
		for k := coord.Mode(0); k < kmax; k++ {
			idx[modeA], idx[modeB] = k, k
			v, err := t.Get(idx)
			if err != nil {
				return nil, stats, err
			}
			stats.Gets++
			acc += v
			stats.Adds++
		}
		if err := out.Insert(odometer.Drop(idx, modeA, modeB), acc); err != nil {
			return nil, stats, err
		}
		stats.Inserts++
	}
	return out, stats, nil
}

// Contract sums the product of a and b over a's modeA and b's modeB. The
// result's axes are a's remaining axes followed by b's remaining axes; each
// of its entries is
//
//	sum over k of a[..., k (at modeA), ...] * b[..., k (at modeB), ...]
//
// The modes must be in range and of equal extent, otherwise an error
// wrapping ErrModeMismatch is returned. The result uses a's options
// overridden by optFns.
func Contract(a *Tensor, modeA int, b *Tensor, modeB int, optFns ...Option) (*Tensor, error) {
	if a == nil || b == nil {
		return nil, ErrNilTensor
	}
	opts := a.opts.with(optFns)

	start := time.Now()
	out, stats, err := contract(a, modeA, b, modeB, opts)
	elapsed := time.Since(start)

	opts.logger.LogContract(modeA, modeB, stats, elapsed, err)
	opts.metricsCollector.RecordContract(stats, elapsed, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func contract(a *Tensor, modeA int, b *Tensor, modeB int, opts options) (*Tensor, Stats, error) {
	var stats Stats

	switch {
	case modeA < 0 || modeA >= a.Order() || modeB < 0 || modeB >= b.Order():
		return nil, stats, &ModeError{Op: "contract", ModeA: modeA, ModeB: modeB, Reason: "mode out of range"}
	case a.shape[modeA] != b.shape[modeB]:
		return nil, stats, &ModeError{Op: "contract", ModeA: modeA, ModeB: modeB, ExtentA: a.shape[modeA], ExtentB: b.shape[modeB]}
	}

	// The joint index space is a's axes followed by b's; the two contracted
	// positions are held fixed by the odometer.
	split := a.Order()
	extents := make(coord.Coords, 0, a.Order()+b.Order())
	extents = append(extents, a.shape...)
	extents = append(extents, b.shape...)
	fixedB := split + modeB

	out, err := newTensor(odometer.Drop(extents, modeA, fixedB), opts)
	if err != nil {
		return nil, stats, err
	}

	ac := make(coord.Coords, a.Order())
	bc := make(coord.Coords, b.Order())
	kmax := a.shape[modeA]
	for idx := range odometer.Walk(extents, modeA, fixedB) {
		copy(ac, idx[:split])
		copy(bc, idx[split:])

		var acc float64
		for k := coord.Mode(0); k < kmax; k++ {
			ac[modeA], bc[modeB] = k, k
			va, err := a.Get(ac)
			if err != nil {
				return nil, stats, err
			}
			vb, err := b.Get(bc)
			if err != nil {
				return nil, stats, err
			}
			stats.Gets += 2
			acc += va * vb
			stats.Muls++
			stats.Adds++
		}
		if err := out.Insert(odometer.Drop(idx, modeA, fixedB), acc); err != nil {
			return nil, stats, err
		}
		stats.Inserts++
	}
	return out, stats, nil
}
