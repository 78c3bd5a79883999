package sptensor

import (
	"sync/atomic"
	"time"
)

// Stats counts the work done by one operator run.
type Stats struct {
	Gets    uint64 // store lookups
	Inserts uint64 // store writes, including skipped zero writes
	Adds    uint64 // floating-point additions
	Muls    uint64 // floating-point multiplications
}

// Memory returns the number of store transactions.
func (s Stats) Memory() uint64 { return s.Gets + s.Inserts }

// ALU returns the number of arithmetic operations.
func (s Stats) ALU() uint64 { return s.Adds + s.Muls }

// Merge returns the element-wise sum of s and o.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Gets:    s.Gets + o.Gets,
		Inserts: s.Inserts + o.Inserts,
		Adds:    s.Adds + o.Adds,
		Muls:    s.Muls + o.Muls,
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// package metric/prom for a Prometheus implementation.
type MetricsCollector interface {
	// RecordTrace is called after each Trace. On failure stats covers the
	// work done before the error.
	RecordTrace(stats Stats, duration time.Duration, err error)

	// RecordContract is called after each Contract.
	RecordContract(stats Stats, duration time.Duration, err error)

	// RecordRead is called after a tensor is loaded. nnz is the number of
	// stored entries of the loaded tensor.
	RecordRead(nnz int, duration time.Duration, err error)

	// RecordWrite is called after a tensor is saved.
	RecordWrite(nnz int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTrace(Stats, time.Duration, error)    {}
func (NoopMetricsCollector) RecordContract(Stats, time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordWrite(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	TraceCount     atomic.Int64
	TraceErrors    atomic.Int64
	ContractCount  atomic.Int64
	ContractErrors atomic.Int64
	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	WriteCount     atomic.Int64
	WriteErrors    atomic.Int64
	Gets           atomic.Uint64
	Inserts        atomic.Uint64
	Adds           atomic.Uint64
	Muls           atomic.Uint64
	OpTotalNanos   atomic.Int64
}

// RecordTrace implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrace(stats Stats, duration time.Duration, err error) {
	b.TraceCount.Add(1)
	if err != nil {
		b.TraceErrors.Add(1)
	}
	b.recordOp(stats, duration)
}

// RecordContract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordContract(stats Stats, duration time.Duration, err error) {
	b.ContractCount.Add(1)
	if err != nil {
		b.ContractErrors.Add(1)
	}
	b.recordOp(stats, duration)
}

func (b *BasicMetricsCollector) recordOp(stats Stats, duration time.Duration) {
	b.Gets.Add(stats.Gets)
	b.Inserts.Add(stats.Inserts)
	b.Adds.Add(stats.Adds)
	b.Muls.Add(stats.Muls)
	b.OpTotalNanos.Add(duration.Nanoseconds())
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(_ int, _ time.Duration, err error) {
	b.ReadCount.Add(1)
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(_ int, _ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// Totals returns the accumulated operator counters.
func (b *BasicMetricsCollector) Totals() Stats {
	return Stats{
		Gets:    b.Gets.Load(),
		Inserts: b.Inserts.Load(),
		Adds:    b.Adds.Load(),
		Muls:    b.Muls.Load(),
	}
}
