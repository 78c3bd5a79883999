// Package prom provides a Prometheus implementation of
// sptensor.MetricsCollector.
//
// Operators are counted by operation and status; the store accesses and
// floating-point operations they perform are counted by kind; latencies go
// into histograms.
//
//	reg := prometheus.NewRegistry()
//	mc := prom.New(reg)
//	out, err := sptensor.Contract(a, 1, b, 0, sptensor.WithMetricsCollector(mc))
package prom

import (
	"time"

	"github.com/hupe1980/sptensor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sptensor"

// Operation label values.
const (
	OpTrace    = "trace"
	OpContract = "contract"
	OpRead     = "read"
	OpWrite    = "write"
)

// Collector records operator and I/O metrics on a prometheus.Registerer.
// All methods are safe for concurrent use.
type Collector struct {
	// OpsTotal counts operations. Labels: op, status (success, error).
	OpsTotal *prometheus.CounterVec

	// OpDurationSeconds measures operation latency. Labels: op.
	OpDurationSeconds *prometheus.HistogramVec

	// WorkTotal counts store accesses and arithmetic performed by operators.
	// Labels: op, kind (get, insert, add, mul).
	WorkTotal *prometheus.CounterVec

	// EntriesTotal counts stored entries read or written. Labels: op.
	EntriesTotal *prometheus.CounterVec
}

var _ sptensor.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg. If reg is nil
// the default registerer is used.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		OpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of tensor operations by operation and status.",
		}, []string{"op", "status"}),
		OpDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of tensor operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		WorkTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_total",
			Help:      "Store accesses and floating-point operations performed by operators.",
		}, []string{"op", "kind"}),
		EntriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Stored entries of tensors read or written.",
		}, []string{"op"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *Collector) record(op string, duration time.Duration, err error) {
	c.OpsTotal.WithLabelValues(op, status(err)).Inc()
	c.OpDurationSeconds.WithLabelValues(op).Observe(duration.Seconds())
}

func (c *Collector) recordWork(op string, s sptensor.Stats) {
	c.WorkTotal.WithLabelValues(op, "get").Add(float64(s.Gets))
	c.WorkTotal.WithLabelValues(op, "insert").Add(float64(s.Inserts))
	c.WorkTotal.WithLabelValues(op, "add").Add(float64(s.Adds))
	c.WorkTotal.WithLabelValues(op, "mul").Add(float64(s.Muls))
}

// RecordTrace implements sptensor.MetricsCollector.
func (c *Collector) RecordTrace(stats sptensor.Stats, duration time.Duration, err error) {
	c.record(OpTrace, duration, err)
	c.recordWork(OpTrace, stats)
}

// RecordContract implements sptensor.MetricsCollector.
func (c *Collector) RecordContract(stats sptensor.Stats, duration time.Duration, err error) {
	c.record(OpContract, duration, err)
	c.recordWork(OpContract, stats)
}

// RecordRead implements sptensor.MetricsCollector.
func (c *Collector) RecordRead(nnz int, duration time.Duration, err error) {
	c.record(OpRead, duration, err)
	if err == nil {
		c.EntriesTotal.WithLabelValues(OpRead).Add(float64(nnz))
	}
}

// RecordWrite implements sptensor.MetricsCollector.
func (c *Collector) RecordWrite(nnz int, duration time.Duration, err error) {
	c.record(OpWrite, duration, err)
	if err == nil {
		c.EntriesTotal.WithLabelValues(OpWrite).Add(float64(nnz))
	}
}
