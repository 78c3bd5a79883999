package sptensor

import (
	"github.com/hupe1980/sptensor/kv"
)

type options struct {
	kind             kv.Kind
	branchingFactor  int
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		kind:             kv.KindBPTree,
		branchingFactor:  kv.DefaultBranchingFactor,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

func (o options) with(optFns []Option) options {
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

func (o options) newStore() (kv.Store, error) {
	return kv.New(o.kind, func(so *kv.Options) {
		so.BranchingFactor = o.branchingFactor
	})
}

// Option configures tensor construction and operator results.
//
// Operators start from the options of their first operand, so a result
// uses the same store kind, logger and collector unless overridden.
type Option func(*options)

// WithStore selects the backing store kind. The default is kv.KindBPTree.
func WithStore(kind kv.Kind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithBranchingFactor sets the B+Tree node capacity (default 32, minimum 3).
// It has no effect on other store kinds.
func WithBranchingFactor(n int) Option {
	return func(o *options) {
		o.branchingFactor = n
	}
}

// WithLogger sets the logger used by operators. If nil is passed, logging
// is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after each operator run.
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
