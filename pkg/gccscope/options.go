package gccscope

import (
	"github.com/crimson-sun/gccscope/internal/aggregate"
	"github.com/crimson-sun/gccscope/internal/constraint"
)

type options struct {
	joinToleranceMs int64
	thresholds      aggregate.Thresholds
}

// Option configures an Analyzer.
type Option func(*options)

func defaultOptions() options {
	return options{
		joinToleranceMs: constraint.DefaultJoinToleranceMs,
		thresholds:      aggregate.DefaultThresholds(),
	}
}

// WithJoinTolerance sets the window, in milliseconds, for matching
// limit-update and pushback records to a constraint snapshot by nearest
// timestamp. Default: 100ms.
func WithJoinTolerance(ms int64) Option {
	return func(o *options) {
		o.joinToleranceMs = ms
	}
}

// WithThresholds replaces the insight-rule cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(o *options) {
		o.thresholds = t
	}
}
