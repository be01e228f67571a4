package gccscope

import (
	"github.com/crimson-sun/gccscope/internal/aggregate"
	"github.com/crimson-sun/gccscope/internal/constraint"
	"github.com/crimson-sun/gccscope/internal/decision"
	"github.com/crimson-sun/gccscope/internal/model"
	"github.com/crimson-sun/gccscope/internal/report"
)

// The analysis output types are aliased here so consumers can name them
// without reaching into internal packages. These are the stable surface;
// internal representations evolve behind them.

// Report is the complete output of one analysis run.
type Report = report.Report

// SeriesSet holds every per-subsystem series from one parse run.
type SeriesSet = model.SeriesSet

// Event types, one per recognized line grammar.
type (
	TrendlineSample   = model.TrendlineSample
	RttSample         = model.RttSample
	LossRecord        = model.LossRecord
	ProbeEvent        = model.ProbeEvent
	DecisionSnapshot  = model.DecisionSnapshot
	ConstraintApply   = model.ConstraintApply
	LimitUpdate       = model.LimitUpdate
	ConfigLimitUpdate = model.ConfigLimitUpdate
	Pushback          = model.Pushback
	DelayDecision     = model.DelayDecision
)

// LossKind tags the two record shapes sharing the loss series.
type LossKind = model.LossKind

// Loss record kinds.
const (
	LossEstimate   = model.LossEstimate
	LossCandidates = model.LossCandidates
)

// DecisionPoint is one step of the priority-ranked decision timeline.
type DecisionPoint = decision.Point

// ChainRecord is one reconstructed link of the constraint chain.
type ChainRecord = constraint.Record

// Summary is the aggregated statistics and insight output.
type Summary = aggregate.Summary

// CategoryStats describes one subsystem category.
type CategoryStats = aggregate.CategoryStats

// Thresholds are the insight-rule cutoffs.
type Thresholds = aggregate.Thresholds

// DefaultThresholds returns the stock insight cutoffs.
func DefaultThresholds() Thresholds {
	return aggregate.DefaultThresholds()
}
