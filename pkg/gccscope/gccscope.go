package gccscope

import (
	"fmt"
	"io"

	"github.com/crimson-sun/gccscope/internal/aggregate"
	"github.com/crimson-sun/gccscope/internal/constraint"
	"github.com/crimson-sun/gccscope/internal/decision"
	"github.com/crimson-sun/gccscope/internal/parse"
	"github.com/crimson-sun/gccscope/internal/report"
)

// Analyzer turns a GCC bandwidth-estimation log into aligned typed series,
// a priority-ranked decision timeline, a reconstructed constraint chain, and
// a summary with threshold insights.
//
// An Analyzer holds no per-run state; it is safe to reuse and to run
// concurrently on independent inputs.
type Analyzer struct {
	parser        *parse.Parser
	reconstructor *constraint.Reconstructor
	aggregator    *aggregate.Engine
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyzer{
		parser:        parse.New(),
		reconstructor: constraint.New(o.joinToleranceMs),
		aggregator:    aggregate.New(o.thresholds),
	}
}

// AnalyzeFile runs the full analysis over a log file. A missing or
// unreadable file fails the run; no partial report is produced.
func (a *Analyzer) AnalyzeFile(path string) (*Report, error) {
	set, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("gccscope: %w", err)
	}
	return a.finish(path, set), nil
}

// Analyze runs the full analysis over an already-open log stream. The
// source string labels the report only.
func (a *Analyzer) Analyze(r io.Reader, source string) (*Report, error) {
	set, err := a.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("gccscope: %w", err)
	}
	return a.finish(source, set), nil
}

// finish post-processes a completed parse pass: decision ranking, chain
// reconstruction, then aggregation over everything.
func (a *Analyzer) finish(source string, set *SeriesSet) *Report {
	timeline := decision.Timeline(set.Decisions)
	chain := a.reconstructor.Reconstruct(set)
	summary := a.aggregator.Summarize(set, chain, timeline)
	return report.New(source, set, timeline, chain, summary)
}
