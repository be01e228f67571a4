// Package aggregate computes descriptive statistics over the accumulated
// series and evaluates threshold rules into human-readable insight strings.
package aggregate

import (
	"fmt"

	"github.com/crimson-sun/gccscope/internal/constraint"
	"github.com/crimson-sun/gccscope/internal/decision"
	"github.com/crimson-sun/gccscope/internal/model"
)

// Loss estimator states as logged by the upstream sender.
const (
	lossStateIncreasing        = 0
	lossStateIncreasingPadding = 1
	lossStateDecreasing        = 2
	lossStateDelayBased        = 3
)

// CategoryStats describes one subsystem category: the record count plus
// total, average, and maximum of the category's magnitude field, and the
// single highest-magnitude event.
type CategoryStats struct {
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
	Max      float64 `json:"max"`
	TopEvent string  `json:"top_event,omitempty"`
}

// Summary is the aggregation output handed to the reporting layer.
type Summary struct {
	Categories           map[string]CategoryStats `json:"categories"`
	DecisionDistribution map[string]int           `json:"decision_distribution"`
	LossStateCounts      map[string]int           `json:"loss_state_counts,omitempty"`
	Insights             []string                 `json:"insights"`
}

// Engine evaluates category statistics and insight rules. Cutoffs are
// configuration, not computed; see Thresholds.
type Engine struct {
	thresholds Thresholds
}

// New creates an Engine with the given threshold configuration.
func New(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Summarize computes per-category statistics and insights over a completed
// parse run. Candidate loss records never enter estimate statistics.
func (e *Engine) Summarize(set *model.SeriesSet, chain []constraint.Record, timeline []decision.Point) Summary {
	s := Summary{
		Categories:           make(map[string]CategoryStats),
		DecisionDistribution: decision.Distribution(set.Decisions),
	}

	s.Categories["trendline"] = statsOf(set.Trendline,
		func(v model.TrendlineSample) float64 { return v.ModifiedTrend },
		func(v model.TrendlineSample) string {
			return fmt.Sprintf("t=%dms trend=%g threshold=%g state=%s", v.TimestampMs, v.ModifiedTrend, v.Threshold, v.State)
		})
	s.Categories["rtt"] = statsOf(set.Rtt,
		func(v model.RttSample) float64 { return float64(v.CorrectedRtt) },
		func(v model.RttSample) string {
			return fmt.Sprintf("t=%dms corrected_rtt=%dms limit=%dms", v.TimestampMs, v.CorrectedRtt, v.RttLimit)
		})
	estimates := lossEstimates(set.Loss)
	s.Categories["loss"] = statsOf(estimates,
		func(v model.LossRecord) float64 { return float64(v.BandwidthBps) },
		func(v model.LossRecord) string {
			return fmt.Sprintf("t=%dms bandwidth=%dbps state=%d obs=%d", v.TimestampMs, v.BandwidthBps, v.State, v.Observations)
		})
	s.Categories["probe"] = statsOf(set.Probe,
		func(v model.ProbeEvent) float64 { return float64(v.EstimateBps) },
		func(v model.ProbeEvent) string {
			return fmt.Sprintf("t=%dms cluster=%d estimate=%dbps source=%s", v.TimestampMs, v.ClusterID, v.EstimateBps, v.Source)
		})
	s.Categories["decision"] = statsOf(timeline,
		func(v decision.Point) float64 { return float64(v.Rank) },
		func(v decision.Point) string {
			return fmt.Sprintf("t=%dms reason=%s rank=%d", v.TimestampMs, v.Reason, v.Rank)
		})
	s.Categories["constraint"] = statsOf(chain,
		func(v constraint.Record) float64 { return float64(v.TotalReductionBps) },
		func(v constraint.Record) string {
			return fmt.Sprintf("t=%dms original=%dbps final=%dbps stage=%s", v.Apply.TimestampMs, v.Apply.OriginalBps, v.Apply.FinalBps, v.BindingStage)
		})
	s.Categories["pushback"] = statsOf(set.Pushbacks,
		func(v model.Pushback) float64 { return float64(v.ReductionBps) },
		func(v model.Pushback) string {
			return fmt.Sprintf("t=%dms reduction=%dbps (%.1f%%)", v.TimestampMs, v.ReductionBps, v.ReductionPct)
		})

	s.LossStateCounts = lossStateCounts(estimates)
	s.Insights = e.insights(set, chain)
	return s
}

// statsOf folds a series into CategoryStats using the category's magnitude
// and description functions.
func statsOf[T any](items []T, magnitude func(T) float64, describe func(T) string) CategoryStats {
	st := CategoryStats{Count: len(items)}
	if len(items) == 0 {
		return st
	}
	topIdx := 0
	for i, v := range items {
		mag := magnitude(v)
		st.Total += mag
		if mag > st.Max || i == 0 {
			st.Max = mag
			topIdx = i
		}
	}
	st.Average = st.Total / float64(len(items))
	st.TopEvent = describe(items[topIdx])
	return st
}

// lossStateCounts buckets estimates by controller state name; candidates
// carry no state and never enter the counts.
func lossStateCounts(estimates []model.LossRecord) map[string]int {
	if len(estimates) == 0 {
		return nil
	}
	out := make(map[string]int)
	for _, r := range estimates {
		out[lossStateName(r.State)]++
	}
	return out
}

func lossStateName(state int) string {
	switch state {
	case lossStateIncreasing:
		return "increasing"
	case lossStateIncreasingPadding:
		return "increasing_padding"
	case lossStateDecreasing:
		return "decreasing"
	case lossStateDelayBased:
		return "delay_based"
	}
	return fmt.Sprintf("state_%d", state)
}

func lossEstimates(records []model.LossRecord) []model.LossRecord {
	out := make([]model.LossRecord, 0, len(records))
	for _, r := range records {
		if r.Kind == model.LossEstimate {
			out = append(out, r)
		}
	}
	return out
}

// insights applies the fixed threshold rules. Wording is intentionally
// plain: these strings go straight into the operator-facing report.
func (e *Engine) insights(set *model.SeriesSet, chain []constraint.Record) []string {
	var out []string
	t := e.thresholds

	if share, ok := shareOf(set.Trendline, model.TrendlineSample.Overusing); ok && share > t.OverusingSharePct {
		out = append(out, fmt.Sprintf("delay overuse in %.1f%% of trendline samples (cutoff %.0f%%): queue buildup on the path", share, t.OverusingSharePct))
	}
	if share, ok := shareOf(set.Rtt, func(s model.RttSample) bool { return s.CorrectedRtt > s.RttLimit }); ok && share > t.RttAboveLimitSharePct {
		out = append(out, fmt.Sprintf("RTT above its backoff limit in %.1f%% of samples (cutoff %.0f%%): sustained round-trip inflation", share, t.RttAboveLimitSharePct))
	}
	estimates := lossEstimates(set.Loss)
	if share, ok := shareOf(estimates, func(r model.LossRecord) bool { return r.State == lossStateDecreasing }); ok && share > t.LossDecreasingSharePct {
		out = append(out, fmt.Sprintf("loss estimator decreasing in %.1f%% of estimates (cutoff %.0f%%): persistent packet loss", share, t.LossDecreasingSharePct))
	}
	if covered, clusters := probeClusterCoverage(set.Probe); clusters > 0 {
		pct := float64(covered) / float64(clusters) * 100
		if pct < t.ProbeClusterCoveragePct {
			out = append(out, fmt.Sprintf("probe success reached %.1f%% of %d probed cluster(s) (cutoff %.0f%%): most probes never complete", pct, clusters, t.ProbeClusterCoveragePct))
		}
	}
	if len(chain) > 0 {
		var sum float64
		anomalyCount := 0
		for _, rec := range chain {
			sum += rec.ReductionRatioPct
			if len(rec.Anomalies) > 0 {
				anomalyCount++
			}
		}
		mean := sum / float64(len(chain))
		if mean > t.MeanReductionRatioPct {
			out = append(out, fmt.Sprintf("constraints removed %.1f%% of the raw estimate on average (cutoff %.0f%%): the pipeline, not the estimators, bounds the rate", mean, t.MeanReductionRatioPct))
		}
		if anomalyCount > 0 {
			out = append(out, fmt.Sprintf("%d constraint snapshot(s) violate the clamp ordering invariant", anomalyCount))
		}
	}
	if len(set.Pushbacks) > 0 {
		var sum float64
		for _, p := range set.Pushbacks {
			sum += p.ReductionPct
		}
		mean := sum / float64(len(set.Pushbacks))
		if mean > t.PushbackReductionPct {
			out = append(out, fmt.Sprintf("congestion window pushback cut the rate by %.1f%% on average (cutoff %.0f%%)", mean, t.PushbackReductionPct))
		}
	}
	return out
}

// probeClusterCoverage counts the distinct probed clusters and how many of
// them recorded a success.
func probeClusterCoverage(events []model.ProbeEvent) (covered, clusters int) {
	seen := make(map[int]bool)
	succeeded := make(map[int]bool)
	for _, ev := range events {
		seen[ev.ClusterID] = true
		if ev.Source == model.ProbeSuccess || ev.Source == model.ProbeSuccessOld {
			succeeded[ev.ClusterID] = true
		}
	}
	return len(succeeded), len(seen)
}

// shareOf returns the percentage of items satisfying pred; ok is false for
// an empty series so absent subsystems trigger no rules.
func shareOf[T any](items []T, pred func(T) bool) (float64, bool) {
	if len(items) == 0 {
		return 0, false
	}
	n := 0
	for _, v := range items {
		if pred(v) {
			n++
		}
	}
	return float64(n) / float64(len(items)) * 100, true
}
