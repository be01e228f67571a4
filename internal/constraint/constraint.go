// Package constraint reconstructs the per-snapshot constraint-application
// chain: each ConstraintApply record joined with the limit-update and
// pushback records near it in time, plus the derived reduction attribution.
//
// The intermediate values (AfterUpper, the config clamp, the limits) come
// from the log as-is; nothing is re-derived. Chain invariant violations are
// flagged as anomalies on the record, never corrected or dropped.
package constraint

import "github.com/crimson-sun/gccscope/internal/model"

// DefaultJoinToleranceMs is the default window for matching limit-update and
// pushback records to a constraint snapshot. Correlated lines are emitted
// from one upstream call site within a few milliseconds of each other, but
// exact timestamp equality is not guaranteed by the log.
const DefaultJoinToleranceMs = 100

// Binding upper-stage labels.
const (
	BindingNone     = "none"
	BindingDelay    = "delay"
	BindingReceiver = "receiver"
	BindingUpper    = "upper" // clamped, but neither recorded limit matches
)

// Record is one reconstructed link of the constraint chain.
type Record struct {
	Apply model.ConstraintApply `json:"apply"`

	TotalReductionBps   int64   `json:"total_reduction_bps"`   // Original - Final
	UpperReductionBps   int64   `json:"upper_reduction_bps"`   // Original - AfterUpper
	ConfigAdjustmentBps int64   `json:"config_adjustment_bps"` // AfterUpper - Final; negative when the min clamp raises
	ReductionRatioPct   float64 `json:"reduction_ratio_pct"`
	BindingStage        string  `json:"binding_stage"`

	// Nearest correlated records within the join tolerance; nil when absent.
	DelayLimit    *model.LimitUpdate       `json:"delay_limit,omitempty"`
	ReceiverLimit *model.LimitUpdate       `json:"receiver_limit,omitempty"`
	ConfigLimit   *model.ConfigLimitUpdate `json:"config_limit,omitempty"`
	Pushback      *model.Pushback          `json:"pushback,omitempty"`

	Anomalies []string `json:"anomalies,omitempty"`
}

// Reconstructor joins constraint snapshots with their surrounding limit
// updates by nearest timestamp within a tolerance window.
type Reconstructor struct {
	ToleranceMs int64
}

// New creates a Reconstructor. A tolerance of zero or below falls back to
// DefaultJoinToleranceMs.
func New(toleranceMs int64) *Reconstructor {
	if toleranceMs <= 0 {
		toleranceMs = DefaultJoinToleranceMs
	}
	return &Reconstructor{ToleranceMs: toleranceMs}
}

// Reconstruct derives one Record per ConstraintApply event in the set.
func (r *Reconstructor) Reconstruct(set *model.SeriesSet) []Record {
	records := make([]Record, 0, len(set.Constraints))
	for _, apply := range set.Constraints {
		rec := Record{
			Apply:               apply,
			TotalReductionBps:   apply.OriginalBps - apply.FinalBps,
			UpperReductionBps:   apply.OriginalBps - apply.AfterUpperBps,
			ConfigAdjustmentBps: apply.AfterUpperBps - apply.FinalBps,
			BindingStage:        bindingStage(apply),
		}
		if apply.OriginalBps > 0 {
			rec.ReductionRatioPct = float64(rec.TotalReductionBps) / float64(apply.OriginalBps) * 100
		}

		t := apply.TimestampMs
		rec.DelayLimit = nearest(set.DelayLimits, limitTs, t, r.ToleranceMs)
		rec.ReceiverLimit = nearest(set.ReceiverLimits, limitTs, t, r.ToleranceMs)
		rec.ConfigLimit = nearest(set.ConfigLimits, configTs, t, r.ToleranceMs)
		rec.Pushback = nearest(set.Pushbacks, pushbackTs, t, r.ToleranceMs)

		rec.Anomalies = anomalies(apply)
		records = append(records, rec)
	}
	return records
}

func bindingStage(a model.ConstraintApply) string {
	if a.AfterUpperBps >= a.OriginalBps {
		return BindingNone
	}
	switch a.UpperLimitBps {
	case a.DelayLimitBps:
		return BindingDelay
	case a.RecvLimitBps:
		return BindingReceiver
	}
	return BindingUpper
}

func anomalies(a model.ConstraintApply) []string {
	var out []string
	if a.FinalBps > a.OriginalBps {
		out = append(out, "final_exceeds_original")
	}
	if a.AfterUpperBps > a.OriginalBps {
		out = append(out, "after_upper_exceeds_original")
	}
	if a.FinalBps > a.AfterUpperBps {
		out = append(out, "final_exceeds_after_upper")
	}
	return out
}

func limitTs(u model.LimitUpdate) int64        { return u.TimestampMs }
func configTs(u model.ConfigLimitUpdate) int64 { return u.TimestampMs }
func pushbackTs(p model.Pushback) int64        { return p.TimestampMs }

// nearest returns a copy of the item closest in time to t within tol, or nil.
// Series are small and not guaranteed timestamp-sorted, so a linear scan is
// used rather than assuming order.
func nearest[T any](items []T, ts func(T) int64, t, tol int64) *T {
	var best *T
	var bestDist int64
	for i := range items {
		d := ts(items[i]) - t
		if d < 0 {
			d = -d
		}
		if d > tol {
			continue
		}
		if best == nil || d < bestDist {
			item := items[i]
			best = &item
			bestDist = d
		}
	}
	return best
}
