// Package pattern holds the ordered registry of line recognizers for the
// GCC bandwidth-estimation log format. Registry order is the dispatch
// precedence: several grammars are prefixes of others (the legacy probe
// formats would match their timestamped counterparts), so the first matching
// entry wins and no later entry is tried.
package pattern

import (
	"regexp"

	"github.com/crimson-sun/gccscope/internal/model"
)

// Carry is the carry-forward timestamp available to grammars whose line
// format omits one. Known is false until the parse run has seen any
// timestamped line.
type Carry struct {
	Ms    int64
	Known bool
}

// Entry is one recognizer: a named grammar plus the builder that converts
// its capture groups into a typed event appended to the series set.
// Emit reports whether an event was recorded; grammars that require a
// carried-forward timestamp return false when none is available yet.
type Entry struct {
	Name string
	Re   *regexp.Regexp
	Emit func(m []string, carry Carry, dst *model.SeriesSet) bool
}

var (
	reTrendline = regexp.MustCompile(`\[Trendline\] Time: (\d+) ms.*?Modified trend: ([^,]+), Threshold: ([^,]+), State: (\w+)`)
	reRtt       = regexp.MustCompile(`\[RttBWE-Update\] Time: (\d+) ms, PropagationRtt: (\d+) ms, CorrectedRtt: (\d+) ms, RttLimit: (\d+) ms, AboveLimit: (\w+)`)
	reLoss      = regexp.MustCompile(`\[LossBWE-Estimate\] Time: (\d+) ms, State: (\d+), Bandwidth: (\d+) bps, Observations: (\d+)`)
	reLossCand  = regexp.MustCompile(`\[LossBWE-Candidates\] Time: (\d+) ms, Candidate Bandwidths \(kbps\): (.+)`)
	reDelayDec  = regexp.MustCompile(`\[DelayBWE-Decision\] Time: (\d+) ms.*?New bitrate: (\d+) bps.*?Probe: (\w+)`)

	reProbeResult  = regexp.MustCompile(`\[ProbeBWE-Result\] Time: (\d+) ms, Cluster ID: (\d+), Final estimate: (\d+) bps`)
	reProbeSuccess = regexp.MustCompile(`\[ProbeBWE-Success\] Time: (\d+) ms, Cluster ID: (\d+), Send rate: (\d+) bps`)
	// Legacy formats without inline timestamps. Must sit after the
	// timestamped variants in the registry.
	reProbeResultOld  = regexp.MustCompile(`\[ProbeBWE-Result\] Cluster ID: (\d+), Final estimate: (\d+) bps`)
	reProbeSuccessOld = regexp.MustCompile(`\[ProbeBWE-Success\] Cluster ID: (\d+), Send rate: (\d+) bps`)

	reDecision = regexp.MustCompile(`\[GCC-DECISION-SNAPSHOT\] at (\d+)ms \| DelayState: (\w+), DelayTargetBps: (\d+) \| RttBackoff: (\w+) \| ProbeResultBps: (\d+) \| BweTargetBps: (\d+) \| AckedBitrateBps: (\d+) \| FinalTargetBps: (\d+) \| DecisionReason: (\w+) \| Updated: (\w+)`)

	reConstraint  = regexp.MustCompile(`\[BWE-ConstraintApply\] Time: (\d+) ms, Original: (\d+) bps, UpperLimit: (\d+) bps, AfterUpper: (\d+) bps, MinConfig: (\d+) bps, Final: (\d+) bps, DelayLimit: (\d+) bps, ReceiverLimit: (\d+) bps, MaxConfig: (\d+) bps`)
	reDelayLimit  = regexp.MustCompile(`\[BWE-DelayLimit\] Time: (\d+) ms, OldLimit: (\d+) bps, NewLimit: (\d+) bps, CurrentTarget: (\d+) bps`)
	reRecvLimit   = regexp.MustCompile(`\[BWE-ReceiverLimit\] Time: (\d+) ms, OldLimit: (\d+) bps, NewLimit: (\d+) bps, CurrentTarget: (\d+) bps`)
	reConfigLimit = regexp.MustCompile(`\[BWE-ConfigLimit\] MinBitrate: (\d+) -> (\d+) bps, MaxBitrate: (\d+) -> (\d+) bps, CurrentTarget: (\d+) bps`)
	rePushback    = regexp.MustCompile(`\[BWE-CongestionWindowPushback\] Time: (\d+) ms, OriginalRate: (\d+) bps, PushbackRate: (\d+) bps, MinBitrate: (\d+) bps, Reduction: (\d+) bps, ReductionRatio: ([^%]+)%`)
)

// Registry returns the recognizers in dispatch-precedence order.
func Registry() []Entry {
	return []Entry{
		{"trendline", reTrendline, emitTrendline},
		{"rtt_update", reRtt, emitRtt},
		{"loss_estimate", reLoss, emitLoss},
		{"loss_candidates", reLossCand, emitLossCandidates},
		{"delay_decision", reDelayDec, emitDelayDecision},
		{"probe_result", reProbeResult, emitProbe(model.ProbeResult)},
		{"probe_success", reProbeSuccess, emitProbe(model.ProbeSuccess)},
		{"probe_result_old", reProbeResultOld, emitProbeOld(model.ProbeResultOld)},
		{"probe_success_old", reProbeSuccessOld, emitProbeOld(model.ProbeSuccessOld)},
		{"decision_snapshot", reDecision, emitDecision},
		{"constraint_apply", reConstraint, emitConstraint},
		{"delay_limit", reDelayLimit, emitDelayLimit},
		{"receiver_limit", reRecvLimit, emitReceiverLimit},
		{"config_limit", reConfigLimit, emitConfigLimit},
		{"pushback", rePushback, emitPushback},
	}
}

func emitTrendline(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Trendline = append(dst.Trendline, model.TrendlineSample{
		TimestampMs:   parseInt(m[1]),
		ModifiedTrend: parseFloat(m[2]),
		Threshold:     parseFloat(m[3]),
		State:         m[4],
	})
	return true
}

func emitRtt(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Rtt = append(dst.Rtt, model.RttSample{
		TimestampMs:  parseInt(m[1]),
		CorrectedRtt: parseInt(m[3]),
		RttLimit:     parseInt(m[4]),
		AboveLimit:   m[5] == "true",
	})
	return true
}

func emitLoss(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Loss = append(dst.Loss, model.LossRecord{
		TimestampMs:  parseInt(m[1]),
		Kind:         model.LossEstimate,
		State:        int(parseInt(m[2])),
		BandwidthBps: parseInt(m[3]),
		Observations: int(parseInt(m[4])),
	})
	return true
}

func emitLossCandidates(m []string, _ Carry, dst *model.SeriesSet) bool {
	candidates := parseFloatList(m[2])
	var maxKbps float64
	for _, c := range candidates {
		if c > maxKbps {
			maxKbps = c
		}
	}
	dst.Loss = append(dst.Loss, model.LossRecord{
		TimestampMs:    parseInt(m[1]),
		Kind:           model.LossCandidates,
		BandwidthBps:   int64(maxKbps * 1000),
		Observations:   len(candidates),
		CandidatesKbps: candidates,
	})
	return true
}

func emitDelayDecision(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.DelayDecisions = append(dst.DelayDecisions, model.DelayDecision{
		TimestampMs:   parseInt(m[1]),
		NewBitrateBps: parseInt(m[2]),
		Probe:         m[3] == "true",
	})
	return true
}

func emitProbe(source model.ProbeSource) func([]string, Carry, *model.SeriesSet) bool {
	return func(m []string, _ Carry, dst *model.SeriesSet) bool {
		dst.Probe = append(dst.Probe, model.ProbeEvent{
			TimestampMs: parseInt(m[1]),
			ClusterID:   int(parseInt(m[2])),
			EstimateBps: parseInt(m[3]),
			Source:      source,
		})
		return true
	}
}

// emitProbeOld handles the legacy grammars: a carried-forward timestamp is a
// precondition, so lines seen before any timestamp are dropped.
func emitProbeOld(source model.ProbeSource) func([]string, Carry, *model.SeriesSet) bool {
	return func(m []string, carry Carry, dst *model.SeriesSet) bool {
		if !carry.Known {
			return false
		}
		dst.Probe = append(dst.Probe, model.ProbeEvent{
			TimestampMs: carry.Ms,
			ClusterID:   int(parseInt(m[1])),
			EstimateBps: parseInt(m[2]),
			Source:      source,
		})
		return true
	}
}

func emitDecision(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Decisions = append(dst.Decisions, model.DecisionSnapshot{
		TimestampMs:    parseInt(m[1]),
		DelayState:     m[2],
		DelayTargetBps: parseInt(m[3]),
		RttBackoff:     m[4] == "true",
		ProbeResultBps: parseInt(m[5]),
		BweTargetBps:   parseInt(m[6]),
		AckedBps:       parseInt(m[7]),
		FinalTargetBps: parseInt(m[8]),
		Reason:         m[9],
		Updated:        m[10] == "true",
	})
	return true
}

func emitConstraint(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Constraints = append(dst.Constraints, model.ConstraintApply{
		TimestampMs:   parseInt(m[1]),
		OriginalBps:   parseInt(m[2]),
		UpperLimitBps: parseInt(m[3]),
		AfterUpperBps: parseInt(m[4]),
		MinConfigBps:  parseInt(m[5]),
		FinalBps:      parseInt(m[6]),
		DelayLimitBps: parseInt(m[7]),
		RecvLimitBps:  parseInt(m[8]),
		MaxConfigBps:  parseInt(m[9]),
	})
	return true
}

func emitDelayLimit(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.DelayLimits = append(dst.DelayLimits, limitUpdate(m))
	return true
}

func emitReceiverLimit(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.ReceiverLimits = append(dst.ReceiverLimits, limitUpdate(m))
	return true
}

func limitUpdate(m []string) model.LimitUpdate {
	return model.LimitUpdate{
		TimestampMs: parseInt(m[1]),
		OldLimitBps: parseInt(m[2]),
		NewLimitBps: parseInt(m[3]),
		TargetBps:   parseInt(m[4]),
	}
}

// emitConfigLimit adopts the carry-forward timestamp: the upstream format
// omits one, same as the legacy probe grammars.
func emitConfigLimit(m []string, carry Carry, dst *model.SeriesSet) bool {
	if !carry.Known {
		return false
	}
	dst.ConfigLimits = append(dst.ConfigLimits, model.ConfigLimitUpdate{
		TimestampMs: carry.Ms,
		MinOldBps:   parseInt(m[1]),
		MinNewBps:   parseInt(m[2]),
		MaxOldBps:   parseInt(m[3]),
		MaxNewBps:   parseInt(m[4]),
		TargetBps:   parseInt(m[5]),
	})
	return true
}

func emitPushback(m []string, _ Carry, dst *model.SeriesSet) bool {
	dst.Pushbacks = append(dst.Pushbacks, model.Pushback{
		TimestampMs:   parseInt(m[1]),
		OriginalBps:   parseInt(m[2]),
		PushbackBps:   parseInt(m[3]),
		MinBitrateBps: parseInt(m[4]),
		ReductionBps:  parseInt(m[5]),
		ReductionPct:  parseFloat(m[6]),
	})
	return true
}
