package model

// TrendlineSample is one delay-based estimator observation: the modified
// one-way-delay trend against its adaptive threshold.
type TrendlineSample struct {
	TimestampMs   int64   `json:"timestamp_ms"`
	ModifiedTrend float64 `json:"modified_trend"` // "nan" in the log parses as 0.0
	Threshold     float64 `json:"threshold"`
	State         string  `json:"state"`
}

// Overusing reports whether the sample sits above the detector threshold.
func (s TrendlineSample) Overusing() bool {
	return s.ModifiedTrend > s.Threshold
}

// RttSample is one RTT-backoff estimator observation.
type RttSample struct {
	TimestampMs  int64 `json:"timestamp_ms"`
	CorrectedRtt int64 `json:"corrected_rtt_ms"`
	RttLimit     int64 `json:"rtt_limit_ms"`
	AboveLimit   bool  `json:"above_limit"`
}

// LossKind distinguishes the two record shapes sharing the loss series.
type LossKind int

const (
	LossEstimate   LossKind = iota // confirmed estimate with an estimator state
	LossCandidates                 // candidate bandwidth proposals, no state
)

func (k LossKind) String() string {
	if k == LossCandidates {
		return "candidates"
	}
	return "estimate"
}

// LossRecord is one loss-based estimator observation. Estimate records carry
// State and Observations from the log; candidate records carry the proposal
// list, with BandwidthBps set to the largest candidate and Observations to
// the candidate count.
type LossRecord struct {
	TimestampMs    int64     `json:"timestamp_ms"`
	Kind           LossKind  `json:"kind"`
	State          int       `json:"state"` // meaningful for estimates only
	BandwidthBps   int64     `json:"bandwidth_bps"`
	Observations   int       `json:"observations"`
	CandidatesKbps []float64 `json:"candidates_kbps,omitempty"`
}

// ProbeSource identifies which probe grammar produced a record. The _old
// sources come from the legacy timestamp-less format and carry a
// carried-forward timestamp.
type ProbeSource string

const (
	ProbeResult     ProbeSource = "result"
	ProbeSuccess    ProbeSource = "success"
	ProbeResultOld  ProbeSource = "result_old"
	ProbeSuccessOld ProbeSource = "success_old"
)

// ProbeEvent is one probe-cluster bandwidth measurement.
type ProbeEvent struct {
	TimestampMs int64       `json:"timestamp_ms"`
	ClusterID   int         `json:"cluster_id"`
	EstimateBps int64       `json:"estimate_bps"` // send rate for success records
	Source      ProbeSource `json:"source"`
}

// DecisionSnapshot is one GCC-DECISION-SNAPSHOT line: the combined state of
// all four estimators at the moment a final target was chosen.
type DecisionSnapshot struct {
	TimestampMs    int64  `json:"timestamp_ms"`
	DelayState     string `json:"delay_state"`
	DelayTargetBps int64  `json:"delay_target_bps"`
	RttBackoff     bool   `json:"rtt_backoff"`
	ProbeResultBps int64  `json:"probe_result_bps"`
	BweTargetBps   int64  `json:"bwe_target_bps"`
	AckedBps       int64  `json:"acked_bitrate_bps"`
	FinalTargetBps int64  `json:"final_target_bps"`
	Reason         string `json:"reason"`
	Updated        bool   `json:"updated"`
}

// ConstraintApply is one pass of the constraint-clamping pipeline, with the
// intermediate values the upstream logger recorded at each stage.
type ConstraintApply struct {
	TimestampMs   int64 `json:"timestamp_ms"`
	OriginalBps   int64 `json:"original_bps"`
	UpperLimitBps int64 `json:"upper_limit_bps"`
	AfterUpperBps int64 `json:"after_upper_bps"`
	MinConfigBps  int64 `json:"min_config_bps"`
	FinalBps      int64 `json:"final_bps"`
	DelayLimitBps int64 `json:"delay_limit_bps"`
	RecvLimitBps  int64 `json:"receiver_limit_bps"`
	MaxConfigBps  int64 `json:"max_config_bps"`
}

// LimitUpdate is a delay-limit or receiver-limit change notification.
type LimitUpdate struct {
	TimestampMs int64 `json:"timestamp_ms"`
	OldLimitBps int64 `json:"old_limit_bps"`
	NewLimitBps int64 `json:"new_limit_bps"`
	TargetBps   int64 `json:"current_target_bps"`
}

// ConfigLimitUpdate is a min/max configured-bitrate change. The line format
// carries no inline timestamp; TimestampMs is carried forward.
type ConfigLimitUpdate struct {
	TimestampMs int64 `json:"timestamp_ms"`
	MinOldBps   int64 `json:"min_old_bps"`
	MinNewBps   int64 `json:"min_new_bps"`
	MaxOldBps   int64 `json:"max_old_bps"`
	MaxNewBps   int64 `json:"max_new_bps"`
	TargetBps   int64 `json:"current_target_bps"`
}

// Pushback is one congestion-window pushback application.
type Pushback struct {
	TimestampMs   int64   `json:"timestamp_ms"`
	OriginalBps   int64   `json:"original_rate_bps"`
	PushbackBps   int64   `json:"pushback_rate_bps"`
	MinBitrateBps int64   `json:"min_bitrate_bps"`
	ReductionBps  int64   `json:"reduction_bps"`
	ReductionPct  float64 `json:"reduction_ratio_pct"`
}

// DelayDecision is a delay-based estimator rate decision.
type DelayDecision struct {
	TimestampMs   int64 `json:"timestamp_ms"`
	NewBitrateBps int64 `json:"new_bitrate_bps"`
	Probe         bool  `json:"probe"`
}
