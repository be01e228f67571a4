package model

// SeriesSet holds every per-subsystem series accumulated by one parse run.
// All slices are append-only during the pass and preserve arrival order;
// callers treat a completed set as read-only.
type SeriesSet struct {
	Trendline      []TrendlineSample   `json:"trendline"`
	Rtt            []RttSample         `json:"rtt"`
	Loss           []LossRecord        `json:"loss"`
	Probe          []ProbeEvent        `json:"probe"`
	Decisions      []DecisionSnapshot  `json:"decisions"`
	DelayDecisions []DelayDecision     `json:"delay_decisions"`
	Constraints    []ConstraintApply   `json:"constraints"`
	DelayLimits    []LimitUpdate       `json:"delay_limits"`
	ReceiverLimits []LimitUpdate       `json:"receiver_limits"`
	ConfigLimits   []ConfigLimitUpdate `json:"config_limits"`
	Pushbacks      []Pushback          `json:"pushbacks"`
}

// Counts returns per-series record counts, keyed by series name.
func (s *SeriesSet) Counts() map[string]int {
	return map[string]int{
		"trendline":       len(s.Trendline),
		"rtt":             len(s.Rtt),
		"loss":            len(s.Loss),
		"probe":           len(s.Probe),
		"decisions":       len(s.Decisions),
		"delay_decisions": len(s.DelayDecisions),
		"constraints":     len(s.Constraints),
		"delay_limits":    len(s.DelayLimits),
		"receiver_limits": len(s.ReceiverLimits),
		"config_limits":   len(s.ConfigLimits),
		"pushbacks":       len(s.Pushbacks),
	}
}
