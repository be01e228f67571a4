package aggregate

// Thresholds are the insight-rule cutoffs, in percent. They are plain
// configuration: the engine never derives them from the data.
type Thresholds struct {
	OverusingSharePct       float64 `yaml:"overusing_share_pct" json:"overusing_share_pct"`
	RttAboveLimitSharePct   float64 `yaml:"rtt_above_limit_share_pct" json:"rtt_above_limit_share_pct"`
	LossDecreasingSharePct  float64 `yaml:"loss_decreasing_share_pct" json:"loss_decreasing_share_pct"`
	MeanReductionRatioPct   float64 `yaml:"mean_reduction_ratio_pct" json:"mean_reduction_ratio_pct"`
	PushbackReductionPct    float64 `yaml:"pushback_reduction_pct" json:"pushback_reduction_pct"`
	ProbeClusterCoveragePct float64 `yaml:"probe_cluster_coverage_pct" json:"probe_cluster_coverage_pct"`
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OverusingSharePct:       15,
		RttAboveLimitSharePct:   20,
		LossDecreasingSharePct:  25,
		MeanReductionRatioPct:   30,
		PushbackReductionPct:    20,
		ProbeClusterCoveragePct: 50,
	}
}
