package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/gccscope/internal/constraint"
	"github.com/crimson-sun/gccscope/internal/decision"
	"github.com/crimson-sun/gccscope/internal/model"
)

func TestCategoryStats(t *testing.T) {
	set := &model.SeriesSet{
		Rtt: []model.RttSample{
			{TimestampMs: 10, CorrectedRtt: 40, RttLimit: 50},
			{TimestampMs: 20, CorrectedRtt: 60, RttLimit: 50},
			{TimestampMs: 30, CorrectedRtt: 50, RttLimit: 50},
		},
	}

	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	st := s.Categories["rtt"]
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 150.0, st.Total)
	assert.Equal(t, 50.0, st.Average)
	assert.Equal(t, 60.0, st.Max)
	assert.Contains(t, st.TopEvent, "t=20ms")
}

func TestEmptySeriesYieldZeroStats(t *testing.T) {
	s := New(DefaultThresholds()).Summarize(&model.SeriesSet{}, nil, nil)
	for name, st := range s.Categories {
		assert.Equal(t, 0, st.Count, name)
		assert.Empty(t, st.TopEvent, name)
	}
	assert.Empty(t, s.Insights)
}

// Candidate records share the loss series but must never enter estimate
// statistics.
func TestCandidatesExcludedFromLossStats(t *testing.T) {
	set := &model.SeriesSet{
		Loss: []model.LossRecord{
			{TimestampMs: 10, Kind: model.LossEstimate, State: 0, BandwidthBps: 500000},
			{TimestampMs: 20, Kind: model.LossCandidates, BandwidthBps: 9000000, Observations: 3, CandidatesKbps: []float64{1000, 5000, 9000}},
		},
	}

	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	st := s.Categories["loss"]
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 500000.0, st.Max, "candidate bandwidth must not dominate estimate stats")
}

func TestOverusingInsightTriggered(t *testing.T) {
	set := &model.SeriesSet{}
	for i := 0; i < 10; i++ {
		sample := model.TrendlineSample{TimestampMs: int64(i), ModifiedTrend: 1, Threshold: 6}
		if i < 3 { // 30% overusing, above the 15% cutoff
			sample.ModifiedTrend = 10
		}
		set.Trendline = append(set.Trendline, sample)
	}

	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	require.Len(t, s.Insights, 1)
	assert.Contains(t, s.Insights[0], "delay overuse")
	assert.Contains(t, s.Insights[0], "30.0%")
}

func TestOverusingInsightNotTriggeredBelowCutoff(t *testing.T) {
	set := &model.SeriesSet{
		Trendline: []model.TrendlineSample{
			{ModifiedTrend: 1, Threshold: 6},
			{ModifiedTrend: 2, Threshold: 6},
		},
	}
	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	assert.Empty(t, s.Insights)
}

func TestProbeCoverageInsight(t *testing.T) {
	set := &model.SeriesSet{
		Probe: []model.ProbeEvent{
			{TimestampMs: 10, ClusterID: 1, EstimateBps: 300000, Source: model.ProbeResult},
			{TimestampMs: 12, ClusterID: 1, EstimateBps: 310000, Source: model.ProbeSuccess},
			{TimestampMs: 20, ClusterID: 2, EstimateBps: 280000, Source: model.ProbeResult},
			{TimestampMs: 30, ClusterID: 3, EstimateBps: 290000, Source: model.ProbeResultOld},
		},
	}

	// Only cluster 1 of three completed: below the 50% coverage cutoff.
	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	require.Len(t, s.Insights, 1)
	assert.Contains(t, s.Insights[0], "33.3% of 3 probed cluster(s)")

	// Legacy successes count toward coverage; full coverage stays silent.
	set.Probe = append(set.Probe,
		model.ProbeEvent{TimestampMs: 22, ClusterID: 2, EstimateBps: 280000, Source: model.ProbeSuccess},
		model.ProbeEvent{TimestampMs: 32, ClusterID: 3, EstimateBps: 290000, Source: model.ProbeSuccessOld},
	)
	assert.Empty(t, New(DefaultThresholds()).Summarize(set, nil, nil).Insights)
}

func TestProbeCoverageCutoffIsConfiguration(t *testing.T) {
	set := &model.SeriesSet{
		Probe: []model.ProbeEvent{
			{ClusterID: 1, Source: model.ProbeResult},
			{ClusterID: 2, Source: model.ProbeResult},
			{ClusterID: 2, Source: model.ProbeSuccess},
		},
	}

	quiet := DefaultThresholds()
	quiet.ProbeClusterCoveragePct = 40 // 50% coverage is not below 40
	assert.Empty(t, New(quiet).Summarize(set, nil, nil).Insights)

	strict := DefaultThresholds()
	strict.ProbeClusterCoveragePct = 80
	insights := New(strict).Summarize(set, nil, nil).Insights
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "probe success reached 50.0%")
}

func TestLossStateCounts(t *testing.T) {
	set := &model.SeriesSet{
		Loss: []model.LossRecord{
			{Kind: model.LossEstimate, State: 0, BandwidthBps: 900000},
			{Kind: model.LossEstimate, State: 2, BandwidthBps: 850000},
			{Kind: model.LossEstimate, State: 2, BandwidthBps: 800000},
			{Kind: model.LossEstimate, State: 3, BandwidthBps: 820000},
			{Kind: model.LossEstimate, State: 7, BandwidthBps: 810000},
			{Kind: model.LossCandidates, BandwidthBps: 9000000, Observations: 3},
		},
	}

	s := New(DefaultThresholds()).Summarize(set, nil, nil)
	assert.Equal(t, map[string]int{
		"increasing":  1,
		"decreasing":  2,
		"delay_based": 1,
		"state_7":     1,
	}, s.LossStateCounts)

	empty := New(DefaultThresholds()).Summarize(&model.SeriesSet{}, nil, nil)
	assert.Nil(t, empty.LossStateCounts)
}

func TestConstraintInsights(t *testing.T) {
	chain := []constraint.Record{
		{ReductionRatioPct: 50},
		{ReductionRatioPct: 40, Anomalies: []string{"final_exceeds_original"}},
	}

	s := New(DefaultThresholds()).Summarize(&model.SeriesSet{}, chain, nil)
	require.Len(t, s.Insights, 2)
	joined := strings.Join(s.Insights, "\n")
	assert.Contains(t, joined, "45.0%")
	assert.Contains(t, joined, "1 constraint snapshot(s)")
}

func TestThresholdsAreConfiguration(t *testing.T) {
	set := &model.SeriesSet{
		Rtt: []model.RttSample{
			{CorrectedRtt: 60, RttLimit: 50},
			{CorrectedRtt: 40, RttLimit: 50},
		},
	}

	// 50% above limit: silent at a 60% cutoff, loud at 10%.
	strict := DefaultThresholds()
	strict.RttAboveLimitSharePct = 60
	assert.Empty(t, New(strict).Summarize(set, nil, nil).Insights)

	loose := DefaultThresholds()
	loose.RttAboveLimitSharePct = 10
	insights := New(loose).Summarize(set, nil, nil).Insights
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "RTT above its backoff limit")
}

func TestDecisionCategoryUsesRank(t *testing.T) {
	timeline := []decision.Point{
		{TimestampMs: 0, Rank: 4, Reason: "DelayLimit"},
		{TimestampMs: 500, Rank: 0, Reason: "Hold"},
	}
	set := &model.SeriesSet{
		Decisions: []model.DecisionSnapshot{
			{TimestampMs: 0, Reason: "DelayLimit"},
			{TimestampMs: 500, Reason: "Hold"},
		},
	}

	s := New(DefaultThresholds()).Summarize(set, nil, timeline)
	st := s.Categories["decision"]
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 4.0, st.Max)
	assert.Equal(t, 1, s.DecisionDistribution["DelayLimit"])
	assert.Equal(t, 1, s.DecisionDistribution["Hold"])
}
