// Package decision ranks final-decision snapshots by the fixed GCC priority
// semantics: delay overuse wins over RTT backoff, which wins over probe
// results, which win over loss estimates; Hold is the default floor.
package decision

import "github.com/crimson-sun/gccscope/internal/model"

// Priority ranks, low to high.
const (
	RankHold         = 0
	RankLossEstimate = 1
	RankProbeResult  = 2
	RankRttBackoff   = 3
	RankDelayLimit   = 4
)

var ranks = map[string]int{
	"Hold":         RankHold,
	"LossEstimate": RankLossEstimate,
	"ProbeResult":  RankProbeResult,
	"RttBackoff":   RankRttBackoff,
	"DelayLimit":   RankDelayLimit,
}

// Rank maps a decision reason token to its priority. The mapping is total:
// tokens outside the known set rank as Hold rather than failing, so a log
// from a newer sender never breaks the timeline.
func Rank(reason string) int {
	if r, ok := ranks[reason]; ok {
		return r
	}
	return RankHold
}

// Point is one step of the decision timeline. The value holds between
// successive points; no interpolation is performed here.
type Point struct {
	TimestampMs int64  `json:"timestamp_ms"`
	Rank        int    `json:"rank"`
	Reason      string `json:"reason"`
}

// Timeline derives the priority-ranked decision sequence from the decision
// series, preserving arrival order.
func Timeline(decisions []model.DecisionSnapshot) []Point {
	points := make([]Point, 0, len(decisions))
	for _, d := range decisions {
		points = append(points, Point{
			TimestampMs: d.TimestampMs,
			Rank:        Rank(d.Reason),
			Reason:      d.Reason,
		})
	}
	return points
}

// Distribution counts decisions per reason token.
func Distribution(decisions []model.DecisionSnapshot) map[string]int {
	dist := make(map[string]int, len(ranks))
	for _, d := range decisions {
		dist[d.Reason]++
	}
	return dist
}
