// Package report renders the analysis handoff: a JSON document carrying
// every series plus the derived timeline, chain, and summary, and a text
// rendering of the summary for direct operator reading.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/gccscope/internal/aggregate"
	"github.com/crimson-sun/gccscope/internal/constraint"
	"github.com/crimson-sun/gccscope/internal/decision"
	"github.com/crimson-sun/gccscope/internal/model"
)

// Report is the complete output of one analysis run. Field names are the
// stable contract consumed by rendering and reporting collaborators.
type Report struct {
	RunID       string              `json:"run_id"`
	Source      string              `json:"source"`
	GeneratedAt time.Time           `json:"generated_at"`
	Series      *model.SeriesSet    `json:"series"`
	Timeline    []decision.Point    `json:"decision_timeline"`
	Chain       []constraint.Record `json:"constraint_chain"`
	Summary     aggregate.Summary   `json:"summary"`
}

// New assembles a Report and stamps it with a fresh run ID.
func New(source string, set *model.SeriesSet, timeline []decision.Point, chain []constraint.Record, summary aggregate.Summary) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Series:      set,
		Timeline:    timeline,
		Chain:       chain,
		Summary:     summary,
	}
}

// WriteJSON encodes the full report to w.
func (r *Report) WriteJSON(w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

// WriteText renders the summary portion as a plain-text report.
func (r *Report) WriteText(w io.Writer) error {
	var errw errWriter
	errw.w = w

	errw.printf("GCC Decision Analysis Report\n")
	errw.printf("==================================================\n\n")
	errw.printf("Run:    %s\n", r.RunID)
	errw.printf("Source: %s\n\n", r.Source)

	errw.printf("Category breakdown:\n")
	errw.printf("------------------------------\n")
	for _, name := range sortedKeys(r.Summary.Categories) {
		st := r.Summary.Categories[name]
		errw.printf("\n%s:\n", name)
		errw.printf("  count: %d\n", st.Count)
		if st.Count == 0 {
			continue
		}
		errw.printf("  total: %.2f  average: %.2f  max: %.2f\n", st.Total, st.Average, st.Max)
		errw.printf("  top: %s\n", st.TopEvent)
	}

	if len(r.Summary.DecisionDistribution) > 0 {
		errw.printf("\nDecision distribution:\n")
		errw.printf("------------------------------\n")
		for _, reason := range sortedKeys(r.Summary.DecisionDistribution) {
			errw.printf("  %s: %d\n", reason, r.Summary.DecisionDistribution[reason])
		}
	}

	if len(r.Summary.LossStateCounts) > 0 {
		errw.printf("\nLoss controller states:\n")
		errw.printf("------------------------------\n")
		for _, name := range sortedKeys(r.Summary.LossStateCounts) {
			errw.printf("  %s: %d\n", name, r.Summary.LossStateCounts[name])
		}
	}

	errw.printf("\nInsights:\n")
	errw.printf("--------------------\n")
	if len(r.Summary.Insights) == 0 {
		errw.printf("  (none triggered)\n")
	}
	for _, insight := range r.Summary.Insights {
		errw.printf("  * %s\n", insight)
	}

	if errw.err != nil {
		return fmt.Errorf("write text report: %w", errw.err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// errWriter carries the first write error through a sequence of prints.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
