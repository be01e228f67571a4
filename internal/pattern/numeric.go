package pattern

import (
	"strconv"
	"strings"
)

// parseInt converts a captured digit group. Groups are matched by \d+ so
// failures only occur on overflow, which degrades to 0 rather than aborting
// the line.
func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFloat converts a captured numeric field. The upstream logger emits
// "nan" for uninitialized trend values; those, and any other unparseable
// field, become 0.0 on an otherwise-matched line.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "nan" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseFloatList splits a comma-separated candidate list. Entries end with
// trailing commas in the upstream format, so empty fragments are skipped.
func parseFloatList(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}
