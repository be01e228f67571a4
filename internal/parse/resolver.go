package parse

import (
	"regexp"
	"strconv"
)

// Two timestamp forms appear in the log: "Time: N ms" on estimator lines and
// "at N ms" elsewhere. Either updates the carry-forward timestamp before
// classification runs on the same line.
var reTimestamp = regexp.MustCompile(`Time: (\d+) ms|at (\d+) ms`)

func resolveTimestamp(line string) (int64, bool) {
	m := reTimestamp.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	group := m[1]
	if group == "" {
		group = m[2]
	}
	ms, err := strconv.ParseInt(group, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
