package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTimestamp(t *testing.T) {
	cases := []struct {
		line string
		ms   int64
		ok   bool
	}{
		{"[Trendline] Time: 1234 ms, Modified trend: 0.1", 1234, true},
		{"limit changed at 987 ms on cluster 2", 987, true},
		{"[GCC-DECISION-SNAPSHOT] at 1500ms | ...", 0, false}, // no space before ms
		{"nothing here", 0, false},
		{"Time: 0 ms", 0, true},
	}
	for _, tc := range cases {
		ms, ok := resolveTimestamp(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		if ok {
			assert.Equal(t, tc.ms, ms, tc.line)
		}
	}
}
