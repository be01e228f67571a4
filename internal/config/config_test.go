package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/gccscope/internal/constraint"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, int64(constraint.DefaultJoinToleranceMs), cfg.Analysis.JoinToleranceMs)
	assert.Equal(t, "-", cfg.Output.JSONPath)
	assert.Equal(t, "", cfg.Output.TextPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15.0, cfg.Analysis.Thresholds.OverusingSharePct)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GCCSCOPE_JOIN_TOLERANCE_MS", "250")
	t.Setenv("GCCSCOPE_JSON", "out.json")
	t.Setenv("GCCSCOPE_LOG_LEVEL", "debug")
	t.Setenv("GCCSCOPE_PRETTY", "true")

	cfg := Load()
	assert.Equal(t, int64(250), cfg.Analysis.JoinToleranceMs)
	assert.Equal(t, "out.json", cfg.Output.JSONPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Output.Pretty)
}

func TestEnvParseFailureFallsBack(t *testing.T) {
	t.Setenv("GCCSCOPE_JOIN_TOLERANCE_MS", "not-a-number")
	cfg := Load()
	assert.Equal(t, int64(constraint.DefaultJoinToleranceMs), cfg.Analysis.JoinToleranceMs)
}

func TestApplyFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gccscope.yaml")
	data := `
analysis:
  join_tolerance_ms: 50
  thresholds:
    overusing_share_pct: 5
output:
  text_path: report.txt
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := Load()
	require.NoError(t, cfg.ApplyFile(path))

	assert.Equal(t, int64(50), cfg.Analysis.JoinToleranceMs)
	assert.Equal(t, 5.0, cfg.Analysis.Thresholds.OverusingSharePct)
	assert.Equal(t, "report.txt", cfg.Output.TextPath)
	// Untouched fields keep their loaded values.
	assert.Equal(t, "-", cfg.Output.JSONPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestApplyFileMissing(t *testing.T) {
	cfg := Load()
	require.Error(t, cfg.ApplyFile("does/not/exist.yaml"))
}

func TestApplyFileBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: ["), 0o644))
	cfg := Load()
	require.Error(t, cfg.ApplyFile(path))
}
