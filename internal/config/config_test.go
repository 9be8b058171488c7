package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"languages": ["eng", "deu"],
		"dpi": 300,
		"thresholds": {"keep": 0.6, "drop": 0.2}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"eng", "deu"}, cfg.Languages)
	assert.Equal(t, 300, cfg.DPI)
	assert.InDelta(t, 0.6, cfg.Thresholds.Keep, 1e-9)
	assert.InDelta(t, 0.2, cfg.Thresholds.Drop, 1e-9)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DPI: 150, Thresholds: Thresholds{Keep: 0.7}}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 150, merged.DPI)
	assert.Equal(t, []string{"eng"}, merged.Languages)
	assert.Equal(t, 15, merged.OCRTimeoutSeconds)
	assert.InDelta(t, 0.7, merged.Thresholds.Keep, 1e-9)
	assert.InDelta(t, 0.3, merged.Thresholds.Drop, 1e-9)
	assert.InDelta(t, 0.15, merged.Thresholds.HeaderBandRatio, 1e-9)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	bad := Default()
	bad.DPI = 10
	assert.Error(t, bad.Validate())

	crossed := Default()
	crossed.Thresholds.Keep = 0.2
	crossed.Thresholds.Drop = 0.4
	assert.Error(t, crossed.Validate())

	missing := Default()
	missing.Input = filepath.Join(t.TempDir(), "absent.png")
	assert.Error(t, missing.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLanguages, "eng, fra")
	t.Setenv(EnvDPI, "240")

	var cfg Config
	cfg.ApplyEnv()
	assert.Equal(t, []string{"eng", "fra"}, cfg.Languages)
	assert.Equal(t, 240, cfg.DPI)

	// Explicit values are never overridden by the environment.
	set := Config{Languages: []string{"deu"}, DPI: 300}
	set.ApplyEnv()
	assert.Equal(t, []string{"deu"}, set.Languages)
	assert.Equal(t, 300, set.DPI)
}

func TestConfigProjections(t *testing.T) {
	cfg := Default()
	cfg.DPI = 300

	lc := cfg.LayoutConfig()
	assert.InDelta(t, 0.15, lc.HeaderBandRatio, 1e-9)
	assert.Equal(t, 50, lc.ColumnGapPx)

	mc := cfg.MultipassConfig()
	assert.Equal(t, 300, mc.DPI)
	assert.Equal(t, 15*time.Second, mc.CallTimeout)
	assert.Equal(t, 4, mc.Concurrency)

	vc := cfg.ValidationConfig()
	assert.InDelta(t, 0.5, vc.KeepThreshold, 1e-9)
	assert.Equal(t, 40, vc.DedupMinSpan)
}
