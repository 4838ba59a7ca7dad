package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-lasso/internal/lasso"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lasso.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesAndClamps(t *testing.T) {
	path := writeConfig(t, `{
		"close_threshold": 12,
		"sensitivity": 250,
		"tension": 3,
		"history_depth": -4,
		"luminance": "lab",
		"pre_blur_radius": 1.5,
		"log_level": " DEBUG "
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.CloseThreshold)
	assert.Equal(t, 100, cfg.Sensitivity)
	assert.Equal(t, 0.5, cfg.Tension)
	assert.Equal(t, 50, cfg.HistoryDepth)
	assert.Equal(t, "lab", cfg.Luminance)
	assert.True(t, cfg.Debug())
	assert.Len(t, cfg.EdgeOptions(), 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"snap_radius": `},
		{"unknown field", `{"snap_radus": 4}`},
		{"bad luminance", `{"luminance": "hsv"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg, "defaults are returned alongside the error")
		})
	}
}

func TestFromEnv(t *testing.T) {
	path := writeConfig(t, `{"snap_spacing": 3}`)
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.SnapSpacing)
	assert.True(t, cfg.Debug())
}

func TestLasso(t *testing.T) {
	cfg := Default()
	cfg.SnapRadius = 7
	cfg.Sensitivity = 30

	lc := cfg.Lasso()
	assert.Equal(t, 7.0, lc.SnapRadius)
	assert.Equal(t, 30, lc.Sensitivity)
	assert.Equal(t, lasso.DefaultConfig().PreviewStyle, lc.PreviewStyle)
}

func TestEdgeOptions_Default(t *testing.T) {
	assert.Len(t, Default().EdgeOptions(), 1, "no pre-blur by default")
}
