// Package config loads runtime settings for the lasso editor.
//
// Settings come from an optional JSON file and are then overridden by
// environment variables:
//
//	IMAGE_LASSO_CONFIG=path     JSON settings file
//	IMAGE_LASSO_LOG_LEVEL=debug Enable debug logging
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ironsheep/image-lasso/internal/edgemap"
	"github.com/ironsheep/image-lasso/internal/geometry"
	"github.com/ironsheep/image-lasso/internal/history"
	"github.com/ironsheep/image-lasso/internal/lasso"
)

// Environment variable names.
const (
	EnvConfigPath = "IMAGE_LASSO_CONFIG"
	EnvLogLevel   = "IMAGE_LASSO_LOG_LEVEL"
)

// Config holds runtime configuration for the lasso tools and editor.
type Config struct {
	// Lasso geometry, in canvas units
	CloseThreshold float64 `json:"close_threshold"`
	SnapRadius     float64 `json:"snap_radius"`
	SnapSpacing    float64 `json:"snap_spacing"`
	Tension        float64 `json:"tension"`
	SamplesPerSpan int     `json:"samples_per_span"`
	Sensitivity    int     `json:"sensitivity"`

	// Edge map construction
	PreBlurRadius float64 `json:"pre_blur_radius"`
	Luminance     string  `json:"luminance"`

	HistoryDepth int    `json:"history_depth"`
	LogLevel     string `json:"log_level"`
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		CloseThreshold: lasso.DefaultCloseThreshold,
		SnapRadius:     lasso.DefaultSnapRadius,
		SnapSpacing:    lasso.DefaultSnapSpacing,
		Tension:        geometry.DefaultTension,
		SamplesPerSpan: geometry.DefaultSamplesPerSpan,
		Sensitivity:    lasso.DefaultSensitivity,
		PreBlurRadius:  0,
		Luminance:      edgemap.LuminanceBT601.String(),
		HistoryDepth:   history.DefaultMaxDepth,
		LogLevel:       "info",
	}
}

// Validate clamps values into safe ranges. It returns an error only for
// settings that cannot be repaired.
func (c *Config) Validate() error {
	d := Default()
	if c.CloseThreshold <= 0 {
		c.CloseThreshold = d.CloseThreshold
	}
	if c.SnapRadius <= 0 {
		c.SnapRadius = d.SnapRadius
	}
	if c.SnapSpacing <= 0 {
		c.SnapSpacing = d.SnapSpacing
	}
	if c.Tension < 0 || c.Tension > 1 {
		c.Tension = d.Tension
	}
	if c.SamplesPerSpan <= 0 {
		c.SamplesPerSpan = d.SamplesPerSpan
	}
	if c.Sensitivity < 0 {
		c.Sensitivity = 0
	}
	if c.Sensitivity > 100 {
		c.Sensitivity = 100
	}
	if c.PreBlurRadius < 0 {
		c.PreBlurRadius = 0
	}
	if c.HistoryDepth <= 0 {
		c.HistoryDepth = d.HistoryDepth
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if _, ok := edgemap.ParseLuminance(c.Luminance); !ok {
		return fmt.Errorf("unknown luminance model %q", c.Luminance)
	}
	return nil
}

// Load reads configuration from the JSON file at path. A missing file yields
// the defaults. On a decode error the defaults are returned with the error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by IMAGE_LASSO_CONFIG, if any, and applies
// IMAGE_LASSO_LOG_LEVEL on top.
func FromEnv() (*Config, error) {
	cfg, err := Load(os.Getenv(EnvConfigPath))
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(level))
	}
	return cfg, err
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool { return c.LogLevel == "debug" }

// Lasso returns the tool configuration.
func (c *Config) Lasso() lasso.Config {
	lc := lasso.DefaultConfig()
	lc.CloseThreshold = c.CloseThreshold
	lc.SnapRadius = c.SnapRadius
	lc.SnapSpacing = c.SnapSpacing
	lc.Tension = c.Tension
	lc.SamplesPerSpan = c.SamplesPerSpan
	lc.Sensitivity = c.Sensitivity
	return lc
}

// EdgeOptions returns the edge map build options.
func (c *Config) EdgeOptions() []edgemap.Option {
	lum, _ := edgemap.ParseLuminance(c.Luminance)
	opts := []edgemap.Option{edgemap.WithLuminance(lum)}
	if c.PreBlurRadius > 0 {
		opts = append(opts, edgemap.WithPreBlur(c.PreBlurRadius))
	}
	return opts
}
