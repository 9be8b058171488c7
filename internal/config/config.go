// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-formatter/internal/layout"
	"github.com/jonathan/resume-formatter/internal/multipass"
	"github.com/jonathan/resume-formatter/internal/validation"
)

// Environment variables consulted when the config file and flags leave a
// value unset.
const (
	EnvLanguages = "RESUME_OCR_LANGUAGES"
	EnvDPI       = "RESUME_OCR_DPI"
	EnvTemplate  = "RESUME_OCR_TEMPLATE"
)

var validate = validator.New()

// Thresholds collects every tunable constant of the extraction pipeline.
// The defaults are the calibrated values; overriding them is for tuning
// against unusual resume layouts, not routine use.
type Thresholds struct {
	// Layout analysis.
	HeaderBandRatio  float64 `json:"header_band_ratio,omitempty" validate:"omitempty,gt=0,lte=0.5"`
	ColumnGapPx      int     `json:"column_gap_px,omitempty" validate:"omitempty,gt=0"`
	HeadingSizeRatio float64 `json:"heading_size_ratio,omitempty" validate:"omitempty,gte=1"`
	BoldnessRatio    float64 `json:"boldness_ratio,omitempty" validate:"omitempty,gte=1"`
	MinZoneArea      int     `json:"min_zone_area,omitempty" validate:"omitempty,gte=0"`

	// OCR.
	LowConfidence float64 `json:"low_confidence,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Content validation.
	Keep           float64 `json:"keep,omitempty" validate:"omitempty,gte=0,lte=1"`
	Drop           float64 `json:"drop,omitempty" validate:"omitempty,gte=0,lte=1"`
	RelocateMargin float64 `json:"relocate_margin,omitempty" validate:"omitempty,gte=0,lte=1"`
	DedupMinSpan   int     `json:"dedup_min_span,omitempty" validate:"omitempty,gt=0"`
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input    string `json:"input,omitempty"`    // Path to the resume document (image or PDF)
	Template string `json:"template,omitempty"` // Path to a template schema JSON file

	// OCR behavior
	Languages         []string `json:"languages,omitempty"` // Tesseract language hints
	DPI               int      `json:"dpi,omitempty" validate:"omitempty,gte=70,lte=1200"`
	OCRTimeoutSeconds int      `json:"ocr_timeout_seconds,omitempty" validate:"omitempty,gt=0"`
	Concurrency       int      `json:"concurrency,omitempty" validate:"omitempty,gt=0,lte=64"`

	// Output behavior
	JSON    bool `json:"json,omitempty"`    // Emit the raw result as JSON instead of the report
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information

	Thresholds Thresholds `json:"thresholds"`
}

// Default returns the calibrated configuration.
func Default() Config {
	return Config{
		Languages:         []string{"eng"},
		OCRTimeoutSeconds: 15,
		Concurrency:       4,
		Thresholds: Thresholds{
			HeaderBandRatio:  0.15,
			ColumnGapPx:      50,
			HeadingSizeRatio: 1.3,
			BoldnessRatio:    1.2,
			MinZoneArea:      64,
			LowConfidence:    0.50,
			Keep:             0.5,
			Drop:             0.3,
			RelocateMargin:   0.15,
			DedupMinSpan:     40,
		},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills still-unset fields from the environment. Called after the
// config file is loaded and before flag overrides, so the precedence is
// flags > file > env > defaults.
func (c *Config) ApplyEnv() {
	if len(c.Languages) == 0 {
		if langs := os.Getenv(EnvLanguages); langs != "" {
			for _, l := range strings.Split(langs, ",") {
				if l = strings.TrimSpace(l); l != "" {
					c.Languages = append(c.Languages, l)
				}
			}
		}
	}
	if c.DPI == 0 {
		if dpi, err := strconv.Atoi(os.Getenv(EnvDPI)); err == nil && dpi > 0 {
			c.DPI = dpi
		}
	}
	if c.Template == "" {
		c.Template = os.Getenv(EnvTemplate)
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Thresholds.Drop > c.Thresholds.Keep && c.Thresholds.Keep > 0 {
		return fmt.Errorf("config error: 'drop' threshold must not exceed 'keep' threshold")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if len(result.Languages) == 0 {
		result.Languages = defaults.Languages
	}
	if result.DPI == 0 {
		result.DPI = defaults.DPI
	}
	if result.OCRTimeoutSeconds == 0 {
		result.OCRTimeoutSeconds = defaults.OCRTimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	result.Thresholds = result.Thresholds.mergeWith(defaults.Thresholds)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func (t Thresholds) mergeWith(defaults Thresholds) Thresholds {
	if t.HeaderBandRatio == 0 {
		t.HeaderBandRatio = defaults.HeaderBandRatio
	}
	if t.ColumnGapPx == 0 {
		t.ColumnGapPx = defaults.ColumnGapPx
	}
	if t.HeadingSizeRatio == 0 {
		t.HeadingSizeRatio = defaults.HeadingSizeRatio
	}
	if t.BoldnessRatio == 0 {
		t.BoldnessRatio = defaults.BoldnessRatio
	}
	if t.MinZoneArea == 0 {
		t.MinZoneArea = defaults.MinZoneArea
	}
	if t.LowConfidence == 0 {
		t.LowConfidence = defaults.LowConfidence
	}
	if t.Keep == 0 {
		t.Keep = defaults.Keep
	}
	if t.Drop == 0 {
		t.Drop = defaults.Drop
	}
	if t.RelocateMargin == 0 {
		t.RelocateMargin = defaults.RelocateMargin
	}
	if t.DedupMinSpan == 0 {
		t.DedupMinSpan = defaults.DedupMinSpan
	}
	return t
}

// LayoutConfig projects the thresholds onto the layout analyzer's settings.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		HeaderBandRatio:  c.Thresholds.HeaderBandRatio,
		ColumnGapPx:      c.Thresholds.ColumnGapPx,
		HeadingSizeRatio: c.Thresholds.HeadingSizeRatio,
		BoldnessRatio:    c.Thresholds.BoldnessRatio,
		MinZoneArea:      c.Thresholds.MinZoneArea,
	}
}

// MultipassConfig projects the thresholds onto the OCR engine's settings.
func (c *Config) MultipassConfig() multipass.Config {
	return multipass.Config{
		Languages:              c.Languages,
		DPI:                    c.DPI,
		LowConfidenceThreshold: c.Thresholds.LowConfidence,
		CallTimeout:            time.Duration(c.OCRTimeoutSeconds) * time.Second,
		RetryAttempts:          3,
		RetryDelay:             250 * time.Millisecond,
		Concurrency:            c.Concurrency,
	}
}

// ValidationConfig projects the thresholds onto the content validator's
// settings.
func (c *Config) ValidationConfig() validation.Config {
	return validation.Config{
		KeepThreshold:  c.Thresholds.Keep,
		DropThreshold:  c.Thresholds.Drop,
		RelocateMargin: c.Thresholds.RelocateMargin,
		DedupMinSpan:   c.Thresholds.DedupMinSpan,
	}
}
