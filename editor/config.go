package editor

import (
	"fmt"
	"os"

	"github.com/nvr-ai/go-imgedit/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultHistoryLimit is the number of snapshots kept for undo.
const DefaultHistoryLimit = 10

// Config configures an Engine.
type Config struct {
	// HistoryLimit bounds the undo history, including the current image.
	HistoryLimit int `json:"history_limit" yaml:"history_limit"`
	// Interpolation selects the resampling filter: "lanczos" or "bilinear".
	Interpolation images.ResampleFilter `json:"interpolation" yaml:"interpolation"`
	// BlurKernelSize is the Gaussian kernel size of the one-shot blur filter.
	BlurKernelSize int `json:"blur_kernel_size" yaml:"blur_kernel_size"`
	// BlurBorder is the border mode of the one-shot blur filter: "reflect101", "clamp",
	// "mirror" or "wrap".
	BlurBorder images.EdgeMode `json:"blur_border" yaml:"blur_border"`
	// Encode holds the encoder settings used by Save.
	Encode images.EncodeOptions `json:"encode" yaml:"encode"`
}

// DefaultConfig returns the default engine configuration.
//
// Returns:
// - Config with a 10 entry history, Lanczos resampling and a 5 tap Reflect101 blur.
//
// @example
// engine := New(DefaultConfig())
func DefaultConfig() Config {
	filter := images.DefaultFilterOptions()
	return Config{
		HistoryLimit:   DefaultHistoryLimit,
		Interpolation:  images.LanczosFilter,
		BlurKernelSize: filter.BlurKernelSize,
		BlurBorder:     filter.BlurBorder,
		Encode:         images.DefaultEncodeOptions(),
	}
}

// Validate checks the configuration for values the engine cannot honor.
func (c Config) Validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be at least 1, got %d", c.HistoryLimit)
	}
	if !c.Interpolation.Valid() {
		return fmt.Errorf("unknown interpolation %q", c.Interpolation)
	}
	if c.BlurKernelSize < 1 {
		return fmt.Errorf("blur_kernel_size must be at least 1, got %d", c.BlurKernelSize)
	}
	if !c.BlurBorder.Valid() {
		return fmt.Errorf("unknown blur_border %q", c.BlurBorder)
	}
	if c.Encode.JPEGQuality < 1 || c.Encode.JPEGQuality > 100 {
		return fmt.Errorf("encode.jpeg_quality must be in [1, 100], got %d", c.Encode.JPEGQuality)
	}
	if q := c.Encode.WebPQuality; !(q >= 0 && q <= 100) {
		return fmt.Errorf("encode.webp_quality must be in [0, 100], got %g", c.Encode.WebPQuality)
	}
	return nil
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// An empty path or a missing file yields the defaults.
//
// Arguments:
// - path: The YAML file path.
//
// Returns:
// - The merged, validated configuration.
// - error if the file cannot be read or parsed, or a value is invalid.
//
// @example
// cfg, err := LoadConfig("imgedit.yaml")
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "failed to read %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}
