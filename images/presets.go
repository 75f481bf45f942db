package images

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// AspectRatio represents an aspect ratio by name (e.g., "16:9").
type AspectRatio string

// Defines the aspect ratios of the built-in presets.
const (
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
	AspectRatio11  AspectRatio = "1:1"
)

// PresetName identifies an output size preset.
type PresetName string

// Defines the built-in output size presets.
const (
	PresetThumbnail PresetName = "thumbnail"
	PresetSquare    PresetName = "square"
	PresetVGA       PresetName = "vga"
	Preset720p      PresetName = "720p"
	Preset1080p     PresetName = "1080p"
	Preset1440p     PresetName = "1440p"
	Preset4K        PresetName = "4k"
	Preset12MP      PresetName = "12mp"
)

// Preset is a named bounding box used to fit images to common output sizes.
type Preset struct {
	Name        PresetName  `json:"name" yaml:"name"`
	AspectRatio AspectRatio `json:"aspectRatio" yaml:"aspect_ratio"`
	Width       int         `json:"width" yaml:"width"`
	Height      int         `json:"height" yaml:"height"`
}

// MegaPixels returns the preset area in megapixels, rounded to two decimal places
// (e.g., 2.07 for 1080p).
func (p Preset) MegaPixels() float64 {
	return MegaPixels(p.Width, p.Height)
}

// String returns a human-readable summary of the preset.
func (p Preset) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", p.Name, p.Width, p.Height, p.MegaPixels())
}

// presets stores the built-in presets keyed by name.
var presets = map[PresetName]Preset{
	PresetThumbnail: {Name: PresetThumbnail, AspectRatio: AspectRatio43, Width: 320, Height: 240},
	PresetSquare:    {Name: PresetSquare, AspectRatio: AspectRatio11, Width: 1080, Height: 1080},
	PresetVGA:       {Name: PresetVGA, AspectRatio: AspectRatio43, Width: 640, Height: 480},
	Preset720p:      {Name: Preset720p, AspectRatio: AspectRatio169, Width: 1280, Height: 720},
	Preset1080p:     {Name: Preset1080p, AspectRatio: AspectRatio169, Width: 1920, Height: 1080},
	Preset1440p:     {Name: Preset1440p, AspectRatio: AspectRatio169, Width: 2560, Height: 1440},
	Preset4K:        {Name: Preset4K, AspectRatio: AspectRatio169, Width: 3840, Height: 2160},
	Preset12MP:      {Name: Preset12MP, AspectRatio: AspectRatio43, Width: 4000, Height: 3000},
}

// MegaPixels returns width*height in megapixels rounded to two decimal places.
// Non-positive dimensions yield 0.
func MegaPixels(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0.0
	}
	mp := float64(width*height) / 1_000_000.0
	return math.Round(mp*100) / 100
}

// Presets returns every built-in preset ordered by area, smallest first.
func Presets() []Preset {
	all := make([]Preset, 0, len(presets))
	for _, p := range presets {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		ai, aj := all[i].Width*all[i].Height, all[j].Width*all[j].Height
		if ai != aj {
			return ai < aj
		}
		return all[i].Name < all[j].Name
	})
	return all
}

// LookupPreset finds a preset by name, ignoring case.
//
// Arguments:
//   - name: The preset name, e.g. "1080p".
//
// Returns:
//   - Preset: The preset, if found.
//   - bool: True if a preset was found, otherwise false.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[PresetName(strings.ToLower(strings.TrimSpace(name)))]
	return p, ok
}

// LargestPresetWithin retrieves the largest preset that fits inside the given dimensions.
//
// Arguments:
//   - width: The available width.
//   - height: The available height.
//
// Returns:
//   - Preset: The largest preset that fits.
//   - bool: True if a preset was found, otherwise false.
func LargestPresetWithin(width, height int) (Preset, bool) {
	var largest Preset
	var found bool

	for _, p := range Presets() {
		if p.Width <= width && p.Height <= height {
			largest = p
			found = true
		}
	}
	return largest, found
}

// FitPercent returns the largest whole scale percentage at which a width x height image
// fits inside the preset, clamped to [MinScalePercent, MaxScalePercent].
//
// @example
// p, _ := LookupPreset("720p")
// FitPercent(3840, 2160, p) // 33
func FitPercent(width, height int, p Preset) int {
	if width <= 0 || height <= 0 || p.Width <= 0 || p.Height <= 0 {
		return DefaultScale
	}

	ratio := math.Min(float64(p.Width)/float64(width), float64(p.Height)/float64(height))
	percent := int(math.Floor(ratio * 100))

	// Guard against the floor in ScaledDimensions landing one pixel over.
	for percent > MinScalePercent {
		w, h := ScaledDimensions(width, height, percent)
		if w <= p.Width && h <= p.Height {
			break
		}
		percent--
	}

	return ClampInt(percent, MinScalePercent, MaxScalePercent)
}
