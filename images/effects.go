package images

import (
	"math"

	"github.com/pkg/errors"
)

// Slider ranges for effect parameters.
const (
	MinBrightness   = -100
	MaxBrightness   = 100
	MinContrast     = 0.5
	MaxContrast     = 2.0
	MaxBlurRadius   = 50
	DefaultScale    = 100
	DefaultContrast = 1.0
)

// EffectParameters are the slider-driven adjustments recomputed from a base image.
// They are absolute settings, not increments: applying the same parameters to the same
// base always produces the same buffer.
type EffectParameters struct {
	// Brightness shifts the black point (positive) or white point (negative).
	Brightness int `json:"brightness" yaml:"brightness"`
	// Contrast multiplies every channel value.
	Contrast float64 `json:"contrast" yaml:"contrast"`
	// BlurRadius selects a Gaussian of kernel size 2*BlurRadius+1; 0 disables it.
	BlurRadius int `json:"blur_radius" yaml:"blur_radius"`
	// ScalePercent resizes the result; 100 disables it.
	ScalePercent int `json:"scale_percent" yaml:"scale_percent"`
}

// DefaultEffectParameters returns the neutral parameters (no visible change).
func DefaultEffectParameters() EffectParameters {
	return EffectParameters{
		Brightness:   0,
		Contrast:     DefaultContrast,
		BlurRadius:   0,
		ScalePercent: DefaultScale,
	}
}

// Normalize clamps every field into its slider range.
// A zero Contrast or ScalePercent means unset and takes the neutral default, so the zero
// value of EffectParameters is the identity. Negative or NaN values clamp to the minimum.
//
// @example
// p := EffectParameters{Brightness: 300, Contrast: -1, ScalePercent: 900}.Normalize()
// // p == EffectParameters{Brightness: 100, Contrast: 0.5, ScalePercent: 500}
func (p EffectParameters) Normalize() EffectParameters {
	out := p
	out.Brightness = ClampInt(p.Brightness, MinBrightness, MaxBrightness)

	switch {
	case p.Contrast == 0:
		out.Contrast = DefaultContrast
	case math.IsNaN(p.Contrast):
		out.Contrast = MinContrast
	default:
		out.Contrast = Clamp(p.Contrast, MinContrast, MaxContrast)
	}

	out.BlurRadius = ClampInt(p.BlurRadius, 0, MaxBlurRadius)

	if p.ScalePercent == 0 {
		out.ScalePercent = DefaultScale
	} else {
		out.ScalePercent = ClampInt(p.ScalePercent, MinScalePercent, MaxScalePercent)
	}
	return out
}

// IsIdentity reports whether the parameters leave the base image unchanged.
func (p EffectParameters) IsIdentity() bool {
	n := p.Normalize()
	return n.Brightness == 0 && n.Contrast == DefaultContrast && n.BlurRadius == 0 && n.ScalePercent == DefaultScale
}

// BrightnessLUT builds the levels-style remap for a brightness value.
//
// For brightness > 0 the shadow point moves up to brightness while 255 stays 255; for
// brightness < 0 the highlight drops to 255+brightness while 0 stays 0. Each sample maps
// to v*(highlight-shadow)/255 + shadow, rounded and saturated.
//
// Arguments:
// - brightness: The brightness value.
//
// Returns:
// - A 256 entry lookup table.
func BrightnessLUT(brightness int) [256]uint8 {
	var lut [256]uint8

	shadow, highlight := 0.0, 255.0
	if brightness > 0 {
		shadow = float64(brightness)
	} else {
		highlight = 255 + float64(brightness)
	}

	alpha := (highlight - shadow) / 255
	for v := range lut {
		lut[v] = SaturateUint8(float64(v)*alpha + shadow)
	}

	return lut
}

// ContrastLUT builds the multiplicative contrast remap: saturate(round(|v*contrast|)).
func ContrastLUT(contrast float64) [256]uint8 {
	var lut [256]uint8
	for v := range lut {
		lut[v] = SaturateUint8(math.Abs(float64(v) * contrast))
	}
	return lut
}

// ApplyLUT maps every sample of src through lut into a new buffer.
func ApplyLUT(src *PixelBuffer, lut *[256]uint8) *PixelBuffer {
	dst := newPixelBuffer(src.Width, src.Height)
	stride := src.Stride()

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			in := src.Pix[y*stride : (y+1)*stride]
			out := dst.Pix[y*stride : (y+1)*stride]
			for i, v := range in {
				out[i] = lut[v]
			}
		}
	})

	return dst
}

// AdjustBrightness applies the brightness remap.
func AdjustBrightness(src *PixelBuffer, brightness int) *PixelBuffer {
	lut := BrightnessLUT(brightness)
	return ApplyLUT(src, &lut)
}

// AdjustContrast applies the contrast remap.
func AdjustContrast(src *PixelBuffer, contrast float64) *PixelBuffer {
	lut := ContrastLUT(contrast)
	return ApplyLUT(src, &lut)
}

// ApplyEffects recomputes the adjusted image from base in a fixed order: brightness,
// contrast, blur, then resize. Parameters are normalized first.
//
// Arguments:
// - base: The image the sliders are relative to.
// - params: The effect parameters.
// - filter: The resampling filter used when ScalePercent != 100.
//
// Returns:
// - A new buffer; base is never modified.
// - error if blurring or resizing fails.
//
// @example
// out, err := ApplyEffects(base, EffectParameters{Brightness: 20, Contrast: 1.2, ScalePercent: 100}, LanczosFilter)
func ApplyEffects(base *PixelBuffer, params EffectParameters, filter ResampleFilter) (*PixelBuffer, error) {
	p := params.Normalize()
	result := base

	if p.Brightness != 0 {
		result = AdjustBrightness(result, p.Brightness)
	}

	if p.Contrast != DefaultContrast {
		result = AdjustContrast(result, p.Contrast)
	}

	if p.BlurRadius > 0 {
		blurred, err := GaussianBlur(result, 2*p.BlurRadius+1, Reflect101EdgeMode)
		if err != nil {
			return nil, errors.Wrap(err, "failed to blur")
		}
		result = blurred
	}

	if p.ScalePercent != DefaultScale {
		resized, err := ResizePercent(result, p.ScalePercent, filter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resize")
		}
		result = resized
	}

	// Never hand back the caller's base when every stage was a no-op.
	if result == base {
		result = base.Clone()
	}

	return result, nil
}
