package images

import (
	"fmt"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const (
	// MinScalePercent is the smallest accepted scale factor.
	MinScalePercent = 1
	// MaxScalePercent is the largest accepted scale factor.
	MaxScalePercent = 500
)

// ErrInvalidScale is returned for non-positive scale factors.
var ErrInvalidScale = errors.New("scale must be positive")

// ResampleFilter defines the resampling algorithm used for image scaling.
type ResampleFilter string

const (
	// LanczosFilter uses Lanczos resampling with a=3 (slowest, best quality).
	LanczosFilter ResampleFilter = "lanczos"
	// BilinearFilter uses bilinear interpolation (fast, good quality).
	BilinearFilter ResampleFilter = "bilinear"
)

// interpolation maps a filter to its resize implementation; unknown filters use Lanczos.
func (f ResampleFilter) interpolation() resize.InterpolationFunction {
	switch f {
	case BilinearFilter:
		return resize.Bilinear
	default:
		return resize.Lanczos3
	}
}

// Valid reports whether the filter is one of the known values.
func (f ResampleFilter) Valid() bool {
	return f == LanczosFilter || f == BilinearFilter
}

// ScaledDimensions computes floor(dim*percent/100) for both axes, each at least 1.
//
// Arguments:
// - width: The source width.
// - height: The source height.
// - percent: The scale factor in percent.
//
// Returns:
// - The target width and height.
//
// @example
// w, h := ScaledDimensions(100, 100, 200) // 200, 200
func ScaledDimensions(width, height, percent int) (int, int) {
	w := int(math.Floor(float64(width) * float64(percent) / 100))
	h := int(math.Floor(float64(height) * float64(percent) / 100))
	return max(w, 1), max(h, 1)
}

// ResizePercent scales a buffer by a percentage.
//
// Percentages above MaxScalePercent are clamped down; non-positive values fail with
// ErrInvalidScale. A factor of exactly 100 returns a bit-exact copy without resampling.
//
// Arguments:
// - src: The source buffer.
// - percent: The scale factor in percent.
// - filter: The resampling filter to use for interpolation.
//
// Returns:
// - The resized buffer.
// - error if percent is not positive.
//
// @example
// half, err := ResizePercent(buf, 50, LanczosFilter)
func ResizePercent(src *PixelBuffer, percent int, filter ResampleFilter) (*PixelBuffer, error) {
	if percent <= 0 {
		return nil, errors.Wrapf(ErrInvalidScale, "scale %d%%", percent)
	}
	percent = ClampInt(percent, MinScalePercent, MaxScalePercent)

	// Early return if no resizing needed (idempotency optimization).
	if percent == 100 {
		return src.Clone(), nil
	}

	width, height := ScaledDimensions(src.Width, src.Height, percent)
	return Resize(src, width, height, filter)
}

// Resize resamples a buffer to explicit dimensions.
//
// Arguments:
// - src: The source buffer.
// - width: The target width in pixels.
// - height: The target height in pixels.
// - filter: The resampling filter to use for interpolation.
//
// Returns:
// - The resized buffer.
// - error for non-positive dimensions.
//
// @example
// resized, err := Resize(buf, 224, 224, LanczosFilter)
func Resize(src *PixelBuffer, width, height int, filter ResampleFilter) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}

	if width == src.Width && height == src.Height {
		return src.Clone(), nil
	}

	resized := resize.Resize(uint(width), uint(height), src.ToNRGBA(), filter.interpolation())

	out, err := FromImage(resized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert resized image")
	}
	return out, nil
}
