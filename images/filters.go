package images

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// FilterKind enumerates the one-shot filters.
type FilterKind int

const (
	// FilterBlur applies a fixed-size Gaussian smoothing.
	FilterBlur FilterKind = iota + 1
	// FilterSharpen applies a 3x3 sharpening kernel.
	FilterSharpen
	// FilterGrayscale desaturates to luminance.
	FilterGrayscale
)

// DefaultBlurKernelSize is the Gaussian kernel size used by FilterBlur.
const DefaultBlurKernelSize = 5

// ErrUnknownFilter is returned for values outside the FilterKind enumeration.
var ErrUnknownFilter = errors.New("unknown filter")

// sharpenKernel has center weight 9 and eight -1 neighbors; the weights sum to 1.
var sharpenKernel = [9]float64{
	-1, -1, -1,
	-1, 9, -1,
	-1, -1, -1,
}

// String returns the lower-case filter name.
func (k FilterKind) String() string {
	switch k {
	case FilterBlur:
		return "blur"
	case FilterSharpen:
		return "sharpen"
	case FilterGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// ParseFilterKind parses a filter name as produced by String.
//
// @example
// kind, err := ParseFilterKind("sharpen")
func ParseFilterKind(name string) (FilterKind, error) {
	switch name {
	case "blur":
		return FilterBlur, nil
	case "sharpen":
		return FilterSharpen, nil
	case "grayscale", "greyscale", "gray", "grey":
		return FilterGrayscale, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFilter, "%q", name)
	}
}

// FilterOptions configures ApplyFilter.
type FilterOptions struct {
	// BlurKernelSize is the odd Gaussian kernel size for FilterBlur.
	BlurKernelSize int
	// BlurBorder selects how FilterBlur samples beyond the image edge.
	BlurBorder EdgeMode
}

// DefaultFilterOptions returns the options used by the editor when none are configured:
// a 5 tap kernel with Reflect101 borders.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		BlurKernelSize: DefaultBlurKernelSize,
		BlurBorder:     Reflect101EdgeMode,
	}
}

// ApplyFilter runs one filter over src.
//
// Arguments:
// - src: The source buffer.
// - kind: The filter to apply.
// - opts: Filter options.
//
// Returns:
// - A new filtered buffer.
// - ErrUnknownFilter for values outside the enumeration.
//
// @example
// sharp, err := ApplyFilter(buf, FilterSharpen, DefaultFilterOptions())
func ApplyFilter(src *PixelBuffer, kind FilterKind, opts FilterOptions) (*PixelBuffer, error) {
	switch kind {
	case FilterBlur:
		return GaussianBlur(src, opts.BlurKernelSize, opts.BlurBorder)
	case FilterSharpen:
		return Sharpen(src)
	case FilterGrayscale:
		return Grayscale(src)
	default:
		return nil, errors.Wrapf(ErrUnknownFilter, "%d", int(kind))
	}
}

// Sharpen convolves src with the 3x3 sharpening kernel, saturating each channel.
//
// @example
// sharp, err := Sharpen(buf)
func Sharpen(src *PixelBuffer) (*PixelBuffer, error) {
	sharpened := imaging.Convolve3x3(src.ToNRGBA(), sharpenKernel, nil)

	out, err := FromImage(sharpened)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert sharpened image")
	}
	return out, nil
}

// Grayscale converts src to luminance and replicates it into all three channels,
// so downstream code still sees RGB pixels. Applying it twice is idempotent.
//
// @example
// gray, err := Grayscale(buf)
func Grayscale(src *PixelBuffer) (*PixelBuffer, error) {
	gray := imaging.Grayscale(src.ToNRGBA())

	out, err := FromImage(gray)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert grayscale image")
	}
	return out, nil
}
