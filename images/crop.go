package images

import "github.com/pkg/errors"

// ErrEmptyRegion is returned when a crop region covers no pixels after clamping.
var ErrEmptyRegion = errors.New("crop region is empty")

// Crop copies the sub-region r out of src.
//
// The corners are ordered with min/max and clamped into the buffer, so
// Crop(src, Rect{x2, y2, x1, y1}) equals Crop(src, Rect{x1, y1, x2, y2}).
//
// Arguments:
// - src: The source buffer.
// - r: The requested region in src pixel coordinates (X2, Y2 exclusive).
//
// Returns:
// - The cropped buffer, and the clamped region that was applied.
// - ErrEmptyRegion if the clamped region has no area.
//
// @example
// cropped, region, err := Crop(buf, Rect{X1: 10, Y1: 10, X2: 60, Y2: 60})
func Crop(src *PixelBuffer, r Rect) (*PixelBuffer, Rect, error) {
	region := r.ClampTo(src.Width, src.Height)
	if region.Empty() {
		return nil, region, errors.Wrapf(ErrEmptyRegion, "region %v clamped to %dx%d", r, src.Width, src.Height)
	}

	dst := newPixelBuffer(region.Dx(), region.Dy())
	rowBytes := dst.Stride()

	// Rows are contiguous in both buffers, so each row is a single copy.
	for y := 0; y < dst.Height; y++ {
		srcOff := src.PixOffset(region.X1, region.Y1+y)
		copy(dst.Pix[y*rowBytes:(y+1)*rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}

	return dst, region, nil
}
