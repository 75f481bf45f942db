//go:build !opencv

package images

// GaussianBlur smooths src with a Gaussian of the given kernel size.
// Even sizes are rounded up to the next odd size; sizes below 2 return a copy.
//
// Arguments:
// - src: The source buffer.
// - ksize: The kernel size (taps per axis).
// - mode: How samples beyond the border are mapped; unknown modes use Reflect101.
//
// Returns:
// - A new blurred buffer with the same dimensions.
//
// @example
// blurred, err := GaussianBlur(buf, 5, Reflect101EdgeMode)
func GaussianBlur(src *PixelBuffer, ksize int, mode EdgeMode) (*PixelBuffer, error) {
	if ksize < 2 {
		return src.Clone(), nil
	}
	if !mode.Valid() {
		mode = Reflect101EdgeMode
	}
	return GaussianBlurSeparable(src, GaussianKernelForSize(ksize), mode), nil
}
