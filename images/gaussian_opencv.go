//go:build opencv

package images

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// borderTypes maps edge modes to OpenCV border types. OpenCV's GaussianBlur does not
// accept BORDER_WRAP, so WrapEdgeMode has no entry.
var borderTypes = map[EdgeMode]gocv.BorderType{
	ClampEdgeMode:      gocv.BorderReplicate,
	MirrorEdgeMode:     gocv.BorderReflect,
	Reflect101EdgeMode: gocv.BorderReflect101,
}

// GaussianBlur smooths src with OpenCV's GaussianBlur using the given kernel size.
// Even sizes are rounded up to the next odd size; sizes below 2 return a copy.
// WrapEdgeMode runs the pure Go separable blur.
//
// Arguments:
// - src: The source buffer.
// - ksize: The kernel size (taps per axis).
// - mode: How samples beyond the border are mapped; unknown modes use Reflect101.
//
// Returns:
// - A new blurred buffer with the same dimensions.
// - error if the Mat conversion fails.
//
// @example
// blurred, err := GaussianBlur(buf, 5, Reflect101EdgeMode)
func GaussianBlur(src *PixelBuffer, ksize int, mode EdgeMode) (*PixelBuffer, error) {
	if ksize < 2 {
		return src.Clone(), nil
	}
	if ksize%2 == 0 {
		ksize++
	}
	if !mode.Valid() {
		mode = Reflect101EdgeMode
	}

	border, ok := borderTypes[mode]
	if !ok {
		return GaussianBlurSeparable(src, GaussianKernelForSize(ksize), mode), nil
	}

	// OpenCV owns BGR ordered 8UC3 data; the swap is undone on the way back.
	mat, err := gocv.NewMatFromBytes(src.Height, src.Width, gocv.MatTypeCV8UC3, src.ToBGR())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build Mat from buffer")
	}
	defer mat.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()

	// Sigma 0 lets OpenCV derive it from the kernel size.
	gocv.GaussianBlur(mat, &blurred, image.Pt(ksize, ksize), 0, 0, border)
	if blurred.Empty() {
		return nil, errors.New("gaussian blur produced an empty Mat")
	}

	return FromBGR(blurred.ToBytes(), src.Width, src.Height)
}
