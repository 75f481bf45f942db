// Package images - pixel buffer definition and conversion helpers for the edit engine.
package images

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Channels is the number of interleaved channels stored per pixel.
const Channels = 3

// PixelBuffer is a dense, owned RGB pixel buffer.
//
// Pixels are stored row-major with no padding between rows, so the pixel at (x, y)
// starts at Pix[(y*Width+x)*Channels].
type PixelBuffer struct {
	// Pix holds the interleaved R, G, B samples.
	Pix []uint8 `json:"-" yaml:"-"`
	// Width of the buffer in pixels.
	Width int `json:"width" yaml:"width"`
	// Height of the buffer in pixels.
	Height int `json:"height" yaml:"height"`
	// Channels is always 3.
	Channels int `json:"channels" yaml:"channels"`
}

// NewPixelBuffer allocates a zeroed (black) buffer.
//
// Arguments:
// - width: The width in pixels.
// - height: The height in pixels.
//
// Returns:
// - The new buffer, or an error if either dimension is not positive.
//
// @example
// buf, err := NewPixelBuffer(640, 480)
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}
	return newPixelBuffer(width, height), nil
}

// newPixelBuffer allocates without validation; callers guarantee positive dimensions.
func newPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Pix:      make([]uint8, width*height*Channels),
		Width:    width,
		Height:   height,
		Channels: Channels,
	}
}

// Validate reports whether the buffer satisfies its storage invariants.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("pixel buffer is nil")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid dimensions: width=%d, height=%d", b.Width, b.Height)
	}
	if b.Channels != Channels {
		return fmt.Errorf("invalid channel count: %d", b.Channels)
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return fmt.Errorf("invalid storage length: got %d, want %d", len(b.Pix), want)
	}
	return nil
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Stride returns the number of bytes per row.
func (b *PixelBuffer) Stride() int {
	return b.Width * Channels
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (b *PixelBuffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// RGBAt returns the pixel at (x, y). Out-of-range coordinates return black.
func (b *PixelBuffer) RGBAt(x, y int) (r, g, bl uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, 0, 0
	}
	i := b.PixOffset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// SetRGB sets the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *PixelBuffer) SetRGB(x, y int, r, g, bl uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	if b == nil {
		return nil
	}
	dst := &PixelBuffer{
		Pix:      make([]uint8, len(b.Pix)),
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
	}
	copy(dst.Pix, b.Pix)
	return dst
}

// Equal reports whether two buffers have identical dimensions and samples.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Width != other.Width || b.Height != other.Height || b.Channels != other.Channels {
		return false
	}
	if len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToNRGBA converts the buffer to an opaque *image.NRGBA for display and encoding.
//
// Returns:
// - A new image whose alpha channel is fully opaque.
//
// @example
// photo := buf.ToNRGBA()
func (b *PixelBuffer) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(b.Bounds())

	Parallel(b.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			src := b.Pix[y*b.Stride() : (y+1)*b.Stride()]
			row := dst.Pix[y*dst.Stride : y*dst.Stride+b.Width*4]
			for x := 0; x < b.Width; x++ {
				row[x*4+0] = src[x*3+0]
				row[x*4+1] = src[x*3+1]
				row[x*4+2] = src[x*3+2]
				row[x*4+3] = 0xff
			}
		}
	})

	return dst
}

// FromImage converts any image.Image to a PixelBuffer in RGB order.
// Alpha is discarded without compositing, matching a plain RGB mode conversion.
//
// Arguments:
// - img: The source image. Non-zero bounds origins are supported.
//
// Returns:
// - The converted buffer, or an error for nil or empty images.
//
// @example
// buf, err := FromImage(decoded)
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image is empty: %v", bounds)
	}

	// Normalize to non-premultiplied RGBA so color channels keep their stored values.
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	dst := newPixelBuffer(bounds.Dx(), bounds.Dy())
	origin := nrgba.Bounds().Min

	Parallel(dst.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			srcOff := nrgba.PixOffset(origin.X, origin.Y+y)
			dstOff := y * dst.Stride()
			for x := 0; x < dst.Width; x++ {
				dst.Pix[dstOff+x*3+0] = nrgba.Pix[srcOff+x*4+0]
				dst.Pix[dstOff+x*3+1] = nrgba.Pix[srcOff+x*4+1]
				dst.Pix[dstOff+x*3+2] = nrgba.Pix[srcOff+x*4+2]
			}
		}
	})

	return dst, nil
}

// ToBGR returns a copy of the samples in B, G, R order, as OpenCV expects.
func (b *PixelBuffer) ToBGR() []uint8 {
	out := make([]uint8, len(b.Pix))
	swapRB(out, b.Pix)
	return out
}

// FromBGR builds a buffer from B, G, R ordered samples.
//
// Arguments:
// - data: Interleaved BGR samples, row-major, no padding.
// - width: The width in pixels.
// - height: The height in pixels.
//
// Returns:
// - The buffer in RGB order, or an error if the length does not match.
func FromBGR(data []uint8, width, height int) (*PixelBuffer, error) {
	dst, err := NewPixelBuffer(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != len(dst.Pix) {
		return nil, fmt.Errorf("invalid BGR length: got %d, want %d", len(data), len(dst.Pix))
	}
	swapRB(dst.Pix, data)
	return dst, nil
}

// swapRB copies src into dst exchanging the first and third channel of every pixel.
func swapRB(dst, src []uint8) {
	for i := 0; i+2 < len(src); i += Channels {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
	}
}
