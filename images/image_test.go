package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTestBuffer creates a width x height buffer with a horizontal red ramp, a vertical
// green ramp and constant blue, so every pixel position is distinguishable.
func getTestBuffer(t *testing.T, width, height int) *PixelBuffer {
	t.Helper()

	buf, err := NewPixelBuffer(width, height)
	require.NoError(t, err)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, uint8(x*255/max(width-1, 1)), uint8(y*255/max(height-1, 1)), 128)
		}
	}
	return buf
}

// getUniformBuffer creates a buffer filled with a single color.
func getUniformBuffer(t *testing.T, width, height int, c color.NRGBA) *PixelBuffer {
	t.Helper()

	buf, err := NewPixelBuffer(width, height)
	require.NoError(t, err)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, c.R, c.G, c.B)
		}
	}
	return buf
}

func TestNewPixelBuffer(t *testing.T) {
	buf, err := NewPixelBuffer(4, 3)
	require.NoError(t, err)
	assert.NoError(t, buf.Validate())
	assert.Equal(t, 4*3*Channels, len(buf.Pix))
	assert.Equal(t, 12, buf.Stride())

	for _, dims := range [][2]int{{0, 3}, {4, 0}, {-1, -1}} {
		_, err := NewPixelBuffer(dims[0], dims[1])
		assert.Error(t, err, "dimensions %v should be rejected", dims)
	}
}

func TestPixelBufferValidate(t *testing.T) {
	var nilBuf *PixelBuffer
	assert.Error(t, nilBuf.Validate())

	buf := getTestBuffer(t, 5, 5)
	require.NoError(t, buf.Validate())

	short := buf.Clone()
	short.Pix = short.Pix[:len(short.Pix)-1]
	assert.Error(t, short.Validate(), "storage length mismatch should be detected")

	gray := buf.Clone()
	gray.Channels = 1
	assert.Error(t, gray.Validate(), "channel count other than 3 should be rejected")
}

func TestPixelBufferAccess(t *testing.T) {
	buf := getUniformBuffer(t, 3, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	buf.SetRGB(2, 1, 10, 20, 30)
	r, g, b := buf.RGBAt(2, 1)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
	assert.Equal(t, 15, buf.PixOffset(2, 1))

	// Out-of-range access is ignored for writes and black for reads.
	buf.SetRGB(3, 0, 99, 99, 99)
	r, g, b = buf.RGBAt(-1, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	r, g, b = buf.RGBAt(0, 0)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})
}

func TestPixelBufferCloneIsDeep(t *testing.T) {
	buf := getTestBuffer(t, 8, 8)
	clone := buf.Clone()

	require.True(t, buf.Equal(clone))
	clone.Pix[0] ^= 0xff
	assert.False(t, buf.Equal(clone), "mutating the clone must not affect the source")

	var nilBuf *PixelBuffer
	assert.Nil(t, nilBuf.Clone())
}

func TestPixelBufferEqual(t *testing.T) {
	a := getTestBuffer(t, 4, 4)
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(getTestBuffer(t, 4, 5)))
	assert.False(t, a.Equal(nil))

	var nilBuf *PixelBuffer
	assert.True(t, nilBuf.Equal(nil))
}

func TestNRGBARoundTrip(t *testing.T) {
	buf := getTestBuffer(t, 33, 17)

	nrgba := buf.ToNRGBA()
	require.Equal(t, image.Rect(0, 0, 33, 17), nrgba.Bounds())
	assert.Equal(t, uint8(0xff), nrgba.NRGBAAt(5, 5).A, "alpha must be opaque")

	back, err := FromImage(nrgba)
	require.NoError(t, err)
	assert.True(t, buf.Equal(back))
}

func TestFromImage(t *testing.T) {
	t.Run("non-zero origin", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(10, 20, 14, 23))
		img.Set(10, 20, color.RGBA{R: 200, G: 100, B: 50, A: 255})

		buf, err := FromImage(img)
		require.NoError(t, err)
		assert.Equal(t, 4, buf.Width)
		assert.Equal(t, 3, buf.Height)

		r, g, b := buf.RGBAt(0, 0)
		assert.Equal(t, [3]uint8{200, 100, 50}, [3]uint8{r, g, b})
	})

	t.Run("sub image", func(t *testing.T) {
		full := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		full.SetNRGBA(5, 5, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
		sub := full.SubImage(image.Rect(5, 5, 8, 8)).(*image.NRGBA)

		buf, err := FromImage(sub)
		require.NoError(t, err)
		r, g, b := buf.RGBAt(0, 0)
		assert.Equal(t, [3]uint8{9, 8, 7}, [3]uint8{r, g, b})
	})

	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		img.SetGray(1, 1, color.Gray{Y: 77})

		buf, err := FromImage(img)
		require.NoError(t, err)
		r, g, b := buf.RGBAt(1, 1)
		assert.Equal(t, [3]uint8{77, 77, 77}, [3]uint8{r, g, b})
	})

	t.Run("alpha is dropped", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 120, G: 60, B: 30, A: 10})

		buf, err := FromImage(img)
		require.NoError(t, err)
		r, g, b := buf.RGBAt(0, 0)
		assert.Equal(t, [3]uint8{120, 60, 30}, [3]uint8{r, g, b})
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := FromImage(nil)
		assert.Error(t, err)

		_, err = FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5)))
		assert.Error(t, err)
	})
}

func TestBGRConversion(t *testing.T) {
	buf := getUniformBuffer(t, 2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	bgr := buf.ToBGR()
	assert.Equal(t, []uint8{3, 2, 1}, bgr[:3])
	assert.Equal(t, uint8(1), buf.Pix[0], "ToBGR must not modify the buffer")

	back, err := FromBGR(bgr, 2, 2)
	require.NoError(t, err)
	assert.True(t, buf.Equal(back))

	_, err = FromBGR(bgr[:5], 2, 2)
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	a := getTestBuffer(t, 6, 4)
	b := a.Clone()
	assert.Equal(t, Checksum(a), Checksum(b))

	// Same samples laid out with different dimensions hash differently.
	reshaped := &PixelBuffer{Pix: a.Pix, Width: 4, Height: 6, Channels: Channels}
	assert.NotEqual(t, Checksum(a), Checksum(reshaped))

	b.Pix[3]++
	assert.NotEqual(t, Checksum(a), Checksum(b))
	assert.Equal(t, "empty", Checksum(nil))
}
