package images

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCoord(t *testing.T) {
	tests := []struct {
		mode     EdgeMode
		coord    int
		expected int
	}{
		{ClampEdgeMode, -3, 0},
		{ClampEdgeMode, 12, 9},
		{MirrorEdgeMode, -1, 0},
		{MirrorEdgeMode, -2, 1},
		{MirrorEdgeMode, 10, 9},
		{Reflect101EdgeMode, -1, 1},
		{Reflect101EdgeMode, -2, 2},
		{Reflect101EdgeMode, 10, 8},
		{Reflect101EdgeMode, 11, 7},
		{WrapEdgeMode, -1, 9},
		{WrapEdgeMode, 10, 0},
		{WrapEdgeMode, 23, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MapCoord(tt.coord, 10, tt.mode), "%s(%d)", tt.mode, tt.coord)
	}

	// In-range coordinates are untouched in every mode.
	for _, mode := range []EdgeMode{ClampEdgeMode, MirrorEdgeMode, Reflect101EdgeMode, WrapEdgeMode} {
		for c := 0; c < 10; c++ {
			assert.Equal(t, c, MapCoord(c, 10, mode))
		}
	}

	assert.Equal(t, 0, MapCoord(5, 1, Reflect101EdgeMode), "single pixel axes always map to 0")
}

func TestEdgeModeValid(t *testing.T) {
	for _, mode := range []EdgeMode{ClampEdgeMode, MirrorEdgeMode, Reflect101EdgeMode, WrapEdgeMode} {
		assert.True(t, mode.Valid(), "mode %q", mode)
	}
	assert.False(t, EdgeMode("").Valid())
	assert.False(t, EdgeMode("constant").Valid())
}

func TestGaussianKernelForSize(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 9, 11, 31, 101} {
		kernel := GaussianKernelForSize(size)
		require.Len(t, kernel, size)

		sum := 0.0
		for i, w := range kernel {
			sum += w
			assert.InDelta(t, w, kernel[len(kernel)-1-i], 1e-12, "kernel %d must be symmetric", size)
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "kernel %d must be normalized", size)

		// The center tap carries the most weight.
		center := kernel[size/2]
		for _, w := range kernel {
			assert.LessOrEqual(t, w, center)
		}
	}

	assert.Equal(t, []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}, GaussianKernelForSize(5))
	assert.Len(t, GaussianKernelForSize(4), 5, "even sizes round up")
	assert.Len(t, GaussianKernelForSize(0), 1)
}

func TestSigmaForKernelSize(t *testing.T) {
	assert.InDelta(t, 0.8, SigmaForKernelSize(3), 1e-12)
	assert.InDelta(t, 1.1, SigmaForKernelSize(5), 1e-12)
	assert.InDelta(t, 2.3, SigmaForKernelSize(13), 1e-12)
}

func TestGaussianBlurSeparableUniform(t *testing.T) {
	src := getUniformBuffer(t, 40, 30, color.NRGBA{R: 200, G: 90, B: 17, A: 255})

	for _, mode := range []EdgeMode{ClampEdgeMode, MirrorEdgeMode, Reflect101EdgeMode, WrapEdgeMode} {
		out := GaussianBlurSeparable(src, GaussianKernelForSize(11), mode)
		assert.True(t, src.Equal(out), "blurring a flat image must not change it (%s)", mode)
	}
}

func TestGaussianBlurSmoothsStep(t *testing.T) {
	src, err := NewPixelBuffer(20, 1)
	require.NoError(t, err)
	for x := 10; x < 20; x++ {
		src.SetRGB(x, 0, 255, 255, 255)
	}

	out := GaussianBlurSeparable(src, GaussianKernelForSize(5), Reflect101EdgeMode)

	r9, _, _ := out.RGBAt(9, 0)
	r10, _, _ := out.RGBAt(10, 0)
	assert.Greater(t, r9, uint8(0), "dark side of the edge should brighten")
	assert.Less(t, r10, uint8(255), "bright side of the edge should darken")

	r0, _, _ := out.RGBAt(0, 0)
	r19, _, _ := out.RGBAt(19, 0)
	assert.Equal(t, uint8(0), r0)
	assert.Equal(t, uint8(255), r19)
}

func TestSaturateUint8(t *testing.T) {
	assert.Equal(t, uint8(255), SaturateUint8(254.6))
	assert.Equal(t, uint8(254), SaturateUint8(254.4))
	assert.Equal(t, uint8(255), SaturateUint8(1e9))
	assert.Equal(t, uint8(0), SaturateUint8(-3))
	assert.Equal(t, uint8(0), SaturateUint8(math.NaN()))

	// Halves round to even like OpenCV's cvRound.
	assert.Equal(t, uint8(2), SaturateUint8(2.5))
	assert.Equal(t, uint8(4), SaturateUint8(3.5))
	assert.Equal(t, uint8(0), SaturateUint8(0.5))
	assert.Equal(t, uint8(128), SaturateUint8(127.5))
}

func TestParallelCoversRange(t *testing.T) {
	for _, size := range []int{0, 1, 7, 1000, 1023} {
		seen := make([]int32, size)
		Parallel(size, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, n := range seen {
			require.Equal(t, int32(1), n, "index %d of %d", i, size)
		}
	}
}
