// Package images - provides idempotent pixel operations for the edit engine.
// Every operation reads its input buffer and returns a newly allocated one.
package images

import (
	"math"
	"runtime"
	"sync"
)

// EdgeMode defines how to handle coordinates that are out of bounds.
type EdgeMode string

const (
	// ClampEdgeMode clamps the pixel values to the nearest valid value.
	ClampEdgeMode EdgeMode = "clamp"
	// MirrorEdgeMode mirrors the pixel values around the edge, repeating the edge pixel.
	MirrorEdgeMode EdgeMode = "mirror"
	// Reflect101EdgeMode mirrors around the edge pixel without repeating it (gfedcb|abcdefgh).
	Reflect101EdgeMode EdgeMode = "reflect101"
	// WrapEdgeMode wraps the pixel values around the edge.
	WrapEdgeMode EdgeMode = "wrap"
)

// Valid reports whether the mode is one of the known values.
func (m EdgeMode) Valid() bool {
	switch m {
	case ClampEdgeMode, MirrorEdgeMode, Reflect101EdgeMode, WrapEdgeMode:
		return true
	default:
		return false
	}
}

// MapCoord maps a coordinate to a valid value based on the edge mode.
//
// Arguments:
// - coord: The coordinate to map.
// - max: The maximum value of the coordinate.
// - mode: The edge mode to use.
func MapCoord(coord, max int, mode EdgeMode) int {
	if max <= 1 {
		return 0
	}
	switch mode {
	case MirrorEdgeMode:
		for coord < 0 || coord >= max {
			if coord < 0 {
				coord = -coord - 1
			} else {
				coord = 2*max - coord - 1
			}
		}
		return coord
	case Reflect101EdgeMode:
		for coord < 0 || coord >= max {
			if coord < 0 {
				coord = -coord
			} else {
				coord = 2*max - coord - 2
			}
		}
		return coord
	case WrapEdgeMode:
		return (coord%max + max) % max
	default:
		if coord < 0 {
			return 0
		} else if coord >= max {
			return max - 1
		}
		return coord
	}
}

// smallGaussianKernels are the fixed binomial kernels used for small odd sizes when no
// explicit sigma is requested.
var smallGaussianKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// SigmaForKernelSize derives the Gaussian standard deviation implied by a kernel size.
//
// Arguments:
// - size: The odd kernel size.
//
// Returns:
// - The sigma used to build the kernel.
//
// @example
// sigma := SigmaForKernelSize(5) // 1.1
func SigmaForKernelSize(size int) float64 {
	return 0.3*(float64(size-1)*0.5-1) + 0.8
}

// GaussianKernelForSize returns a normalized 1D Gaussian kernel of the given odd size.
// Even sizes are rounded up to the next odd size.
//
// Arguments:
// - size: The kernel size (number of taps).
//
// Returns:
// - A normalized 1D Gaussian kernel.
//
// @example
// kernel := GaussianKernelForSize(5)
func GaussianKernelForSize(size int) []float64 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}

	if k, ok := smallGaussianKernels[size]; ok {
		out := make([]float64, len(k))
		copy(out, k)
		return out
	}

	return GenerateGaussianKernel(size/2, SigmaForKernelSize(size))
}

// GenerateGaussianKernel creates a 1D Gaussian kernel for separable filtering.
// The kernel is normalized to sum to 1.0.
//
// Arguments:
// - radius: The kernel radius (kernel size will be 2*radius + 1).
// - sigma: Standard deviation of the Gaussian.
//
// Returns:
// - A normalized 1D Gaussian kernel.
//
// @example
// kernel := GenerateGaussianKernel(3, 1.5)
func GenerateGaussianKernel(radius int, sigma float64) []float64 {
	// Kernel size is 2*radius + 1 (includes center pixel).
	size := 2*radius + 1
	kernel := make([]float64, size)

	// Pre-calculate denominator for exponent.
	denom := 2.0 * sigma * sigma

	// Calculate kernel values.
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		kernel[i] = math.Exp(-(x * x) / denom)
		sum += kernel[i]
	}

	// Normalize kernel to sum to 1.0.
	// This ensures the blur doesn't change image brightness.
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// GaussianBlurSeparable blurs a buffer with a 1D kernel applied horizontally then
// vertically.
//
// Arguments:
// - src: The source buffer.
// - kernel: A normalized odd-length 1D kernel.
// - mode: How samples beyond the border are mapped.
//
// Returns:
// - A new blurred buffer with the same dimensions.
//
// @example
// blurred := GaussianBlurSeparable(buf, GaussianKernelForSize(5), Reflect101EdgeMode)
func GaussianBlurSeparable(src *PixelBuffer, kernel []float64, mode EdgeMode) *PixelBuffer {
	// A single tap kernel is the identity.
	if len(kernel) <= 1 {
		return src.Clone()
	}

	// Horizontal pass keeps full float precision to avoid double rounding.
	intermediate := getFloats(len(src.Pix))
	defer putFloats(intermediate)
	BlurHorizontal(src, intermediate, kernel, mode)

	dst := newPixelBuffer(src.Width, src.Height)
	BlurVertical(intermediate, dst, kernel, mode)

	return dst
}

// floatPool reuses the image-sized intermediate buffers of the separable blur.
var floatPool sync.Pool // *[]float64

// getFloats returns a slice of length n. Its contents are unspecified; BlurHorizontal
// overwrites every element.
func getFloats(n int) []float64 {
	if v, ok := floatPool.Get().(*[]float64); ok && cap(*v) >= n {
		return (*v)[:n]
	}
	return make([]float64, n)
}

// putFloats releases a slice obtained from getFloats.
func putFloats(s []float64) {
	floatPool.Put(&s)
}

// BlurHorizontal applies a 1D kernel along each row.
// This is the first pass of separable Gaussian filtering.
//
// Arguments:
// - src: Source buffer.
// - dst: Destination samples (same length as src.Pix).
// - kernel: 1D kernel.
// - mode: Edge handling.
//
// Returns:
// - None (modifies dst in-place).
func BlurHorizontal(src *PixelBuffer, dst []float64, kernel []float64, mode EdgeMode) {
	width := src.Width
	radius := len(kernel) / 2

	// Precompute the source column of every tap so the inner loop is branch-free.
	taps := make([][]int, width)
	for x := 0; x < width; x++ {
		taps[x] = make([]int, len(kernel))
		for i := range kernel {
			taps[x][i] = MapCoord(x+i-radius, width, mode) * Channels
		}
	}

	Parallel(src.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := src.Pix[y*src.Stride() : (y+1)*src.Stride()]
			out := dst[y*src.Stride() : (y+1)*src.Stride()]

			for x := 0; x < width; x++ {
				var r, g, b float64
				for i, weight := range kernel {
					off := taps[x][i]
					r += float64(row[off+0]) * weight
					g += float64(row[off+1]) * weight
					b += float64(row[off+2]) * weight
				}
				out[x*3+0] = r
				out[x*3+1] = g
				out[x*3+2] = b
			}
		}
	})
}

// BlurVertical applies a 1D kernel along each column of the horizontal pass output.
// This is the second pass of separable Gaussian filtering.
//
// Arguments:
// - src: Samples produced by BlurHorizontal.
// - dst: Destination buffer (dimensions define the layout of src).
// - kernel: 1D kernel.
// - mode: Edge handling.
//
// Returns:
// - None (modifies dst in-place).
func BlurVertical(src []float64, dst *PixelBuffer, kernel []float64, mode EdgeMode) {
	height := dst.Height
	stride := dst.Stride()
	radius := len(kernel) / 2

	rows := make([][]int, height)
	for y := 0; y < height; y++ {
		rows[y] = make([]int, len(kernel))
		for i := range kernel {
			rows[y][i] = MapCoord(y+i-radius, height, mode) * stride
		}
	}

	Parallel(height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			out := dst.Pix[y*stride : (y+1)*stride]
			for s := 0; s < stride; s++ {
				var v float64
				for i, weight := range kernel {
					v += src[rows[y][i]+s] * weight
				}
				out[s] = SaturateUint8(v)
			}
		}
	})
}

// SaturateUint8 rounds to the nearest integer, halves to even, and clamps into [0, 255].
//
// @example
// SaturateUint8(254.6) // 255
// SaturateUint8(2.5)   // 2
// SaturateUint8(-3)    // 0
func SaturateUint8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(Clamp(math.RoundToEven(v), 0, 255))
}

// Clamp restricts a value to the specified range [min, max].
// This is used to prevent overflow in color calculations.
//
// Arguments:
// - value: The value to Clamp.
// - min: Minimum allowed value.
// - max: Maximum allowed value.
//
// Returns:
// - The clamped value within [min, max].
//
// @example
// clamped := Clamp(300.5, 0, 255) // Returns 255
// clamped := Clamp(-10.0, 0, 255) // Returns 0
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt restricts an integer to the range [min, max].
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Parallel executes a function in Parallel across multiple goroutines.
// It returns only after every partition has been processed.
//
// Arguments:
// - dataSize: The size of the data to process.
// - fn: Function to execute for each partition (receives start and end indices).
//
// Returns:
// - None.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// For small data sizes, parallel processing overhead isn't worth it.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
