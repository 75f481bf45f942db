package images

import (
	"path/filepath"
	"strings"
)

// ImageFormat represents supported image formats
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatWebP ImageFormat = "webp"
	FormatPNG  ImageFormat = "png"
	FormatGIF  ImageFormat = "gif"
	FormatTIFF ImageFormat = "tiff"
	FormatBMP  ImageFormat = "bmp"
)

// formatsByExtension maps lower-case file extensions to their encoder.
var formatsByExtension = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".webp": FormatWebP,
}

// FormatFromPath selects the output format from a path's extension.
// Missing or unrecognized extensions fall back to PNG.
//
// Arguments:
// - path: The destination path.
//
// Returns:
// - The format to encode with.
//
// @example
// FormatFromPath("out.JPG") // FormatJPEG
// FormatFromPath("out")     // FormatPNG
func FormatFromPath(path string) ImageFormat {
	if f, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatPNG
}

// IsImagePath reports whether the path carries an extension this package can read.
func IsImagePath(path string) bool {
	_, ok := formatsByExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extension returns the canonical file extension, including the leading dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	case FormatGIF:
		return ".gif"
	case FormatTIFF:
		return ".tiff"
	case FormatBMP:
		return ".bmp"
	default:
		return ".png"
	}
}
