package images

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Registers the WebP decoder with image.Decode for content sniffing.
	_ "golang.org/x/image/webp"
)

// EncodeOptions configures Encode and Save.
type EncodeOptions struct {
	// JPEGQuality is the JPEG quality in [1, 100].
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`
	// WebPQuality is the lossy WebP quality in [0, 100].
	WebPQuality float32 `json:"webp_quality" yaml:"webp_quality"`
	// WebPLossless selects lossless WebP encoding.
	WebPLossless bool `json:"webp_lossless" yaml:"webp_lossless"`
}

// DefaultEncodeOptions returns the encoder settings used when none are configured.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality: 95,
		WebPQuality: 90,
	}
}

// Decode reads an image of any registered format (JPEG, PNG, GIF, BMP, TIFF, WebP).
// The format is sniffed from the content, not the name, and EXIF orientation is applied.
//
// Arguments:
// - r: The encoded image stream.
//
// Returns:
// - The decoded buffer in RGB order.
// - error if the data is unsupported or corrupt.
//
// @example
// buf, err := Decode(bytes.NewReader(data))
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "image decoding failed")
	}

	buf, err := FromImage(img)
	if err != nil {
		return nil, errors.Wrap(err, "image conversion failed")
	}
	return buf, nil
}

// Open decodes the image file at path.
//
// @example
// buf, err := Open("photo.jpg")
func Open(path string) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes buf to w in the given format.
//
// Arguments:
// - w: The destination writer.
// - buf: The buffer to encode.
// - format: The output format.
// - opts: Encoder settings.
//
// Returns:
// - error if encoding fails.
//
// @example
// err := Encode(&out, buf, FormatJPEG, DefaultEncodeOptions())
func Encode(w io.Writer, buf *PixelBuffer, format ImageFormat, opts EncodeOptions) error {
	if err := buf.Validate(); err != nil {
		return errors.Wrap(err, "invalid buffer")
	}
	img := buf.ToNRGBA()

	var err error
	switch format {
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{
			Lossless: opts.WebPLossless,
			Quality:  opts.WebPQuality,
		})
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = DefaultEncodeOptions().JPEGQuality
		}
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case FormatTIFF:
		err = imaging.Encode(w, img, imaging.TIFF)
	case FormatBMP:
		err = imaging.Encode(w, img, imaging.BMP)
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}
	return nil
}

// Save encodes buf in the format selected by path's extension (PNG when unknown) and
// writes it atomically: the whole image is encoded in memory, written to a temporary
// file next to path, and renamed into place. A failed save never leaves a partial file.
//
// Arguments:
// - path: The destination path.
// - buf: The buffer to save.
// - opts: Encoder settings.
//
// Returns:
// - error if encoding or any file operation fails.
//
// @example
// err := Save("out.webp", buf, DefaultEncodeOptions())
func Save(path string, buf *PixelBuffer, opts EncodeOptions) error {
	var encoded bytes.Buffer
	if err := Encode(&encoded, buf, FormatFromPath(path), opts); err != nil {
		return err
	}

	return writeFileAtomic(path, encoded.Bytes())
}

// writeFileAtomic writes data to a sibling temp file and renames it over path.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "failed to write image")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "failed to sync image")
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "failed to set permissions")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close image")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "failed to move image into place")
	}
	return nil
}
