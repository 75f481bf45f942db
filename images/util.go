package images

import (
	"crypto/md5"
	"fmt"
)

// Checksum generates a deterministic checksum for a buffer to verify idempotency.
//
// Arguments:
// - buf: The buffer to compute checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string covering dimensions and samples.
//
// Example:
//
// ```go
//
//	checksum := Checksum(current)
//	fmt.Printf("Frame checksum: %s\n", checksum)
//
// ```
func Checksum(buf *PixelBuffer) string {
	if buf == nil || len(buf.Pix) == 0 {
		return "empty"
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%dx%d:", buf.Width, buf.Height, buf.Channels)
	hash.Write(buf.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
