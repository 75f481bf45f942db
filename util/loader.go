package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/nvr-ai/go-imgedit/images"
	"github.com/pkg/errors"
)

// ImageFile represents an image file found in a directory.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Name is the base name of the file.
	Name string
	// Format is the format implied by the file extension.
	Format images.ImageFormat
	// Size is the file size in bytes.
	Size int64
	// Sequence is the trailing number of the file stem (e.g. 12 for "frame-12.png"), or -1.
	Sequence int
}

// ListDirectoryImageFiles lists the image files directly inside a directory.
// Subdirectories and files without a known image extension are skipped.
// Files are ordered by stem prefix, then by trailing sequence number, so "frame-2.png"
// sorts before "frame-10.png".
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: The image files in processing order.
// - error: Error if the directory cannot be read.
func ListDirectoryImageFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !images.IsImagePath(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", entry.Name())
		}

		files = append(files, ImageFile{
			Path:     filepath.Join(dir, entry.Name()),
			Name:     entry.Name(),
			Format:   images.FormatFromPath(entry.Name()),
			Size:     info.Size(),
			Sequence: sequenceNumber(entry.Name()),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		pi, pj := sequencePrefix(files[i].Name), sequencePrefix(files[j].Name)
		if pi != pj {
			return pi < pj
		}
		if files[i].Sequence != files[j].Sequence {
			return files[i].Sequence < files[j].Sequence
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// stem returns the file name without its extension.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// sequencePrefix returns the stem without its trailing digits.
func sequencePrefix(name string) string {
	return strings.TrimRightFunc(stem(name), unicode.IsDigit)
}

// sequenceNumber parses the trailing digits of the stem.
func sequenceNumber(name string) int {
	s := stem(name)
	digits := s[len(strings.TrimRightFunc(s, unicode.IsDigit)):]
	if digits == "" {
		return -1
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n
}

// ModifiedName derives the output name for an edited image: "<stem>-modified<ext>".
// An empty ext keeps the source extension; a missing leading dot is added.
//
// @example
// ModifiedName("/in/photo.jpg", "")      // "photo-modified.jpg"
// ModifiedName("/in/photo.jpg", ".webp") // "photo-modified.webp"
// ModifiedName("/in/photo.jpg", "webp")  // "photo-modified.webp"
func ModifiedName(path, ext string) string {
	base := filepath.Base(path)
	if ext == "" {
		ext = filepath.Ext(base)
	}
	if ext == "" {
		ext = images.FormatPNG.Extension()
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return stem(base) + "-modified" + ext
}
