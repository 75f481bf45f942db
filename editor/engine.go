// Package editor - the image edit engine: current image state, effects baseline and a
// bounded undo/redo history of fully materialized snapshots.
//
// Every operation either produces a new valid buffer and records it, or fails without
// touching any state. Returned buffers are always copies; mutating them never affects
// the history.
package editor

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/nvr-ai/go-imgedit/images"
)

// Engine holds the current image and its history.
//
// All methods are safe for concurrent use; calls are serialized so a push and the redo
// invalidation that accompanies it are never observed half done.
type Engine struct {
	mu sync.Mutex

	config Config

	// original is the image as decoded by the most recent Load.
	original *images.PixelBuffer
	// sourcePath is the path passed to the most recent successful Load.
	sourcePath string

	history *history
}

// New creates an empty engine. Invalid configuration values are replaced by defaults.
//
// Arguments:
// - config: The engine configuration.
//
// Returns:
// - A new engine with no image loaded.
//
// @example
// engine := editor.New(editor.DefaultConfig())
// _, err := engine.Load("photo.jpg")
func New(config Config) *Engine {
	defaults := DefaultConfig()
	if config.HistoryLimit < 1 {
		config.HistoryLimit = defaults.HistoryLimit
	}
	if !config.Interpolation.Valid() {
		config.Interpolation = defaults.Interpolation
	}
	if config.BlurKernelSize < 1 {
		config.BlurKernelSize = defaults.BlurKernelSize
	}
	if !config.BlurBorder.Valid() {
		config.BlurBorder = defaults.BlurBorder
	}
	if config.Encode.JPEGQuality < 1 || config.Encode.JPEGQuality > 100 {
		config.Encode.JPEGQuality = defaults.Encode.JPEGQuality
	}
	if q := config.Encode.WebPQuality; !(q >= 0 && q <= 100) {
		config.Encode.WebPQuality = defaults.Encode.WebPQuality
	}

	return &Engine{
		config:  config,
		history: newHistory(config.HistoryLimit),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Load decodes the image at path and makes it the original and current image.
// History is reset to the loaded image, redo is cleared and effects return to defaults.
// On failure the engine is left untouched.
//
// Arguments:
// - path: The image file; the format is sniffed from its content.
//
// Returns:
// - A copy of the loaded image.
// - ErrLoadFailed if the file cannot be read or decoded.
func (e *Engine) Load(path string) (*images.PixelBuffer, error) {
	// Decode before locking; the engine state is only touched once the result is ready.
	buf, err := images.Open(path)
	if err != nil {
		Logger().Warn("load failed", "path", path, "error", err)
		return nil, &OpError{Op: "load", Path: path, Kind: ErrLoadFailed, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.original = buf
	e.sourcePath = path
	e.history.reset(snapshot{
		image:   buf,
		base:    buf,
		effects: images.DefaultEffectParameters(),
		op:      "load",
	})

	Logger().Debug("image loaded", "path", path, "width", buf.Width, "height", buf.Height)
	return buf.Clone(), nil
}

// Save encodes the current image to path. The format follows the extension (PNG when
// missing or unknown) and the file is replaced atomically.
//
// Arguments:
// - path: The destination file.
//
// Returns:
// - ErrSaveFailed if there is no image, encoding fails or the path is not writable.
func (e *Engine) Save(path string) error {
	e.mu.Lock()
	if e.history.empty() {
		e.mu.Unlock()
		return &OpError{Op: "save", Path: path, Kind: ErrSaveFailed, Err: ErrNoImage}
	}
	// Snapshot images are immutable, so the encode can run without holding the lock.
	current := e.history.top().image
	encode := e.config.Encode
	e.mu.Unlock()

	if err := images.Save(path, current, encode); err != nil {
		Logger().Warn("save failed", "path", path, "error", err)
		return &OpError{Op: "save", Path: path, Kind: ErrSaveFailed, Err: err}
	}

	Logger().Debug("image saved", "path", path, "format", images.FormatFromPath(path))
	return nil
}

// Crop replaces the current image with the region between two corners.
//
// The corners may be given in any order and are clamped into the image. The cropped
// image becomes the new effects baseline and the effect parameters reset to defaults,
// since the cropped pixels already carry any previously applied effects.
//
// Arguments:
// - x1, y1, x2, y2: Corner coordinates in current-image pixel space (exclusive max).
//
// Returns:
// - A copy of the cropped image.
// - ErrInvalidRegion if no image is loaded or the clamped region is empty.
func (e *Engine) Crop(x1, y1, x2, y2 int) (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.empty() {
		return nil, &OpError{Op: "crop", Kind: ErrInvalidRegion, Err: ErrNoImage}
	}

	cropped, region, err := images.Crop(e.history.top().image, images.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2})
	if err != nil {
		return nil, &OpError{Op: "crop", Kind: ErrInvalidRegion, Err: err}
	}

	e.commit(snapshot{
		image:   cropped,
		base:    cropped,
		effects: images.DefaultEffectParameters(),
		op:      "crop",
	})

	Logger().Debug("image cropped", "region", region.Rectangle(), "area", region.Area(), "history", len(e.history.entries))
	return cropped.Clone(), nil
}

// Resize scales the current image by a percentage.
//
// Values above 500 are clamped to 500; non-positive values are rejected. New dimensions
// are floor(dim*percent/100), at least 1. A factor of 100 is a bit-exact copy.
//
// Arguments:
// - scalePercent: The scale factor in percent.
//
// Returns:
// - A copy of the resized image.
// - ErrNoImage if nothing is loaded, ErrInvalidScale for non-positive factors.
func (e *Engine) Resize(scalePercent int) (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.empty() {
		return nil, &OpError{Op: "resize", Kind: ErrInvalidScale, Err: ErrNoImage}
	}
	if scalePercent <= 0 {
		return nil, opError("resize", ErrInvalidScale, nil, "scale %d%% must be positive", scalePercent)
	}

	top := e.history.top()
	resized, err := images.ResizePercent(top.image, scalePercent, e.config.Interpolation)
	if err != nil {
		return nil, &OpError{Op: "resize", Kind: kindOf(err, images.ErrInvalidScale, ErrInvalidScale), Err: err}
	}

	e.commit(snapshot{image: resized, base: top.base, effects: top.effects, op: "resize"})

	Logger().Debug("image resized", "percent", scalePercent, "width", resized.Width, "height", resized.Height)
	return resized.Clone(), nil
}

// ApplyFilter runs a one-shot filter over the current image.
//
// Arguments:
// - kind: images.FilterBlur, images.FilterSharpen or images.FilterGrayscale.
//
// Returns:
// - A copy of the filtered image.
// - ErrNoImage if nothing is loaded, ErrInvalidFilter for unknown kinds.
func (e *Engine) ApplyFilter(kind images.FilterKind) (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.empty() {
		return nil, &OpError{Op: "filter", Kind: ErrNoImage}
	}

	top := e.history.top()
	filtered, err := images.ApplyFilter(top.image, kind, images.FilterOptions{
		BlurKernelSize: e.config.BlurKernelSize,
		BlurBorder:     e.config.BlurBorder,
	})
	if err != nil {
		return nil, &OpError{Op: "filter", Kind: kindOf(err, images.ErrUnknownFilter, ErrInvalidFilter), Err: err}
	}

	e.commit(snapshot{image: filtered, base: top.base, effects: top.effects, op: "filter " + kind.String()})

	Logger().Debug("filter applied", "filter", kind.String(), "history", len(e.history.entries))
	return filtered.Clone(), nil
}

// ApplyEffects recomputes the image from the effects baseline (the image as of the most
// recent load or crop) with the given parameters and commits the result to history.
// Use Preview while a slider is being dragged and ApplyEffects on release.
//
// Arguments:
// - params: The effect parameters; out-of-range values are clamped.
//
// Returns:
// - A copy of the adjusted image.
// - ErrNoImage if nothing is loaded.
func (e *Engine) ApplyEffects(params images.EffectParameters) (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, normalized, err := e.renderEffects("effects", params)
	if err != nil {
		return nil, err
	}

	e.commit(snapshot{image: out, base: e.history.top().base, effects: normalized, op: "effects"})

	Logger().Debug("effects applied",
		"brightness", normalized.Brightness,
		"contrast", normalized.Contrast,
		"blur", normalized.BlurRadius,
		"scale", normalized.ScalePercent,
		"history", len(e.history.entries))
	return out.Clone(), nil
}

// Preview renders the effects like ApplyEffects without touching the history.
//
// Returns:
// - The adjusted image (owned by the caller).
// - ErrNoImage if nothing is loaded.
func (e *Engine) Preview(params images.EffectParameters) (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, _, err := e.renderEffects("preview", params)
	return out, err
}

// renderEffects computes the effects pipeline from the current baseline.
func (e *Engine) renderEffects(op string, params images.EffectParameters) (*images.PixelBuffer, images.EffectParameters, error) {
	if e.history.empty() {
		return nil, images.EffectParameters{}, &OpError{Op: op, Kind: ErrNoImage}
	}

	normalized := params.Normalize()
	out, err := images.ApplyEffects(e.history.top().base, normalized, e.config.Interpolation)
	if err != nil {
		return nil, images.EffectParameters{}, &OpError{Op: op, Kind: ErrProcessingFailed, Err: err}
	}
	return out, normalized, nil
}

// Undo steps back one entry.
//
// Returns:
// - A copy of the restored image.
// - ErrNothingToUndo when only the initial entry (or nothing) remains.
func (e *Engine) Undo() (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.history.undo()
	if !ok {
		return nil, &OpError{Op: "undo", Kind: ErrNothingToUndo}
	}

	Logger().Debug("undo", "restored", s.op, "history", len(e.history.entries), "redo", len(e.history.redo))
	return s.image.Clone(), nil
}

// Redo re-applies the most recently undone entry.
//
// Returns:
// - A copy of the restored image.
// - ErrNothingToRedo when the redo stack is empty.
func (e *Engine) Redo() (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.history.redoStep()
	if !ok {
		return nil, &OpError{Op: "redo", Kind: ErrNothingToRedo}
	}

	Logger().Debug("redo", "restored", s.op, "history", len(e.history.entries), "redo", len(e.history.redo))
	return s.image.Clone(), nil
}

// Reset restores the originally loaded image, collapses history to it, clears redo
// and returns the effect parameters to defaults.
//
// Returns:
// - A copy of the original image.
// - ErrNoImage if nothing was loaded.
func (e *Engine) Reset() (*images.PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.original == nil {
		return nil, &OpError{Op: "reset", Kind: ErrNoImage}
	}

	e.history.reset(snapshot{
		image:   e.original,
		base:    e.original,
		effects: images.DefaultEffectParameters(),
		op:      "reset",
	})

	Logger().Debug("reset", "width", e.original.Width, "height", e.original.Height)
	return e.original.Clone(), nil
}

// commit pushes a new entry; the caller holds the lock.
func (e *Engine) commit(s snapshot) {
	if evicted := e.history.push(s); evicted > 0 {
		Logger().Debug("history bound reached", "evicted", evicted, "limit", e.history.limit)
	}
}

// Current returns a copy of the current image, or nil when nothing is loaded.
func (e *Engine) Current() *images.PixelBuffer {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.empty() {
		return nil
	}
	return e.history.top().image.Clone()
}

// Original returns a copy of the image as loaded, or nil when nothing is loaded.
func (e *Engine) Original() *images.PixelBuffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.original.Clone()
}

// Effects returns the effect parameters of the current entry.
func (e *Engine) Effects() images.EffectParameters {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.empty() {
		return images.DefaultEffectParameters()
	}
	return e.history.top().effects
}

// HasImage reports whether an image is loaded.
func (e *Engine) HasImage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.history.empty()
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.canUndo()
}

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.canRedo()
}

// HistoryLen returns the number of entries on the undo stack, current image included.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history.entries)
}

// RedoLen returns the number of entries on the redo stack.
func (e *Engine) RedoLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history.redo)
}

// SourcePath returns the path of the most recently loaded image.
func (e *Engine) SourcePath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sourcePath
}

// SuggestedSaveName proposes a file name for saving: "<source>-modified.png", or
// "image-modified.png" when nothing was loaded from disk.
func (e *Engine) SuggestedSaveName() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	stem := "image"
	if e.sourcePath != "" {
		base := filepath.Base(e.sourcePath)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return stem + "-modified" + images.FormatPNG.Extension()
}
