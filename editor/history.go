package editor

import "github.com/nvr-ai/go-imgedit/images"

// snapshot is one immutable history entry. Buffers referenced here are never written to
// after the snapshot is created; callers only ever receive clones.
type snapshot struct {
	// image is the materialized result of the operation.
	image *images.PixelBuffer
	// base is the effects baseline in force at this point of the timeline.
	base *images.PixelBuffer
	// effects are the slider values that were active.
	effects images.EffectParameters
	// op names the operation that produced the entry.
	op string
}

// history is a bounded linear undo stack with a parallel redo stack.
type history struct {
	limit   int
	entries []snapshot // oldest first
	redo    []snapshot // most recently undone last
}

// newHistory creates an empty history keeping at most limit entries.
func newHistory(limit int) *history {
	if limit < 1 {
		limit = 1
	}
	return &history{limit: limit}
}

// reset replaces the whole timeline with a single entry.
func (h *history) reset(s snapshot) {
	h.entries = []snapshot{s}
	h.redo = nil
}

// push appends an entry, discards the redo stack and evicts the oldest entry once the
// bound is exceeded. It reports how many entries were evicted.
func (h *history) push(s snapshot) int {
	h.entries = append(h.entries, s)
	h.redo = nil

	evicted := 0
	if over := len(h.entries) - h.limit; over > 0 {
		// Copy into a fresh slice so evicted buffers become unreachable.
		kept := make([]snapshot, h.limit)
		copy(kept, h.entries[over:])
		h.entries = kept
		evicted = over
	}
	return evicted
}

// top returns the newest entry. It must not be called on an empty history.
func (h *history) top() snapshot {
	return h.entries[len(h.entries)-1]
}

// empty reports whether nothing has been recorded yet.
func (h *history) empty() bool {
	return len(h.entries) == 0
}

// canUndo reports whether an entry besides the current one remains.
func (h *history) canUndo() bool {
	return len(h.entries) > 1
}

// canRedo reports whether an undone entry is available.
func (h *history) canRedo() bool {
	return len(h.redo) > 0
}

// undo moves the newest entry to the redo stack and returns the new newest entry.
func (h *history) undo() (snapshot, bool) {
	if !h.canUndo() {
		return snapshot{}, false
	}
	last := len(h.entries) - 1
	h.redo = append(h.redo, h.entries[last])
	h.entries[last] = snapshot{}
	h.entries = h.entries[:last]
	return h.top(), true
}

// redoStep moves the most recently undone entry back onto the history and returns it.
func (h *history) redoStep() (snapshot, bool) {
	if !h.canRedo() {
		return snapshot{}, false
	}
	last := len(h.redo) - 1
	s := h.redo[last]
	h.redo[last] = snapshot{}
	h.redo = h.redo[:last]
	h.entries = append(h.entries, s)
	return s, true
}
