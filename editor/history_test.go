package editor

import (
	"testing"

	"github.com/nvr-ai/go-imgedit/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(op string) snapshot {
	return snapshot{op: op, effects: images.DefaultEffectParameters()}
}

func ops(entries []snapshot) []string {
	out := make([]string, len(entries))
	for i, s := range entries {
		out[i] = s.op
	}
	return out
}

func TestHistoryPushAndUndo(t *testing.T) {
	h := newHistory(10)
	assert.True(t, h.empty())
	assert.False(t, h.canUndo())

	h.reset(entry("load"))
	h.push(entry("a"))
	h.push(entry("b"))
	assert.Equal(t, []string{"load", "a", "b"}, ops(h.entries))

	s, ok := h.undo()
	require.True(t, ok)
	assert.Equal(t, "a", s.op)
	assert.Equal(t, []string{"b"}, ops(h.redo))

	s, ok = h.undo()
	require.True(t, ok)
	assert.Equal(t, "load", s.op)

	_, ok = h.undo()
	assert.False(t, ok, "the initial entry can never be undone")
	assert.Equal(t, "load", h.top().op)
}

func TestHistoryRedoOrder(t *testing.T) {
	h := newHistory(10)
	h.reset(entry("load"))
	h.push(entry("a"))
	h.push(entry("b"))
	h.undo()
	h.undo()

	s, ok := h.redoStep()
	require.True(t, ok)
	assert.Equal(t, "a", s.op)
	s, ok = h.redoStep()
	require.True(t, ok)
	assert.Equal(t, "b", s.op)

	_, ok = h.redoStep()
	assert.False(t, ok)
	assert.Equal(t, []string{"load", "a", "b"}, ops(h.entries))
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := newHistory(10)
	h.reset(entry("load"))
	h.push(entry("a"))
	h.undo()
	require.True(t, h.canRedo())

	h.push(entry("c"))
	assert.False(t, h.canRedo())
	assert.Equal(t, []string{"load", "c"}, ops(h.entries))
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := newHistory(3)
	h.reset(entry("load"))

	assert.Equal(t, 0, h.push(entry("a")))
	assert.Equal(t, 0, h.push(entry("b")))
	assert.Equal(t, 1, h.push(entry("c")))
	assert.Equal(t, 1, h.push(entry("d")))

	assert.Equal(t, []string{"b", "c", "d"}, ops(h.entries))
	assert.Len(t, h.entries, 3)
}

func TestHistoryReset(t *testing.T) {
	h := newHistory(5)
	h.reset(entry("load"))
	h.push(entry("a"))
	h.undo()

	h.reset(entry("reset"))
	assert.Equal(t, []string{"reset"}, ops(h.entries))
	assert.False(t, h.canRedo())
	assert.False(t, h.canUndo())
}

func TestNewHistoryMinimumLimit(t *testing.T) {
	h := newHistory(0)
	h.reset(entry("load"))
	h.push(entry("a"))

	assert.Equal(t, []string{"a"}, ops(h.entries))
	assert.False(t, h.canUndo())
}
