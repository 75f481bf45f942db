package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/go-imgedit/editor"
	"github.com/nvr-ai/go-imgedit/images"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addEditFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeImage(t *testing.T, path string, width, height int) {
	t.Helper()

	buf, err := images.NewPixelBuffer(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, uint8(x), uint8(y), 200)
		}
	}
	require.NoError(t, images.Save(path, buf, images.DefaultEncodeOptions()))
}

func TestParseCrop(t *testing.T) {
	r, err := parseCrop("10, 20,60,80")
	require.NoError(t, err)
	assert.Equal(t, images.Rect{X1: 10, Y1: 20, X2: 60, Y2: 80}, r)

	for _, bad := range []string{"1,2,3", "a,b,c,d", "1,2,3,4,5", ""} {
		_, err := parseCrop(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseEditPlan(t *testing.T) {
	plan, err := parseEditPlan(newEditFlags(t,
		"--crop", "0,0,10,10",
		"--brightness", "20",
		"--filter", "sharpen",
		"--filter", "Grayscale",
		"--scale", "50",
	))
	require.NoError(t, err)

	require.NotNil(t, plan.crop)
	assert.Equal(t, images.Rect{X2: 10, Y2: 10}, *plan.crop)
	assert.Equal(t, 20, plan.effects.Brightness)
	assert.Equal(t, images.DefaultContrast, plan.effects.Contrast)
	assert.Equal(t, []images.FilterKind{images.FilterSharpen, images.FilterGrayscale}, plan.filters)
	assert.Equal(t, 50, plan.scale)

	empty, err := parseEditPlan(newEditFlags(t))
	require.NoError(t, err)
	assert.Nil(t, empty.crop)
	assert.True(t, empty.effects.IsIdentity())
	assert.Empty(t, empty.filters)

	_, err = parseEditPlan(newEditFlags(t, "--filter", "emboss"))
	assert.Error(t, err)
	_, err = parseEditPlan(newEditFlags(t, "--scale", "0"))
	assert.Error(t, err)
}

func TestEditPlanRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	writeImage(t, path, 100, 100)

	engine := editor.New(editor.DefaultConfig())
	_, err := engine.Load(path)
	require.NoError(t, err)

	plan, err := parseEditPlan(newEditFlags(t,
		"--crop", "60,60,10,10",
		"--contrast", "1.2",
		"--filter", "blur",
		"--scale", "200",
	))
	require.NoError(t, err)
	require.NoError(t, plan.run(engine))

	current := engine.Current()
	assert.Equal(t, 100, current.Width)
	assert.Equal(t, 100, current.Height)
	assert.Equal(t, 5, engine.HistoryLen(), "load, crop, effects, filter and resize")
}

func TestBatchCommand(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "edited")
	writeImage(t, filepath.Join(in, "a.png"), 20, 10)
	writeImage(t, filepath.Join(in, "b.bmp"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("skip"), 0o644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"batch", "-d", in, "-o", out, "--scale", "50", "--filter", "grayscale"})
	require.NoError(t, rootCmd.Execute())

	a, err := images.Open(filepath.Join(out, "a-modified.png"))
	require.NoError(t, err)
	assert.Equal(t, 10, a.Width)
	assert.Equal(t, 5, a.Height)

	b, err := images.Open(filepath.Join(out, "b-modified.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 4, b.Width)

	assert.Contains(t, stdout.String(), "a-modified.png: 10x5")
	assert.Contains(t, stdout.String(), "b-modified.bmp: 4x4")
}

func TestOutputExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
		wantErr  bool
	}{
		{"", "", false},
		{".webp", ".webp", false},
		{"webp", ".webp", false},
		{"JPG", ".JPG", false},
		{"heic", "", true},
		{".", "", true},
	}

	for _, tt := range tests {
		got, err := outputExtension(tt.ext)
		if tt.wantErr {
			assert.Error(t, err, tt.ext)
			continue
		}
		require.NoError(t, err, tt.ext)
		assert.Equal(t, tt.expected, got)
	}
}

func TestBatchCommandExtension(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "edited")
	writeImage(t, filepath.Join(in, "a.png"), 20, 10)
	t.Cleanup(func() { _ = batchCmd.Flags().Set("ext", "") })

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"batch", "-d", in, "-o", out, "--scale", "50", "--ext", "webp"})
	require.NoError(t, rootCmd.Execute())

	a, err := images.Open(filepath.Join(out, "a-modified.webp"))
	require.NoError(t, err)
	assert.Equal(t, 10, a.Width)

	rootCmd.SetArgs([]string{"batch", "-d", in, "-o", out, "--scale", "50", "--ext", "heic"})
	assert.Error(t, rootCmd.Execute())
	_, err = os.Stat(filepath.Join(out, "a-modified.heic"))
	assert.True(t, os.IsNotExist(err), "nothing is written for an unsupported extension")
}

func TestParseEditPlanFit(t *testing.T) {
	plan, err := parseEditPlan(newEditFlags(t, "--fit", "thumbnail"))
	require.NoError(t, err)
	require.NotNil(t, plan.fit)
	assert.Equal(t, images.PresetThumbnail, plan.fit.Name)

	_, err = parseEditPlan(newEditFlags(t, "--fit", "720p", "--scale", "50"))
	assert.Error(t, err)
	_, err = parseEditPlan(newEditFlags(t, "--fit", "poster"))
	assert.Error(t, err)
}

func TestEditPlanRunFit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	writeImage(t, path, 200, 100)

	engine := editor.New(editor.DefaultConfig())
	_, err := engine.Load(path)
	require.NoError(t, err)

	plan, err := parseEditPlan(newEditFlags(t, "--fit", "vga"))
	require.NoError(t, err)
	require.NoError(t, plan.run(engine))

	current := engine.Current()
	assert.Equal(t, 640, current.Width)
	assert.Equal(t, 320, current.Height)
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	writeImage(t, path, 700, 500)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"info", path})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, stdout.String(), "700x500")
	assert.Contains(t, stdout.String(), "format=png")
	assert.Contains(t, stdout.String(), "covers=vga")
}
