package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvr-ai/go-imgedit/editor"
	"github.com/nvr-ai/go-imgedit/images"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// editPlan is the sequence of engine operations requested on the command line.
type editPlan struct {
	crop    *images.Rect
	effects images.EffectParameters
	filters []images.FilterKind
	scale   int
	fit     *images.Preset
}

// addEditFlags registers the flags shared by apply and batch.
func addEditFlags(flags *pflag.FlagSet) {
	flags.String("crop", "", "Crop region x1,y1,x2,y2 (applied first)")
	flags.Int("brightness", 0, "Brightness adjustment (-100..100)")
	flags.Float64("contrast", images.DefaultContrast, "Contrast multiplier (0.5..2.0)")
	flags.Int("blur", 0, "Gaussian blur radius (0..50)")
	flags.StringSlice("filter", nil, "One-shot filters in order: blur, sharpen, grayscale")
	flags.Int("scale", images.DefaultScale, "Final resize in percent (1..500)")
	flags.String("fit", "", "Final resize to fit a preset (thumbnail, vga, 720p, 1080p, ...)")
}

// parseEditPlan reads the edit flags.
func parseEditPlan(flags *pflag.FlagSet) (editPlan, error) {
	var plan editPlan

	cropStr, _ := flags.GetString("crop")
	if cropStr != "" {
		r, err := parseCrop(cropStr)
		if err != nil {
			return editPlan{}, err
		}
		plan.crop = &r
	}

	plan.effects.Brightness, _ = flags.GetInt("brightness")
	plan.effects.Contrast, _ = flags.GetFloat64("contrast")
	plan.effects.BlurRadius, _ = flags.GetInt("blur")
	plan.effects.ScalePercent = images.DefaultScale

	names, _ := flags.GetStringSlice("filter")
	for _, name := range names {
		kind, err := images.ParseFilterKind(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return editPlan{}, err
		}
		plan.filters = append(plan.filters, kind)
	}

	plan.scale, _ = flags.GetInt("scale")
	if plan.scale <= 0 {
		return editPlan{}, fmt.Errorf("--scale must be positive, got %d", plan.scale)
	}

	fitName, _ := flags.GetString("fit")
	if fitName != "" {
		if flags.Changed("scale") {
			return editPlan{}, fmt.Errorf("--fit and --scale are mutually exclusive")
		}
		preset, ok := images.LookupPreset(fitName)
		if !ok {
			return editPlan{}, fmt.Errorf("unknown --fit preset %q", fitName)
		}
		plan.fit = &preset
	}

	return plan, nil
}

// parseCrop parses "x1,y1,x2,y2".
func parseCrop(s string) (images.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return images.Rect{}, fmt.Errorf("--crop expects x1,y1,x2,y2, got %q", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return images.Rect{}, fmt.Errorf("--crop value %q: %w", p, err)
		}
		v[i] = n
	}
	return images.Rect{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// run applies the plan to the loaded image. Effects are computed relative to the
// crop, so they run before the filters and the final resize.
func (p editPlan) run(engine *editor.Engine) error {
	if p.crop != nil {
		if _, err := engine.Crop(p.crop.X1, p.crop.Y1, p.crop.X2, p.crop.Y2); err != nil {
			return err
		}
	}

	if !p.effects.IsIdentity() {
		if _, err := engine.ApplyEffects(p.effects); err != nil {
			return err
		}
	}

	for _, kind := range p.filters {
		if _, err := engine.ApplyFilter(kind); err != nil {
			return err
		}
	}

	scale := p.scale
	if p.fit != nil {
		current := engine.Current()
		scale = images.FitPercent(current.Width, current.Height, *p.fit)
	}
	if scale != images.DefaultScale {
		if _, err := engine.Resize(scale); err != nil {
			return err
		}
	}

	return nil
}

// printResult writes a one-line summary of a saved image.
func printResult(cmd *cobra.Command, engine *editor.Engine, output string) {
	current := engine.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d edits, checksum %s\n",
		output, current.Width, current.Height, engine.HistoryLen()-1, images.Checksum(current))
}
