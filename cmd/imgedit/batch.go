package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/go-imgedit/editor"
	"github.com/nvr-ai/go-imgedit/images"
	"github.com/nvr-ai/go-imgedit/util"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Apply the same edits to every image in a directory",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringP("dir", "d", "", "Directory of input images")
	batchCmd.Flags().StringP("output", "o", "", "Output directory (created if missing)")
	batchCmd.Flags().String("ext", "", "Output extension, e.g. .webp (default: keep the input extension)")
	batchCmd.Flags().Bool("keep-going", false, "Continue with the next file after a failure")
	addEditFlags(batchCmd.Flags())
	batchCmd.MarkFlagRequired("dir")
	batchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	outDir, _ := cmd.Flags().GetString("output")
	ext, _ := cmd.Flags().GetString("ext")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	ext, err := outputExtension(ext)
	if err != nil {
		return err
	}

	plan, err := parseEditPlan(cmd.Flags())
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	files, err := util.ListDirectoryImageFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found in %s", dir)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	failed := 0
	for _, file := range files {
		output := filepath.Join(outDir, util.ModifiedName(file.Path, ext))
		if err := processFile(engine, plan, file.Path, output); err != nil {
			if !keepGoing {
				return err
			}
			editor.Logger().Warn("skipping image", "path", file.Path, "error", err)
			failed++
			continue
		}
		printResult(cmd, engine, output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(files))
	}
	return nil
}

// outputExtension normalizes the --ext flag to a dotted extension the encoder supports.
// An empty value keeps each input's extension.
func outputExtension(ext string) (string, error) {
	if ext == "" {
		return "", nil
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !images.IsImagePath(ext) {
		return "", fmt.Errorf("unsupported output extension %q", ext)
	}
	return ext, nil
}

// processFile loads, edits and saves one image with a shared engine.
func processFile(engine *editor.Engine, plan editPlan, input, output string) error {
	if _, err := engine.Load(input); err != nil {
		return err
	}
	if err := plan.run(engine); err != nil {
		return err
	}
	return engine.Save(output)
}
