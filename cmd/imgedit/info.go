package main

import (
	"fmt"

	"github.com/nvr-ai/go-imgedit/images"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Print dimensions, format and checksum of images",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		buf, err := images.Open(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		preset := "none"
		if p, ok := images.LargestPresetWithin(buf.Width, buf.Height); ok {
			preset = string(p.Name)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %.2fMP format=%s covers=%s checksum=%s\n",
			path, buf.Width, buf.Height, images.MegaPixels(buf.Width, buf.Height),
			images.FormatFromPath(path), preset, images.Checksum(buf))
	}
	return nil
}
