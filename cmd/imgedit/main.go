package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nvr-ai/go-imgedit/editor"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "imgedit",
	Short:             "Crop, resize, filter and adjust images from the command line",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML engine configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every engine operation to stderr")
}

// setupLogging installs a stderr text logger; debug records only under --verbose.
func setupLogging(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	editor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// newEngine builds an engine from the --config flag.
func newEngine(cmd *cobra.Command) (*editor.Engine, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := editor.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return editor.New(cfg), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
