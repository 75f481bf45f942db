package main

import (
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Edit a single image",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringP("input", "i", "", "Input image file")
	applyCmd.Flags().StringP("output", "o", "", "Output image file (format from extension, PNG by default)")
	addEditFlags(applyCmd.Flags())
	applyCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	plan, err := parseEditPlan(cmd.Flags())
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	if _, err := engine.Load(inputPath); err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = engine.SuggestedSaveName()
	}

	if err := plan.run(engine); err != nil {
		return err
	}
	if err := engine.Save(outputPath); err != nil {
		return err
	}

	printResult(cmd, engine, outputPath)
	return nil
}
