package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorparser/internal/swatch"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch <color>",
	Short: "Render a color swatch PNG labelled with all three notations",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwatch,
}

func init() {
	rootCmd.AddCommand(swatchCmd)

	swatchCmd.Flags().StringP("output", "o", "swatch.png", "Output PNG file (- for stdout)")
	swatchCmd.Flags().Int("size", swatch.DefaultSize, "Swatch edge length in pixels")
	swatchCmd.Flags().Bool("label", true, "Draw hex/rgb/hsl labels (only when size allows)")

	mustBind(swatchCmd,
		[2]string{"swatch.output", "output"},
		[2]string{"swatch.size", "size"},
		[2]string{"swatch.label", "label"},
	)
}

func runSwatch(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	output := viper.GetString("swatch.output")

	s, err := swatch.Render(args[0], swatch.Options{
		Size:  viper.GetInt("swatch.size"),
		Label: viper.GetBool("swatch.label"),
	})
	if err != nil {
		return err
	}

	if output == "-" {
		return s.Encode(cmd.OutOrStdout())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("Swatch written", "output", output, "hex", s.Hex, "rgb", s.RGB, "hsl", s.HSL)
	return nil
}
