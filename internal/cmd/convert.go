package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/colorparser/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Convert a color, detecting its notation",
	Long: `Convert a color written as hex, rgb(...) or hsl(...) to the notation given by --to.
Converting to the same notation normalizes the value.`,
	Example: `  colorparser convert '#f80' --to hsl
  colorparser convert 'hsl(30, 100%, 50%)' --to hex`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("to", "t", "rgb", "Target notation: hex, rgb or hsl")

	mustBind(convertCmd, [2]string{"convert.to", "to"})
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, err := convert.ParseFormat(viper.GetString("convert.to"))
	if err != nil {
		return err
	}

	out, err := convert.Convert(args[0], to)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
