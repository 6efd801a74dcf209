package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/ops"
)

func init() {
	for _, op := range ops.All {
		rootCmd.AddCommand(newOpCommand(op))
	}
}

func newOpCommand(op ops.Op) *cobra.Command {
	use := op.Name + " <hex>"
	example := fmt.Sprintf("  colorparser %s '#ff8000'", op.Name)
	if op.Triple != nil {
		if op.From == convert.FormatRGB {
			use = op.Name + " <r,g,b>"
			example = fmt.Sprintf("  colorparser %s 255,128,0\n  colorparser %s 255 128 0\n  colorparser %s 'rgb(255, 128, 0)'", op.Name, op.Name, op.Name)
		} else {
			use = op.Name + " <h,s,l>"
			example = fmt.Sprintf("  colorparser %s 30,100,50\n  colorparser %s 30 100 50\n  colorparser %s 'hsl(30, 100%%, 50%%)'", op.Name, op.Name, op.Name)
		}
	}

	return &cobra.Command{
		Use:     use,
		Short:   fmt.Sprintf("Convert %s to %s", op.From, op.To),
		Example: example,
		Args:    opArgs(op),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := op.Apply(joinArgs(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// opArgs accepts a single argument, or three separate numbers for numeric
// conversions.
func opArgs(op ops.Op) cobra.PositionalArgs {
	if op.Text != nil {
		return cobra.ExactArgs(1)
	}
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("accepts 1 or 3 args, received %d", len(args))
		}
		return nil
	}
}

// joinArgs turns ["255", "0", "0"] into "255,0,0".
func joinArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return strings.Join(args, ",")
}
