package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "colorparser",
	Short: "Convert colors between hex, rgb() and hsl() notations",
	Long: `colorparser converts color values between hexadecimal (#rgb, #rrggbb),
rgb(r, g, b) and hsl(h, s%, l%) notations, using RGB as the pivot.

Single values are converted with the per-conversion commands or "convert";
files of colors with "batch". The same conversions are available over HTTP
("serve") and as MCP tools ("mcp").`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("COLORPARSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	initLogging()
}

// mustBind binds each viper key to the flag of the same command.
func mustBind(cmd *cobra.Command, pairs ...[2]string) {
	for _, p := range pairs {
		if err := viper.BindPFlag(p[0], cmd.Flags().Lookup(p[1])); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", p[1], err))
		}
	}
}
