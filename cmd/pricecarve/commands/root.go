// Package commands implements the CLI commands for pricecarve.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pricecarve",
	Short: "Carve per-region pricing pages out of vendor HTML",
	Long: `Pricecarve takes a saved vendor pricing page and produces one clean,
self-contained HTML document per region: navigation chrome removed,
tabbed panels flattened, region-excluded pricing tables filtered out,
and the pricing rows parsed into structured data.

Examples:
  # Extract every configured region from a saved page
  pricecarve extract -i mysql.html -c rules.json --all-regions -o out/

  # Extract one region and print the report as YAML
  pricecarve extract -i mysql.html -c rules.json -r china-north \
      --format yaml

  # Show which tables each region keeps or drops
  pricecarve compare -i mysql.html -c rules.json`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pricecarve.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pricecarve")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PRICECARVE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
