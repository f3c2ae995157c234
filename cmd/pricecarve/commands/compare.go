package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pricecarve/pricecarve/internal/logger"
	"github.com/pricecarve/pricecarve/internal/output"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show which tables each region keeps or drops",
	Long: `Compare resolves the rules file against the tables of a saved page
and prints, per region, the table ids that survive and the ones the
rules exclude. It also reports the page's product metadata, service
tiers and FAQs, so a rules file can be checked without extracting.

Example:
  pricecarve compare -i mysql.html -c rules.json --format yaml`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringP("input", "i", "", "path to the saved pricing page (required)")
	flags.StringP("rules", "c", "", "path to region exclusion rules JSON")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.String("product", "mysql", "product key for rule lookups")

	_ = compareCmd.MarkFlagRequired("input")
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	inputPath, _ := cmd.Flags().GetString("input")
	raw, err := os.ReadFile(inputPath) //#nosec G304 -- CLI tool reads a user-specified page
	if err != nil {
		logError("cannot read input page: %v", err)
		return err
	}

	ex, err := newExtractor(cmd)
	if err != nil {
		return err
	}

	summary, err := ex.Describe(string(raw))
	if err != nil {
		logError("cannot parse page: %v", err)
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	writer, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	return writer.Write(summary)
}
