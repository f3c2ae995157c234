package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pricecarve/pricecarve/internal/logger"
	"github.com/pricecarve/pricecarve/internal/output"
	"github.com/pricecarve/pricecarve/pkg/extract"
	"github.com/pricecarve/pricecarve/pkg/regions"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract per-region pricing documents from a saved page",
	Long: `Extract cleans a saved vendor pricing page and writes one HTML
document per region, with region-excluded tables filtered out.

The rules file is a JSON array of {os, region, tableIDs} records. A
region with an empty tableIDs list keeps every table; a region absent
from the file does too.

Examples:
  # All configured regions, one file each
  pricecarve extract -i mysql.html -c rules.json --all-regions -o out/

  # Two specific regions, report to stdout as JSON
  pricecarve extract -i mysql.html -c rules.json \
      -r china-north -r china-east`,
	RunE: runExtract,
}

// regionReport is the per-region section of the extraction report.
type regionReport struct {
	Region         string   `json:"region" yaml:"region"`
	File           string   `json:"file,omitempty" yaml:"file,omitempty"`
	Size           string   `json:"size" yaml:"size"`
	RetainedTables int      `json:"retained_tables" yaml:"retained_tables"`
	FilteredTables int      `json:"filtered_tables" yaml:"filtered_tables"`
	RetainedIDs    []string `json:"retained_table_ids,omitempty" yaml:"retained_table_ids,omitempty"`
	ParsedRows     int      `json:"parsed_rows" yaml:"parsed_rows"`
	Issues         []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	DurationMs     int64    `json:"duration_ms" yaml:"duration_ms"`
	Error          string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	flags.StringP("input", "i", "", "path to the saved pricing page (required)")
	flags.StringP("rules", "c", "", "path to region exclusion rules JSON")
	flags.StringSliceP("region", "r", nil, "region id to extract (can be repeated)")
	flags.Bool("all-regions", false, "extract every region the rules or the page define")

	flags.StringP("output-dir", "o", "", "directory for per-region HTML files (default: report only)")
	flags.String("report", "", "report file (default: stdout)")
	flags.String("format", "json", "report format: json, jsonl, yaml")
	flags.Bool("timestamp", false, "include a timestamp in output filenames")

	flags.String("product", "mysql", "product key for rule lookups")
	flags.String("title", "", "override the document title")
	flags.StringSlice("keep-attr", nil, "attribute to keep when sanitizing (can be repeated)")
	flags.Bool("no-validate", false, "skip structural checks on cleaned documents")
	flags.IntP("concurrency", "n", 4, "regions processed in parallel")

	_ = extractCmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("product", flags.Lookup("product"))
}

func runExtract(cmd *cobra.Command, args []string) error {
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
	logger.Debug("input loaded", "path", inputPath, "size", humanize.Bytes(uint64(len(raw))))

	ex, err := newExtractor(cmd)
	if err != nil {
		return err
	}

	targets, err := targetRegions(cmd, ex, string(raw))
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no regions to extract: pass -r, --all-regions, or a rules file")
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o750); err != nil {
			logError("cannot create output directory: %v", err)
			return err
		}
	}

	product, _ := cmd.Flags().GetString("product")
	timestamped, _ := cmd.Flags().GetBool("timestamp")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	logger.Info("starting extraction",
		"input", inputPath,
		"regions", len(targets),
		"concurrency", concurrency)

	var reports []regionReport
	errorCount := 0
	for res := range ex.ExtractAll(string(raw), targets, concurrency) {
		if res.Error != nil {
			logger.Error("region failed", "region", res.Region, "error", res.Error)
			reports = append(reports, regionReport{Region: res.Region, Error: res.Error.Error()})
			errorCount++
			continue
		}

		report := regionReport{
			Region:         res.Region,
			Size:           humanize.Bytes(uint64(res.Size)),
			RetainedTables: res.RetainedTables,
			FilteredTables: res.FilteredTables,
			RetainedIDs:    res.RetainedTableIDs,
			Issues:         res.Issues,
			DurationMs:     res.Duration.Milliseconds(),
		}
		for _, table := range res.Tables {
			report.ParsedRows += len(table.Rows)
		}

		if outputDir != "" {
			name := fmt.Sprintf("%s-%s.html", product, res.Region)
			if timestamped {
				name = fmt.Sprintf("%s-%s-%s.html", product, res.Region, time.Now().Format("20060102-150405"))
			}
			path := filepath.Join(outputDir, name)
			if err := os.WriteFile(path, []byte(res.HTML), 0o600); err != nil {
				logError("cannot write %s: %v", path, err)
				return err
			}
			report.File = path
			logger.Info("region written",
				"region", res.Region,
				"file", path,
				"size", report.Size,
				"retained", res.RetainedTables,
				"filtered", res.FilteredTables)
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Region < reports[j].Region })

	if err := writeReport(cmd, reports); err != nil {
		return err
	}

	logger.Info("extraction complete", "regions", len(reports)-errorCount, "errors", errorCount)
	return nil
}

// newExtractor builds the extractor from flags and the rules file.
// Shared by extract and compare; flags one command lacks read as zero.
func newExtractor(cmd *cobra.Command) (*extract.Extractor, error) {
	product, _ := cmd.Flags().GetString("product")
	if product == "" {
		product = viper.GetString("product")
	}
	opts := []extract.Option{
		extract.WithProduct(product),
	}

	if rulesPath, _ := cmd.Flags().GetString("rules"); rulesPath != "" {
		rules, err := regions.Load(rulesPath)
		if err != nil {
			logError("cannot load rules: %v", err)
			return nil, err
		}
		logger.Debug("rules loaded", "path", rulesPath, "count", rules.Len())
		opts = append(opts, extract.WithRules(rules))
	}

	if title, _ := cmd.Flags().GetString("title"); title != "" {
		opts = append(opts, extract.WithTitle(title))
	}
	if attrs, _ := cmd.Flags().GetStringSlice("keep-attr"); len(attrs) > 0 {
		opts = append(opts, extract.WithKeepAttrs(attrs))
	}
	if noValidate, _ := cmd.Flags().GetBool("no-validate"); noValidate {
		opts = append(opts, extract.WithValidation(false))
	}

	return extract.New(opts...), nil
}

func targetRegions(cmd *cobra.Command, ex *extract.Extractor, raw string) ([]string, error) {
	if listed, _ := cmd.Flags().GetStringSlice("region"); len(listed) > 0 {
		return listed, nil
	}
	if all, _ := cmd.Flags().GetBool("all-regions"); !all {
		// With no explicit regions, behave like --all-regions when a
		// rules file was given.
		if rulesPath, _ := cmd.Flags().GetString("rules"); rulesPath == "" {
			return nil, nil
		}
	}
	return ex.Regions(raw)
}

func writeReport(cmd *cobra.Command, reports []regionReport) error {
	out := os.Stdout
	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		f, err := os.Create(reportPath) //#nosec G304 -- CLI tool writes to a user-specified file
		if err != nil {
			logError("cannot create report file: %v", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	writer, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	items := make([]any, len(reports))
	for i, r := range reports {
		items[i] = r
	}
	return writer.WriteAll(items)
}
