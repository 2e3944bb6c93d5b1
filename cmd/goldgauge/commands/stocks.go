package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"goldgauge/internal/pipeline"
	"goldgauge/internal/sources"
)

// stocksCmd represents the stocks command
var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Collect stock quotes for configured tickers",
	Long: `Fetches daily quotes from Stooq for every ticker in the sources file,
folds them into monthly candles with a gold-gram close and writes one
snapshot per ticker.

Example:
  goldgauge stocks
  goldgauge stocks --sources sources.yaml`,
	RunE: runStocks,
}

var (
	// Stocks flags
	stocksSources    string
	stocksGoldPrices string
	stocksOutputDir  string
)

func init() {
	rootCmd.AddCommand(stocksCmd)

	stocksCmd.Flags().StringVar(&stocksSources, "sources", "", "ticker registry file (overrides SOURCES_FILE)")
	stocksCmd.Flags().StringVar(&stocksGoldPrices, "gold-prices", "", "monthly gold snapshot used as join reference")
	stocksCmd.Flags().StringVar(&stocksOutputDir, "output-dir", "", "output directory (default is data dir)")
}

func runStocks(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}

	sourcesFile := stocksSources
	if sourcesFile == "" {
		sourcesFile = d.cfg.SourcesFile
	}
	registry, err := sources.Load(sourcesFile)
	if err != nil {
		return err
	}

	goldPrices := stocksGoldPrices
	if goldPrices == "" {
		goldPrices = filepath.Join(d.cfg.DataDir, goldFileName(true))
	}
	outDir := stocksOutputDir
	if outDir == "" {
		outDir = d.cfg.DataDir
	}

	p := pipeline.NewStocks(d.stooq, d.log)
	summary, err := p.Run(context.Background(), pipeline.StocksParams{
		Registry:       registry,
		GoldPricesPath: goldPrices,
		OutputDir:      outDir,
	})
	PrintSummary(summary)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess("Stock quotes updated")
	return nil
}
