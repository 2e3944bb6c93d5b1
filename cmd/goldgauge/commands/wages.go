package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"goldgauge/internal/pipeline"
)

// wagesCmd represents the wages command
var wagesCmd = &cobra.Command{
	Use:   "wages",
	Short: "Collect Eurostat wage statistics",
	Long: `Fetches Polish wage series from Eurostat, converts each year's wage to
grams of gold using the annual gold snapshot and writes the result.

Datasets:
  avg - average full-time adjusted salary (nama_10_fte)
  min - monthly minimum wage, S1/S2 averaged (earn_mw_cur)

Example:
  goldgauge wages avg
  goldgauge wages min --start-year 2013`,
}

var (
	wagesAvgCmd = &cobra.Command{
		Use:   "avg",
		Short: "Average wages in PLN and grams of gold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWages(pipeline.AverageWages, "eurostat-avg-wages.json")
		},
	}

	wagesMinCmd = &cobra.Command{
		Use:   "min",
		Short: "Minimum wages in PLN and grams of gold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWages(pipeline.MinimumWages, "eurostat-min-wages.json")
		},
	}
)

var (
	// Wages flags
	wagesStartYear  int
	wagesEndYear    int
	wagesGoldPrices string
	wagesOutput     string
)

func init() {
	rootCmd.AddCommand(wagesCmd)
	wagesCmd.AddCommand(wagesAvgCmd)
	wagesCmd.AddCommand(wagesMinCmd)

	wagesCmd.PersistentFlags().IntVar(&wagesStartYear, "start-year", 2013, "first year to collect")
	wagesCmd.PersistentFlags().IntVar(&wagesEndYear, "end-year", 0, "last year to collect (0 = current year)")
	wagesCmd.PersistentFlags().StringVar(&wagesGoldPrices, "gold-prices", "", "annual gold snapshot used as join reference")
	wagesCmd.PersistentFlags().StringVar(&wagesOutput, "output", "", "output path (default derived from data dir)")
}

func runWages(dataset pipeline.WageDataset, defaultFile string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}

	endYear := wagesEndYear
	if endYear == 0 {
		endYear = currentYear()
	}

	goldPrices := wagesGoldPrices
	if goldPrices == "" {
		goldPrices = filepath.Join(d.cfg.DataDir, goldFileName(false))
	}
	out := wagesOutput
	if out == "" {
		out = filepath.Join(d.cfg.DataDir, defaultFile)
	}

	p := pipeline.NewWages(d.eurostat, d.log)
	summary, err := p.Run(context.Background(), pipeline.WagesParams{
		Dataset:        dataset,
		StartYear:      wagesStartYear,
		EndYear:        endYear,
		GoldPricesPath: goldPrices,
		OutputPath:     out,
	})
	PrintSummary(summary)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess("Wages updated")
	return nil
}

func currentYear() int {
	return time.Now().UTC().Year()
}
