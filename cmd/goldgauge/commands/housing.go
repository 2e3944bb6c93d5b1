package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"goldgauge/internal/pipeline"
)

// housingCmd represents the housing command
var housingCmd = &cobra.Command{
	Use:   "housing",
	Short: "Collect Warsaw m2 housing prices",
	Long: `Downloads the NBP quarterly residential price workbook, extracts the
Warsaw transaction prices, interpolates quarters to a monthly grid and
writes the series with each month also priced in grams of gold.

Example:
  goldgauge housing
  goldgauge housing --gold-prices data/nbp-gold-prices-monthly.json`,
	RunE: runHousing,
}

var (
	// Housing flags
	housingGoldPrices string
	housingOutput     string
)

func init() {
	rootCmd.AddCommand(housingCmd)

	housingCmd.Flags().StringVar(&housingGoldPrices, "gold-prices", "", "monthly gold snapshot used as join reference")
	housingCmd.Flags().StringVar(&housingOutput, "output", "", "output path (default derived from data dir)")
}

func runHousing(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}

	goldPrices := housingGoldPrices
	if goldPrices == "" {
		goldPrices = filepath.Join(d.cfg.DataDir, goldFileName(true))
	}
	out := housingOutput
	if out == "" {
		out = filepath.Join(d.cfg.DataDir, "nbp-warsaw-m2-prices-monthly.json")
	}

	p := pipeline.NewHousing(d.nbp, d.log)
	summary, err := p.Run(context.Background(), pipeline.HousingParams{
		GoldPricesPath: goldPrices,
		OutputPath:     out,
	})
	PrintSummary(summary)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess("Housing prices updated")
	return nil
}
