package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goldgauge/internal/pipeline"
	"goldgauge/internal/snapshot"
	"goldgauge/internal/sources"
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Refresh every snapshot",
	Long: `Runs every pipeline in dependency order: gold first (yearly and
monthly), then the series that convert through it (wages, housing,
stocks), then today's quote. Steps fail independently; last-updated.json
is stamped only when every step succeeded.

Example:
  goldgauge all
  goldgauge all --start-year 2015`,
	RunE: runAll,
}

var (
	// All flags
	allStartYear int
	allEndYear   int
)

func init() {
	rootCmd.AddCommand(allCmd)

	allCmd.Flags().IntVar(&allStartYear, "start-year", 2013, "first year to collect")
	allCmd.Flags().IntVar(&allEndYear, "end-year", 0, "last year to collect (0 = current year)")
}

func runAll(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}

	registry, err := sources.Load(d.cfg.SourcesFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dataDir := d.cfg.DataDir

	goldAnnual := filepath.Join(dataDir, goldFileName(false))
	goldMonthly := filepath.Join(dataDir, goldFileName(true))

	gold := pipeline.NewGold(d.nbp, d.log)
	wages := pipeline.NewWages(d.eurostat, d.log)
	housing := pipeline.NewHousing(d.nbp, d.log)
	stocks := pipeline.NewStocks(d.stooq, d.log)

	endYear := allEndYear
	if endYear == 0 {
		endYear = currentYear()
	}

	steps := []struct {
		name string
		run  func() (*pipeline.RunSummary, error)
	}{
		{"gold yearly", func() (*pipeline.RunSummary, error) {
			return gold.Run(ctx, pipeline.GoldParams{
				StartYear: allStartYear, EndYear: endYear, OutputPath: goldAnnual,
			})
		}},
		{"gold monthly", func() (*pipeline.RunSummary, error) {
			return gold.Run(ctx, pipeline.GoldParams{
				StartYear: allStartYear, EndYear: endYear, Monthly: true, OutputPath: goldMonthly,
			})
		}},
		{"average wages", func() (*pipeline.RunSummary, error) {
			return wages.Run(ctx, pipeline.WagesParams{
				Dataset: pipeline.AverageWages, StartYear: allStartYear, EndYear: endYear,
				GoldPricesPath: goldAnnual,
				OutputPath:     filepath.Join(dataDir, "eurostat-avg-wages.json"),
			})
		}},
		{"minimum wages", func() (*pipeline.RunSummary, error) {
			return wages.Run(ctx, pipeline.WagesParams{
				Dataset: pipeline.MinimumWages, StartYear: allStartYear, EndYear: endYear,
				GoldPricesPath: goldAnnual,
				OutputPath:     filepath.Join(dataDir, "eurostat-min-wages.json"),
			})
		}},
		{"housing", func() (*pipeline.RunSummary, error) {
			return housing.Run(ctx, pipeline.HousingParams{
				GoldPricesPath: goldMonthly,
				OutputPath:     filepath.Join(dataDir, "nbp-warsaw-m2-prices-monthly.json"),
			})
		}},
		{"stocks", func() (*pipeline.RunSummary, error) {
			return stocks.Run(ctx, pipeline.StocksParams{
				Registry:       registry,
				GoldPricesPath: goldMonthly,
				OutputDir:      dataDir,
			})
		}},
		{"gold today", func() (*pipeline.RunSummary, error) {
			return gold.RunToday(ctx, filepath.Join(dataDir, "gold-price-today.json"))
		}},
	}

	var failed []string
	for _, step := range steps {
		summary, err := step.run()
		PrintSummary(summary)
		if err != nil {
			PrintError(fmt.Sprintf("%s: %v", step.name, err))
			failed = append(failed, step.name)
		}
	}

	fmt.Println()
	if len(failed) > 0 {
		return fmt.Errorf("steps failed: %s", strings.Join(failed, ", "))
	}

	stamp := snapshot.LastUpdated{Updated: time.Now().UTC().Format(time.RFC3339)}
	if err := snapshot.Write(filepath.Join(dataDir, "last-updated.json"), stamp); err != nil {
		return err
	}

	PrintSuccess("All snapshots updated")
	return nil
}
