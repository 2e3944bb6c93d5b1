package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"goldgauge/internal/pipeline"
)

// goldCmd represents the gold command
var goldCmd = &cobra.Command{
	Use:   "gold",
	Short: "Collect NBP gold prices",
	Long: `Fetches daily gold prices (PLN per gram) from the NBP API, splits the
requested range into chunks the API accepts, aggregates to yearly or
monthly means and writes a snapshot.

Example:
  goldgauge gold
  goldgauge gold --monthly
  goldgauge gold --start-year 2015 --end-year 2020
  goldgauge gold --today`,
	RunE: runGold,
}

var (
	// Gold flags
	goldStartYear int
	goldEndYear   int
	goldMonthly   bool
	goldToday     bool
	goldOutput    string
)

func init() {
	rootCmd.AddCommand(goldCmd)

	goldCmd.Flags().IntVar(&goldStartYear, "start-year", 2013, "first year to collect")
	goldCmd.Flags().IntVar(&goldEndYear, "end-year", 0, "last year to collect (0 = current year)")
	goldCmd.Flags().BoolVar(&goldMonthly, "monthly", false, "publish monthly means instead of yearly")
	goldCmd.Flags().BoolVar(&goldToday, "today", false, "fetch only the latest quote")
	goldCmd.Flags().StringVar(&goldOutput, "output", "", "output path (default derived from data dir)")
}

func runGold(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}

	p := pipeline.NewGold(d.nbp, d.log)
	ctx := context.Background()

	if goldToday {
		out := goldOutput
		if out == "" {
			out = filepath.Join(d.cfg.DataDir, "gold-price-today.json")
		}
		summary, err := p.RunToday(ctx, out)
		PrintSummary(summary)
		if err != nil {
			PrintError(err.Error())
			return err
		}
		PrintSuccess("Today's gold price updated")
		return nil
	}

	out := goldOutput
	if out == "" {
		out = filepath.Join(d.cfg.DataDir, goldFileName(goldMonthly))
	}

	summary, err := p.Run(ctx, pipeline.GoldParams{
		StartYear:  goldStartYear,
		EndYear:    goldEndYear,
		Monthly:    goldMonthly,
		OutputPath: out,
	})
	PrintSummary(summary)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess("Gold prices updated")
	return nil
}

func goldFileName(monthly bool) string {
	if monthly {
		return "nbp-gold-prices-monthly.json"
	}
	return "nbp-gold-prices.json"
}
