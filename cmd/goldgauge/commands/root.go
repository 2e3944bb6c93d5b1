package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goldgauge/internal/external/eurostat"
	"goldgauge/internal/external/nbp"
	"goldgauge/internal/external/stooq"
	"goldgauge/pkg/config"
	"goldgauge/pkg/httputil"
	"goldgauge/pkg/logger"
)

var (
	// Global flags
	envFile string
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goldgauge",
	Short: "Polish price history in grams of gold",
	Long: `goldgauge collects Polish economic series (NBP gold prices, Eurostat
wages, Warsaw m2 housing prices, GPW stock quotes), aligns them on a
common time grid and publishes JSON snapshots with each value also
expressed in grams of gold.

Usage:
  goldgauge gold --monthly
  goldgauge wages avg
  goldgauge housing
  goldgauge stocks
  goldgauge all
  goldgauge serve --addr :8080`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before config (default is .env)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "output directory for snapshots (overrides DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// deps bundles everything a subcommand needs to run a pipeline.
type deps struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *httputil.Client
	nbp        *nbp.Client
	eurostat   *eurostat.Client
	stooq      *stooq.Client
}

// initDeps loads config, applies flag overrides and builds the shared
// clients. Every data subcommand starts here.
func initDeps() (*deps, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)

	return &deps{
		cfg:        cfg,
		log:        log,
		httpClient: httpClient,
		nbp:        nbp.NewClient(httpClient, log, cfg.NBP),
		eurostat:   eurostat.NewClient(httpClient, log, cfg.Eurostat),
		stooq:      stooq.NewClient(httpClient, log, cfg.Stooq),
	}, nil
}
