// Package sources loads the stock ticker registry from a YAML file.
package sources

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stock describes one configured ticker.
type Stock struct {
	Ticker    string `yaml:"ticker"`
	Name      string `yaml:"name"`
	Exchange  string `yaml:"exchange"`
	Currency  string `yaml:"currency"`
	StartYear int    `yaml:"start_year"`
}

// Registry is the parsed sources file.
type Registry struct {
	Stocks []Stock `yaml:"stocks"`
}

// Load reads the registry from a YAML file and applies defaults.
// A missing file is not an error; it yields an empty registry so the
// non-stock pipelines keep working without one.
func Load(path string) (*Registry, error) {
	reg := &Registry{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	for i := range reg.Stocks {
		if reg.Stocks[i].Ticker == "" {
			return nil, fmt.Errorf("sources file: stock %d has no ticker", i)
		}
		if reg.Stocks[i].StartYear == 0 {
			reg.Stocks[i].StartYear = 2013
		}
		if reg.Stocks[i].Name == "" {
			reg.Stocks[i].Name = reg.Stocks[i].Ticker
		}
	}

	return reg, nil
}

// FileName returns the snapshot file name for a ticker,
// e.g. "cdr.wa" becomes "cdr_wa-monthly.json".
func (s Stock) FileName() string {
	name := strings.ToLower(s.Ticker)
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return name + "-monthly.json"
}
