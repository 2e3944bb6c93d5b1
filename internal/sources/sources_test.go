package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")

	content := `stocks:
  - ticker: CDR.WA
    name: CD Projekt
    exchange: GPW
    currency: PLN
    start_year: 2013
  - ticker: PKN.WA
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(reg.Stocks) != 2 {
		t.Fatalf("Load() = %d stocks, want 2", len(reg.Stocks))
	}
	if reg.Stocks[0].Name != "CD Projekt" {
		t.Errorf("name = %q, want CD Projekt", reg.Stocks[0].Name)
	}
	if reg.Stocks[1].StartYear != 2013 {
		t.Errorf("default start year = %d, want 2013", reg.Stocks[1].StartYear)
	}
	if reg.Stocks[1].Name != "PKN.WA" {
		t.Errorf("default name = %q, want ticker", reg.Stocks[1].Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(reg.Stocks) != 0 {
		t.Errorf("Load() = %d stocks, want 0", len(reg.Stocks))
	}
}

func TestLoadRejectsMissingTicker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	os.WriteFile(path, []byte("stocks:\n  - name: nameless\n"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a stock without a ticker")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"CDR.WA", "cdr_wa-monthly.json"},
		{"pkn.wa", "pkn_wa-monthly.json"},
		{"A B", "a_b-monthly.json"},
	}

	for _, tt := range tests {
		s := Stock{Ticker: tt.ticker}
		if got := s.FileName(); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}
