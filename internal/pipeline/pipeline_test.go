package pipeline

import (
	"io"
	"testing"
	"time"

	"goldgauge/pkg/config"
	"goldgauge/pkg/httputil"
	"goldgauge/pkg/logger"
)

// testDeps builds a quiet logger and an HTTP client without retries or
// throttling, so pipeline tests exercise orchestration, not transport.
func testDeps(t *testing.T) (*httputil.Client, *logger.Logger) {
	t.Helper()
	cfg := &config.Config{
		Env: "development",
		HTTP: config.HTTPConfig{
			Timeout:      5 * time.Second,
			MaxRetries:   0,
			RetryDelay:   time.Millisecond,
			RequestsPerS: 1000,
		},
	}
	log := logger.NewWriter(io.Discard, "error")
	return httputil.New(cfg, log), log
}
