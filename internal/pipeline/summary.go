// Package pipeline wires the source clients, the timeseries primitives and
// the snapshot writer into per-source runs. Every run is linear: plan,
// fetch, aggregate, optionally densify and join, write. Mid-pipeline data
// problems degrade the output and are counted; only configuration and
// write failures abort a run.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoData means a run retrieved zero observations. No snapshot is
// written in that case, so a dead upstream never replaces good historical
// data with an empty file.
var ErrNoData = errors.New("no observations retrieved")

// RunSummary reports what one pipeline run did, for operator visibility.
// Presentation is the CLI's concern; the pipeline only counts.
type RunSummary struct {
	Source       string
	Fetched      int
	ChunksTotal  int
	ChunksFailed int
	Records      int
	Interpolated int
	Joined       int
	Unmatched    int
	OutputPath   string
	Warnings     []string
}

// warnf records a non-fatal problem on the summary.
func (s *RunSummary) warnf(format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
