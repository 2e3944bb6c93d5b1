package commands

import (
	"fmt"

	"goldgauge/internal/pipeline"
)

// Common formatting utilities so every command reports runs the same way.

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintSummary prints one pipeline run summary.
func PrintSummary(s *pipeline.RunSummary) {
	if s == nil {
		return
	}

	fmt.Println()
	PrintSeparator()
	fmt.Printf("  %s\n", s.Source)
	PrintSeparator()
	fmt.Printf("  Fetched      : %d\n", s.Fetched)
	if s.ChunksTotal > 0 {
		fmt.Printf("  Chunks       : %d (%d failed)\n", s.ChunksTotal, s.ChunksFailed)
	}
	fmt.Printf("  Records      : %d\n", s.Records)
	if s.Interpolated > 0 {
		fmt.Printf("  Interpolated : %d\n", s.Interpolated)
	}
	if s.Joined > 0 || s.Unmatched > 0 {
		fmt.Printf("  Gold join    : %d matched, %d unmatched\n", s.Joined, s.Unmatched)
	}
	if s.OutputPath != "" {
		fmt.Printf("  Output       : %s\n", s.OutputPath)
	}

	for _, w := range s.Warnings {
		PrintWarning(w)
	}
}
