package timeseries

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when a caller supplies a malformed date range.
var ErrInvalidRange = errors.New("invalid date range")

// ErrInsufficientData is returned when a step receives too few points to
// produce a meaningful result.
var ErrInsufficientData = errors.New("insufficient data")

// Chunk is one sub-range of a larger date interval, sized to respect a
// remote API's maximum span per request. Both ends are inclusive.
type Chunk struct {
	Start time.Time
	End   time.Time
}

// PlanChunks splits [start, end] into contiguous chunks of at most
// maxSpanDays each. The end of one chunk is the day before the start of the
// next, so the union covers the range exactly once with no overlap. A range
// shorter than maxSpanDays yields a single chunk; even a single-day range
// yields one chunk.
func PlanChunks(start, end time.Time, maxSpanDays int) ([]Chunk, error) {
	start = truncateDay(start)
	end = truncateDay(end)

	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if maxSpanDays < 1 {
		return nil, fmt.Errorf("%w: max span %d days", ErrInvalidRange, maxSpanDays)
	}

	var chunks []Chunk
	for cur := start; !cur.After(end); {
		chunkEnd := cur.AddDate(0, 0, maxSpanDays)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		chunks = append(chunks, Chunk{Start: cur, End: chunkEnd})
		cur = chunkEnd.AddDate(0, 0, 1)
	}

	return chunks, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
