package timeseries

import "fmt"

// Densify expands sparse monthly points into a complete consecutive-month
// series. Months missing between two known points get linearly interpolated
// values; known points pass through unchanged. The output never extends
// beyond the first and last known month, and interpolation over fewer than
// two points is undefined, so that fails with ErrInsufficientData.
//
// Input must be sorted ascending by key with monthly keys throughout.
func Densify(points []Record) ([]Record, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: densify needs at least 2 points, got %d",
			ErrInsufficientData, len(points))
	}

	for i, p := range points {
		if !p.Key.IsMonthly() {
			return nil, fmt.Errorf("%w: non-monthly key %s", ErrInvalidRange, p.Key)
		}
		if i > 0 && !points[i-1].Key.Less(p.Key) {
			return nil, fmt.Errorf("%w: points not strictly ascending at %s", ErrInvalidRange, p.Key)
		}
	}

	first := points[0].Key.monthIndex()
	last := points[len(points)-1].Key.monthIndex()

	dense := make([]Record, 0, last-first+1)
	seg := 0 // index of the known point starting the current segment

	for idx := first; idx <= last; idx++ {
		for points[seg+1].Key.monthIndex() < idx {
			seg++
		}

		lo, hi := points[seg], points[seg+1]
		key := MonthKey(idx/12, idx%12+1)

		var value float64
		switch idx {
		case lo.Key.monthIndex():
			value = lo.Value
		case hi.Key.monthIndex():
			value = hi.Value
		default:
			span := hi.Key.monthIndex() - lo.Key.monthIndex()
			step := idx - lo.Key.monthIndex()
			value = lo.Value + (hi.Value-lo.Value)*float64(step)/float64(span)
		}

		dense = append(dense, Record{Key: key, Value: value})
	}

	return dense, nil
}
