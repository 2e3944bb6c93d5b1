package timeseries

// JoinPolicy controls what happens to primary records whose period key has
// no match in the reference series.
type JoinPolicy int

const (
	// EmitAbsent keeps unmatched records with a nil derived value, so
	// periods outside the reference coverage still appear in source units.
	EmitAbsent JoinPolicy = iota
	// DropUnmatched removes unmatched records entirely.
	DropUnmatched
)

// JoinStats summarizes one join for the run summary.
type JoinStats struct {
	Matched       int
	Unmatched     int
	ZeroReference int
}

// Join aligns primary records against a reference series on period key and
// derives value/reference for every match. A zero reference value fails
// only that record (derived stays nil, counted in ZeroReference). Records
// never gain a derived value for a key absent from primary, and the input
// slices are not mutated.
func Join(primary, reference []Record, policy JoinPolicy) ([]Record, JoinStats) {
	refByKey := make(map[PeriodKey]float64, len(reference))
	for _, r := range reference {
		refByKey[r.Key] = r.Value
	}

	var stats JoinStats
	joined := make([]Record, 0, len(primary))

	for _, rec := range primary {
		refValue, ok := refByKey[rec.Key]
		if !ok {
			stats.Unmatched++
			if policy == EmitAbsent {
				joined = append(joined, Record{Key: rec.Key, Value: rec.Value})
			}
			continue
		}

		out := Record{Key: rec.Key, Value: rec.Value}
		if refValue == 0 {
			stats.ZeroReference++
		} else {
			derived := rec.Value / refValue
			out.Derived = &derived
			stats.Matched++
		}
		joined = append(joined, out)
	}

	return joined, stats
}
