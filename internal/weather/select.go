package weather

const (
	DefaultSlotHour  = 19
	DefaultSlotCount = 3
)

// SelectDailySlots returns up to n records whose local hour equals hour,
// at most one per local date, in input order. records must be chronological.
// The scan stops at the n-th match.
func SelectDailySlots(records []MergedRecord, hour, n int) []MergedRecord {
	if n <= 0 {
		return nil
	}

	selected := make([]MergedRecord, 0, n)
	lastDate := ""
	for i := 0; i < len(records) && len(selected) < n; i++ {
		r := records[i]
		if r.Time.Hour() != hour {
			continue
		}
		d := r.Time.Date()
		if d == lastDate {
			continue
		}
		lastDate = d
		selected = append(selected, r)
	}
	return selected
}
