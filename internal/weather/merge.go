package weather

// NormalizeSeries converts raw upstream steps into a Series.
// Steps with a malformed timestamp are skipped; their errors are returned so
// the caller can log and count them.
func NormalizeSeries(steps []RawTimeStep, n *Normalizer) (Series, []error) {
	series := make(Series, 0, len(steps))
	var errs []error

	for _, step := range steps {
		lt, err := n.Normalize(step.ValidTime)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		series = append(series, TimeStep{
			Time:   lt,
			Params: ExtractParameters(step.Parameters),
		})
	}
	return series, errs
}

// MergeSeries joins secondary series onto the primary one by local minute key.
// The output follows the primary's order and has one record per primary step.
// A known primary value is never replaced. For fields the primary lacks, the
// first secondary (in argument order) with a known value supplies it.
// Neither input is modified.
func MergeSeries(primary Series, secondaries ...Series) []MergedRecord {
	indexes := make([]map[string]ParameterMap, len(secondaries))
	for i, sec := range secondaries {
		idx := make(map[string]ParameterMap, len(sec))
		for _, step := range sec {
			k := step.Time.Key()
			if _, exists := idx[k]; !exists {
				idx[k] = step.Params
			}
		}
		indexes[i] = idx
	}

	records := make([]MergedRecord, 0, len(primary))
	for _, step := range primary {
		key := step.Time.Key()

		fields := make(ParameterMap, len(step.Params))
		for name, v := range step.Params {
			if v.IsKnown() {
				fields[name] = v
			}
		}

		for _, idx := range indexes {
			params, ok := idx[key]
			if !ok {
				continue
			}
			for name, v := range params {
				if !v.IsKnown() {
					continue
				}
				if _, taken := fields[name]; taken {
					continue
				}
				fields[name] = v
			}
		}

		records = append(records, newMergedRecord(step.Time, fields))
	}
	return records
}
