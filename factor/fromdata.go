package factor

import "fmt"

// FactorFromCounts builds an empirical Factor over cols from tabular
// observations. rows holds one record per observation; each record must
// have one value per entry of cols, in the same order. States are
// collected from the observed values, in first-seen order, so repeated
// runs over the same data produce the same factor. Entries hold raw
// observation counts; callers normalize explicitly if a distribution is
// wanted.
//
// Grounded on the original implementation's empirical-factor
// constructor (thomas-core's ProbabilisticModel mixin): a factor built
// this way is otherwise an ordinary Factor and composes with the rest of
// the algebra without special-casing.
func FactorFromCounts(rows [][]string, cols []string) (*Factor, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("factor.FactorFromCounts: cols must be non-empty: %w", ErrShape)
	}
	states := make(map[string][]string, len(cols))
	seen := make(map[string]map[string]bool, len(cols))
	for _, c := range cols {
		states[c] = nil
		seen[c] = map[string]bool{}
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("factor.FactorFromCounts: row %d has %d values, want %d: %w", i, len(row), len(cols), ErrShape)
		}
		for j, c := range cols {
			v := row[j]
			if !seen[c][v] {
				seen[c][v] = true
				states[c] = append(states[c], v)
			}
		}
	}

	counts := make(map[string]float64)
	for _, row := range rows {
		key := ""
		for _, v := range row {
			key += v + "\x00"
		}
		counts[key]++
	}

	strides := stridesFor(cols, states)
	data := make([]float64, totalSize(cols, states))
	for _, row := range rows {
		key := ""
		for _, v := range row {
			key += v + "\x00"
		}
		flat := 0
		for i, c := range cols {
			si := -1
			for k, s := range states[c] {
				if s == row[i] {
					si = k
					break
				}
			}
			flat += si * strides[i]
		}
		data[flat] = counts[key]
	}

	return New(cols, states, data)
}
