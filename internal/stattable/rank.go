package stattable

import "sort"

// Eligibility gates a row's participation in ranking for one column, beyond
// plain value presence. Used by the player path to enforce shot-zone
// qualification. A nil Eligibility means presence-only.
type Eligibility func(rowIdx int, col string) bool

// RankOptions control a RankEncode pass.
type RankOptions struct {
	// GroupCol partitions rows for the conference-relative rank.
	GroupCol string
	// Exclude lists columns never ranked (entity ids, grouping keys).
	Exclude []string
	// Decimals is the fixed precision applied to the raw value at
	// serialization time — after ranks are computed on full precision.
	Decimals int
	// Eligible optionally gates ranking eligibility per row and column.
	Eligible Eligibility
}

// RankEncode replaces every numeric column of the table with its
// value|national|conference encoding. Ranks are dense (ties share a rank,
// no gaps), descending — the highest value ranks 1. Rows excluded from
// ranking (missing value, or not eligible) keep their row in the output but
// carry the sentinel in both rank positions.
func RankEncode(t Table, opts RankOptions) Table {
	cols := t.NumericColumns(opts.Exclude...)

	out := Table{Key: t.Key, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		clone := make(Row, len(row))
		for c, v := range row {
			clone[c] = v
		}
		out.Rows[i] = clone
	}

	for _, col := range cols {
		values := make([]float64, len(t.Rows))
		eligible := make([]bool, len(t.Rows))
		for i, row := range t.Rows {
			v, ok := Number(row[col])
			if ok && opts.Eligible != nil {
				ok = opts.Eligible(i, col)
			}
			values[i], eligible[i] = v, ok
		}

		national := denseRanks(values, eligible)
		conference := groupedDenseRanks(t, opts.GroupCol, values, eligible)

		for i, row := range t.Rows {
			raw, present := Number(row[col])
			if !present {
				out.Rows[i][col] = EncodeMissing()
				continue
			}
			out.Rows[i][col] = Encode(raw, opts.Decimals, national[i], conference[i])
		}
	}
	return out
}

// denseRanks assigns descending dense ranks to the eligible values.
// Ineligible positions get 0 (absent).
func denseRanks(values []float64, eligible []bool) []int {
	distinct := make([]float64, 0, len(values))
	seen := make(map[float64]struct{})
	for i, v := range values {
		if !eligible[i] {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))

	rankOf := make(map[float64]int, len(distinct))
	for i, v := range distinct {
		rankOf[v] = i + 1
	}

	ranks := make([]int, len(values))
	for i, v := range values {
		if eligible[i] {
			ranks[i] = rankOf[v]
		}
	}
	return ranks
}

// groupedDenseRanks computes dense ranks independently within each group.
// Rows with a missing group value get no conference rank.
func groupedDenseRanks(t Table, groupCol string, values []float64, eligible []bool) []int {
	groups := make(map[float64][]int)
	for i, row := range t.Rows {
		g, ok := Number(row[groupCol])
		if !ok {
			continue
		}
		groups[g] = append(groups[g], i)
	}

	ranks := make([]int, len(values))
	for _, idxs := range groups {
		vals := make([]float64, len(idxs))
		elig := make([]bool, len(idxs))
		for j, i := range idxs {
			vals[j], elig[j] = values[i], eligible[i]
		}
		sub := denseRanks(vals, elig)
		for j, i := range idxs {
			ranks[i] = sub[j]
		}
	}
	return ranks
}
