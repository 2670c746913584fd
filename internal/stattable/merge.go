package stattable

import "fmt"

// Merge inner-joins two tables on their shared key column. Column names
// appearing in both tables are resolved in favor of the second table — the
// first table's copy is discarded before the join. The key column itself is
// never treated as a conflict.
//
// Rows whose key is absent from either table are dropped. Row order follows
// the first table.
func Merge(first, second Table) (Table, error) {
	if first.Key != second.Key {
		return Table{}, fmt.Errorf("merge key mismatch: %q vs %q", first.Key, second.Key)
	}

	overlap := make(map[string]struct{})
	secondCols := second.Columns()
	for c := range first.Columns() {
		if _, ok := secondCols[c]; ok && c != first.Key {
			overlap[c] = struct{}{}
		}
	}

	byKey := make(map[any]Row, len(second.Rows))
	for _, row := range second.Rows {
		byKey[second.KeyOf(row)] = row
	}

	out := Table{Key: first.Key}
	for _, row := range first.Rows {
		match, ok := byKey[first.KeyOf(row)]
		if !ok {
			continue
		}
		merged := make(Row, len(row)+len(match))
		for c, v := range row {
			if _, conflict := overlap[c]; conflict {
				continue
			}
			merged[c] = v
		}
		for c, v := range match {
			merged[c] = v
		}
		out.Rows = append(out.Rows, merged)
	}
	return out, nil
}
