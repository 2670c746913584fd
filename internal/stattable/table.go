// Package stattable implements the tabular core of the ranking engine:
// schema-less stat tables decoded from provider JSON, key-based merging,
// dense national/conference ranking, and the pipe-delimited rank encoding.
//
// Columns are discovered at runtime — a table is a slice of JSON objects
// keyed by an entity id column, not a fixed struct. This preserves the
// "rank every numeric column" behavior across ~150 stat fields per entity
// without hardcoding field names.
package stattable

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Row is a single entity record: column name → JSON-decoded value
// (float64, string, bool, nil, or nested arrays/objects).
type Row map[string]any

// Table is an ordered set of rows sharing an entity key column.
type Table struct {
	Key  string
	Rows []Row
}

// FromJSON decodes a provider response (JSON array of flat objects) into a
// table keyed by the given column. A non-array payload is an error — a
// ranking computed over a missing population would silently misrank the
// real rows, so the caller must not fall back to an empty table.
func FromJSON(data []byte, key string) (Table, error) {
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return Table{}, fmt.Errorf("decode stat table: %w", err)
	}
	return Table{Key: key, Rows: rows}, nil
}

// Number coerces a cell value to float64. Providers occasionally return
// numerics as strings; nil and non-numeric values report ok=false.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Columns returns the union of column names across all rows.
func (t Table) Columns() map[string]struct{} {
	cols := make(map[string]struct{})
	for _, row := range t.Rows {
		for c := range row {
			cols[c] = struct{}{}
		}
	}
	return cols
}

// NumericColumns returns, sorted, every column holding a numeric value in at
// least one row, minus the key column and any excluded names.
func (t Table) NumericColumns(exclude ...string) []string {
	skip := map[string]struct{}{t.Key: {}}
	for _, c := range exclude {
		skip[c] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		for c, v := range row {
			if _, excluded := skip[c]; excluded {
				continue
			}
			if _, ok := Number(v); ok {
				seen[c] = struct{}{}
			}
		}
	}

	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// KeyOf returns a row's key value normalized for comparison: numeric keys
// become float64, everything else its string form.
func (t Table) KeyOf(row Row) any {
	v := row[t.Key]
	if f, ok := Number(v); ok {
		return f
	}
	return fmt.Sprintf("%v", v)
}

// Restrict returns only the rows whose numeric key is in ids, preserving
// row order.
func (t Table) Restrict(ids []int64) Table {
	want := make(map[float64]struct{}, len(ids))
	for _, id := range ids {
		want[float64(id)] = struct{}{}
	}
	out := Table{Key: t.Key}
	for _, row := range t.Rows {
		if f, ok := Number(row[t.Key]); ok {
			if _, hit := want[f]; hit {
				out.Rows = append(out.Rows, row)
			}
		}
	}
	return out
}

// DropColumns returns a copy of the table without the named columns. The
// key column is never dropped.
func (t Table) DropColumns(cols ...string) Table {
	drop := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c == t.Key {
			continue
		}
		drop[c] = struct{}{}
	}
	out := Table{Key: t.Key, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		clean := make(Row, len(row))
		for c, v := range row {
			if _, skip := drop[c]; !skip {
				clean[c] = v
			}
		}
		out.Rows[i] = clean
	}
	return out
}

// KeepColumns returns a copy of the table holding only the named columns
// (plus the key column), skipping names absent from a row.
func (t Table) KeepColumns(cols ...string) Table {
	keep := make(map[string]struct{}, len(cols)+1)
	keep[t.Key] = struct{}{}
	for _, c := range cols {
		keep[c] = struct{}{}
	}
	out := Table{Key: t.Key, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		clean := make(Row, len(keep))
		for c, v := range row {
			if _, ok := keep[c]; ok {
				clean[c] = v
			}
		}
		out.Rows[i] = clean
	}
	return out
}
