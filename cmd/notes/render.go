package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// renderRankedRow prints one entity's encoded stat line as a stat-per-row
// table: Stat | Value | National | Conference. Cells that are not in the
// pipe encoding (ids, names) print as-is.
func renderRankedRow(w io.Writer, row stattable.Row, keyCol string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stat", "Value", "National", "Conference"})

	for _, col := range sortedColumns(row) {
		if col == keyCol {
			continue
		}
		v := row[col]
		if s, ok := v.(string); ok {
			if ranked, err := stattable.Decode(s); err == nil {
				t.AppendRow(table.Row{col, rankedValue(ranked), rankCell(ranked.National), rankCell(ranked.Conference)})
				continue
			}
		}
		t.AppendRow(table.Row{col, fmt.Sprintf("%v", v), "", ""})
	}
	t.Render()
}

// renderQuadTable prints quad splits transposed: one row per stat, one
// column per quad group.
func renderQuadTable(w io.Writer, tbl stattable.Table) {
	if len(tbl.Rows) == 0 {
		fmt.Fprintln(w, "(no games)")
		return
	}

	groups := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if g, ok := row[tbl.Key].(string); ok {
			groups = append(groups, g)
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := table.Row{"Stat"}
	for _, g := range groups {
		header = append(header, g)
	}
	t.AppendHeader(header)

	for _, col := range sortedColumns(tbl.Rows[0]) {
		if col == tbl.Key {
			continue
		}
		out := table.Row{col}
		for _, row := range tbl.Rows {
			if f, ok := stattable.Number(row[col]); ok {
				out = append(out, strconv.FormatFloat(f, 'f', 1, 64))
			} else {
				out = append(out, "")
			}
		}
		t.AppendRow(out)
	}
	t.Render()
}

func renderRoster(w io.Writer, roster []ranker.RosterEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Player", "ID"})
	for i, entry := range roster {
		t.AppendRow(table.Row{i + 1, entry.FullName, entry.PlayerID})
	}
	t.Render()
}

func rowID(row stattable.Row, keyCol string) (int64, bool) {
	f, ok := stattable.Number(row[keyCol])
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func sortedColumns(row stattable.Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func rankedValue(r stattable.Ranked) string {
	if !r.ValuePresent {
		return stattable.Sentinel
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func rankCell(rank int) string {
	if rank < 1 {
		return stattable.Sentinel
	}
	return strconv.Itoa(rank)
}
