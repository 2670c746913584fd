package ranker

import (
	"context"
	"fmt"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// Quad-split bucket labels. A game lands in the first bucket when the
// opponent was classified quad 1 or quad 2 at game time.
const (
	QuadGroupTop    = "Quad 1 & 2"
	QuadGroupBottom = "Quad 3 & 4"
)

const quadAgainstCol = "quadAgst"

// QuadSplits partitions a team's per-game rows by opponent quad bucket and
// returns one row per bucket holding the column-wise mean of every numeric
// statistic. Administrative columns are excluded. A bucket with no games
// emits no row.
func (e *Engine) QuadSplits(ctx context.Context, competitionID int, teamID int64) (stattable.Table, error) {
	games, err := e.src.TeamGameStats(ctx, competitionID, teamID)
	if err != nil {
		return stattable.Table{}, fmt.Errorf("fetch team game stats: %w", err)
	}

	// Column discovery happens before the admin drop so the drop list is
	// the single authority on what is excluded.
	numeric := games.NumericColumns(quadDropCols...)

	buckets := map[string][]stattable.Row{}
	for _, row := range games.Rows {
		quad, _ := row[quadAgainstCol].(string)
		label := QuadGroupBottom
		if quad == "quad1" || quad == "quad2" {
			label = QuadGroupTop
		}
		buckets[label] = append(buckets[label], row)
	}

	out := stattable.Table{Key: "quadGroup"}
	for _, label := range []string{QuadGroupTop, QuadGroupBottom} {
		rows := buckets[label]
		if len(rows) == 0 {
			continue
		}
		agg := stattable.Row{"quadGroup": label}
		for _, col := range numeric {
			sum, n := 0.0, 0
			for _, row := range rows {
				if v, ok := stattable.Number(row[col]); ok {
					sum += v
					n++
				}
			}
			if n > 0 {
				agg[col] = sum / float64(n)
			}
		}
		out.Rows = append(out.Rows, agg)
	}

	e.logger.Debug("quad splits computed",
		"team_id", teamID, "games", len(games.Rows), "buckets", len(out.Rows))
	return out, nil
}
