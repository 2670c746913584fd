package ranker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// PlayerSeasonRanks reconciles the two player feeds, applies shot-zone
// qualification gating, ranks every numeric column, and narrows the result
// to the requested players.
//
// Ranks are computed over the complete per-competition population, never
// just the requested subset — a conference rank among six players would be
// meaningless. The requested-id filter applies only to the returned rows.
func (e *Engine) PlayerSeasonRanks(ctx context.Context, competitionID, divisionID int, playerIDs []int64) (stattable.Table, error) {
	if len(playerIDs) == 0 {
		return stattable.Table{Key: playerKeyCol}, nil
	}

	var pbp, box stattable.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pbp, err = e.src.PlayerPlayByPlayStats(gctx, competitionID, divisionID)
		return err
	})
	g.Go(func() error {
		var err error
		box, err = e.src.PlayerSeasonStats(gctx, competitionID, divisionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return stattable.Table{}, fmt.Errorf("fetch player stats: %w", err)
	}

	merged, err := stattable.Merge(pbp, box)
	if err != nil {
		return stattable.Table{}, err
	}
	merged = merged.KeepColumns(playerKeepCols...)
	e.logger.Debug("player population merged",
		"competition_id", competitionID, "division_id", divisionID, "players", len(merged.Rows))

	quals := make([]QualFlags, len(merged.Rows))
	for i, row := range merged.Rows {
		quals[i] = ExtractQualFlags(row["isQualArray"])
	}

	ranked := stattable.RankEncode(merged, stattable.RankOptions{
		GroupCol: conferenceCol,
		Exclude:  []string{conferenceCol},
		Decimals: playerDecimals,
		Eligible: zoneEligibility(quals),
	})

	return ranked.Restrict(playerIDs).DropColumns(internalCols...), nil
}
