package ranker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// TeamSeasonRanks reconciles the play-by-play and box-score team feeds,
// ranks every numeric column over the full division population grouped by
// conference, and narrows the result to the requested team.
//
// An empty result means the team was absent from the merged population —
// that is the not-found signal, not an error.
func (e *Engine) TeamSeasonRanks(ctx context.Context, competitionID, divisionID int, teamID int64) (stattable.Table, error) {
	var pbp, box stattable.Table

	// The two fetches have no ordering dependency; the merge is the
	// synchronization point.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pbp, err = e.src.TeamPlayByPlayStats(gctx, competitionID, divisionID)
		return err
	})
	g.Go(func() error {
		var err error
		box, err = e.src.TeamSeasonStats(gctx, competitionID, divisionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return stattable.Table{}, fmt.Errorf("fetch team stats: %w", err)
	}

	merged, err := stattable.Merge(pbp, box)
	if err != nil {
		return stattable.Table{}, err
	}
	e.logger.Debug("team population merged",
		"competition_id", competitionID, "division_id", divisionID, "teams", len(merged.Rows))

	ranked := stattable.RankEncode(merged, stattable.RankOptions{
		GroupCol: conferenceCol,
		Exclude:  []string{conferenceCol},
		Decimals: teamDecimals,
	})

	return ranked.Restrict([]int64{teamID}).DropColumns(internalCols...), nil
}
