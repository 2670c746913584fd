package cbb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// The five season feeds consumed by the ranking engine. Each returns a
// JSON array of flat objects; numeric fields may be null per record.

func seasonParams(competitionID, divisionID int) url.Values {
	return url.Values{
		"competitionId": {strconv.Itoa(competitionID)},
		"divisionId":    {strconv.Itoa(divisionID)},
		"scope":         {"season"},
	}
}

// TeamSeasonStats returns box-score team aggregates for a division.
func (c *Client) TeamSeasonStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error) {
	path := fmt.Sprintf("/api/gs/team-agg-stats/competition/%d/division/%d/scope/season/",
		competitionID, divisionID)
	return c.getTable(ctx, path, nil, "teamId")
}

// TeamPlayByPlayStats returns play-by-play team aggregates for a division.
func (c *Client) TeamPlayByPlayStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error) {
	return c.getTable(ctx, "/api/gs/team-agg-pbp-stats", seasonParams(competitionID, divisionID), "teamId")
}

// PlayerSeasonStats returns box-score player aggregates for a division.
func (c *Client) PlayerSeasonStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error) {
	return c.getTable(ctx, "/api/gs/player-agg-stats-public", seasonParams(competitionID, divisionID), "playerId")
}

// PlayerPlayByPlayStats returns play-by-play player aggregates for a division.
func (c *Client) PlayerPlayByPlayStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error) {
	return c.getTable(ctx, "/api/gs/player-agg-pbp-stats", seasonParams(competitionID, divisionID), "playerId")
}

// TeamGameStats returns one row per game played by the team, annotated
// with the opponent's quad classification.
func (c *Client) TeamGameStats(ctx context.Context, competitionID int, teamID int64) (stattable.Table, error) {
	params := url.Values{
		"competitionId": {strconv.Itoa(competitionID)},
		"teamId":        {strconv.FormatInt(teamID, 10)},
	}
	return c.getTable(ctx, "/api/gs/team-game-stats", params, "gameId")
}
