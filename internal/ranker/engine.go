package ranker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// ErrNotFound reports that a requested team or player was absent from the
// source population after the merge. Assemblies signal it via an empty
// result; callers that need a hard failure promote the emptiness to this
// error.
var ErrNotFound = errors.New("entity not found in source population")

// Source is the statistics provider consumed by the engine. The box-score
// and play-by-play feeds are separate endpoints with overlapping columns;
// reconciliation happens here, not in the provider.
type Source interface {
	// TeamSeasonStats returns box-score team aggregates, one row per team.
	TeamSeasonStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error)
	// TeamPlayByPlayStats returns play-by-play team aggregates.
	TeamPlayByPlayStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error)
	// PlayerSeasonStats returns box-score player aggregates, one row per player.
	PlayerSeasonStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error)
	// PlayerPlayByPlayStats returns play-by-play player aggregates.
	PlayerPlayByPlayStats(ctx context.Context, competitionID, divisionID int) (stattable.Table, error)
	// TeamGameStats returns one row per game played by the team, each
	// annotated with the opponent's quad classification.
	TeamGameStats(ctx context.Context, competitionID int, teamID int64) (stattable.Table, error)
}

// Engine computes ranked stat tables from a Source. It is stateless and
// request-scoped: every call fetches fresh data and returns a fully
// materialized table.
type Engine struct {
	src    Source
	logger *slog.Logger
}

// New creates an Engine.
func New(src Source, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{src: src, logger: logger}
}

const (
	teamKeyCol     = "teamId"
	playerKeyCol   = "playerId"
	conferenceCol  = "conferenceId"
	teamDecimals   = 1
	playerDecimals = 3
)
