// Package pipeline orchestrates the two-stage game notes flow: collect
// (resolve the competition and team, rank team and player stats, compute
// quad splits, select the roster) then narrate (hand the ranked tables to
// the text-generation service). The sequencing is deliberately scripted —
// the ranking engine does the hard work.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/courtsidelabs/gamenotes/internal/narrative"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// Resolver locates competitions and teams by name. Implemented by
// *cbb.Client.
type Resolver interface {
	FindCompetition(ctx context.Context, name, gender string) (cbb.Competition, error)
	FindTeam(ctx context.Context, fullName, gender string) (cbb.Team, error)
}

// Ranker is the ranked-table engine consumed by the pipeline. Implemented
// by *ranker.Engine.
type Ranker interface {
	TeamSeasonRanks(ctx context.Context, competitionID, divisionID int, teamID int64) (stattable.Table, error)
	PlayerSeasonRanks(ctx context.Context, competitionID, divisionID int, playerIDs []int64) (stattable.Table, error)
	QuadSplits(ctx context.Context, competitionID int, teamID int64) (stattable.Table, error)
	Roster(ctx context.Context, competitionID, divisionID int, teamID int64) ([]ranker.RosterEntry, error)
}

// Params select the team and season to generate notes for.
type Params struct {
	TeamName   string
	Gender     string // MALE or FEMALE
	Season     string // YYYY-YY; empty means current season
	DivisionID int    // defaults to 1
}

// Result is a finished pipeline run: the ranked payload, the generated
// notes, and enough identity to archive or export them.
type Result struct {
	Team        cbb.Team
	Competition cbb.Competition
	Season      string
	Payload     narrative.Request
	Notes       string
	CollectedIn time.Duration
	NarratedIn  time.Duration
}

// Summary is a compact log line for the run.
func (r Result) Summary() string {
	return fmt.Sprintf("team=%d players=%d quad_rows=%d collect=%s narrate=%s",
		len(r.Payload.TeamStats.Rows), len(r.Payload.PlayerStats.Rows),
		len(r.Payload.QuadSplits.Rows),
		r.CollectedIn.Round(time.Millisecond), r.NarratedIn.Round(time.Millisecond))
}

// Pipeline wires the resolver, the ranking engine, and the narrative
// generator.
type Pipeline struct {
	resolver Resolver
	engine   Ranker
	gen      narrative.Generator
	logger   *slog.Logger
}

// New creates a Pipeline.
func New(resolver Resolver, engine Ranker, gen narrative.Generator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{resolver: resolver, engine: engine, gen: gen, logger: logger}
}

// Collect runs the data-collection stage and returns the assembled
// narrative payload without generating prose.
func (p *Pipeline) Collect(ctx context.Context, params Params) (Result, error) {
	if params.Gender == "" {
		params.Gender = "MALE"
	}
	if params.DivisionID == 0 {
		params.DivisionID = 1
	}
	season := params.Season
	if season == "" {
		season = cbb.CurrentSeason(time.Now(), 0)
	}

	start := time.Now()

	comp, err := p.resolver.FindCompetition(ctx, cbb.SeasonCompetitionName(season, params.Gender), params.Gender)
	if err != nil {
		return Result{}, fmt.Errorf("resolve competition: %w", err)
	}
	team, err := p.resolver.FindTeam(ctx, params.TeamName, params.Gender)
	if err != nil {
		return Result{}, fmt.Errorf("resolve team: %w", err)
	}
	p.logger.Info("entities resolved",
		"competition_id", comp.CompetitionID, "team_id", team.TeamID, "season", season)

	teamStats, err := p.engine.TeamSeasonRanks(ctx, comp.CompetitionID, params.DivisionID, team.TeamID)
	if err != nil {
		return Result{}, err
	}
	if len(teamStats.Rows) == 0 {
		return Result{}, fmt.Errorf("team %q in competition %d: %w",
			params.TeamName, comp.CompetitionID, ranker.ErrNotFound)
	}

	quads, err := p.engine.QuadSplits(ctx, comp.CompetitionID, team.TeamID)
	if err != nil {
		return Result{}, err
	}

	roster, err := p.engine.Roster(ctx, comp.CompetitionID, params.DivisionID, team.TeamID)
	if err != nil {
		return Result{}, err
	}

	// One batched ranking pass for the whole roster, never per player.
	ids := make([]int64, len(roster))
	for i, entry := range roster {
		ids[i] = entry.PlayerID
	}
	playerStats, err := p.engine.PlayerSeasonRanks(ctx, comp.CompetitionID, params.DivisionID, ids)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Team:        team,
		Competition: comp,
		Season:      season,
		CollectedIn: time.Since(start),
		Payload: narrative.Request{
			TeamName:    team.FullName(),
			Season:      season,
			TeamStats:   teamStats,
			QuadSplits:  quads,
			Roster:      roster,
			PlayerStats: playerStats,
		},
	}
	p.logger.Info("collection complete", "team", team.FullName(), "summary", res.Summary())
	return res, nil
}

// Run executes both stages: collect, then narrate.
func (p *Pipeline) Run(ctx context.Context, params Params) (Result, error) {
	res, err := p.Collect(ctx, params)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	notes, err := p.gen.GenerateNotes(ctx, res.Payload)
	if err != nil {
		return Result{}, fmt.Errorf("generate notes: %w", err)
	}
	res.Notes = notes
	res.NarratedIn = time.Since(start)

	p.logger.Info("notes generated", "team", res.Team.FullName(), "summary", res.Summary())
	return res, nil
}
