package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/gamenotes/internal/narrative"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

type stubResolver struct{}

func (stubResolver) FindCompetition(ctx context.Context, name, gender string) (cbb.Competition, error) {
	return cbb.Competition{CompetitionID: 41097, CompetitionName: name, Gender: gender}, nil
}

func (stubResolver) FindTeam(ctx context.Context, fullName, gender string) (cbb.Team, error) {
	return cbb.Team{TeamID: 557, TeamMarket: "High Point", TeamName: "Panthers", Gender: gender}, nil
}

type stubRanker struct {
	teamEmpty    bool
	gotPlayerIDs []int64
}

func (s *stubRanker) TeamSeasonRanks(ctx context.Context, compID, divID int, teamID int64) (stattable.Table, error) {
	if s.teamEmpty {
		return stattable.Table{Key: "teamId"}, nil
	}
	return stattable.Table{Key: "teamId", Rows: []stattable.Row{
		{"teamId": float64(teamID), "ptsScoredPg": "90.3|17|2"},
	}}, nil
}

func (s *stubRanker) PlayerSeasonRanks(ctx context.Context, compID, divID int, playerIDs []int64) (stattable.Table, error) {
	s.gotPlayerIDs = playerIDs
	rows := make([]stattable.Row, len(playerIDs))
	for i, id := range playerIDs {
		rows[i] = stattable.Row{"playerId": float64(id)}
	}
	return stattable.Table{Key: "playerId", Rows: rows}, nil
}

func (s *stubRanker) QuadSplits(ctx context.Context, compID int, teamID int64) (stattable.Table, error) {
	return stattable.Table{Key: "quadGroup", Rows: []stattable.Row{
		{"quadGroup": ranker.QuadGroupTop}, {"quadGroup": ranker.QuadGroupBottom},
	}}, nil
}

func (s *stubRanker) Roster(ctx context.Context, compID, divID int, teamID int64) ([]ranker.RosterEntry, error) {
	return []ranker.RosterEntry{
		{PlayerID: 101, FullName: "Jordan Vance"},
		{PlayerID: 102, FullName: "Ayo Carter"},
	}, nil
}

type stubGenerator struct {
	got narrative.Request
}

func (g *stubGenerator) GenerateNotes(ctx context.Context, req narrative.Request) (string, error) {
	g.got = req
	return "Broadcast-ready notes.", nil
}

func TestRunCollectsThenNarrates(t *testing.T) {
	eng := &stubRanker{}
	gen := &stubGenerator{}
	p := New(stubResolver{}, eng, gen, nil)

	res, err := p.Run(context.Background(), Params{TeamName: "High Point Panthers", Season: "2025-26"})
	require.NoError(t, err)

	assert.Equal(t, "Broadcast-ready notes.", res.Notes)
	assert.Equal(t, "High Point Panthers", res.Payload.TeamName)
	assert.Equal(t, "2025-26", res.Payload.Season)

	// The whole roster goes into one batched ranking call.
	assert.Equal(t, []int64{101, 102}, eng.gotPlayerIDs)

	// The generator sees exactly the collected payload.
	assert.Len(t, gen.got.Roster, 2)
	assert.Len(t, gen.got.QuadSplits.Rows, 2)
}

func TestRunTeamNotFound(t *testing.T) {
	p := New(stubResolver{}, &stubRanker{teamEmpty: true}, &stubGenerator{}, nil)

	_, err := p.Run(context.Background(), Params{TeamName: "Nowhere State", Season: "2025-26"})
	require.ErrorIs(t, err, ranker.ErrNotFound)
}

func TestCollectDefaults(t *testing.T) {
	p := New(stubResolver{}, &stubRanker{}, &stubGenerator{}, nil)

	res, err := p.Collect(context.Background(), Params{TeamName: "High Point Panthers"})
	require.NoError(t, err)

	// Current season resolved, no notes generated during collect.
	assert.NotEmpty(t, res.Season)
	assert.Empty(t, res.Notes)
}
