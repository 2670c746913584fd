package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/gamenotes/internal/archive"
	"github.com/courtsidelabs/gamenotes/internal/cache"
	"github.com/courtsidelabs/gamenotes/internal/config"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

type stubResolver struct {
	comp cbb.Competition
	err  error
}

func (s *stubResolver) FindCompetition(ctx context.Context, name, gender string) (cbb.Competition, error) {
	return s.comp, s.err
}

func (s *stubResolver) FindTeam(ctx context.Context, fullName, gender string) (cbb.Team, error) {
	return cbb.Team{TeamID: 42, TeamMarket: "Kansas", TeamName: "Jayhawks", Gender: gender}, nil
}

type stubEngine struct {
	teamTable   stattable.Table
	playerTable stattable.Table
	quadTable   stattable.Table
	roster      []ranker.RosterEntry
	err         error

	gotPlayerIDs []int64
}

func (s *stubEngine) TeamSeasonRanks(ctx context.Context, competitionID, divisionID int, teamID int64) (stattable.Table, error) {
	return s.teamTable, s.err
}

func (s *stubEngine) PlayerSeasonRanks(ctx context.Context, competitionID, divisionID int, playerIDs []int64) (stattable.Table, error) {
	s.gotPlayerIDs = playerIDs
	return s.playerTable, s.err
}

func (s *stubEngine) QuadSplits(ctx context.Context, competitionID int, teamID int64) (stattable.Table, error) {
	return s.quadTable, s.err
}

func (s *stubEngine) Roster(ctx context.Context, competitionID, divisionID int, teamID int64) ([]ranker.RosterEntry, error) {
	return s.roster, s.err
}

type stubRunner struct {
	result pipeline.Result
	err    error
}

func (s *stubRunner) Run(ctx context.Context, params pipeline.Params) (pipeline.Result, error) {
	return s.result, s.err
}

type stubArchive struct {
	stored []archive.Note
	notes  map[int64]archive.Note
}

func (s *stubArchive) Store(ctx context.Context, n archive.Note) (int64, error) {
	s.stored = append(s.stored, n)
	return int64(len(s.stored)), nil
}

func (s *stubArchive) Get(ctx context.Context, id int64) (archive.Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return archive.Note{}, archive.ErrNotFound
	}
	return n, nil
}

func (s *stubArchive) ListByTeam(ctx context.Context, teamID int64, limit int) ([]archive.Note, error) {
	var out []archive.Note
	for _, n := range s.notes {
		if n.TeamID == teamID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubArchive) HealthCheck(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T, engine *stubEngine, runner Runner, arch Archive) *chi.Mux {
	t.Helper()
	resolver := &stubResolver{comp: cbb.Competition{CompetitionID: 7, Gender: "MALE"}}
	h := New(resolver, engine, runner, arch, cache.New(true), &config.Config{}, nil)

	r := chi.NewRouter()
	r.Get("/api/v1/rankings/teams/{teamID}", h.GetTeamRankings)
	r.Get("/api/v1/rankings/players", h.GetPlayerRankings)
	r.Get("/api/v1/quads/{teamID}", h.GetQuadSplits)
	r.Get("/api/v1/roster/{teamID}", h.GetRoster)
	r.Post("/api/v1/notes", h.GenerateNotes)
	r.Get("/api/v1/notes/{noteID}", h.GetArchivedNote)
	r.Get("/api/v1/notes/team/{teamID}", h.ListArchivedNotes)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetTeamRankings(t *testing.T) {
	engine := &stubEngine{
		teamTable: stattable.Table{Key: "teamId", Rows: []stattable.Row{
			{"teamId": float64(42), "pointsPg": "81.3|5|1"},
		}},
	}
	router := newTestRouter(t, engine, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var body struct {
		CompetitionID int             `json:"competitionId"`
		TeamID        int64           `json:"teamId"`
		Rows          []stattable.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.CompetitionID)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "81.3|5|1", body.Rows[0]["pointsPg"])
}

func TestGetTeamRankingsCacheHitAndETag(t *testing.T) {
	engine := &stubEngine{
		teamTable: stattable.Table{Key: "teamId", Rows: []stattable.Row{{"teamId": float64(42)}}},
	}
	router := newTestRouter(t, engine, nil, nil)

	first := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/42", "")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")

	second := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/42", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings/teams/42", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestGetTeamRankingsNotFound(t *testing.T) {
	engine := &stubEngine{teamTable: stattable.Table{Key: "teamId"}}
	router := newTestRouter(t, engine, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTeamRankingsBadID(t *testing.T) {
	router := newTestRouter(t, &stubEngine{}, nil, nil)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/kansas", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTeamRankingsProviderDown(t *testing.T) {
	engine := &stubEngine{err: cbb.ErrUnavailable}
	router := newTestRouter(t, engine, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/teams/42", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetPlayerRankings(t *testing.T) {
	engine := &stubEngine{
		playerTable: stattable.Table{Key: "playerId", Rows: []stattable.Row{
			{"playerId": float64(101), "usagePct": "25.000|1|1"},
		}},
	}
	router := newTestRouter(t, engine, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/players?ids=101,102", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{101, 102}, engine.gotPlayerIDs)
}

func TestGetPlayerRankingsMissingIDs(t *testing.T) {
	router := newTestRouter(t, &stubEngine{}, nil, nil)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/rankings/players", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRoster(t *testing.T) {
	engine := &stubEngine{roster: []ranker.RosterEntry{
		{PlayerID: 101, FullName: "Ayo Carter"},
		{PlayerID: 102, FullName: "Ben Dawson"},
	}}
	router := newTestRouter(t, engine, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/roster/42", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Players []ranker.RosterEntry `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Players, 2)
	assert.Equal(t, "Ayo Carter", body.Players[0].FullName)
}

func TestGenerateNotes(t *testing.T) {
	runner := &stubRunner{result: pipeline.Result{
		Team:   cbb.Team{TeamID: 42, TeamMarket: "Kansas", TeamName: "Jayhawks", Gender: "MALE"},
		Season: "2025-26",
		Notes:  "Kansas keeps winning.",
	}}
	arch := &stubArchive{notes: map[int64]archive.Note{}}
	router := newTestRouter(t, &stubEngine{}, runner, arch)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/notes", `{"teamName":"Kansas Jayhawks"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Kansas keeps winning.", body["notes"])
	assert.Equal(t, float64(1), body["archiveId"])

	require.Len(t, arch.stored, 1)
	assert.Equal(t, int64(42), arch.stored[0].TeamID)
	assert.Equal(t, "2025-26", arch.stored[0].Season)
}

func TestGenerateNotesTeamMissing(t *testing.T) {
	router := newTestRouter(t, &stubEngine{}, &stubRunner{}, nil)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/notes", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateNotesNotFound(t *testing.T) {
	runner := &stubRunner{err: ranker.ErrNotFound}
	router := newTestRouter(t, &stubEngine{}, runner, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/notes", `{"teamName":"Nowhere State"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchivedNoteEndpoints(t *testing.T) {
	arch := &stubArchive{notes: map[int64]archive.Note{
		5: {ID: 5, TeamID: 42, TeamName: "Kansas Jayhawks", Season: "2025-26", Notes: "text"},
	}}
	router := newTestRouter(t, &stubEngine{}, nil, arch)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/notes/5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/notes/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/notes/team/42", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Notes []archive.Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Notes, 1)
}

func TestArchiveDisabled(t *testing.T) {
	router := newTestRouter(t, &stubEngine{}, nil, nil)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/notes/5", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
