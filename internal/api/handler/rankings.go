package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courtsidelabs/gamenotes/internal/api/respond"
	"github.com/courtsidelabs/gamenotes/internal/cache"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
)

// GetTeamRankings returns the ranked season stat line for a team.
// @Summary Get team season rankings
// @Description Returns every numeric season stat for a team encoded as value|nationalRank|conferenceRank.
// @Tags rankings
// @Produce json
// @Param teamID path int true "Team ID"
// @Param gender query string false "MALE or FEMALE (default MALE)"
// @Param season query string false "Season as YYYY-YY (defaults to current)"
// @Param division query int false "Division (default 1)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /rankings/teams/{teamID} [get]
func (h *Handler) GetTeamRankings(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt64(w, r, "teamID")
	if !ok {
		return
	}
	comp, season, division, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("rankings:team:%d:%d:%d", comp.CompetitionID, division, teamID)
	if h.serveCached(w, r, cacheKey, cache.TTLRankings) {
		return
	}

	table, err := h.engine.TeamSeasonRanks(r.Context(), comp.CompetitionID, division, teamID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if len(table.Rows) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No season stats for team %d", teamID))
		return
	}

	h.writeTable(w, cacheKey, cache.TTLRankings, map[string]interface{}{
		"competitionId": comp.CompetitionID,
		"season":        season,
		"teamId":        teamID,
		"rows":          table.Rows,
	})
}

// GetPlayerRankings returns ranked season stat lines for a set of players.
// @Summary Get player season rankings
// @Description Returns ranked season stats for the requested players. Zone-gated shooting stats carry rank sentinels for unqualified players.
// @Tags rankings
// @Produce json
// @Param ids query string true "Comma-separated player IDs"
// @Param gender query string false "MALE or FEMALE (default MALE)"
// @Param season query string false "Season as YYYY-YY (defaults to current)"
// @Param division query int false "Division (default 1)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /rankings/players [get]
func (h *Handler) GetPlayerRankings(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_IDS", err.Error())
		return
	}
	comp, season, division, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("rankings:players:%d:%d:%s", comp.CompetitionID, division, idListKey(ids))
	if h.serveCached(w, r, cacheKey, cache.TTLRankings) {
		return
	}

	table, err := h.engine.PlayerSeasonRanks(r.Context(), comp.CompetitionID, division, ids)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeTable(w, cacheKey, cache.TTLRankings, map[string]interface{}{
		"competitionId": comp.CompetitionID,
		"season":        season,
		"playerIds":     ids,
		"rows":          table.Rows,
	})
}

// GetQuadSplits returns per-quad averaged game stats for a team.
// @Summary Get quad splits
// @Description Returns column-wise per-game averages split by opponent quad group (Quad 1 & 2 vs Quad 3 & 4).
// @Tags rankings
// @Produce json
// @Param teamID path int true "Team ID"
// @Param gender query string false "MALE or FEMALE (default MALE)"
// @Param season query string false "Season as YYYY-YY (defaults to current)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /quads/{teamID} [get]
func (h *Handler) GetQuadSplits(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt64(w, r, "teamID")
	if !ok {
		return
	}
	comp, season, _, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("quads:%d:%d", comp.CompetitionID, teamID)
	if h.serveCached(w, r, cacheKey, cache.TTLRankings) {
		return
	}

	table, err := h.engine.QuadSplits(r.Context(), comp.CompetitionID, teamID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeTable(w, cacheKey, cache.TTLRankings, map[string]interface{}{
		"competitionId": comp.CompetitionID,
		"season":        season,
		"teamId":        teamID,
		"rows":          table.Rows,
	})
}

// GetRoster returns the six highest-usage players for a team.
// @Summary Get team roster
// @Description Returns the top six players by minutes then usage.
// @Tags rankings
// @Produce json
// @Param teamID path int true "Team ID"
// @Param gender query string false "MALE or FEMALE (default MALE)"
// @Param season query string false "Season as YYYY-YY (defaults to current)"
// @Param division query int false "Division (default 1)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /roster/{teamID} [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt64(w, r, "teamID")
	if !ok {
		return
	}
	comp, season, division, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("roster:%d:%d:%d", comp.CompetitionID, division, teamID)
	if h.serveCached(w, r, cacheKey, cache.TTLRoster) {
		return
	}

	roster, err := h.engine.Roster(r.Context(), comp.CompetitionID, division, teamID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeTable(w, cacheKey, cache.TTLRoster, map[string]interface{}{
		"competitionId": comp.CompetitionID,
		"season":        season,
		"teamId":        teamID,
		"players":       roster,
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// resolveScope reads gender, season, and division from query parameters and
// resolves the competition. Writes the error response itself on failure.
func (h *Handler) resolveScope(w http.ResponseWriter, r *http.Request) (cbb.Competition, string, int, bool) {
	gender := strings.ToUpper(r.URL.Query().Get("gender"))
	if gender == "" {
		gender = "MALE"
	}
	if gender != "MALE" && gender != "FEMALE" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GENDER", "gender must be MALE or FEMALE")
		return cbb.Competition{}, "", 0, false
	}

	season := r.URL.Query().Get("season")
	if season == "" {
		season = cbb.CurrentSeason(time.Now(), 0)
	}

	division := 1
	if d := r.URL.Query().Get("division"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DIVISION", "division must be a positive integer")
			return cbb.Competition{}, "", 0, false
		}
		division = n
	}

	comp, err := h.resolver.FindCompetition(r.Context(), cbb.SeasonCompetitionName(season, gender), gender)
	if err != nil {
		if errors.Is(err, cbb.ErrUnavailable) {
			respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Stats provider unavailable")
			return cbb.Competition{}, "", 0, false
		}
		respond.WriteError(w, http.StatusNotFound, "COMPETITION_NOT_FOUND",
			fmt.Sprintf("No %s competition for season %s", strings.ToLower(gender), season))
		return cbb.Competition{}, "", 0, false
	}
	return comp, season, division, true
}

// serveCached writes the cached response when present, honoring If-None-Match.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

func (h *Handler) writeTable(w http.ResponseWriter, key string, ttl time.Duration, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, cbb.ErrUnavailable) {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Stats provider unavailable")
		return
	}
	h.logger.Error("ranking engine failure", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Ranking engine failure")
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", name+" must be an integer")
		return 0, false
	}
	return id, true
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("ids query parameter is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ids must be comma-separated integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func idListKey(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
