package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/courtsidelabs/gamenotes/internal/api/respond"
	"github.com/courtsidelabs/gamenotes/internal/archive"
	"github.com/courtsidelabs/gamenotes/internal/pipeline"
	"github.com/courtsidelabs/gamenotes/internal/provider/cbb"
	"github.com/courtsidelabs/gamenotes/internal/ranker"
)

type generateNotesRequest struct {
	TeamName string `json:"teamName"`
	Gender   string `json:"gender,omitempty"`
	Season   string `json:"season,omitempty"`
	Division int    `json:"division,omitempty"`
}

// GenerateNotes runs the full pipeline for a team and returns the notes.
// @Summary Generate game notes
// @Description Collects ranked stats, quad splits, and roster for a team and generates narrative game notes. Archives the result when a database is configured.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body generateNotesRequest true "Team selection"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /notes [post]
func (h *Handler) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	var req generateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if req.TeamName == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "teamName is required")
		return
	}

	res, err := h.runner.Run(r.Context(), pipeline.Params{
		TeamName:   req.TeamName,
		Gender:     req.Gender,
		Season:     req.Season,
		DivisionID: req.Division,
	})
	if err != nil {
		switch {
		case errors.Is(err, ranker.ErrNotFound):
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("No season stats for %q", req.TeamName))
		case errors.Is(err, cbb.ErrUnavailable):
			respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Stats provider unavailable")
		default:
			h.logger.Error("notes pipeline failure", "team", req.TeamName, "error", err)
			respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Notes generation failed")
		}
		return
	}

	body := map[string]interface{}{
		"teamId":   res.Team.TeamID,
		"teamName": res.Team.FullName(),
		"season":   res.Season,
		"notes":    res.Notes,
		"timings": map[string]string{
			"collect": res.CollectedIn.String(),
			"narrate": res.NarratedIn.String(),
		},
	}

	if h.arch != nil {
		id, err := h.arch.Store(r.Context(), archive.Note{
			TeamID:   res.Team.TeamID,
			TeamName: res.Team.FullName(),
			Season:   res.Season,
			Gender:   res.Team.Gender,
			Notes:    res.Notes,
		})
		if err != nil {
			// The notes are already generated; losing the archive row is not
			// worth failing the request over.
			h.logger.Error("archive store failed", "team", res.Team.FullName(), "error", err)
		} else {
			body["archiveId"] = id
		}
	}

	respond.WriteJSONObject(w, http.StatusOK, body)
}

// GetArchivedNote returns a single archived note by id.
// @Summary Get archived note
// @Tags notes
// @Produce json
// @Param noteID path int true "Note ID"
// @Success 200 {object} archive.Note
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /notes/{noteID} [get]
func (h *Handler) GetArchivedNote(w http.ResponseWriter, r *http.Request) {
	if h.arch == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Notes archive is not configured")
		return
	}
	id, ok := pathInt64(w, r, "noteID")
	if !ok {
		return
	}

	note, err := h.arch.Get(r.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("No archived note %d", id))
		return
	}
	if err != nil {
		h.logger.Error("archive get failed", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Archive lookup failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, note)
}

// ListArchivedNotes returns recent archived notes for a team.
// @Summary List archived notes for a team
// @Tags notes
// @Produce json
// @Param teamID path int true "Team ID"
// @Param limit query int false "Max notes to return (default 20)"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /notes/team/{teamID} [get]
func (h *Handler) ListArchivedNotes(w http.ResponseWriter, r *http.Request) {
	if h.arch == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Notes archive is not configured")
		return
	}
	teamID, ok := pathInt64(w, r, "teamID")
	if !ok {
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	notes, err := h.arch.ListByTeam(r.Context(), teamID, limit)
	if err != nil {
		h.logger.Error("archive list failed", "team_id", teamID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Archive lookup failed")
		return
	}
	if notes == nil {
		notes = []archive.Note{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"teamId": teamID,
		"notes":  notes,
	})
}
