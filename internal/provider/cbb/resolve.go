package cbb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Competition is one season of one competition, e.g. "2025-26 Men's
// Basketball".
type Competition struct {
	CompetitionID   int    `json:"competitionId"`
	CompetitionName string `json:"competitionName"`
	Gender          string `json:"gender"`
}

// Team is the provider's team directory record.
type Team struct {
	TeamID       int64  `json:"teamId"`
	TeamMarket   string `json:"teamMarket"`
	TeamName     string `json:"teamName"`
	Gender       string `json:"gender"`
	ConferenceID int64  `json:"conferenceId"`
	DivisionID   int    `json:"divisionId"`
}

// FullName is the display name used for lookup: market plus nickname,
// e.g. "High Point Panthers".
func (t Team) FullName() string {
	return t.TeamMarket + " " + t.TeamName
}

// FindCompetition resolves a competition id by exact name and gender
// ("MALE" or "FEMALE").
func (c *Client) FindCompetition(ctx context.Context, name, gender string) (Competition, error) {
	body, err := c.get(ctx, "/api/gs/competitions/", nil)
	if err != nil {
		return Competition{}, err
	}
	var comps []Competition
	if err := json.Unmarshal(body, &comps); err != nil {
		return Competition{}, fmt.Errorf("%w: decode competitions: %v", ErrUnavailable, err)
	}
	for _, comp := range comps {
		if comp.CompetitionName == name && comp.Gender == gender {
			return comp, nil
		}
	}
	return Competition{}, fmt.Errorf("competition %q (%s) not found", name, gender)
}

// FindTeam resolves a team by its full display name and gender.
func (c *Client) FindTeam(ctx context.Context, fullName, gender string) (Team, error) {
	body, err := c.get(ctx, "/api/gs/teams/", nil)
	if err != nil {
		return Team{}, err
	}
	var teams []Team
	if err := json.Unmarshal(body, &teams); err != nil {
		return Team{}, fmt.Errorf("%w: decode teams: %v", ErrUnavailable, err)
	}
	for _, team := range teams {
		if team.FullName() == fullName && team.Gender == gender {
			return team, nil
		}
	}
	return Team{}, fmt.Errorf("team %q (%s) not found", fullName, gender)
}

// FindPlayerID resolves a player id by full name. With divisionID 0 it
// scans divisions 1 through 3 and returns the first match.
func (c *Client) FindPlayerID(ctx context.Context, fullName string, competitionID, divisionID int) (int64, error) {
	divisions := []int{divisionID}
	if divisionID == 0 {
		divisions = []int{1, 2, 3}
	}
	for _, div := range divisions {
		tbl, err := c.PlayerSeasonStats(ctx, competitionID, div)
		if err != nil {
			return 0, err
		}
		for _, row := range tbl.Rows {
			if name, _ := row["fullName"].(string); name != fullName {
				continue
			}
			if id, ok := row["playerId"].(float64); ok {
				return int64(id), nil
			}
		}
	}
	return 0, fmt.Errorf("player %q not found in competition %d", fullName, competitionID)
}

// CurrentSeason returns the season label in YYYY-YY form as of now,
// shifted back by subtract seasons. The college basketball season rolls
// over in November.
func CurrentSeason(now time.Time, subtract int) string {
	startYear := now.Year()
	if now.Month() < time.November {
		startYear--
	}
	startYear -= subtract
	endYear := startYear + 1
	return fmt.Sprintf("%d-%02d", startYear, endYear%100)
}

// SeasonCompetitionName formats a season label as the provider's
// competition name, e.g. "2025-26 Men's Basketball".
func SeasonCompetitionName(season, gender string) string {
	if gender == "FEMALE" {
		return season + " Women's Basketball"
	}
	return season + " Men's Basketball"
}
