package ranker

import (
	"context"
	"fmt"
	"sort"

	"github.com/courtsidelabs/gamenotes/internal/stattable"
)

// RosterSize bounds downstream ranking work to the broadcast-relevant
// rotation.
const RosterSize = 6

// RosterEntry identifies one selected player.
type RosterEntry struct {
	PlayerID int64  `json:"playerId"`
	FullName string `json:"fullName"`
}

// Roster selects the team's top players by minutes per game, breaking ties
// on usage rate, and returns ids and display names only.
func (e *Engine) Roster(ctx context.Context, competitionID, divisionID int, teamID int64) ([]RosterEntry, error) {
	players, err := e.src.PlayerSeasonStats(ctx, competitionID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("fetch roster population: %w", err)
	}

	type candidate struct {
		entry  RosterEntry
		minsPg float64
		usage  float64
	}
	var team []candidate
	for _, row := range players.Rows {
		tid, ok := stattable.Number(row[teamKeyCol])
		if !ok || int64(tid) != teamID {
			continue
		}
		pid, ok := stattable.Number(row[playerKeyCol])
		if !ok {
			continue
		}
		name, _ := row["fullName"].(string)
		mins, _ := stattable.Number(row["minsPg"])
		usage, _ := stattable.Number(row["usagePct"])
		team = append(team, candidate{
			entry:  RosterEntry{PlayerID: int64(pid), FullName: name},
			minsPg: mins,
			usage:  usage,
		})
	}

	sort.SliceStable(team, func(i, j int) bool {
		if team[i].minsPg != team[j].minsPg {
			return team[i].minsPg > team[j].minsPg
		}
		return team[i].usage > team[j].usage
	})

	if len(team) > RosterSize {
		team = team[:RosterSize]
	}
	entries := make([]RosterEntry, len(team))
	for i, c := range team {
		entries[i] = c.entry
	}
	return entries, nil
}
