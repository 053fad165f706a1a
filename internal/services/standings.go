package services

import (
	"sort"

	"github.com/ifnbl/statsapi/internal/models"
)

// TeamStanding is one row of the standings table.
type TeamStanding struct {
	Team   string  `json:"team"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"winPct"`
}

// Standings derives the win/loss table from the schedule. Only games with
// both final scores recorded count; scheduled-but-unplayed rows are skipped.
// Schedule team names join to the canonical roster names through
// normalization, so "The Umma" in the schedule still credits "UMMA".
func Standings(schedule []models.ScheduleEntry, teams []string) []TeamStanding {
	byNorm := make(map[string]*TeamStanding, len(teams))
	rows := make([]TeamStanding, len(teams))
	for i, team := range teams {
		rows[i] = TeamStanding{Team: team}
		byNorm[models.NormalizeTeam(team)] = &rows[i]
	}

	for i := range schedule {
		e := &schedule[i]
		if !e.HasScores() {
			continue
		}
		a := byNorm[models.NormalizeTeam(e.TeamA)]
		b := byNorm[models.NormalizeTeam(e.TeamB)]
		if a == nil || b == nil {
			// exhibition or mislabeled entry; nothing to credit
			continue
		}
		switch {
		case e.ScoreA.Value > e.ScoreB.Value:
			a.Wins++
			b.Losses++
		case e.ScoreB.Value > e.ScoreA.Value:
			b.Wins++
			a.Losses++
		}
		// league plays no ties
	}

	for i := range rows {
		if played := rows[i].Wins + rows[i].Losses; played > 0 {
			rows[i].WinPct = float64(rows[i].Wins) / float64(played)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}
