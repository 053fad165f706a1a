package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

// ScheduleGame is one schedule row plus its box-score address when the
// composite id allows one.
type ScheduleGame struct {
	models.ScheduleEntry
	BoxScore *BoxScoreRef `json:"boxScore,omitempty"`
}

// ScheduleDay groups one date's games with the teams sitting out.
type ScheduleDay struct {
	Date     string         `json:"date"`
	Games    []ScheduleGame `json:"games"`
	ByeTeams []string       `json:"byeTeams"`
}

// GetSchedule returns the season schedule grouped by date, each date
// carrying the bye teams computed against the roster's team list.
func (h *LeagueHandler) GetSchedule(c *gin.Context) {
	season := h.season(c)
	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Schedule: true,
		Rosters:  true,
	})

	if len(snap.Schedule) == 0 {
		utils.SendNotFound(c, "no schedule published for "+season)
		return
	}

	teams := snap.Teams()
	var days []ScheduleDay
	dayIndex := make(map[string]int)

	for i := range snap.Schedule {
		entry := snap.Schedule[i]
		idx, ok := dayIndex[entry.Date]
		if !ok {
			idx = len(days)
			dayIndex[entry.Date] = idx
			days = append(days, ScheduleDay{Date: entry.Date})
		}

		game := ScheduleGame{ScheduleEntry: entry}
		if w, g, ok := entry.SplitGameID(); ok {
			game.BoxScore = &BoxScoreRef{Week: w, Game: g}
		}
		days[idx].Games = append(days[idx].Games, game)
	}

	for i := range days {
		days[i].ByeTeams = byeTeams(teams, days[i].Games)
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"days":   days,
	})
}

// GetUpcomingGames returns games dated today or later, at most 10, for the
// home page slider.
func (h *LeagueHandler) GetUpcomingGames(c *gin.Context) {
	season := h.season(c)
	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Schedule: true,
	})

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	upcoming := make([]models.ScheduleEntry, 0, 10)
	for _, entry := range snap.Schedule {
		when, err := parseScheduleDate(entry.Date)
		if err != nil {
			continue
		}
		if !when.Before(today) {
			upcoming = append(upcoming, entry)
			if len(upcoming) == 10 {
				break
			}
		}
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"games":  upcoming,
	})
}

// byeTeams returns the roster teams not playing in any of the day's games.
func byeTeams(teams []string, games []ScheduleGame) []string {
	playing := make(map[string]bool, len(games)*2)
	for _, g := range games {
		playing[models.NormalizeTeam(g.TeamA)] = true
		playing[models.NormalizeTeam(g.TeamB)] = true
	}

	byes := make([]string, 0, len(teams))
	for _, team := range teams {
		if !playing[models.NormalizeTeam(team)] {
			byes = append(byes, team)
		}
	}
	return byes
}

// parseScheduleDate reads the schedule's M/D/YYYY dates.
func parseScheduleDate(s string) (time.Time, error) {
	return time.ParseInLocation("1/2/2006", s, time.Local)
}
