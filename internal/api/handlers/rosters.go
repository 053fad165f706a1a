package handlers

import (
	"net/url"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

// RosterPlayer is one rostered player with their portrait reference.
type RosterPlayer struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Jersey      *models.StatValue `json:"jersey,omitempty"`
	PortraitURL string            `json:"portraitUrl"`
	Initials    string            `json:"initials"`
}

// TeamGame is one row of a team's game history.
type TeamGame struct {
	Date     string       `json:"date"`
	Time     string       `json:"time,omitempty"`
	Opponent string       `json:"opponent"`
	Result   string       `json:"result"`
	Played   bool         `json:"played"`
	BoxScore *BoxScoreRef `json:"boxScore,omitempty"`
}

// GetTeamRoster returns a team's roster merged with portrait references,
// plus the team's chronological game history.
func (h *LeagueHandler) GetTeamRoster(c *gin.Context) {
	season := h.season(c)
	requested, err := url.PathUnescape(c.Param("team"))
	if err != nil {
		requested = c.Param("team")
	}

	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Schedule: true,
		Rosters:  true,
		Images:   true,
	})

	team := snap.ResolveTeam(requested)
	if team == "" {
		utils.SendNotFound(c, "no team named "+requested+" in "+season)
		return
	}

	roster := make([]RosterPlayer, 0, len(snap.Rosters[team]))
	for _, entry := range snap.Rosters[team] {
		slug := models.Slugify(entry.Name)
		player := RosterPlayer{
			Name:        entry.Name,
			Slug:        slug,
			Jersey:      entry.Jersey,
			PortraitURL: h.seasons.PortraitURL(season, slug),
			Initials:    models.Initials(entry.Name),
		}
		if img := snap.ImageFor(team, entry.Name); img != nil && img.ImgURL != "" {
			player.PortraitURL = img.ImgURL
		}
		roster = append(roster, player)
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"team":   team,
		"roster": roster,
		"games":  teamHistory(snap.Schedule, team),
	})
}

// teamHistory collects a team's schedule rows in date order. Unplayed games
// carry no result and no box-score link.
func teamHistory(schedule []models.ScheduleEntry, team string) []TeamGame {
	var rows []models.ScheduleEntry
	for _, entry := range schedule {
		if models.SameTeam(entry.TeamA, team) || models.SameTeam(entry.TeamB, team) {
			rows = append(rows, entry)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, errA := parseScheduleDate(rows[i].Date)
		b, errB := parseScheduleDate(rows[j].Date)
		if errA != nil || errB != nil {
			return false
		}
		return a.Before(b)
	})

	games := make([]TeamGame, 0, len(rows))
	for i := range rows {
		entry := rows[i]
		opponent := entry.TeamB
		if !models.SameTeam(entry.TeamA, team) {
			opponent = entry.TeamA
		}

		game := TeamGame{
			Date:     entry.Date,
			Time:     entry.Time,
			Opponent: opponent,
			Result:   services.ResultString(&entry, team),
			Played:   entry.HasScores(),
		}
		if entry.HasScores() {
			if w, g, ok := entry.SplitGameID(); ok {
				game.BoxScore = &BoxScoreRef{Week: w, Game: g}
			}
		}
		games = append(games, game)
	}
	return games
}
