package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

// BoxScoreRow is one player line of a box score. DNP rows keep their null
// stats and are marked rather than dropped.
type BoxScoreRow struct {
	Player      string                               `json:"player"`
	Slug        string                               `json:"slug"`
	DNP         bool                                 `json:"dnp"`
	Stats       map[models.StatKey]*models.StatValue `json:"stats"`
	PortraitURL string                               `json:"portraitUrl"`
	Initials    string                               `json:"initials"`
}

// BoxScoreTeam is one side of the box score view.
type BoxScoreTeam struct {
	Name    string        `json:"name"`
	Score   float64       `json:"score"`
	Players []BoxScoreRow `json:"players"`
}

// BoxScoreView is the full box score payload. ScoreSource says whether the
// final score came from the schedule or was summed from player points.
type BoxScoreView struct {
	Season      string       `json:"season"`
	Week        string       `json:"week"`
	GameID      string       `json:"gameId"`
	TeamA       BoxScoreTeam `json:"teamA"`
	TeamB       BoxScoreTeam `json:"teamB"`
	ScoreSource string       `json:"scoreSource"`
	Date        string       `json:"date,omitempty"`
	Time        string       `json:"time,omitempty"`
	ReplayURL   string       `json:"replayUrl,omitempty"`
}

// GetBoxScore returns one game's full box score. The week document and the
// schedule are fetched in parallel; a missing schedule entry falls back to
// scores computed from the player lines instead of blanking the page.
func (h *LeagueHandler) GetBoxScore(c *gin.Context) {
	season := h.season(c)
	weekToken := c.Param("week")
	gameToken := c.Param("game")

	weekNumber, ok := parseWeekToken(weekToken)
	if !ok {
		utils.SendBadRequest(c, "week must look like week3")
		return
	}

	var (
		wg       sync.WaitGroup
		week     *models.WeekRecord
		schedule []models.ScheduleEntry
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		w, err := h.seasons.FetchWeek(c.Request.Context(), season, weekNumber)
		if err != nil {
			h.log(c, season).WithField("week", weekToken).Debug("Week document unavailable for box score")
			return
		}
		week = w
	}()
	go func() {
		defer wg.Done()
		sched, err := h.seasons.FetchSchedule(c.Request.Context(), season)
		if err != nil {
			// score falls back to summed player points
			h.log(c, season).Debug("Schedule unavailable for box score")
			return
		}
		schedule = sched
	}()
	wg.Wait()

	if week == nil {
		utils.SendNotFound(c, fmt.Sprintf("no box scores published for %s/%s", season, weekToken))
		return
	}
	game, ok := week.Games[gameToken]
	if !ok {
		utils.SendNotFound(c, fmt.Sprintf("no box score for %s/%s/%s", season, weekToken, gameToken))
		return
	}

	view := BoxScoreView{
		Season:      season,
		Week:        weekToken,
		GameID:      fmt.Sprintf("%s-%s", weekToken, gameToken),
		TeamA:       h.boxScoreTeam(season, &game.TeamA),
		TeamB:       h.boxScoreTeam(season, &game.TeamB),
		ScoreSource: "boxscore",
		ReplayURL:   game.ReplayURL,
	}

	if entry := services.FindByGameID(schedule, view.GameID); entry != nil {
		view.Date = entry.Date
		view.Time = entry.Time
		if entry.HasScores() {
			view.TeamA.Score = entry.ScoreA.Value
			view.TeamB.Score = entry.ScoreB.Value
			view.ScoreSource = "schedule"
		}
	}

	utils.SendSuccess(c, view)
}

func (h *LeagueHandler) boxScoreTeam(season string, box *models.TeamBoxScore) BoxScoreTeam {
	team := BoxScoreTeam{
		Name:    box.Name,
		Score:   box.PointsTotal(),
		Players: make([]BoxScoreRow, 0, len(box.Players)),
	}
	for i := range box.Players {
		line := &box.Players[i]
		slug := models.Slugify(line.Name)
		team.Players = append(team.Players, BoxScoreRow{
			Player:      line.Name,
			Slug:        slug,
			DNP:         line.DNP(),
			Stats:       statMap(line),
			PortraitURL: h.seasons.PortraitURL(season, slug),
			Initials:    models.Initials(line.Name),
		})
	}
	return team
}

// parseWeekToken accepts "week3" or a bare "3".
func parseWeekToken(token string) (int, bool) {
	digits := strings.TrimPrefix(token, "week")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
