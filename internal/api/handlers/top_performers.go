package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/utils"
)

// weeklyCategories is the home page's "week leader" set.
var weeklyCategories = []struct {
	Key   models.StatKey
	Label string
	Unit  string
}{
	{models.StatPoints, "Scoring Week Leader", "Points"},
	{models.StatRebounds, "Rebound Week Leader", "Rebounds"},
	{models.StatThreePtM, "3PTM Week Leader", "Threes Made"},
	{models.StatStlBlk, "STL/BLK Week Leader", "Steals/Blocks"},
}

// TopPerformer is one player tied at a weekly category's best single-game
// value.
type TopPerformer struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Opponent    string  `json:"opponent"`
	Value       float64 `json:"value"`
	PortraitURL string  `json:"portraitUrl"`
	Initials    string  `json:"initials"`
}

// WeeklyCategory is one category of the top-performers view.
type WeeklyCategory struct {
	Key     models.StatKey `json:"key"`
	Label   string         `json:"label"`
	Unit    string         `json:"unit"`
	Leaders []TopPerformer `json:"leaders"`
}

// GetTopPerformers returns each category's best single-game value for one
// week, every tied player included. Categories whose best value is zero are
// returned empty.
func (h *LeagueHandler) GetTopPerformers(c *gin.Context) {
	season := h.season(c)
	weekToken := c.Param("week")

	number, ok := parseWeekToken(weekToken)
	if !ok {
		utils.SendBadRequest(c, "week must look like week3")
		return
	}

	week, err := h.seasons.FetchWeek(c.Request.Context(), season, number)
	if err != nil {
		utils.SendNotFound(c, fmt.Sprintf("no box scores published for %s/week%d", season, number))
		return
	}

	type performance struct {
		line     *models.PlayerStatLine
		opponent string
	}
	var performances []performance
	for _, token := range sortedGameTokens(week.Games) {
		game := week.Games[token]
		for i := range game.TeamA.Players {
			performances = append(performances, performance{&game.TeamA.Players[i], game.TeamB.Name})
		}
		for i := range game.TeamB.Players {
			performances = append(performances, performance{&game.TeamB.Players[i], game.TeamA.Name})
		}
	}

	categories := make([]WeeklyCategory, 0, len(weeklyCategories))
	for _, cat := range weeklyCategories {
		var best float64
		for _, p := range performances {
			if cell := p.line.Stat(cat.Key); cell != nil && cell.Valid && cell.Value > best {
				best = cell.Value
			}
		}

		leaders := []TopPerformer{}
		if best > 0 {
			for _, p := range performances {
				cell := p.line.Stat(cat.Key)
				if cell == nil || !cell.Valid || cell.Value != best || p.line.Name == "" {
					continue
				}
				slug := models.Slugify(p.line.Name)
				leaders = append(leaders, TopPerformer{
					Name:        p.line.Name,
					Slug:        slug,
					Opponent:    p.opponent,
					Value:       cell.Value,
					PortraitURL: h.seasons.PortraitURL(season, slug),
					Initials:    models.Initials(p.line.Name),
				})
			}
		}

		categories = append(categories, WeeklyCategory{
			Key:     cat.Key,
			Label:   cat.Label,
			Unit:    cat.Unit,
			Leaders: leaders,
		})
	}

	utils.SendSuccess(c, gin.H{
		"season":     season,
		"week":       week.Token(),
		"weekLabel":  week.Label(),
		"categories": categories,
	})
}
