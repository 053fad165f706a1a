package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

const leaderboardSize = 10

// leaderboardCategories is the board order the site showed.
var leaderboardCategories = []struct {
	Key        models.StatKey
	Label      string
	AvgLabel   string
	TotalLabel string
}{
	{models.StatPoints, "Points", "PTS/G", "PTS"},
	{models.StatAssists, "Assists", "AST/G", "AST"},
	{models.StatThreePtM, "3PT Made", "3PT/G", "3PT"},
	{models.StatRebounds, "Rebounds", "REB/G", "REB"},
	{models.StatStlBlk, "STLS/BLKS", "STL/BLK/G", "STL/BLK"},
	{models.StatTurnovers, "Turnovers", "TO/G", "TO"},
	{models.StatFouls, "Fouls", "FLS/G", "FLS"},
}

// LeaderboardCategory is one ranked category of the leaders view.
type LeaderboardCategory struct {
	Key        models.StatKey `json:"key"`
	Label      string         `json:"label"`
	AvgLabel   string         `json:"avgLabel"`
	TotalLabel string         `json:"totalLabel"`
	Leaders    []leaderRow    `json:"leaders"`
}

type leaderRow struct {
	services.RankedPlayer
	PortraitURL string `json:"portraitUrl"`
	Initials    string `json:"initials"`
}

// GetLeaders returns the league leaderboards: top players per category by
// per-game average, over the roster-filtered eligible pool.
func (h *LeagueHandler) GetLeaders(c *gin.Context) {
	season := h.season(c)
	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Weeks:   true,
		Rosters: true,
	})

	if !snap.HasWeekData() {
		h.log(c, season).Warn("No week documents available for leaders")
		utils.SendNoData(c, "no week data published for "+season+" yet (expected week1.json, week2.json, ...)")
		return
	}

	pool := snap.EligiblePool()
	categories := make([]LeaderboardCategory, 0, len(leaderboardCategories))
	for _, cat := range leaderboardCategories {
		ranked := services.Rank(pool, cat.Key)
		if len(ranked) > leaderboardSize {
			ranked = ranked[:leaderboardSize]
		}
		rows := make([]leaderRow, 0, len(ranked))
		for _, r := range ranked {
			rows = append(rows, leaderRow{
				RankedPlayer: r,
				PortraitURL:  h.seasons.PortraitURL(season, r.Slug),
				Initials:     models.Initials(r.Name),
			})
		}
		categories = append(categories, LeaderboardCategory{
			Key:        cat.Key,
			Label:      cat.Label,
			AvgLabel:   cat.AvgLabel,
			TotalLabel: cat.TotalLabel,
			Leaders:    rows,
		})
	}

	utils.SendSuccess(c, gin.H{
		"season":     season,
		"weeks":      len(snap.Weeks),
		"categories": categories,
	})
}
