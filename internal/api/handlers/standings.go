package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

// GetStandings returns the season's win/loss table, best record first.
func (h *LeagueHandler) GetStandings(c *gin.Context) {
	season := h.season(c)
	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Schedule: true,
		Rosters:  true,
	})

	if len(snap.Rosters) == 0 {
		h.log(c, season).Warn("No roster document available for standings")
		utils.SendNotFound(c, "no roster data available for "+season)
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":    season,
		"standings": snap.Standings(),
	})
}

// ListTeams returns the season's team names.
func (h *LeagueHandler) ListTeams(c *gin.Context) {
	season := h.season(c)
	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Rosters: true,
	})

	if len(snap.Rosters) == 0 {
		utils.SendNotFound(c, "no roster data available for "+season)
		return
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"teams":  snap.Teams(),
	})
}
