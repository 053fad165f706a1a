package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/utils"
)

// SeasonInfo is one selectable season.
type SeasonInfo struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// ListSeasons returns every season this deployment serves, current first.
func (h *LeagueHandler) ListSeasons(c *gin.Context) {
	seasons := make([]SeasonInfo, 0, len(h.cfg.Seasons()))
	for i, id := range h.cfg.Seasons() {
		seasons = append(seasons, SeasonInfo{
			ID:      id,
			Label:   seasonLabel(id),
			Current: i == 0,
		})
	}
	utils.SendSuccess(c, seasons)
}

// seasonLabel turns a season id like "szn4" into "Season 4"; ids outside
// that convention pass through unchanged.
func seasonLabel(id string) string {
	if n := strings.TrimPrefix(id, "szn"); n != id && n != "" {
		return fmt.Sprintf("Season %s", n)
	}
	return id
}
