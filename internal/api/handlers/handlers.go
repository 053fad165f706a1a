package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/config"
	"github.com/ifnbl/statsapi/internal/logger"
	"github.com/ifnbl/statsapi/internal/services"
)

// LeagueHandler serves every league view the site rendered: standings,
// leaders, rosters, schedules, player profiles and box scores.
type LeagueHandler struct {
	cfg     *config.Config
	seasons *services.SeasonService
	logger  *logrus.Logger
}

func NewLeagueHandler(cfg *config.Config, seasons *services.SeasonService, log *logrus.Logger) *LeagueHandler {
	return &LeagueHandler{
		cfg:     cfg,
		seasons: seasons,
		logger:  log,
	}
}

// season resolves the season route param; "current" and the empty string
// mean the configured default season.
func (h *LeagueHandler) season(c *gin.Context) string {
	s := c.Param("season")
	if s == "" || s == "current" {
		return h.cfg.DefaultSeason
	}
	return s
}

// log returns a request-scoped log entry carrying the correlation id.
func (h *LeagueHandler) log(c *gin.Context, season string) *logrus.Entry {
	return logger.WithCorrelationID(c.GetString("request_id")).WithFields(logrus.Fields{
		"season": season,
		"path":   c.FullPath(),
	})
}
