package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/services"
	"github.com/ifnbl/statsapi/internal/utils"
)

var profileStatLabels = map[models.StatKey]string{
	models.StatPoints:     "PTS",
	models.StatRebounds:   "REB",
	models.StatAssists:    "AST",
	models.StatFGM:        "FGM",
	models.StatFGA:        "FGA",
	models.StatFGPct:      "FG%",
	models.StatTwoPtM:     "2PTM",
	models.StatTwoPtA:     "2PTA",
	models.StatTwoPtPct:   "2P%",
	models.StatThreePtM:   "3PTM",
	models.StatThreePtA:   "3PTA",
	models.StatThreePtPct: "3P%",
	models.StatFTM:        "FTM",
	models.StatFTA:        "FTA",
	models.StatFTPct:      "FT%",
	models.StatTurnovers:  "TO",
	models.StatStlBlk:     "STL/BLK",
	models.StatFouls:      "FLS",
}

// ProfileStat is one season average on a player profile, with the player's
// ordinal rank in the eligible pool when they hold one.
type ProfileStat struct {
	Key     models.StatKey `json:"key"`
	Label   string         `json:"label"`
	Average float64        `json:"average"`
	Rank    string         `json:"rank,omitempty"`
}

// BoxScoreRef addresses one game's box score view.
type BoxScoreRef struct {
	Week string `json:"week"`
	Game string `json:"game"`
}

// GameLogEntry is one row of a player's game log.
type GameLogEntry struct {
	Week      string                               `json:"week"`
	WeekToken string                               `json:"weekToken"`
	Opponent  string                               `json:"opponent"`
	Result    string                               `json:"result"`
	DNP       bool                                 `json:"dnp"`
	BoxScore  *BoxScoreRef                         `json:"boxScore,omitempty"`
	Stats     map[models.StatKey]*models.StatValue `json:"stats"`
}

// PlayerProfile is the full player page payload.
type PlayerProfile struct {
	Season      string            `json:"season"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Team        string            `json:"team,omitempty"`
	Jersey      *models.StatValue `json:"jersey,omitempty"`
	PortraitURL string            `json:"portraitUrl"`
	Initials    string            `json:"initials"`
	GamesPlayed int               `json:"gamesPlayed"`
	Averages    []ProfileStat     `json:"averages"`
	GameLog     []GameLogEntry    `json:"gameLog"`
}

// GetPlayer returns a player's profile: averages with league ranks, and the
// full game log with correlated results.
//
// The subject's own log and averages are computed from every box score they
// appear in, rostered or not; only the comparison pool behind the ranks is
// roster-filtered.
func (h *LeagueHandler) GetPlayer(c *gin.Context) {
	season := h.season(c)
	slug := c.Param("slug")
	name := models.PlayerNameFromSlug(slug)

	snap := h.seasons.LoadSnapshot(c.Request.Context(), season, services.SnapshotOptions{
		Weeks:    true,
		Schedule: true,
		Rosters:  true,
		Images:   true,
	})

	team := snap.Rosters.TeamOf(name)
	rosterEntry := snap.Rosters.Find(name)
	gameLog := h.buildGameLog(snap, name, team)

	if len(gameLog) == 0 && rosterEntry == nil {
		utils.SendNotFound(c, "no player found for slug "+slug)
		return
	}

	profile := PlayerProfile{
		Season:      season,
		Slug:        slug,
		Name:        name,
		Team:        team,
		PortraitURL: h.seasons.PortraitURL(season, slug),
		Initials:    models.Initials(name),
		GameLog:     gameLog,
	}
	if rosterEntry != nil {
		profile.Jersey = rosterEntry.Jersey
	}
	if img := snap.ImageFor(team, name); img != nil && img.ImgURL != "" {
		profile.PortraitURL = img.ImgURL
	}

	agg := snap.Aggregates()[name]
	if agg != nil {
		profile.GamesPlayed = agg.GamesPlayed
	}

	pool := snap.EligiblePool()
	profile.Averages = make([]ProfileStat, 0, len(models.ProfileStats))
	for _, key := range models.ProfileStats {
		stat := ProfileStat{
			Key:   key,
			Label: profileStatLabels[key],
			Rank:  services.RankFor(pool, key, name),
		}
		if agg != nil {
			stat.Average = agg.Averages[key]
		}
		profile.Averages = append(profile.Averages, stat)
	}

	utils.SendSuccess(c, profile)
}

func (h *LeagueHandler) buildGameLog(snap *services.SeasonSnapshot, name, team string) []GameLogEntry {
	var entries []GameLogEntry
	for _, week := range snap.Weeks {
		for _, token := range sortedGameTokens(week.Games) {
			game := week.Games[token]
			for _, side := range []struct {
				box *models.TeamBoxScore
				opp string
			}{
				{&game.TeamA, game.TeamB.Name},
				{&game.TeamB, game.TeamA.Name},
			} {
				for i := range side.box.Players {
					line := &side.box.Players[i]
					if line.Name != name {
						continue
					}

					entry := GameLogEntry{
						Week:      week.Label(),
						WeekToken: week.Token(),
						Opponent:  side.opp,
						Result:    "-",
						DNP:       line.DNP(),
						Stats:     statMap(line),
					}
					if team != "" {
						sched := services.FindScheduleEntry(snap.Schedule, week.Token(), team, side.opp)
						entry.Result = services.ResultString(sched, team)
						if sched != nil {
							if w, g, ok := sched.SplitGameID(); ok {
								entry.BoxScore = &BoxScoreRef{Week: w, Game: g}
							}
						}
					}
					entries = append(entries, entry)
				}
			}
		}
	}
	return entries
}

// sortedGameTokens fixes map iteration order so repeated requests render a
// week's games identically.
func sortedGameTokens(games map[string]models.Game) []string {
	tokens := make([]string, 0, len(games))
	for token := range games {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

func statMap(line *models.PlayerStatLine) map[models.StatKey]*models.StatValue {
	stats := make(map[models.StatKey]*models.StatValue, len(models.AllStats))
	for _, key := range models.AllStats {
		stats[key] = line.Stat(key)
	}
	return stats
}
