package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifnbl/statsapi/internal/api/middleware"
	"github.com/ifnbl/statsapi/internal/config"
	"github.com/ifnbl/statsapi/internal/providers"
	"github.com/ifnbl/statsapi/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixture documents mirror the static host layout for one season with two
// published weeks. Week 3 deliberately has no schedule entry so the box-score
// fallback path gets exercised.
var fixtures = map[string]string{
	"/seasons/szn4/team_rosters.json": `{
		"UMMA": [
			{"name": "Ahmed Ali", "number": 7},
			{"name": "Umar Khan"}
		],
		"Ballers": [
			{"name": "Bilal Shah"},
			{"name": "Hamza Malik"}
		]
	}`,
	"/seasons/szn4/week1.json": `{
		"game1": {
			"teamA": {"name": "UMMA", "players": [
				{"Player": "Ahmed Ali", "Points": 20, "REB": 5, "AST": 4},
				{"Player": "Umar Khan", "Points": 10, "REB": 3}
			]},
			"teamB": {"name": "Ballers", "players": [
				{"Player": "Bilal Shah", "Points": 15, "REB": 7},
				{"Player": "Josiah", "Points": 30}
			]}
		}
	}`,
	"/seasons/szn4/week3.json": `{
		"game2": {
			"teamA": {"name": "UMMA", "players": [
				{"Player": "Ahmed Ali", "Points": 12},
				{"Player": "Umar Khan", "Points": null}
			]},
			"teamB": {"name": "Ballers", "players": [
				{"Player": "Bilal Shah", "Points": 8}
			]}
		}
	}`,
	"/seasons/szn4/full_schedule.json": `[
		{"gameId": "week1-game1", "teamA": "The Umma", "teamB": "Ballers",
		 "scoreA": 30, "scoreB": 45, "date": "1/12/2026", "time": "7:00 PM"},
		{"gameId": "week2-game1", "teamA": "UMMA", "teamB": "Ballers",
		 "date": "12/1/2099", "time": "8:00 PM"}
	]`,
	"/seasons/szn4/players_with_images.json": `{
		"UMMA": [{"name": "Ahmed Ali", "imgUrl": "https://img.example/ahmed.jpg"}]
	}`,
}

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestRouterWithFixtures(t, fixtures)
}

func newTestRouterWithFixtures(t *testing.T, docs map[string]string) *gin.Engine {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(doc))
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Port:            "8080",
		Env:             "development",
		DataBaseURL:     server.URL,
		DefaultSeason:   "szn4",
		PreviousSeasons: []string{"szn3"},
		MaxWeeks:        4,
		FetchTimeout:    2 * time.Second,
		ExcludedPlayers: []string{"Josiah"},
	}

	breaker := services.NewCircuitBreakerService(5, time.Minute, logger)
	client := providers.NewSeasonClient(cfg.DataBaseURL, cfg.MaxWeeks, cfg.FetchTimeout, breaker, logger)
	aggregator := services.NewAggregator(cfg.ExcludedPlayers, logger)
	seasonService := services.NewSeasonService(client, aggregator, logger)

	leagueHandler := NewLeagueHandler(cfg, seasonService, logger)
	healthHandler := NewHealthHandler(seasonService, breaker, logger)

	router := gin.New()
	router.Use(middleware.RequestID())
	apiV1 := router.Group("/api/v1")
	apiV1.GET("/seasons", leagueHandler.ListSeasons)
	season := apiV1.Group("/seasons/:season")
	season.GET("/standings", leagueHandler.GetStandings)
	season.GET("/teams", leagueHandler.ListTeams)
	season.GET("/teams/:team/roster", leagueHandler.GetTeamRoster)
	season.GET("/schedule", leagueHandler.GetSchedule)
	season.GET("/schedule/upcoming", leagueHandler.GetUpcomingGames)
	season.GET("/leaders", leagueHandler.GetLeaders)
	season.GET("/weeks/:week/top-performers", leagueHandler.GetTopPerformers)
	season.GET("/players/:slug", leagueHandler.GetPlayer)
	season.GET("/boxscore/:week/:game", leagueHandler.GetBoxScore)
	router.GET("/health", healthHandler.GetHealth)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return w.Code, body
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func TestListSeasons(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons")
	require.Equal(t, http.StatusOK, code)

	seasons, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, seasons, 2)

	current := seasons[0].(map[string]interface{})
	assert.Equal(t, "szn4", current["id"])
	assert.Equal(t, "Season 4", current["label"])
	assert.Equal(t, true, current["current"])

	previous := seasons[1].(map[string]interface{})
	assert.Equal(t, "szn3", previous["id"])
	assert.Equal(t, false, previous["current"])
}

func TestGetStandings(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/standings")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	standings, ok := data["standings"].([]interface{})
	require.True(t, ok)
	require.Len(t, standings, 2)

	// "The Umma" in the schedule joins to the "UMMA" roster entry
	first := standings[0].(map[string]interface{})
	assert.Equal(t, "Ballers", first["team"])
	assert.Equal(t, 1.0, first["wins"])
	assert.Equal(t, 0.0, first["losses"])

	second := standings[1].(map[string]interface{})
	assert.Equal(t, "UMMA", second["team"])
	assert.Equal(t, 1.0, second["losses"])
}

func TestGetStandingsUnknownSeason(t *testing.T) {
	router := newTestRouter(t)

	code, _ := getJSON(t, router, "/api/v1/seasons/szn9/standings")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListTeams(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/teams")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, []interface{}{"Ballers", "UMMA"}, data["teams"])
}

func TestGetLeaders(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/leaders")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, 2.0, data["weeks"])

	categories, ok := data["categories"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, categories)

	points := categories[0].(map[string]interface{})
	assert.Equal(t, "points", points["key"])
	leaders := points["leaders"].([]interface{})
	require.Len(t, leaders, 3)

	// Josiah's 30-point game never ranks: guests stay off the boards.
	// Ahmed: (20+12)/2 = 16.0, Bilal: (15+8)/2 = 11.5, Umar: 10/1 = 10.0
	top := leaders[0].(map[string]interface{})
	assert.Equal(t, "Ahmed Ali", top["name"])
	assert.Equal(t, 16.0, top["average"])
	assert.Equal(t, "1st", top["ordinal"])

	second := leaders[1].(map[string]interface{})
	assert.Equal(t, "Bilal Shah", second["name"])
	assert.Equal(t, 11.5, second["average"])
}

func TestGetLeadersNoWeekData(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn9/leaders")
	require.Equal(t, http.StatusNotFound, code)
	// the zero-weeks state carries a machine-readable marker, distinct
	// from an empty leaderboard
	assert.Equal(t, "no_data", body["error"])
	assert.Contains(t, body["message"], "no week data published")
}

func TestGetPlayer(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/players/ahmed_ali")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, "Ahmed Ali", data["name"])
	assert.Equal(t, "UMMA", data["team"])
	assert.Equal(t, 7.0, data["jersey"])
	assert.Equal(t, 2.0, data["gamesPlayed"])
	// published portrait wins over the computed address
	assert.Equal(t, "https://img.example/ahmed.jpg", data["portraitUrl"])

	gameLog, ok := data["gameLog"].([]interface{})
	require.True(t, ok)
	require.Len(t, gameLog, 2)

	week1 := gameLog[0].(map[string]interface{})
	assert.Equal(t, "Week 1", week1["week"])
	assert.Equal(t, "Ballers", week1["opponent"])
	assert.Equal(t, "L 30-45", week1["result"])
	assert.Equal(t, false, week1["dnp"])

	// no schedule entry for week 3: result stays blank, no box-score link
	week3 := gameLog[1].(map[string]interface{})
	assert.Equal(t, "Week 3", week3["week"])
	assert.Equal(t, "-", week3["result"])
	assert.Nil(t, week3["boxScore"])
}

func TestGetPlayerRanks(t *testing.T) {
	router := newTestRouter(t)

	_, body := getJSON(t, router, "/api/v1/seasons/szn4/players/ahmed_ali")
	data := dataOf(t, body)

	averages, ok := data["averages"].([]interface{})
	require.True(t, ok)

	var points map[string]interface{}
	for _, a := range averages {
		stat := a.(map[string]interface{})
		if stat["key"] == "points" {
			points = stat
		}
	}
	require.NotNil(t, points)
	assert.Equal(t, 16.0, points["average"])
	assert.Equal(t, "1st", points["rank"])
}

func TestGetPlayerNotFound(t *testing.T) {
	router := newTestRouter(t)

	code, _ := getJSON(t, router, "/api/v1/seasons/szn4/players/nobody_here")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetBoxScoreScheduleScores(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/boxscore/week1/game1")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, "schedule", data["scoreSource"])
	assert.Equal(t, "1/12/2026", data["date"])

	teamA := data["teamA"].(map[string]interface{})
	teamB := data["teamB"].(map[string]interface{})
	assert.Equal(t, 30.0, teamA["score"])
	assert.Equal(t, 45.0, teamB["score"])
}

func TestGetBoxScoreFallbackScores(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/boxscore/week3/game2")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	// no schedule entry for week3-game2: scores sum from player points
	assert.Equal(t, "boxscore", data["scoreSource"])

	teamA := data["teamA"].(map[string]interface{})
	assert.Equal(t, 12.0, teamA["score"])
	teamB := data["teamB"].(map[string]interface{})
	assert.Equal(t, 8.0, teamB["score"])

	// DNP row is kept and marked
	players := teamA["players"].([]interface{})
	require.Len(t, players, 2)
	umar := players[1].(map[string]interface{})
	assert.Equal(t, "Umar Khan", umar["player"])
	assert.Equal(t, true, umar["dnp"])
}

func TestGetBoxScoreMissing(t *testing.T) {
	router := newTestRouter(t)

	code, _ := getJSON(t, router, "/api/v1/seasons/szn4/boxscore/week2/game1")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = getJSON(t, router, "/api/v1/seasons/szn4/boxscore/week1/game9")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = getJSON(t, router, "/api/v1/seasons/szn4/boxscore/nonsense/game1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetSchedule(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/schedule")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	days, ok := data["days"].([]interface{})
	require.True(t, ok)
	require.Len(t, days, 2)

	first := days[0].(map[string]interface{})
	assert.Equal(t, "1/12/2026", first["date"])
	games := first["games"].([]interface{})
	require.Len(t, games, 1)

	game := games[0].(map[string]interface{})
	boxScore := game["boxScore"].(map[string]interface{})
	assert.Equal(t, "week1", boxScore["week"])
	assert.Equal(t, "game1", boxScore["game"])

	// both teams play on each fixture date
	assert.Empty(t, first["byeTeams"])
}

func TestGetUpcomingGames(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/schedule/upcoming")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	games, ok := data["games"].([]interface{})
	require.True(t, ok)
	require.Len(t, games, 1)

	game := games[0].(map[string]interface{})
	assert.Equal(t, "week2-game1", game["gameId"])
}

func TestGetUpcomingGamesIncludesTodayAheadOfUTC(t *testing.T) {
	// in a zone ahead of UTC, local midnight of today precedes the
	// UTC-epoch day boundary; today's game must still count as upcoming
	original := time.Local
	time.Local = time.FixedZone("UTC+14", 14*60*60)
	t.Cleanup(func() { time.Local = original })

	now := time.Now().In(time.Local)
	today := fmt.Sprintf("%d/%d/%d", int(now.Month()), now.Day(), now.Year())

	docs := map[string]string{
		"/seasons/szn4/full_schedule.json": fmt.Sprintf(`[
			{"gameId": "week4-game1", "teamA": "UMMA", "teamB": "Ballers",
			 "date": %q, "time": "7:00 PM"}
		]`, today),
	}
	router := newTestRouterWithFixtures(t, docs)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/schedule/upcoming")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	games, ok := data["games"].([]interface{})
	require.True(t, ok)
	require.Len(t, games, 1)
	assert.Equal(t, "week4-game1", games[0].(map[string]interface{})["gameId"])
}

func TestGetTopPerformers(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/api/v1/seasons/szn4/weeks/week1/top-performers")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, "week1", data["week"])
	assert.Equal(t, "Week 1", data["weekLabel"])

	categories, ok := data["categories"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, categories)

	scoring := categories[0].(map[string]interface{})
	assert.Equal(t, "points", scoring["key"])
	leaders := scoring["leaders"].([]interface{})
	require.Len(t, leaders, 1)

	// weekly boards show the single game's best line, guests included
	top := leaders[0].(map[string]interface{})
	assert.Equal(t, "Josiah", top["name"])
	assert.Equal(t, 30.0, top["value"])
	assert.Equal(t, "Ballers", top["opponent"])
}

func TestGetTopPerformersMissingWeek(t *testing.T) {
	router := newTestRouter(t)

	code, _ := getJSON(t, router, "/api/v1/seasons/szn4/weeks/week2/top-performers")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetTeamRoster(t *testing.T) {
	router := newTestRouter(t)

	// any spelling of the team resolves to the roster key
	code, body := getJSON(t, router, "/api/v1/seasons/szn4/teams/the%20umma/roster")
	require.Equal(t, http.StatusOK, code)

	data := dataOf(t, body)
	assert.Equal(t, "UMMA", data["team"])

	roster, ok := data["roster"].([]interface{})
	require.True(t, ok)
	require.Len(t, roster, 2)

	ahmed := roster[0].(map[string]interface{})
	assert.Equal(t, "Ahmed Ali", ahmed["name"])
	assert.Equal(t, "ahmed_ali", ahmed["slug"])
	assert.Equal(t, "https://img.example/ahmed.jpg", ahmed["portraitUrl"])
	assert.Equal(t, "AA", ahmed["initials"])

	games, ok := data["games"].([]interface{})
	require.True(t, ok)
	require.Len(t, games, 2)

	played := games[0].(map[string]interface{})
	assert.Equal(t, "L 30-45", played["result"])
	assert.Equal(t, true, played["played"])
	require.NotNil(t, played["boxScore"])

	upcoming := games[1].(map[string]interface{})
	assert.Equal(t, "-", upcoming["result"])
	assert.Equal(t, false, upcoming["played"])
	assert.Nil(t, upcoming["boxScore"])
}

func TestGetTeamRosterUnknownTeam(t *testing.T) {
	router := newTestRouter(t)

	code, _ := getJSON(t, router, "/api/v1/seasons/szn4/teams/Ghosts/roster")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetHealth(t *testing.T) {
	router := newTestRouter(t)

	code, body := getJSON(t, router, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ifnbl-stats-api", body["service"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "closed", checks["circuit_breaker"])
	assert.Equal(t, "ok", checks["data_host"])
}
