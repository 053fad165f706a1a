package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StatKey identifies one tracked counting statistic.
type StatKey string

const (
	StatPoints     StatKey = "points"
	StatRebounds   StatKey = "rebounds"
	StatAssists    StatKey = "assists"
	StatFGM        StatKey = "fgm"
	StatFGA        StatKey = "fga"
	StatFGPct      StatKey = "fgPct"
	StatTwoPtM     StatKey = "twoPtM"
	StatTwoPtA     StatKey = "twoPtA"
	StatTwoPtPct   StatKey = "twoPtPct"
	StatThreePtM   StatKey = "threePtM"
	StatThreePtA   StatKey = "threePtA"
	StatThreePtPct StatKey = "threePtPct"
	StatFTM        StatKey = "ftm"
	StatFTA        StatKey = "fta"
	StatFTPct      StatKey = "ftPct"
	StatTurnovers  StatKey = "turnovers"
	StatStlBlk     StatKey = "stlBlk"
	StatFouls      StatKey = "fouls"
)

// ProfileStats is the stat order shown on player profiles. Fouls are listed
// in game logs but not averaged or ranked, matching the site.
var ProfileStats = []StatKey{
	StatPoints, StatRebounds, StatAssists,
	StatFGM, StatFGA, StatFGPct,
	StatTwoPtM, StatTwoPtA, StatTwoPtPct,
	StatThreePtM, StatThreePtA, StatThreePtPct,
	StatFTM, StatFTA, StatFTPct,
	StatTurnovers, StatStlBlk,
}

// AllStats is every aggregated statistic, including fouls for the
// leaderboard categories.
var AllStats = append(ProfileStats[:len(ProfileStats):len(ProfileStats)], StatFouls)

// StatValue is one recorded stat cell. The score sheets export numbers,
// numeric strings and percentage strings interchangeably; anything else
// reads as unrecorded (Valid=false) and stays out of average denominators.
type StatValue struct {
	Value float64
	Valid bool
}

func (v *StatValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = StatValue{Value: f, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*v = StatValue{Value: parsed, Valid: true}
			return nil
		}
	}

	// Tolerate malformed cells rather than failing the whole document.
	*v = StatValue{}
	return nil
}

func (v StatValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// PlayerStatLine is one player's row in a game's box score. JSON keys match
// the exported score sheets exactly.
type PlayerStatLine struct {
	Name       string     `json:"Player"`
	Points     *StatValue `json:"Points"`
	FGM        *StatValue `json:"FGM"`
	FGA        *StatValue `json:"FGA"`
	FGPct      *StatValue `json:"FG %"`
	TwoPtM     *StatValue `json:"2 PTM"`
	TwoPtA     *StatValue `json:"2 PTA"`
	TwoPtPct   *StatValue `json:"2 Pt %"`
	ThreePtM   *StatValue `json:"3 PTM"`
	ThreePtA   *StatValue `json:"3 PTA"`
	ThreePtPct *StatValue `json:"3 Pt %"`
	FTM        *StatValue `json:"FTM"`
	FTA        *StatValue `json:"FTA"`
	FTPct      *StatValue `json:"FT %"`
	Rebounds   *StatValue `json:"REB"`
	Assists    *StatValue `json:"AST"`
	Turnovers  *StatValue `json:"TOs"`
	Fouls      *StatValue `json:"Fouls"`
	StlBlk     *StatValue `json:"STLS/BLKS"`
}

// UnmarshalJSON also accepts the legacy "Assists"/"assists" keys some early
// week files used before the sheets settled on "AST".
func (p *PlayerStatLine) UnmarshalJSON(data []byte) error {
	type alias PlayerStatLine
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PlayerStatLine(a)

	if p.Assists == nil {
		var legacy struct {
			Upper *StatValue `json:"Assists"`
			Lower *StatValue `json:"assists"`
		}
		if err := json.Unmarshal(data, &legacy); err == nil {
			if legacy.Upper != nil {
				p.Assists = legacy.Upper
			} else {
				p.Assists = legacy.Lower
			}
		}
	}
	return nil
}

// DNP reports whether this row is a "did not play" placeholder. A null
// points cell is the sheets' DNP marker.
func (p *PlayerStatLine) DNP() bool {
	return p.Points == nil
}

// Stat returns the cell for a tracked statistic, nil when absent.
func (p *PlayerStatLine) Stat(key StatKey) *StatValue {
	switch key {
	case StatPoints:
		return p.Points
	case StatRebounds:
		return p.Rebounds
	case StatAssists:
		return p.Assists
	case StatFGM:
		return p.FGM
	case StatFGA:
		return p.FGA
	case StatFGPct:
		return p.FGPct
	case StatTwoPtM:
		return p.TwoPtM
	case StatTwoPtA:
		return p.TwoPtA
	case StatTwoPtPct:
		return p.TwoPtPct
	case StatThreePtM:
		return p.ThreePtM
	case StatThreePtA:
		return p.ThreePtA
	case StatThreePtPct:
		return p.ThreePtPct
	case StatFTM:
		return p.FTM
	case StatFTA:
		return p.FTA
	case StatFTPct:
		return p.FTPct
	case StatTurnovers:
		return p.Turnovers
	case StatStlBlk:
		return p.StlBlk
	case StatFouls:
		return p.Fouls
	}
	return nil
}

// TeamBoxScore is one side of a game.
type TeamBoxScore struct {
	Name    string           `json:"name"`
	Players []PlayerStatLine `json:"players"`
}

// PointsTotal sums the side's recorded points, DNP rows counting zero. Used
// as the score fallback when no schedule entry matches.
func (t *TeamBoxScore) PointsTotal() float64 {
	var sum float64
	for i := range t.Players {
		if pts := t.Players[i].Points; pts != nil && pts.Valid {
			sum += pts.Value
		}
	}
	return sum
}

// Game is one played game: both box scores plus an optional replay link.
type Game struct {
	TeamA     TeamBoxScore `json:"teamA"`
	TeamB     TeamBoxScore `json:"teamB"`
	ReplayURL string       `json:"replayUrl,omitempty"`
}

// WeekRecord is one published week<N>.json document: game token -> Game.
type WeekRecord struct {
	Number int
	Games  map[string]Game
}

// Token is the composite-id prefix for this week, e.g. "week3".
func (w *WeekRecord) Token() string {
	return fmt.Sprintf("week%d", w.Number)
}

// Label is the display form, e.g. "Week 3".
func (w *WeekRecord) Label() string {
	return fmt.Sprintf("Week %d", w.Number)
}

// ScheduleEntry is one row of full_schedule.json, the authoritative source
// for final scores. GameID is the composite "<week>-<gameToken>" id.
type ScheduleEntry struct {
	GameID string     `json:"gameId"`
	TeamA  string     `json:"teamA"`
	TeamB  string     `json:"teamB"`
	ScoreA *StatValue `json:"scoreA,omitempty"`
	ScoreB *StatValue `json:"scoreB,omitempty"`
	Date   string     `json:"date"`
	Time   string     `json:"time,omitempty"`
}

// HasScores reports whether both final scores are recorded, i.e. the game
// has been played.
func (e *ScheduleEntry) HasScores() bool {
	return e.ScoreA != nil && e.ScoreA.Valid && e.ScoreB != nil && e.ScoreB.Valid
}

// SplitGameID splits the composite id into its week prefix and game token
// ("week2-game1" -> "week2", "game1"). ok is false when the id is not
// composite.
func (e *ScheduleEntry) SplitGameID() (week, game string, ok bool) {
	week, game, ok = strings.Cut(e.GameID, "-")
	if !ok || week == "" || game == "" {
		return "", "", false
	}
	return week, game, true
}

// RosterEntry is one rostered player.
type RosterEntry struct {
	Name   string     `json:"name"`
	Jersey *StatValue `json:"number,omitempty"`
}

// Rosters maps team name -> rostered players. Roster membership is the
// authoritative "real player" filter for league-wide leaderboards.
type Rosters map[string][]RosterEntry

// Names returns the set of every rostered player name.
func (r Rosters) Names() map[string]bool {
	names := make(map[string]bool)
	for _, roster := range r {
		for _, p := range roster {
			names[p.Name] = true
		}
	}
	return names
}

// TeamOf returns the team a player is rostered on, "" when unrostered.
func (r Rosters) TeamOf(name string) string {
	for team, roster := range r {
		for _, p := range roster {
			if p.Name == name {
				return team
			}
		}
	}
	return ""
}

// Find returns a player's roster entry.
func (r Rosters) Find(name string) *RosterEntry {
	for _, roster := range r {
		for i := range roster {
			if roster[i].Name == name {
				return &roster[i]
			}
		}
	}
	return nil
}

// PlayerImage is one row of players_with_images.json.
type PlayerImage struct {
	Name   string `json:"name"`
	ImgURL string `json:"imgUrl"`
}

// PlayerImages maps team name -> portrait references.
type PlayerImages map[string][]PlayerImage

// AggregatedPlayerStats is one player's cross-week fold: totals, per-stat
// valid-game counts and one-decimal averages. Derived, never persisted.
type AggregatedPlayerStats struct {
	Name        string              `json:"name"`
	GamesPlayed int                 `json:"gamesPlayed"`
	Totals      map[StatKey]float64 `json:"totals"`
	ValidGames  map[StatKey]int     `json:"validGames"`
	Averages    map[StatKey]float64 `json:"averages"`
}
