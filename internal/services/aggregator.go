package services

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/models"
)

// Aggregator folds per-game stat lines across every published week into
// per-player totals and averages. This is the one shared engine behind the
// leaders board, player profiles and weekly views; the old site re-derived
// all of this inline in every component.
type Aggregator struct {
	excluded map[string]bool
	logger   *logrus.Logger
}

func NewAggregator(excludedNames []string, logger *logrus.Logger) *Aggregator {
	excluded := make(map[string]bool, len(excludedNames))
	for _, name := range excludedNames {
		excluded[name] = true
	}
	return &Aggregator{
		excluded: excluded,
		logger:   logger,
	}
}

// Aggregate computes every player's cross-week totals, per-stat valid-game
// counts and one-decimal averages.
//
// A stat's average divides by the games where that stat was actually
// recorded, not by total games played: the sheets leave cells blank
// intermittently and a blank must not drag an average down. DNP rows (null
// points) contribute nothing at all.
func (a *Aggregator) Aggregate(weeks []*models.WeekRecord) map[string]*models.AggregatedPlayerStats {
	players := make(map[string]*models.AggregatedPlayerStats)

	for _, week := range weeks {
		if week == nil {
			continue
		}
		for _, game := range week.Games {
			for _, side := range []*models.TeamBoxScore{&game.TeamA, &game.TeamB} {
				for i := range side.Players {
					a.fold(players, &side.Players[i])
				}
			}
		}
	}

	for _, p := range players {
		for _, key := range models.AllStats {
			if n := p.ValidGames[key]; n > 0 {
				p.Averages[key] = round1(p.Totals[key] / float64(n))
			} else {
				p.Averages[key] = 0
			}
		}
	}

	return players
}

func (a *Aggregator) fold(players map[string]*models.AggregatedPlayerStats, line *models.PlayerStatLine) {
	if line.Name == "" {
		return
	}
	if line.DNP() {
		return
	}

	p, ok := players[line.Name]
	if !ok {
		p = &models.AggregatedPlayerStats{
			Name:       line.Name,
			Totals:     make(map[models.StatKey]float64, len(models.AllStats)),
			ValidGames: make(map[models.StatKey]int, len(models.AllStats)),
			Averages:   make(map[models.StatKey]float64, len(models.AllStats)),
		}
		players[line.Name] = p
	}

	p.GamesPlayed++
	for _, key := range models.AllStats {
		cell := line.Stat(key)
		if cell == nil || !cell.Valid {
			// blank or non-numeric: zero toward the total, and the game
			// stays out of this stat's average denominator
			continue
		}
		p.Totals[key] += cell.Value
		p.ValidGames[key]++
	}
}

// Eligible filters an aggregate map down to the league-wide comparison
// pool: configured guest names are dropped, and so is anyone not on a
// roster. A player's own game log is never filtered this way, only the pool
// they are ranked against.
func (a *Aggregator) Eligible(players map[string]*models.AggregatedPlayerStats, rosterNames map[string]bool) []*models.AggregatedPlayerStats {
	pool := make([]*models.AggregatedPlayerStats, 0, len(players))
	for name, p := range players {
		if a.excluded[name] {
			continue
		}
		if !rosterNames[name] {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}

// IsExcluded reports whether a name is on the guest exclusion list.
func (a *Aggregator) IsExcluded(name string) bool {
	return a.excluded[name]
}

// round1 rounds to one decimal, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
