package services

import (
	"fmt"
	"sort"

	"github.com/ifnbl/statsapi/internal/models"
)

// RankedPlayer is one leaderboard row for a single statistic.
type RankedPlayer struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	GamesPlayed int     `json:"gamesPlayed"`
	Average     float64 `json:"average"`
	Total       float64 `json:"total"`
	Rank        int     `json:"rank"`
	Ordinal     string  `json:"ordinal"`
}

// Rank orders a comparison pool by a statistic's average, highest first,
// and assigns competition ranks: ties share a rank and the following rank
// skips, so averages [20, 18, 18, 15] rank 1st, 2nd, 2nd, 4th.
//
// Players without a single valid game for the statistic get no row at all —
// never a rank of zero, never sorted in as lowest.
func Rank(pool []*models.AggregatedPlayerStats, stat models.StatKey) []RankedPlayer {
	eligible := make([]*models.AggregatedPlayerStats, 0, len(pool))
	for _, p := range pool {
		if p.ValidGames[stat] > 0 {
			eligible = append(eligible, p)
		}
	}

	// secondary sort on name keeps repeat runs byte-identical
	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i].Averages[stat], eligible[j].Averages[stat]
		if a != b {
			return a > b
		}
		return eligible[i].Name < eligible[j].Name
	})

	ranked := make([]RankedPlayer, 0, len(eligible))
	rank := 1
	for i, p := range eligible {
		if i > 0 && p.Averages[stat] != eligible[i-1].Averages[stat] {
			rank = i + 1
		}
		ranked = append(ranked, RankedPlayer{
			Name:        p.Name,
			Slug:        models.Slugify(p.Name),
			GamesPlayed: p.GamesPlayed,
			Average:     p.Averages[stat],
			Total:       p.Totals[stat],
			Rank:        rank,
			Ordinal:     Ordinal(rank),
		})
	}
	return ranked
}

// RankFor returns a single player's ordinal rank within the pool for a
// statistic, "" when the player holds no rank there.
func RankFor(pool []*models.AggregatedPlayerStats, stat models.StatKey, name string) string {
	for _, row := range Rank(pool, stat) {
		if row.Name == name {
			return row.Ordinal
		}
	}
	return ""
}

// Ordinal formats an English ordinal: 1st, 2nd, 3rd, 4th... with the
// 11th/12th/13th exceptions.
func Ordinal(n int) string {
	if rem := n % 100; rem >= 11 && rem <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
