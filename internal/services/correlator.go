package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ifnbl/statsapi/internal/models"
)

// FindScheduleEntry locates the schedule row for a team's game in a given
// week against a given opponent. Candidates are rows whose composite id
// carries the week token and whose (order-independent, normalized) team
// pair includes the subject team; among those only the exact opponent match
// is returned. When a team played twice in one week — makeup games happen —
// anything less than an exact opponent match would silently link the wrong
// box score, so no match means nil and the caller falls back.
func FindScheduleEntry(schedule []models.ScheduleEntry, weekToken, team, opponent string) *models.ScheduleEntry {
	teamNorm := models.NormalizeTeam(team)
	oppNorm := models.NormalizeTeam(opponent)
	if teamNorm == "" {
		return nil
	}

	for i := range schedule {
		e := &schedule[i]
		if !strings.HasPrefix(e.GameID, weekToken+"-") {
			continue
		}
		a := models.NormalizeTeam(e.TeamA)
		b := models.NormalizeTeam(e.TeamB)
		if (a == teamNorm && b == oppNorm) || (b == teamNorm && a == oppNorm) {
			return e
		}
	}
	return nil
}

// FindByGameID returns the schedule row with an exact composite id, nil
// when none matches.
func FindByGameID(schedule []models.ScheduleEntry, gameID string) *models.ScheduleEntry {
	for i := range schedule {
		if schedule[i].GameID == gameID {
			return &schedule[i]
		}
	}
	return nil
}

// ResultString renders a game outcome from the subject team's perspective:
// "W 52-41", "L 41-52", "T 41-41", or "-" when the entry is missing or the
// scores are not recorded yet.
func ResultString(entry *models.ScheduleEntry, team string) string {
	if entry == nil || !entry.HasScores() {
		return "-"
	}

	my, opp := entry.ScoreA.Value, entry.ScoreB.Value
	if !models.SameTeam(entry.TeamA, team) {
		my, opp = opp, my
	}

	outcome := "L"
	switch {
	case my > opp:
		outcome = "W"
	case my == opp:
		outcome = "T"
	}
	return fmt.Sprintf("%s %s-%s", outcome, formatScore(my), formatScore(opp))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
