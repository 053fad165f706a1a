package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/models"
	"github.com/ifnbl/statsapi/internal/providers"
)

// SeasonService loads season documents and hands out per-request snapshots.
// Nothing is cached across requests: every page load re-reads the static
// host, exactly like the site it replaces, and a snapshot dies with its
// request.
type SeasonService struct {
	client     *providers.SeasonClient
	aggregator *Aggregator
	logger     *logrus.Logger
}

func NewSeasonService(client *providers.SeasonClient, aggregator *Aggregator, logger *logrus.Logger) *SeasonService {
	return &SeasonService{
		client:     client,
		aggregator: aggregator,
		logger:     logger,
	}
}

// SnapshotOptions selects which documents a view actually needs; unneeded
// ones are never fetched.
type SnapshotOptions struct {
	Weeks    bool
	Schedule bool
	Rosters  bool
	Images   bool
}

// LoadSnapshot fetches the selected documents concurrently and waits for
// all of them to settle. Individual fetch failures resolve to absent
// documents; the request context cancels whatever is still in flight when
// the client goes away.
func (s *SeasonService) LoadSnapshot(ctx context.Context, season string, opts SnapshotOptions) *SeasonSnapshot {
	snap := &SeasonSnapshot{
		Season:     season,
		aggregator: s.aggregator,
	}

	var wg sync.WaitGroup

	if opts.Weeks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.Weeks = s.client.FetchWeeks(ctx, season)
		}()
	}
	if opts.Schedule {
		wg.Add(1)
		go func() {
			defer wg.Done()
			schedule, err := s.client.FetchSchedule(ctx, season)
			if err != nil {
				s.logAbsent(season, "full_schedule.json", err)
				return
			}
			snap.Schedule = schedule
		}()
	}
	if opts.Rosters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rosters, err := s.client.FetchRosters(ctx, season)
			if err != nil {
				s.logAbsent(season, "team_rosters.json", err)
				return
			}
			snap.Rosters = rosters
		}()
	}
	if opts.Images {
		wg.Add(1)
		go func() {
			defer wg.Done()
			images, err := s.client.FetchPlayerImages(ctx, season)
			if err != nil {
				s.logAbsent(season, "players_with_images.json", err)
				return
			}
			snap.Images = images
		}()
	}

	wg.Wait()
	return snap
}

// FetchWeek loads a single week document.
func (s *SeasonService) FetchWeek(ctx context.Context, season string, number int) (*models.WeekRecord, error) {
	return s.client.FetchWeek(ctx, season, number)
}

// FetchSchedule loads the master schedule.
func (s *SeasonService) FetchSchedule(ctx context.Context, season string) ([]models.ScheduleEntry, error) {
	return s.client.FetchSchedule(ctx, season)
}

// PortraitURL builds a player's portrait address.
func (s *SeasonService) PortraitURL(season, slug string) string {
	return s.client.PortraitURL(season, slug)
}

// Ping reports static host reachability.
func (s *SeasonService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// MaxWeeks returns how many week documents a season is probed for.
func (s *SeasonService) MaxWeeks() int {
	return s.client.MaxWeeks()
}

func (s *SeasonService) logAbsent(season, document string, err error) {
	entry := s.logger.WithFields(logrus.Fields{
		"season":   season,
		"document": document,
	})
	if errors.Is(err, providers.ErrDocumentMissing) {
		entry.Debug("Season document not published")
	} else {
		entry.WithError(err).Warn("Season document fetch failed")
	}
}

// SeasonSnapshot is one request's view of a season: the fetched documents
// plus derived selectors that are computed at most once per snapshot. The
// old site recomputed aggregates ad hoc inside every component; here any
// handler can ask for Aggregates or Standings repeatedly and pay once.
type SeasonSnapshot struct {
	Season   string
	Weeks    []*models.WeekRecord
	Schedule []models.ScheduleEntry
	Rosters  models.Rosters
	Images   models.PlayerImages

	aggregator *Aggregator

	aggOnce sync.Once
	agg     map[string]*models.AggregatedPlayerStats

	poolOnce sync.Once
	pool     []*models.AggregatedPlayerStats

	standOnce sync.Once
	stand     []TeamStanding
}

// HasWeekData reports whether any week document was available. Callers must
// present the "no data" state distinctly from zero-valued stats.
func (s *SeasonSnapshot) HasWeekData() bool {
	return len(s.Weeks) > 0
}

// Aggregates returns the cross-week fold of every player who appears in a
// box score, guests included.
func (s *SeasonSnapshot) Aggregates() map[string]*models.AggregatedPlayerStats {
	s.aggOnce.Do(func() {
		s.agg = s.aggregator.Aggregate(s.Weeks)
	})
	return s.agg
}

// EligiblePool returns the roster-filtered, exclusion-filtered comparison
// pool used for every league-wide ranking.
func (s *SeasonSnapshot) EligiblePool() []*models.AggregatedPlayerStats {
	s.poolOnce.Do(func() {
		s.pool = s.aggregator.Eligible(s.Aggregates(), s.Rosters.Names())
	})
	return s.pool
}

// Standings returns the derived win/loss table.
func (s *SeasonSnapshot) Standings() []TeamStanding {
	s.standOnce.Do(func() {
		s.stand = Standings(s.Schedule, s.Teams())
	})
	return s.stand
}

// Teams lists the season's teams, sourced from the roster document.
func (s *SeasonSnapshot) Teams() []string {
	teams := make([]string, 0, len(s.Rosters))
	for team := range s.Rosters {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// ResolveTeam maps any spelling of a team name to its canonical roster key,
// "" when the team is unknown.
func (s *SeasonSnapshot) ResolveTeam(name string) string {
	norm := models.NormalizeTeam(name)
	for team := range s.Rosters {
		if models.NormalizeTeam(team) == norm {
			return team
		}
	}
	return ""
}

// ImageFor returns the published portrait reference for a rostered player,
// nil when none exists.
func (s *SeasonSnapshot) ImageFor(team, name string) *models.PlayerImage {
	for _, img := range s.Images[team] {
		if img.Name == name {
			img := img
			return &img
		}
	}
	return nil
}
