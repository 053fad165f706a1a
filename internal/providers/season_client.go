package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ifnbl/statsapi/internal/models"
)

// ErrDocumentMissing marks a season document that is not published (yet).
// Future weeks legitimately do not exist, so this is a normal condition,
// not an upstream failure. Malformed documents read the same way.
var ErrDocumentMissing = errors.New("season document not published")

// Breaker wraps upstream calls with failure isolation.
type Breaker interface {
	Execute(fn func() (interface{}, error)) (interface{}, error)
}

// SeasonClient fetches the static season JSON documents the league publishes
// under {baseURL}/seasons/{season}/. There is no caching and no retry: every
// call hits the host, and a missing document resolves to absence.
type SeasonClient struct {
	httpClient *http.Client
	baseURL    string
	maxWeeks   int
	breaker    Breaker
	logger     *logrus.Logger
}

func NewSeasonClient(baseURL string, maxWeeks int, timeout time.Duration, breaker Breaker, logger *logrus.Logger) *SeasonClient {
	return &SeasonClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  baseURL,
		maxWeeks: maxWeeks,
		breaker:  breaker,
		logger:   logger,
	}
}

// MaxWeeks returns how many week documents a season is probed for.
func (c *SeasonClient) MaxWeeks() int {
	return c.maxWeeks
}

// FetchWeek retrieves one week's box scores. Returns ErrDocumentMissing for
// weeks that are not published or do not parse.
func (c *SeasonClient) FetchWeek(ctx context.Context, season string, number int) (*models.WeekRecord, error) {
	games := make(map[string]models.Game)
	path := fmt.Sprintf("/seasons/%s/week%d.json", season, number)
	if err := c.fetchJSON(ctx, path, &games); err != nil {
		return nil, err
	}
	return &models.WeekRecord{Number: number, Games: games}, nil
}

// FetchWeeks fans out over every probeable week concurrently and waits for
// all fetches to settle. Unpublished or failing weeks are simply absent from
// the result; one bad week never poisons the batch.
func (c *SeasonClient) FetchWeeks(ctx context.Context, season string) []*models.WeekRecord {
	slots := make([]*models.WeekRecord, c.maxWeeks)

	var wg sync.WaitGroup
	for i := 1; i <= c.maxWeeks; i++ {
		wg.Add(1)
		go func(number int) {
			defer wg.Done()
			week, err := c.FetchWeek(ctx, season, number)
			if err != nil {
				if !errors.Is(err, ErrDocumentMissing) {
					c.logger.WithFields(logrus.Fields{
						"season": season,
						"week":   number,
					}).WithError(err).Warn("Week fetch failed")
				}
				return
			}
			slots[number-1] = week
		}(i)
	}
	wg.Wait()

	weeks := make([]*models.WeekRecord, 0, c.maxWeeks)
	for _, w := range slots {
		if w != nil {
			weeks = append(weeks, w)
		}
	}
	return weeks
}

// FetchSchedule retrieves the season's master schedule.
func (c *SeasonClient) FetchSchedule(ctx context.Context, season string) ([]models.ScheduleEntry, error) {
	var schedule []models.ScheduleEntry
	if err := c.fetchJSON(ctx, fmt.Sprintf("/seasons/%s/full_schedule.json", season), &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// FetchRosters retrieves the season's team rosters.
func (c *SeasonClient) FetchRosters(ctx context.Context, season string) (models.Rosters, error) {
	rosters := make(models.Rosters)
	if err := c.fetchJSON(ctx, fmt.Sprintf("/seasons/%s/team_rosters.json", season), &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

// FetchPlayerImages retrieves the season's portrait reference map.
func (c *SeasonClient) FetchPlayerImages(ctx context.Context, season string) (models.PlayerImages, error) {
	images := make(models.PlayerImages)
	if err := c.fetchJSON(ctx, fmt.Sprintf("/seasons/%s/players_with_images.json", season), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// PortraitURL builds the deterministic portrait address for a player slug.
// Whether the image actually exists is the consumer's problem; the site
// falls back to initials.
func (c *SeasonClient) PortraitURL(season, slug string) string {
	return fmt.Sprintf("%s/seasons/%s/images/players/%s.png", c.baseURL, season, slug)
}

// Ping checks static host reachability for health reporting.
func (c *SeasonClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("static host returned %d", resp.StatusCode)
	}
	return nil
}

// fetchJSON performs one breaker-protected document fetch. The v= query
// param defeats stale CDN copies the same way the site did. A 404 counts as
// document absence, not as a breaker failure.
func (c *SeasonClient) fetchJSON(ctx context.Context, path string, dest interface{}) error {
	url := fmt.Sprintf("%s%s?v=%d", c.baseURL, path, time.Now().UnixMilli())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	body, ok := result.([]byte)
	if !ok || body == nil {
		return ErrDocumentMissing
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.WithField("path", path).WithError(err).Debug("Document did not parse, treating as unpublished")
		return ErrDocumentMissing
	}
	return nil
}
