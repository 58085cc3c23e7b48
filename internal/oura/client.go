package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

const dateFormat = "2006-01-02"

// Client talks to the Oura API v2. It does not retry; each endpoint either
// succeeds or reports its failure and the caller decides what a partial
// result is worth.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewClient(baseURL string, logger internal.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// FetchAll issues one concurrent request per endpoint for the inclusive
// range [start, end] and waits for all of them to settle. Per-endpoint
// failures are collected in the ResultSet, never propagated as an error.
func (c *Client) FetchAll(ctx context.Context, token string, start, end time.Time) *ResultSet {
	res := &ResultSet{Errors: make(map[Endpoint]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	run := func(e Endpoint, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				c.logger.Warnf("oura: %s fetch failed: %v", e, err)
				mu.Lock()
				res.Errors[e] = err
				mu.Unlock()
			}
		}()
	}

	run(EndpointDailySleep, func() error {
		data, err := c.FetchDailySleep(ctx, token, start, end)
		res.DailySleep = data
		return err
	})
	run(EndpointSleepPeriods, func() error {
		data, err := c.FetchSleepPeriods(ctx, token, start, end)
		res.SleepPeriods = data
		return err
	})
	run(EndpointDailyActivity, func() error {
		data, err := c.FetchDailyActivity(ctx, token, start, end)
		res.Activity = data
		return err
	})
	run(EndpointDailyReadiness, func() error {
		data, err := c.FetchDailyReadiness(ctx, token, start, end)
		res.Readiness = data
		return err
	})
	run(EndpointHeartRate, func() error {
		data, err := c.FetchHeartRate(ctx, token, start, end)
		res.HeartRate = data
		return err
	})

	wg.Wait()
	return res
}

func (c *Client) FetchDailySleep(ctx context.Context, token string, start, end time.Time) ([]DailySleep, error) {
	var out struct {
		Data []DailySleep `json:"data"`
	}
	if err := c.get(ctx, token, "daily_sleep", dateRangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) FetchSleepPeriods(ctx context.Context, token string, start, end time.Time) ([]SleepPeriod, error) {
	var out struct {
		Data []SleepPeriod `json:"data"`
	}
	if err := c.get(ctx, token, "sleep", dateRangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) FetchDailyActivity(ctx context.Context, token string, start, end time.Time) ([]DailyActivity, error) {
	var out struct {
		Data []DailyActivity `json:"data"`
	}
	if err := c.get(ctx, token, "daily_activity", dateRangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) FetchDailyReadiness(ctx context.Context, token string, start, end time.Time) ([]DailyReadiness, error) {
	var out struct {
		Data []DailyReadiness `json:"data"`
	}
	if err := c.get(ctx, token, "daily_readiness", dateRangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FetchHeartRate covers the same days as the date-ranged endpoints but the
// heartrate collection is parameterized by timestamps, so the range is
// widened to whole days in UTC.
func (c *Client) FetchHeartRate(ctx context.Context, token string, start, end time.Time) ([]HeartRateSample, error) {
	q := url.Values{}
	q.Set("start_datetime", start.UTC().Truncate(24*time.Hour).Format(time.RFC3339))
	q.Set("end_datetime", end.UTC().Truncate(24*time.Hour).Add(24*time.Hour-time.Second).Format(time.RFC3339))

	var out struct {
		Data []HeartRateSample `json:"data"`
	}
	if err := c.get(ctx, token, "heartrate", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, token, collection string, query url.Values, out interface{}) error {
	u := fmt.Sprintf("%s/v2/usercollection/%s?%s", c.baseURL, collection, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", internal.ErrUpstream, collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", internal.ErrUpstream, collection, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", internal.ErrUpstream, collection, err)
	}
	return nil
}

func dateRangeQuery(start, end time.Time) url.Values {
	q := url.Values{}
	q.Set("start_date", start.Format(dateFormat))
	q.Set("end_date", end.Format(dateFormat))
	return q
}
