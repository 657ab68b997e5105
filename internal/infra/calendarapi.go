package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
)

// calendarStatusResponse is the trading-calendar API payload for one lookup.
type calendarStatusResponse struct {
	Key            string `json:"key"`
	DayTrading     bool   `json:"day_trading"`
	SessionTrading bool   `json:"session_trading"`
}

// CalendarClient queries a live trading-calendar service for day-level and
// session-level trading booleans. It is the last-resort schedule source,
// used only when no token is available for a venue key.
type CalendarClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewCalendarClient creates a trading-calendar client.
func NewCalendarClient(apiURL string, timeout time.Duration) *CalendarClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CalendarClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Status looks up the trading status of a venue key at the given instant.
func (c *CalendarClient) Status(ctx context.Context, key string, at time.Time) (day, session bool, err error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("at", strconv.FormatInt(at.Unix(), 10))
	reqURL := c.apiURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, false, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, false, fmt.Errorf("%w: unexpected status code %d", domain.ErrCalendarUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, false, fmt.Errorf("failed to read response: %w", err)
	}

	var status calendarStatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return false, false, fmt.Errorf("failed to parse response: %w", err)
	}

	return status.DayTrading, status.SessionTrading, nil
}
