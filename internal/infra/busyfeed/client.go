package busyfeed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
)

const (
	maxAttempts     = 3
	retryBackoff    = 200 * time.Millisecond
	maxResponseSize = 1 << 20 // 1 MiB
)

// Client fetches external busy calendars over HTTP. Failures are marked
// TRANSIENT so availability degrades to the local calendar instead of erroring;
// results are never cached.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

func (c *Client) Fetch(ctx context.Context, feedURL string, from, to time.Time) (queries.BusyCalendar, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return queries.BusyCalendar{}, errs.Wrap(err, "invalid busy feed URL")
	}
	q := u.Query()
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return queries.BusyCalendar{}, markUnavailable(ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		cal, err := c.fetchOnce(ctx, u.String())
		if err == nil {
			return cal, nil
		}
		lastErr = err

		slog.Warn("busy feed fetch failed",
			"url", u.Host,
			"attempt", attempt+1,
			"error", err.Error())
	}
	return queries.BusyCalendar{}, markUnavailable(lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, fullURL string) (queries.BusyCalendar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return queries.BusyCalendar{}, errs.Wrap(err, "failed to build busy feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return queries.BusyCalendar{}, errs.Wrap(err, "busy feed request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return queries.BusyCalendar{}, errs.Newf("busy feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return queries.BusyCalendar{}, errs.Wrap(err, "failed to read busy feed response")
	}
	return queries.ParseBusyPayload(body)
}

func markUnavailable(err error) error {
	return errs.Mark(errs.Mark(err, errs.ErrBusyFeedUnavailable), errs.ErrTransient)
}
