package records

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/hellenic-development/csv-exporter/pkg/generator"
)

// Client fetches JSON rows from an HTTP endpoint. Requests retry on rate
// limiting and server errors with a linear backoff between attempts.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client with a connection-pooled transport and a
// timeout sized for large row payloads.
func NewClient() *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: transport,
		},
	}
}

// Fetch downloads and parses a JSON array of row objects from rowsURL.
// It retries up to 3 attempts on transport errors, 429 and 5xx responses.
func (c *Client) Fetch(ctx context.Context, rowsURL string) ([]generator.Row, error) {
	var lastErr error
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rowsURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			if attempt < maxRetries && ctx.Err() == nil {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			if attempt < maxRetries && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		if readErr != nil {
			lastErr = fmt.Errorf("attempt %d: read response body: %w", attempt, readErr)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return nil, lastErr
		}

		rows, err := Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse response from %s: %w", rowsURL, err)
		}
		return rows, nil
	}

	return nil, lastErr
}

// Load resolves source as either an HTTP URL or a local file path and
// returns its rows.
func Load(ctx context.Context, source string) ([]generator.Row, error) {
	if IsURL(source) {
		return NewClient().Fetch(ctx, source)
	}
	return LoadFile(source)
}

// DefaultFileName derives a CSV output file name from the rows source: the
// base name of the path or URL with its extension replaced by .csv. An
// empty or unusable source yields "export.csv".
func DefaultFileName(source string) string {
	name := source
	if IsURL(source) {
		if u, err := url.Parse(source); err == nil {
			name = u.Path
		}
	}

	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "export"
	}
	return base + ".csv"
}
