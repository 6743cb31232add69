// Package enrichment fetches optional descriptive text about a flag from a
// third-party lookup service. All failures degrade to an empty string.
package enrichment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m3rciful/flagbot/core/logger"
)

const lookupTimeout = 3 * time.Second

// Client queries the configured lookup URL for a flag description.
// A zero-value or empty-URL client always returns "".
type Client struct {
	url  string
	http *http.Client
}

// New constructs a lookup client. An empty URL disables lookups.
func New(lookupURL string) *Client {
	return &Client{
		url:  strings.TrimRight(lookupURL, "/"),
		http: &http.Client{Timeout: lookupTimeout},
	}
}

type lookupResponse struct {
	Description string `json:"description"`
}

// DescribeFlag returns descriptive text for the named country's flag.
// Any failure, non-200 response, or empty result yields "" and never aborts
// feedback delivery.
func (c *Client) DescribeFlag(ctx context.Context, countryName string) string {
	if c == nil || c.url == "" || strings.TrimSpace(countryName) == "" {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	reqURL := c.url + "?country=" + url.QueryEscape(countryName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ""
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug(ctx, "enrich", "lookup.fail",
			slog.String("country", countryName),
			slog.String("err", err.Error()),
		)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug(ctx, "enrich", "lookup.fail",
			slog.String("country", countryName),
			slog.Int("http_code", resp.StatusCode),
		)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ""
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		// Some lookup backends return plain text.
		return strings.TrimSpace(string(body))
	}
	return strings.TrimSpace(out.Description)
}
