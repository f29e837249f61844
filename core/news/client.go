// Package news proxies the upstream news providers used by the mobile app and
// normalizes their payloads into model.Article.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Inshpho/logger"
	"Inshpho/model"
)

var (
	ErrUnknownCategory = errors.New("unknown news category")
	ErrNotConfigured   = errors.New("news provider is not configured")
)

// ErrUpstream is returned when a provider answers with a non-2xx status.
type ErrUpstream struct {
	Provider string
	Status   int
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
}

// Client holds the HTTP client shared by both providers.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// getJSON fetches endpoint with query params and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, provider, endpoint string, params url.Values, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid %s url: %w", provider, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()
	logger.Debug("[News] upstream response",
		logger.String("provider", provider),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &ErrUpstream{Provider: provider, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", provider, err)
	}
	return nil
}

// parseTime accepts the timestamp layouts seen from the providers.
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func joinPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// keepUsable drops items without a title or link, which the app cannot render.
func keepUsable(in []model.Article) []model.Article {
	out := make([]model.Article, 0, len(in))
	for _, a := range in {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
