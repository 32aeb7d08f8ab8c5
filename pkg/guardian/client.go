// Package guardian is a thin client for The Guardian Open Platform content
// search API. It shapes date-bounded keyword queries and translates the
// API's many failure modes into a fixed error taxonomy; selection logic
// lives elsewhere.
package guardian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hindsight-hq/past-news/internal/domain"
	"github.com/hindsight-hq/past-news/internal/logger"
	"github.com/hindsight-hq/past-news/pkg/httpclient"
)

// DefaultBaseURL is the Guardian content search endpoint.
const DefaultBaseURL = "https://content.guardianapis.com/search"

const (
	defaultPageSize = 50
	defaultTimeout  = 10 * time.Second
)

// Callers only ever see these three errors; everything the API or the
// network can produce maps onto one of them.
var (
	ErrRateLimited  = errors.New("guardian: rate limited")
	ErrUnauthorized = errors.New("guardian: unauthorized")
	ErrUnavailable  = errors.New("guardian: unavailable")
)

// Config holds the client settings.
type Config struct {
	APIKey   string
	BaseURL  string
	PageSize int
	Timeout  time.Duration
	// RequestsPerDay sizes the local request budget. Zero disables it.
	RequestsPerDay int
}

// Client searches the Guardian API for articles published on a given day.
type Client struct {
	http    httpclient.Client
	cfg     Config
	limiter *rate.Limiter
	log     logger.Logger
}

// New builds a Client. The Guardian free tier allows 300 calls per day; when
// RequestsPerDay is set, a local limiter fails fast once that budget is
// spent instead of burning a remote call on a guaranteed 429.
func New(cfg Config, client httpclient.Client, log logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if client == nil {
		client = httpclient.NewRestyClient(cfg.Timeout)
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerDay > 0 {
		limiter = rate.NewLimiter(
			rate.Every(24*time.Hour/time.Duration(cfg.RequestsPerDay)),
			cfg.RequestsPerDay,
		)
	}

	return &Client{http: client, cfg: cfg, limiter: limiter, log: log}
}

type searchResponse struct {
	Response struct {
		Status  string         `json:"status"`
		Results []searchResult `json:"results"`
	} `json:"response"`
}

type searchResult struct {
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Headline string `json:"headline"`
		Body     string `json:"body"`
	} `json:"fields"`
}

// Search returns articles published on day that mention keyword anywhere. An
// empty slice means the query succeeded but found nothing; that is not an
// error.
func (c *Client) Search(ctx context.Context, keyword string, day time.Time) ([]domain.Article, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, fmt.Errorf("%w: daily request budget exhausted", ErrRateLimited)
	}

	date := day.Format("2006-01-02")
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("from-date", date)
	params.Set("to-date", date)
	params.Set("page-size", strconv.Itoa(c.cfg.PageSize))
	params.Set("show-fields", "body,headline")
	params.Set("api-key", c.cfg.APIKey)

	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: api returned 429", ErrRateLimited)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, fmt.Errorf("%w: api returned %d", ErrUnauthorized, code)
	case code >= 400:
		return nil, fmt.Errorf("%w: api returned %d body: %s", ErrUnavailable, code, responseSnippet(resp.Body()))
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if parsed.Response.Status != "ok" {
		return nil, fmt.Errorf("%w: api status %q", ErrUnavailable, parsed.Response.Status)
	}

	articles := make([]domain.Article, 0, len(parsed.Response.Results))
	for _, r := range parsed.Response.Results {
		articles = append(articles, r.toArticle())
	}

	c.log.DebugObj("guardian search complete", "search_done", map[string]any{
		"date":    date,
		"results": len(articles),
	})
	return articles, nil
}

func (r searchResult) toArticle() domain.Article {
	headline := strings.TrimSpace(r.Fields.Headline)
	if headline == "" {
		headline = strings.TrimSpace(r.WebTitle)
	}
	return domain.Article{
		Headline:  headline,
		Body:      r.Fields.Body,
		URL:       strings.TrimSpace(r.WebURL),
		Published: parsePublished(r.WebPublicationDate),
	}
}

func parsePublished(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
