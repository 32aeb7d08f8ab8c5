// Package httpclient wraps the resty HTTP client behind a small interface so
// callers can substitute it in tests.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client issues HTTP GET requests. Non-2xx statuses are not errors; callers
// inspect the response.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error)
}

type restyClient struct {
	client *resty.Client
}

// NewRestyClient builds a Client with the given per-request timeout.
func NewRestyClient(timeout time.Duration) Client {
	return &restyClient{client: resty.New().SetTimeout(timeout)}
}

func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	return req.Get(url)
}
