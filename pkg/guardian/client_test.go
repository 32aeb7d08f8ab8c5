package guardian

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const successBody = `{
	"response": {
		"status": "ok",
		"results": [
			{
				"webTitle": "Trump holds rally",
				"webUrl": "https://example.com/rally",
				"webPublicationDate": "2024-01-21T10:30:00Z",
				"fields": {
					"headline": "Trump holds rally in Iowa",
					"body": "<p>Trump spoke.</p><p>More.</p>"
				}
			},
			{
				"webTitle": "Fallback title only",
				"webUrl": "https://example.com/other",
				"webPublicationDate": "2024-01-21T12:00:00Z"
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, requestsPerDay int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		PageSize:       50,
		Timeout:        2 * time.Second,
		RequestsPerDay: requestsPerDay,
	}, nil, nil)
}

func TestSearchSuccess(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query = map[string]string{
			"q":           q.Get("q"),
			"from-date":   q.Get("from-date"),
			"to-date":     q.Get("to-date"),
			"show-fields": q.Get("show-fields"),
			"api-key":     q.Get("api-key"),
		}
		w.Write([]byte(successBody))
	}, 0)

	day := time.Date(2024, time.January, 21, 0, 0, 0, 0, time.UTC)
	articles, err := client.Search(context.Background(), "Trump", day)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if query["q"] != "Trump" || query["from-date"] != "2024-01-21" || query["to-date"] != "2024-01-21" {
		t.Errorf("unexpected query: %v", query)
	}
	if query["show-fields"] != "body,headline" || query["api-key"] != "test-key" {
		t.Errorf("unexpected query: %v", query)
	}

	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Headline != "Trump holds rally in Iowa" {
		t.Errorf("headline = %q, want the fields headline", articles[0].Headline)
	}
	if articles[1].Headline != "Fallback title only" {
		t.Errorf("headline = %q, want webTitle fallback", articles[1].Headline)
	}
	if want := time.Date(2024, time.January, 21, 10, 30, 0, 0, time.UTC); !articles[0].Published.Equal(want) {
		t.Errorf("published = %v, want %v", articles[0].Published, want)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response":{"status":"ok","results":[]}}`))
	}, 0)

	articles, err := client.Search(context.Background(), "Trump", time.Now())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("got %d articles, want 0", len(articles))
	}
}

func TestSearchErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, "", ErrRateLimited},
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized},
		{"server error", http.StatusInternalServerError, "boom", ErrUnavailable},
		{"malformed json", http.StatusOK, "{not json", ErrUnavailable},
		{"non-ok envelope", http.StatusOK, `{"response":{"status":"error"}}`, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, 0)

			_, err := client.Search(context.Background(), "Trump", time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchNetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second}, nil, nil)
	_, err := client.Search(context.Background(), "Trump", time.Now())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSearchLocalBudget(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`{"response":{"status":"ok","results":[]}}`))
	}, 1)

	if _, err := client.Search(context.Background(), "Trump", time.Now()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	_, err := client.Search(context.Background(), "Trump", time.Now())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited once the budget is spent", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (second must fail locally)", calls)
	}
}
