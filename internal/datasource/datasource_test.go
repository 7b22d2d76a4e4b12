package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/ffa-mmr/internal/models"
)

func testClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 1
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 2 * time.Millisecond
	cfg.RateLimit = 1000
	return cfg
}

func TestRateLimitedClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRateLimitedClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	defer client.Close()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 2 {
		t.Fatalf("expected one retry, server saw %d attempts", attempts)
	}
}

func TestRetryPolicy(t *testing.T) {
	policy := gameLogRetryPolicy()
	ctx := context.Background()

	tests := []struct {
		name   string
		status int
		retry  bool
	}{
		{"OK", http.StatusOK, false},
		{"NotFound", http.StatusNotFound, false},
		{"Unauthorized", http.StatusUnauthorized, false},
		{"RateLimited", http.StatusTooManyRequests, true},
		{"ServerError", http.StatusInternalServerError, true},
		{"BadGateway", http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retry, _ := policy(ctx, &http.Response{StatusCode: tt.status}, nil)
			if retry != tt.retry {
				t.Fatalf("status %d: expected retry=%v, got %v", tt.status, tt.retry, retry)
			}
		})
	}
}

func TestGameLogClientSync(t *testing.T) {
	knownID := uuid.New()
	newID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"id": %q, "date": "2025-06-01T18:00:00Z", "ranking": ["a", "b"]},
			{"id": %q, "date": "2025-06-01T19:00:00Z", "ranking": ["b", "c"]},
			{"id": "not-a-uuid", "date": "2025-06-01T20:00:00Z", "ranking": ["a", "c"]},
			{"id": %q, "date": "bad-date", "ranking": ["a", "c"]}
		]`, knownID, newID, uuid.New())
	}))
	defer server.Close()

	httpClient := NewRateLimitedHTTPClient(testClientConfig(), nil)
	defer httpClient.Close()
	client := NewGameLogClient(httpClient, server.URL, "", time.Minute, nil)

	dataset := models.NewDataset()
	if _, err := dataset.AddGame(knownID, time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC), []string{"a", "b"}); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	added, err := client.Sync(context.Background(), dataset, since, since.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// One duplicate and two malformed records are skipped.
	if added != 1 {
		t.Fatalf("expected 1 game added, got %d", added)
	}
	if len(dataset.Games) != 2 {
		t.Fatalf("expected 2 games in dataset, got %d", len(dataset.Games))
	}
	if _, ok := dataset.Players["c"]; !ok {
		t.Fatal("new participant was not created")
	}
}

func TestGameLogClientCachesWindow(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	httpClient := NewRateLimitedHTTPClient(testClientConfig(), nil)
	defer httpClient.Close()
	client := NewGameLogClient(httpClient, server.URL, "", time.Minute, nil)

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := client.FetchGames(context.Background(), since, until); err != nil {
			t.Fatalf("FetchGames failed: %v", err)
		}
	}

	if fetches != 1 {
		t.Fatalf("expected a single upstream fetch for a repeated window, got %d", fetches)
	}
}
