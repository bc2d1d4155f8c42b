package polymarket

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"PolymarketMCP/internal/config"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGammaListMarkets(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/markets" {
			t.Errorf("path = %q, want /markets", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("closed") != "false" || q.Get("active") != "true" {
			t.Errorf("query = %q, want limit=5 closed=false active=true", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","question":"A?"},{"id":"2","question":"B?"}]`))
	}))
	defer srv.Close()

	g := NewGammaAdapter(&config.PolymarketConfig{GammaBaseURL: srv.URL, Timeout: 5}, testLogger(), nil)
	markets, err := g.ListMarkets(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("ListMarkets() error = %v", err)
	}

	if len(markets) != 2 {
		t.Fatalf("len(markets) = %d, want 2", len(markets))
	}
	if markets[0]["id"] != "1" || markets[1]["id"] != "2" {
		t.Errorf("order not preserved: %v", markets)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
}

func TestGammaSearchEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("path = %q, want /events", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("title_contains") != "election" {
			t.Errorf("title_contains = %q, want election", q.Get("title_contains"))
		}
		if q.Get("slug") != "" {
			t.Errorf("slug = %q, want empty", q.Get("slug"))
		}
		_, _ = w.Write([]byte(`[{"id":"e1","title":"Election","markets":[{"id":"m1"},{"id":"m2"}]}]`))
	}))
	defer srv.Close()

	g := NewGammaAdapter(&config.PolymarketConfig{GammaBaseURL: srv.URL, Timeout: 5}, testLogger(), nil)
	events, err := g.SearchEvents(context.Background(), EventQuery{Limit: 10, TitleContains: "election"})
	if err != nil {
		t.Fatalf("SearchEvents() error = %v", err)
	}

	if len(events) != 1 || events[0].Title != "Election" || len(events[0].Markets) != 2 {
		t.Errorf("events = %+v", events)
	}
}

func TestGammaNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	g := NewGammaAdapter(&config.PolymarketConfig{GammaBaseURL: srv.URL, Timeout: 5}, testLogger(), nil)
	_, err := g.ListMarkets(context.Background(), 1, false)
	if err == nil {
		t.Fatal("ListMarkets() error = nil, want error")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("error %v is not an APIError", err)
	}
	if apiErr.Source != SourceGamma || apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream down" {
		t.Errorf("APIError = %+v", apiErr)
	}
}
