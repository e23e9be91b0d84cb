package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBraveSearchNormalizesAndFilters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "secret" {
			t.Errorf("missing subscription token header")
		}
		if got := r.URL.Query().Get("q"); got != "cricket news" {
			t.Errorf("unexpected query: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"title": "Fresh", "url": "https://n.example.com/fresh", "description": "fresh one",
				 "age": "2 hours ago", "source": {"name": "Example News"}},
				{"title": "Stale", "url": "https://n.example.com/stale", "description": "old one",
				 "age": "3 days ago"},
				{"title": "Undated", "url": "https://n.example.com/undated", "description": "no timestamp",
				 "meta_url": {"hostname": "n.example.com"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewBraveClient("secret", server.Client())
	client.BaseURL = server.URL

	items, err := client.Search(context.Background(), "cricket news", 10, 24*time.Hour)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items after freshness filter, got %d", len(items))
	}
	if items[0].Title != "Fresh" || items[0].Source != "Example News" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[0].PublishedAt.IsZero() {
		t.Fatal("age string should yield a publish time")
	}
	if items[1].Title != "Undated" {
		t.Fatalf("item without publish time must be kept, got: %+v", items[1])
	}
	if !items[1].PublishedAt.IsZero() {
		t.Fatal("undated item must keep a zero publish time")
	}
	if items[1].Source != "n.example.com" {
		t.Fatalf("expected hostname fallback source, got: %s", items[1].Source)
	}
}

func TestBraveSearchCapsResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [
			{"title": "A", "url": "https://n.example.com/a"},
			{"title": "B", "url": "https://n.example.com/b"},
			{"title": "C", "url": "https://n.example.com/c"}
		]}`))
	}))
	defer server.Close()

	client := NewBraveClient("secret", server.Client())
	client.BaseURL = server.URL

	items, err := client.Search(context.Background(), "topic", 2, 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(items) != 2 || items[0].Title != "A" || items[1].Title != "B" {
		t.Fatalf("expected first two items in provider order, got %+v", items)
	}
}

func TestBraveSearchErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewBraveClient("secret", server.Client())
	client.BaseURL = server.URL

	if _, err := client.Search(context.Background(), "topic", 5, 0); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestBraveSearchRequiresKeyAndTopic(t *testing.T) {
	t.Parallel()

	if _, err := NewBraveClient("", nil).Search(context.Background(), "topic", 5, 0); err == nil {
		t.Fatal("expected error without api key")
	}
	if _, err := NewBraveClient("k", nil).Search(context.Background(), "", 5, 0); err == nil {
		t.Fatal("expected error on empty topic")
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  string
		want time.Duration
	}{
		{"5 minutes ago", 5 * time.Minute},
		{"2 hours ago", 2 * time.Hour},
		{"1 day ago", 24 * time.Hour},
	}
	for _, tc := range cases {
		got, ok := parseAge(tc.age, now)
		if !ok {
			t.Fatalf("parseAge(%q) failed", tc.age)
		}
		if now.Sub(got) != tc.want {
			t.Fatalf("parseAge(%q) = %v, want %v before now", tc.age, got, tc.want)
		}
	}

	if _, ok := parseAge("yesterday", now); ok {
		t.Fatal("unparseable age must report failure")
	}
}
