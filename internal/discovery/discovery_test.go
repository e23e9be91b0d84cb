package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

type stubSearcher struct {
	name  string
	items []domain.NewsItem
	err   error
	calls int
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(_ context.Context, _ string, _ int, _ time.Duration) ([]domain.NewsItem, error) {
	s.calls++
	return s.items, s.err
}

func TestSearchFallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{name: "primary", err: errors.New("upstream down")}
	secondary := &stubSearcher{name: "secondary", items: []domain.NewsItem{{Title: "A", URL: "https://a.example.com"}}}

	s := New([]ports.NewsSearcher{primary, secondary}, 5, time.Hour, nil)
	items := s.Search(context.Background(), "topic")

	if len(items) != 1 || items[0].Title != "A" {
		t.Fatalf("expected secondary result, got %+v", items)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected both providers tried once, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestSearchFallsBackOnEmptyResults(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{name: "primary"}
	secondary := &stubSearcher{name: "secondary", items: []domain.NewsItem{{Title: "B", URL: "https://b.example.com"}}}

	s := New([]ports.NewsSearcher{primary, secondary}, 5, time.Hour, nil)
	items := s.Search(context.Background(), "topic")

	if len(items) != 1 || items[0].Title != "B" {
		t.Fatalf("expected secondary result, got %+v", items)
	}
}

func TestSearchPrimaryShortCircuits(t *testing.T) {
	t.Parallel()

	primary := &stubSearcher{name: "primary", items: []domain.NewsItem{{Title: "A", URL: "https://a.example.com"}}}
	secondary := &stubSearcher{name: "secondary"}

	s := New([]ports.NewsSearcher{primary, secondary}, 5, time.Hour, nil)
	s.Search(context.Background(), "topic")

	if secondary.calls != 0 {
		t.Fatal("secondary must not be queried when the primary yields results")
	}
}

func TestSearchAllProvidersExhausted(t *testing.T) {
	t.Parallel()

	s := New([]ports.NewsSearcher{
		&stubSearcher{name: "primary", err: errors.New("down")},
		&stubSearcher{name: "secondary"},
	}, 5, time.Hour, nil)

	if items := s.Search(context.Background(), "topic"); len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}

func TestCollectCapsTopics(t *testing.T) {
	t.Parallel()

	provider := &stubSearcher{name: "p", items: []domain.NewsItem{{Title: "A", URL: "https://a.example.com"}}}
	s := New([]ports.NewsSearcher{provider}, 5, time.Hour, nil)

	items := s.Collect(context.Background(), []string{"t1", "t2", "t3", "t4", "t5"})

	if provider.calls != 3 {
		t.Fatalf("expected only the first three topics queried, got %d calls", provider.calls)
	}
	if len(items) != 3 {
		t.Fatalf("expected concatenated results, got %d", len(items))
	}
}
