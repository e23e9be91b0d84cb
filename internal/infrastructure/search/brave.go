package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const braveNewsURL = "https://api.search.brave.com/res/v1/news/search"

var ageExpr = regexp.MustCompile(`(\d+)\s+(minute|hour|day)s?\s+ago`)

// BraveClient queries the Brave news search API.
type BraveClient struct {
	// BaseURL may be overridden for tests.
	BaseURL string

	apiKey string
	client *http.Client
	now    func() time.Time
}

var _ ports.NewsSearcher = (*BraveClient)(nil)

// NewBraveClient wires an HTTP client; a nil client gets a 30s timeout default.
func NewBraveClient(apiKey string, client *http.Client) *BraveClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &BraveClient{BaseURL: braveNewsURL, apiKey: apiKey, client: client, now: time.Now}
}

// Name identifies the provider inside the discovery chain.
func (b *BraveClient) Name() string {
	return "brave"
}

// Search fetches news for the topic and normalizes the Brave response shape.
func (b *BraveClient) Search(ctx context.Context, topic string, maxResults int, freshness time.Duration) ([]domain.NewsItem, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("brave: api key not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("brave: empty topic")
	}

	query := url.Values{}
	query.Set("q", topic)
	query.Set("count", strconv.Itoa(maxResults))
	query.Set("freshness", freshnessParam(freshness))
	query.Set("text_decorations", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave returned %s", resp.Status)
	}

	var payload braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := payload.Results
	if len(results) == 0 {
		results = payload.Web.Results
	}

	now := b.now().UTC()
	items := make([]domain.NewsItem, 0, len(results))
	for _, r := range results {
		items = append(items, domain.NewsItem{
			Title:       r.Title,
			URL:         r.URL,
			Snippet:     r.Description,
			Source:      r.sourceName(),
			PublishedAt: r.publishedAt(now),
		})
	}

	return capFresh(items, maxResults, freshness, now), nil
}

type braveResponse struct {
	Results []braveResult `json:"results"`
	Web     struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age"`
	PageAge     string `json:"page_age"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	MetaURL struct {
		Hostname string `json:"hostname"`
	} `json:"meta_url"`
}

func (r braveResult) sourceName() string {
	if r.Source.Name != "" {
		return r.Source.Name
	}
	if r.MetaURL.Hostname != "" {
		return r.MetaURL.Hostname
	}
	return "Unknown"
}

// publishedAt derives a publish time from either the relative age string
// ("2 hours ago") or the ISO page_age field. Zero when neither parses.
func (r braveResult) publishedAt(now time.Time) time.Time {
	if r.Age != "" {
		if t, ok := parseAge(r.Age, now); ok {
			return t
		}
	}
	if r.PageAge != "" {
		if t, err := time.Parse(time.RFC3339, r.PageAge); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseAge(age string, now time.Time) (time.Time, bool) {
	match := ageExpr.FindStringSubmatch(strings.ToLower(strings.TrimSpace(age)))
	if match == nil {
		return time.Time{}, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return time.Time{}, false
	}

	switch match[2] {
	case "minute":
		return now.Add(-time.Duration(value) * time.Minute), true
	case "hour":
		return now.Add(-time.Duration(value) * time.Hour), true
	case "day":
		return now.Add(-time.Duration(value) * 24 * time.Hour), true
	}
	return time.Time{}, false
}

// freshnessParam maps a duration onto Brave's coarse freshness buckets.
func freshnessParam(freshness time.Duration) string {
	switch {
	case freshness <= 0 || freshness <= 24*time.Hour:
		return "1d"
	case freshness <= 7*24*time.Hour:
		return "1w"
	default:
		return "1m"
	}
}
