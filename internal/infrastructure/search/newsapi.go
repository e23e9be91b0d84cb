package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIClient queries newsapi.org as an alternative news provider.
type NewsAPIClient struct {
	// BaseURL may be overridden for tests.
	BaseURL string

	apiKey string
	client *http.Client
	now    func() time.Time
}

var _ ports.NewsSearcher = (*NewsAPIClient)(nil)

// NewNewsAPIClient wires an HTTP client; a nil client gets a 30s timeout default.
func NewNewsAPIClient(apiKey string, client *http.Client) *NewsAPIClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &NewsAPIClient{BaseURL: newsAPIBaseURL, apiKey: apiKey, client: client, now: time.Now}
}

// Name identifies the provider inside the discovery chain.
func (n *NewsAPIClient) Name() string {
	return "newsapi"
}

// Search fetches recent articles for the topic from the /everything endpoint.
func (n *NewsAPIClient) Search(ctx context.Context, topic string, maxResults int, freshness time.Duration) ([]domain.NewsItem, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi: api key not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("newsapi: empty topic")
	}

	query := url.Values{}
	query.Set("q", topic)
	query.Set("language", "en")
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", strconv.Itoa(maxResults))
	query.Set("apiKey", n.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/everything?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		var publishedAt time.Time
		if a.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				publishedAt = t
			}
		}

		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}

		items = append(items, domain.NewsItem{
			Title:       a.Title,
			URL:         a.URL,
			Snippet:     a.Description,
			Source:      source,
			PublishedAt: publishedAt,
		})
	}

	return capFresh(items, maxResults, freshness, n.now().UTC()), nil
}
