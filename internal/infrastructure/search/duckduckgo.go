package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const duckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoClient scrapes the DuckDuckGo HTML results page. It needs no
// credentials, which makes it the fallback of last resort in the discovery
// chain. Results carry no publish time, so the freshness filter keeps them.
type DuckDuckGoClient struct {
	// BaseURL may be overridden for tests.
	BaseURL string

	client *http.Client
}

var _ ports.NewsSearcher = (*DuckDuckGoClient)(nil)

// NewDuckDuckGoClient wires an HTTP client; a nil client gets a 30s timeout default.
func NewDuckDuckGoClient(client *http.Client) *DuckDuckGoClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &DuckDuckGoClient{BaseURL: duckDuckGoURL, client: client}
}

// Name identifies the provider inside the discovery chain.
func (d *DuckDuckGoClient) Name() string {
	return "duckduckgo"
}

// Search posts the query form and extracts result links from the HTML page.
func (d *DuckDuckGoClient) Search(ctx context.Context, topic string, maxResults int, freshness time.Duration) ([]domain.NewsItem, error) {
	if topic == "" {
		return nil, fmt.Errorf("duckduckgo: empty topic")
	}

	form := url.Values{}
	form.Set("q", topic+" news")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	items := extractResults(doc)
	return capFresh(items, maxResults, freshness, time.Now().UTC()), nil
}

func extractResults(doc *goquery.Document) []domain.NewsItem {
	var items []domain.NewsItem

	doc.Find(".result").Each(func(i int, result *goquery.Selection) {
		link := result.Find("a.result__a").First()
		href, _ := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if href == "" || title == "" {
			return
		}

		snippet := strings.TrimSpace(result.Find(".result__snippet").First().Text())
		if snippet == "" {
			snippet = title
		}

		items = append(items, domain.NewsItem{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
			Source:  "DuckDuckGo",
		})
	})

	return items
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return href
}
