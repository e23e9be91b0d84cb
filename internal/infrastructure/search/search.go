package search

import (
	"time"

	"ContentForge/internal/domain"
)

// capFresh applies the shared recency filter and result cap. Items without a
// publish time are never dropped; absence of evidence is not staleness.
// Provider order is preserved.
func capFresh(items []domain.NewsItem, maxResults int, freshness time.Duration, now time.Time) []domain.NewsItem {
	kept := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if !item.PublishedAt.IsZero() && freshness > 0 && now.Sub(item.PublishedAt) > freshness {
			continue
		}
		kept = append(kept, item)
		if maxResults > 0 && len(kept) == maxResults {
			break
		}
	}
	return kept
}
