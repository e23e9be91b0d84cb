package discovery

import (
	"context"
	"log/slog"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

// maxTopics bounds how many configured topics one run queries.
const maxTopics = 3

// Service chains news providers: each topic is tried against the providers in
// order until one yields results. Provider errors degrade to an empty result
// and never abort the run; the caller decides what an empty run means.
type Service struct {
	providers  []ports.NewsSearcher
	maxResults int
	freshness  time.Duration
	logger     *slog.Logger
}

// New wires the provider chain in fallback order.
func New(providers []ports.NewsSearcher, maxResults int, freshness time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{providers: providers, maxResults: maxResults, freshness: freshness, logger: logger}
}

// Search resolves one topic through the provider chain.
func (s *Service) Search(ctx context.Context, topic string) []domain.NewsItem {
	for _, provider := range s.providers {
		items, err := provider.Search(ctx, topic, s.maxResults, s.freshness)
		if err != nil {
			s.logger.Warn("news provider failed", "provider", provider.Name(), "topic", topic, "error", err)
			continue
		}
		if len(items) == 0 {
			s.logger.Info("news provider returned nothing", "provider", provider.Name(), "topic", topic)
			continue
		}

		s.logger.Info("news collected", "provider", provider.Name(), "topic", topic, "items", len(items))
		return items
	}
	return nil
}

// Collect gathers news across the configured topics (first three), keeping
// provider order within each topic.
func (s *Service) Collect(ctx context.Context, topics []string) []domain.NewsItem {
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}

	var all []domain.NewsItem
	for _, topic := range topics {
		all = append(all, s.Search(ctx, topic)...)
	}
	return all
}
