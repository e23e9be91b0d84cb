package ports

import (
	"context"
	"time"

	"ContentForge/internal/domain"
)

// NewsSearcher pulls recent news for a topic from an upstream provider.
// Implementations normalize provider response shapes into domain.NewsItem
// and drop results older than the freshness bound when the provider reports
// a publish time. Items without one are kept.
type NewsSearcher interface {
	Name() string
	Search(ctx context.Context, topic string, maxResults int, freshness time.Duration) ([]domain.NewsItem, error)
}

// Completer invokes a text-generation provider with a composed prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageGenerator produces a cover image URL for an article, or "" when the
// capability is disabled.
type ImageGenerator interface {
	CoverImage(ctx context.Context, title, excerpt string) (string, error)
}

// HistoryStore records published articles for audit and reporting.
type HistoryStore interface {
	SavePublished(ctx context.Context, rec domain.PublishedRecord) error
}

// Committer pushes a batch of local files to a remote tree as one commit.
type Committer interface {
	Commit(ctx context.Context, paths []string, message string) error
}
