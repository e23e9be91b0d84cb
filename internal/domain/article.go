package domain

import "time"

// NewsItem is a normalized search result from any news provider.
// Providers use different field names; adapters map them onto this shape
// at the boundary.
type NewsItem struct {
	Title       string
	URL         string
	Snippet     string
	Source      string
	PublishedAt time.Time // zero when the provider reports no publish time
}

// Article is the generated content unit produced by the synthesizer.
type Article struct {
	Title          string
	Excerpt        string
	Content        string
	SEOTitle       string
	SEODescription string
	Category       string
	Sources        []string
	Slug           string
	Language       string
	CreatedAt      time.Time
	WordCount      int
	CoverImage     string

	// FromStructured reports whether the provider returned a parseable
	// payload or the article was rebuilt from raw prose.
	FromStructured bool
}

// Verdict is the quality assessment attached to an article at publish time.
// It is recomputed on every publish and is not part of article identity.
type Verdict struct {
	ShouldIndex bool
	Reason      string
}

// RunEntry pairs an article with the verdict attached at publish time.
// The daily brief is rendered from the run's entries.
type RunEntry struct {
	Article Article
	Verdict Verdict
}

// PublishedRecord is the audit row persisted per published article.
type PublishedRecord struct {
	Slug      string
	Title     string
	Language  string
	Category  string
	WordCount int
	Indexed   bool
}
