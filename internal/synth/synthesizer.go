package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
)

const (
	maxContextItems = 5
	excerptLen      = 150
	seoTitleLen     = 60
	seoDescLen      = 160
	maxSlugLen      = 80

	defaultCategory = "iGaming"
)

var (
	payloadExpr = regexp.MustCompile(`(?s)\{.*\}`)
	nonWordExpr = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	hyphenExpr  = regexp.MustCompile(`[-\s]+`)
)

// structuredPayload mirrors the JSON object the generation provider is asked
// to emit. Every field is optional; missing ones are derived.
type structuredPayload struct {
	Title          string   `json:"title"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	Category       string   `json:"category"`
	Sources        []string `json:"sources"`
}

// Synthesizer turns news items into a structured article via a text-generation
// capability. A provider call failure propagates; a parse failure never does.
type Synthesizer struct {
	completer ports.Completer
	logger    *slog.Logger
	now       func() time.Time
}

// New wires the generation capability into the synthesizer.
func New(completer ports.Completer, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{completer: completer, logger: logger, now: time.Now}
}

// Generate composes the language-specific prompt pair with up to five news
// items, invokes the provider, and normalizes the response into an article.
func (s *Synthesizer) Generate(ctx context.Context, items []domain.NewsItem, language string) (domain.Article, error) {
	if s.completer == nil {
		return domain.Article{}, fmt.Errorf("synthesizer: no completer configured")
	}

	prompts := promptsFor(language)
	userPrompt := prompts.User
	if block := newsContext(items); block != "" {
		userPrompt = fmt.Sprintf("%s\n\nNews Sources:\n%s", prompts.User, block)
	}

	raw, err := s.completer.Complete(ctx, prompts.System, userPrompt)
	if err != nil {
		return domain.Article{}, fmt.Errorf("generate %s article: %w", language, err)
	}

	return s.buildArticle(raw, items, language), nil
}

// buildArticle parses the raw response and applies the language-independent
// post-processing (slug, sources union, word count) on both parse paths.
func (s *Synthesizer) buildArticle(raw string, items []domain.NewsItem, language string) domain.Article {
	now := s.now().UTC()

	payload, parsed := extractPayload(raw)
	if !parsed {
		s.logger.Info("no structured payload in response, deriving from raw text", "language", language)
		payload = payloadFromRaw(raw, now)
	}

	if strings.TrimSpace(payload.Content) == "" {
		payload.Content = raw
	}
	if strings.TrimSpace(payload.Title) == "" {
		payload.Title = deriveTitle(payload.Content, now)
	}
	if payload.Excerpt == "" {
		payload.Excerpt = truncate(payload.Content, excerptLen)
	}
	if payload.SEOTitle == "" {
		payload.SEOTitle = truncate(payload.Title, seoTitleLen)
	}
	if payload.SEODescription == "" {
		payload.SEODescription = truncate(payload.Content, seoDescLen)
	}
	if payload.Category == "" {
		payload.Category = defaultCategory
	}

	return domain.Article{
		Title:          payload.Title,
		Excerpt:        payload.Excerpt,
		Content:        payload.Content,
		SEOTitle:       payload.SEOTitle,
		SEODescription: payload.SEODescription,
		Category:       payload.Category,
		Sources:        unionSources(payload.Sources, items),
		Slug:           Slug(payload.Title, now),
		Language:       language,
		CreatedAt:      now,
		WordCount:      len(strings.Fields(payload.Content)),
		FromStructured: parsed,
	}
}

// extractPayload finds the first embedded JSON object in the raw response.
// The second return value distinguishes structured output from prose.
func extractPayload(raw string) (structuredPayload, bool) {
	match := payloadExpr.FindString(raw)
	if match == "" {
		return structuredPayload{}, false
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return structuredPayload{}, false
	}
	return payload, true
}

// payloadFromRaw rebuilds a minimal payload when the provider returned prose.
func payloadFromRaw(raw string, now time.Time) structuredPayload {
	return structuredPayload{
		Title:   deriveTitle(raw, now),
		Content: raw,
	}
}

func deriveTitle(text string, now time.Time) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return "Daily briefing " + now.Format("2006-01-02 15:04")
}

// unionSources merges provider-declared sources with the URLs of every input
// news item, preserving first-seen order.
func unionSources(declared []string, items []domain.NewsItem) []string {
	seen := make(map[string]struct{})
	union := make([]string, 0, len(declared)+len(items))

	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		union = append(union, src)
	}

	for _, src := range declared {
		add(src)
	}
	for _, item := range items {
		add(item.URL)
	}
	return union
}

// Slug derives the date-prefixed, URL-safe identifier from a title.
func Slug(title string, now time.Time) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWordExpr.ReplaceAllString(s, "")
	s = hyphenExpr.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if runes := []rune(s); len(runes) > maxSlugLen {
		s = strings.Trim(string(runes[:maxSlugLen]), "-")
	}
	if s == "" {
		s = "article"
	}

	return now.Format("2006-01-02") + "-" + s
}

func newsContext(items []domain.NewsItem) string {
	if len(items) > maxContextItems {
		items = items[:maxContextItems]
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s\n  Source: %s\n  URL: %s",
			item.Title, item.Snippet, item.Source, item.URL))
	}
	return strings.Join(lines, "\n\n")
}

func truncate(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
