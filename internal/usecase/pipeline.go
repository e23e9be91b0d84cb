package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ContentForge/internal/dedup"
	"ContentForge/internal/discovery"
	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
	"ContentForge/internal/publish"
	"ContentForge/internal/quality"
	"ContentForge/internal/synth"
)

// maxNewsPerRun bounds how many discovered items feed one synthesis call.
const maxNewsPerRun = 5

// coverLanguages lists the languages that get a cover image request.
var coverLanguages = map[string]bool{"en": true, "hi": true}

// PipelineDeps wires all collaborators into the run orchestration.
type PipelineDeps struct {
	Discovery   *discovery.Service
	Synthesizer *synth.Synthesizer
	Detector    *dedup.Detector
	Publisher   *publish.Publisher
	Images      ports.ImageGenerator
	History     ports.HistoryStore
	Committer   ports.Committer
	Logger      *slog.Logger

	Topics       []string
	Languages    []string
	MinWordCount int
}

// Pipeline implements the daily content generation workflow: discovery, then
// per-language synthesis in the declared order, dedup before the quality
// gate, local publication, one brief, and finally one commit of the whole
// batch. A single language's failure never aborts the remaining languages.
type Pipeline struct {
	deps PipelineDeps
	now  func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Pipeline{deps: deps, now: time.Now}
}

// Run executes one full generation cycle.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.deps.Logger

	var news []domain.NewsItem
	if p.deps.Discovery != nil {
		news = p.deps.Discovery.Collect(ctx, p.deps.Topics)
	}
	if len(news) == 0 {
		log.Warn("no news discovered, articles will be generated without source context")
	} else {
		log.Info("news collected", "items", len(news))
	}
	if len(news) > maxNewsPerRun {
		news = news[:maxNewsPerRun]
	}

	var (
		entries []domain.RunEntry
		files   []string
	)

	for _, language := range p.deps.Languages {
		entry, path, ok := p.processLanguage(ctx, news, language)
		if !ok {
			continue
		}
		entries = append(entries, entry)
		files = append(files, path)
	}

	if len(entries) == 0 {
		log.Warn("no articles generated this run")
		return nil
	}

	if p.deps.Publisher != nil {
		briefPath, err := p.deps.Publisher.PublishBrief(entries)
		if err != nil {
			log.Error("publish brief failed", "error", err)
		} else {
			files = append(files, briefPath)
		}
	}

	if p.deps.Committer != nil {
		message := fmt.Sprintf("chore: daily content update %s", p.now().UTC().Format("2006-01-02"))
		if err := p.deps.Committer.Commit(ctx, files, message); err != nil {
			// Content stays on local disk; the next run can push it again.
			log.Error("remote commit failed", "error", err)
		}
	}

	log.Info("run complete", "articles", len(entries), "files", len(files))
	return nil
}

// processLanguage generates, gates, and publishes one language's article.
// The third return value is false when the article was skipped.
func (p *Pipeline) processLanguage(ctx context.Context, news []domain.NewsItem, language string) (domain.RunEntry, string, bool) {
	log := p.deps.Logger

	article, err := p.deps.Synthesizer.Generate(ctx, news, language)
	if err != nil {
		log.Error("generation failed", "language", language, "error", err)
		return domain.RunEntry{}, "", false
	}

	if p.deps.Detector != nil && p.deps.Detector.IsDuplicate(article) {
		log.Info("skipping duplicate article", "language", language, "title", article.Title)
		return domain.RunEntry{}, "", false
	}

	verdict := quality.Assess(article, p.deps.MinWordCount)

	if p.deps.Images != nil && coverLanguages[language] {
		cover, err := p.deps.Images.CoverImage(ctx, article.Title, article.Excerpt)
		if err != nil {
			log.Warn("cover image generation failed", "language", language, "error", err)
		} else {
			article.CoverImage = cover
		}
	}

	path, err := p.deps.Publisher.Publish(article, verdict)
	if err != nil {
		log.Error("publish failed", "language", language, "error", err)
		return domain.RunEntry{}, "", false
	}

	if p.deps.History != nil {
		rec := domain.PublishedRecord{
			Slug:      article.Slug,
			Title:     article.Title,
			Language:  article.Language,
			Category:  article.Category,
			WordCount: article.WordCount,
			Indexed:   verdict.ShouldIndex,
		}
		if err := p.deps.History.SavePublished(ctx, rec); err != nil {
			log.Warn("history save failed", "slug", article.Slug, "error", err)
		}
	}

	log.Info("generated article", "language", language, "title", article.Title,
		"words", article.WordCount, "indexed", verdict.ShouldIndex)
	return domain.RunEntry{Article: article, Verdict: verdict}, path, true
}
