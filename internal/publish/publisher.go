package publish

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ContentForge/internal/domain"
)

const (
	frontmatterSentinel = "---"
	sourcesHeading      = "## Sources"
	quarantineDir       = "low-quality"
	briefDir            = "daily"
	documentName        = "index.md"
	briefExcerptLen     = 200
)

// frontmatter is the machine-readable metadata block written ahead of every
// article body. Field order is fixed by the struct.
type frontmatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Excerpt     string    `yaml:"excerpt"`
	Date        time.Time `yaml:"date"`
	Language    string    `yaml:"language"`
	Category    string    `yaml:"category"`
	SEO         seoBlock  `yaml:"seo"`
	Sources     []string  `yaml:"sources"`
	CoverImage  string    `yaml:"cover_image,omitempty"`
	ShouldIndex bool      `yaml:"should_index"`
	QualityNote string    `yaml:"quality_note"`
}

type seoBlock struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Publisher renders articles into the on-disk content trees. Indexable
// articles land under the primary tree, everything else under the quarantine
// subtree, so indexability is visible in the directory structure itself.
type Publisher struct {
	contentDir string
	opsDir     string
	logger     *slog.Logger
	now        func() time.Time
}

// New wires the two destination trees.
func New(contentDir, opsDir string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{contentDir: contentDir, opsDir: opsDir, logger: logger, now: time.Now}
}

// Publish writes the article document keyed by slug and returns its path.
// Writing the same slug twice overwrites in place.
func (p *Publisher) Publish(article domain.Article, verdict domain.Verdict) (string, error) {
	dir := filepath.Join(p.contentDir, article.Slug)
	if !verdict.ShouldIndex {
		dir = filepath.Join(p.opsDir, quarantineDir, article.Slug)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create article dir: %w", err)
	}

	doc, err := renderDocument(article, verdict)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	path := filepath.Join(dir, documentName)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	p.logger.Info("published article", "path", path, "indexed", verdict.ShouldIndex)
	return path, nil
}

// PublishBrief writes the daily operations summary, one file per calendar
// day. Re-running on the same day overwrites that day's brief.
func (p *Publisher) PublishBrief(entries []domain.RunEntry) (string, error) {
	day := p.now().UTC().Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Content Brief - %s\n\n## Generated Articles\n\n", day)

	for _, entry := range entries {
		status := "No Index"
		if entry.Verdict.ShouldIndex {
			status = "Indexed"
		}

		fmt.Fprintf(&b, "### %s\n\n", entry.Article.Title)
		fmt.Fprintf(&b, "- **Language**: %s\n", entry.Article.Language)
		fmt.Fprintf(&b, "- **Category**: %s\n", entry.Article.Category)
		fmt.Fprintf(&b, "- **Word Count**: %d\n", entry.Article.WordCount)
		fmt.Fprintf(&b, "- **Slug**: `%s`\n", entry.Article.Slug)
		fmt.Fprintf(&b, "- **Status**: %s\n\n", status)
		fmt.Fprintf(&b, "**Excerpt**: %s\n\n", previewExcerpt(entry.Article.Excerpt))
	}

	dir := filepath.Join(p.opsDir, briefDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create brief dir: %w", err)
	}

	path := filepath.Join(dir, day+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write brief: %w", err)
	}

	p.logger.Info("published daily brief", "path", path, "articles", len(entries))
	return path, nil
}

func renderDocument(article domain.Article, verdict domain.Verdict) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:    article.Title,
		Slug:     article.Slug,
		Excerpt:  article.Excerpt,
		Date:     article.CreatedAt,
		Language: article.Language,
		Category: article.Category,
		SEO: seoBlock{
			Title:       article.SEOTitle,
			Description: article.SEODescription,
		},
		Sources:     article.Sources,
		CoverImage:  article.CoverImage,
		ShouldIndex: verdict.ShouldIndex,
		QualityNote: verdict.Reason,
	})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterSentinel + "\n")
	b.Write(meta)
	b.WriteString(frontmatterSentinel + "\n\n")
	b.WriteString(strings.TrimSpace(article.Content))
	b.WriteString("\n")

	if len(article.Sources) > 0 {
		b.WriteString("\n" + sourcesHeading + "\n\n")
		for _, src := range article.Sources {
			fmt.Fprintf(&b, "- [%s](%s)\n", src, src)
		}
	}

	return b.String(), nil
}

// Body extracts the article body from a rendered document, stripping the
// frontmatter block and the trailing sources list. It is the canonical input
// for content fingerprinting.
func Body(document string) string {
	body := document

	if rest, ok := strings.CutPrefix(body, frontmatterSentinel+"\n"); ok {
		if idx := strings.Index(rest, "\n"+frontmatterSentinel+"\n"); idx >= 0 {
			body = rest[idx+len(frontmatterSentinel)+2:]
		}
	}

	if idx := strings.LastIndex(body, "\n"+sourcesHeading+"\n"); idx >= 0 {
		body = body[:idx]
	}

	return strings.TrimSpace(body)
}

func previewExcerpt(excerpt string) string {
	runes := []rune(excerpt)
	if len(runes) <= briefExcerptLen {
		return excerpt
	}
	return string(runes[:briefExcerptLen]) + "..."
}
