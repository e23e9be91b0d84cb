package dedup

import (
	"testing"
	"time"

	"ContentForge/internal/domain"
	"ContentForge/internal/publish"
)

func storedArticle(content string) domain.Article {
	return domain.Article{
		Title:     "Stored Article",
		Excerpt:   "excerpt",
		Content:   content,
		Category:  "Cricket",
		Sources:   []string{"https://news.example.com/a"},
		Slug:      "2026-08-31-stored-article",
		Language:  "en",
		CreatedAt: time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC),
		WordCount: 4,
	}
}

func TestFingerprintStability(t *testing.T) {
	t.Parallel()

	if Fingerprint("identical content") != Fingerprint("identical content") {
		t.Fatal("identical content must fingerprint identically")
	}
	if Fingerprint("identical content") == Fingerprint("identical content!") {
		t.Fatal("distinct content must not collide")
	}
	if Fingerprint("  padded  ") != Fingerprint("padded") {
		t.Fatal("surrounding whitespace must not affect the fingerprint")
	}
}

func TestIsDuplicateAgainstPublishedCorpus(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	p := publish.New(contentDir, t.TempDir(), nil)

	stored := storedArticle("<p>The exact same body.</p>")
	if _, err := p.Publish(stored, domain.Verdict{ShouldIndex: true, Reason: "ok"}); err != nil {
		t.Fatalf("publish fixture: %v", err)
	}

	d := New(contentDir, nil)

	candidate := stored
	candidate.Slug = "2026-08-31-other-slug"
	if !d.IsDuplicate(candidate) {
		t.Fatal("byte-identical content must be detected as duplicate")
	}

	candidate.Content = "<p>The exact same body!</p>"
	if d.IsDuplicate(candidate) {
		t.Fatal("a single-character difference must not collide")
	}
}

func TestIsDuplicateEmptyCorpus(t *testing.T) {
	t.Parallel()

	d := New(t.TempDir(), nil)
	if d.IsDuplicate(storedArticle("anything")) {
		t.Fatal("empty corpus can contain no duplicates")
	}
}

func TestIsDuplicateMissingCorpusDir(t *testing.T) {
	t.Parallel()

	d := New("/nonexistent/corpus/dir", nil)
	if d.IsDuplicate(storedArticle("anything")) {
		t.Fatal("missing corpus dir must behave like an empty corpus")
	}
}
