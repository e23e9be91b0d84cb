package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ContentForge/internal/dedup"
	"ContentForge/internal/discovery"
	"ContentForge/internal/domain"
	"ContentForge/internal/ports"
	"ContentForge/internal/publish"
	"ContentForge/internal/synth"
)

type stubSearcher struct {
	items []domain.NewsItem
}

func (s *stubSearcher) Name() string { return "stub" }

func (s *stubSearcher) Search(_ context.Context, _ string, _ int, _ time.Duration) ([]domain.NewsItem, error) {
	return s.items, nil
}

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return s.response, s.err
}

type recordingCommitter struct {
	batches  [][]string
	messages []string
}

func (r *recordingCommitter) Commit(_ context.Context, paths []string, message string) error {
	batch := make([]string, len(paths))
	copy(batch, paths)
	r.batches = append(r.batches, batch)
	r.messages = append(r.messages, message)
	return nil
}

type recordingHistory struct {
	records []domain.PublishedRecord
}

func (r *recordingHistory) SavePublished(_ context.Context, rec domain.PublishedRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func newsFixture() []domain.NewsItem {
	return []domain.NewsItem{
		{Title: "IPL update", URL: "https://news.example.com/ipl", Snippet: "s1", Source: "Wire"},
		{Title: "Regulation news", URL: "https://news.example.com/reg", Snippet: "s2", Source: "Wire"},
	}
}

func structuredResponse(t *testing.T, words int) string {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"title":           "Weekly Betting Roundup",
		"excerpt":         "Everything that happened this week.",
		"content":         strings.TrimSpace(strings.Repeat("betting news update ", words/3)),
		"seo_title":       "Betting Roundup",
		"seo_description": "Weekly roundup of betting news.",
		"category":        "Cricket",
		"sources":         []string{"https://news.example.com/ipl", "https://news.example.com/reg"},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return "Here is the article:\n" + string(payload)
}

func newTestPipeline(t *testing.T, completer ports.Completer, contentDir, opsDir string, committer ports.Committer, history ports.HistoryStore) *Pipeline {
	t.Helper()

	disc := discovery.New([]ports.NewsSearcher{&stubSearcher{items: newsFixture()}}, 5, 24*time.Hour, nil)

	return NewPipeline(PipelineDeps{
		Discovery:    disc,
		Synthesizer:  synth.New(completer, nil),
		Detector:     dedup.New(contentDir, nil),
		Publisher:    publish.New(contentDir, opsDir, nil),
		Committer:    committer,
		History:      history,
		Topics:       []string{"cricket"},
		Languages:    []string{"en"},
		MinWordCount: 300,
	})
}

func TestRunPublishesIndexableArticle(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	opsDir := t.TempDir()
	committer := &recordingCommitter{}
	history := &recordingHistory{}

	p := newTestPipeline(t, &stubCompleter{response: structuredResponse(t, 360)}, contentDir, opsDir, committer, history)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(contentDir, "*", "index.md"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected exactly one document under the primary tree, got %v (%v)", matches, err)
	}

	raw, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	doc := string(raw)
	if !strings.Contains(doc, "should_index: true") {
		t.Fatal("document must be marked indexable")
	}
	if !strings.Contains(doc, "https://news.example.com/ipl") || !strings.Contains(doc, "https://news.example.com/reg") {
		t.Fatal("both news URLs must appear as sources")
	}

	briefs, err := filepath.Glob(filepath.Join(opsDir, "daily", "*.md"))
	if err != nil || len(briefs) != 1 {
		t.Fatalf("expected one daily brief, got %v", briefs)
	}
	brief, err := os.ReadFile(briefs[0])
	if err != nil {
		t.Fatalf("read brief: %v", err)
	}
	if strings.Count(string(brief), "### Weekly Betting Roundup") != 1 {
		t.Fatal("brief must list the article exactly once")
	}

	if len(committer.batches) != 1 {
		t.Fatalf("expected one commit, got %d", len(committer.batches))
	}
	if len(committer.batches[0]) != 2 {
		t.Fatalf("commit batch must hold the article and the brief, got %v", committer.batches[0])
	}
	if !strings.HasPrefix(committer.messages[0], "chore: daily content update ") {
		t.Fatalf("unexpected commit message: %s", committer.messages[0])
	}

	if len(history.records) != 1 || !history.records[0].Indexed {
		t.Fatalf("history must record the published article, got %+v", history.records)
	}
}

func TestRunQuarantinesShortArticle(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	opsDir := t.TempDir()

	p := newTestPipeline(t, &stubCompleter{response: structuredResponse(t, 30)}, contentDir, opsDir, nil, nil)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	primary, _ := filepath.Glob(filepath.Join(contentDir, "*", "index.md"))
	if len(primary) != 0 {
		t.Fatalf("short article must never reach the primary tree: %v", primary)
	}

	quarantined, _ := filepath.Glob(filepath.Join(opsDir, "low-quality", "*", "index.md"))
	if len(quarantined) != 1 {
		t.Fatalf("expected one quarantined document, got %v", quarantined)
	}
}

func TestRunSkipsDuplicateOnSecondRun(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	opsDir := t.TempDir()
	committer := &recordingCommitter{}
	completer := &stubCompleter{response: structuredResponse(t, 360)}

	first := newTestPipeline(t, completer, contentDir, opsDir, committer, nil)
	if err := first.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	second := newTestPipeline(t, completer, contentDir, opsDir, committer, nil)
	if err := second.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(contentDir, "*", "index.md"))
	if len(matches) != 1 {
		t.Fatalf("duplicate content must not be republished, got %v", matches)
	}
	if len(committer.batches) != 1 {
		t.Fatalf("a run with only duplicates commits nothing, got %d commits", len(committer.batches))
	}
}

func TestRunContinuesAfterGenerationFailure(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	opsDir := t.TempDir()

	disc := discovery.New([]ports.NewsSearcher{&stubSearcher{items: newsFixture()}}, 5, 24*time.Hour, nil)
	p := NewPipeline(PipelineDeps{
		Discovery:    disc,
		Synthesizer:  synth.New(&countingCompleter{failFirst: true, response: structuredResponse(t, 360)}, nil),
		Detector:     dedup.New(contentDir, nil),
		Publisher:    publish.New(contentDir, opsDir, nil),
		Topics:       []string{"cricket"},
		Languages:    []string{"en", "hi"},
		MinWordCount: 300,
	})

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(contentDir, "*", "index.md"))
	if len(matches) != 1 {
		t.Fatalf("second language must survive the first one's failure, got %v", matches)
	}
}

func TestRunWithoutArticlesWritesNoBrief(t *testing.T) {
	t.Parallel()

	contentDir := t.TempDir()
	opsDir := t.TempDir()
	committer := &recordingCommitter{}

	p := newTestPipeline(t, &stubCompleter{err: errTest}, contentDir, opsDir, committer, nil)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	briefs, _ := filepath.Glob(filepath.Join(opsDir, "daily", "*.md"))
	if len(briefs) != 0 {
		t.Fatalf("no brief expected for an empty run, got %v", briefs)
	}
	if len(committer.batches) != 0 {
		t.Fatal("no commit expected for an empty run")
	}
}

var errTest = os.ErrDeadlineExceeded

// countingCompleter fails its first call and succeeds afterwards.
type countingCompleter struct {
	failFirst bool
	response  string
	calls     int
}

func (c *countingCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	c.calls++
	if c.failFirst && c.calls == 1 {
		return "", errTest
	}
	return c.response, nil
}
