package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ContentForge/internal/domain"
	"ContentForge/internal/publish"
)

// Detector checks a candidate article against everything already stored in
// the content tree. The scan is linear and recomputes every stored document's
// fingerprint per call; fine for a small corpus, revisit if the tree grows
// past a few thousand documents.
type Detector struct {
	contentDir string
	logger     *slog.Logger
}

// New wires the corpus root.
func New(contentDir string, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{contentDir: contentDir, logger: logger}
}

// IsDuplicate reports whether any stored document's body fingerprints
// identically to the article's content. Unreadable files are skipped; the
// check is advisory and never fails the run.
func (d *Detector) IsDuplicate(article domain.Article) bool {
	candidate := Fingerprint(article.Content)

	duplicate := false
	walkErr := filepath.WalkDir(d.contentDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if duplicate || entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			d.logger.Warn("skipping unreadable document", "path", path, "error", readErr)
			return nil
		}

		if Fingerprint(publish.Body(string(raw))) == candidate {
			d.logger.Info("duplicate content detected", "path", path, "title", article.Title)
			duplicate = true
		}
		return nil
	})
	if walkErr != nil && !os.IsNotExist(walkErr) {
		d.logger.Warn("corpus scan incomplete", "error", walkErr)
	}

	return duplicate
}

// Fingerprint returns the hex digest identifying a document body. Surrounding
// whitespace is ignored so a rendered body and its source content compare
// equal.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])
}
