package images

import (
	"context"
	"log/slog"

	"ContentForge/internal/ports"
)

// DisabledGenerator is the cover-image capability placeholder. No image
// backend is wired yet; it always reports the capability as off.
type DisabledGenerator struct {
	logger *slog.Logger
}

var _ ports.ImageGenerator = (*DisabledGenerator)(nil)

// NewDisabledGenerator returns the pass-through stub.
func NewDisabledGenerator(logger *slog.Logger) *DisabledGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisabledGenerator{logger: logger}
}

// CoverImage always returns an empty URL.
func (g *DisabledGenerator) CoverImage(ctx context.Context, title, excerpt string) (string, error) {
	g.logger.Info("image generation disabled", "title", title)
	return "", nil
}
