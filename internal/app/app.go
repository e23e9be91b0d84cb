package app

import (
	"context"
	"log/slog"
	"time"

	"ContentForge/internal/config"
	"ContentForge/internal/dedup"
	"ContentForge/internal/discovery"
	"ContentForge/internal/infrastructure/gitremote"
	"ContentForge/internal/infrastructure/images"
	"ContentForge/internal/infrastructure/search"
	"ContentForge/internal/infrastructure/storage"
	"ContentForge/internal/infrastructure/textgen"
	"ContentForge/internal/logging"
	"ContentForge/internal/ports"
	"ContentForge/internal/publish"
	"ContentForge/internal/synth"
	"ContentForge/internal/usecase"
)

// Application wires configuration into the run pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	history  *storage.PostgresHistory
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	providers := newsProviders(cfg, baseLogger)
	disc := discovery.New(
		providers,
		cfg.Search.MaxResults,
		time.Duration(cfg.Search.FreshnessH)*time.Hour,
		baseLogger.With("component", "discovery"),
	)

	synthesizer := synth.New(completer(cfg), baseLogger.With("component", "synthesizer"))
	detector := dedup.New(cfg.Content.PostsDir, baseLogger.With("component", "dedup"))
	publisher := publish.New(cfg.Content.PostsDir, cfg.Content.OpsDir, baseLogger.With("component", "publisher"))
	imageStub := images.NewDisabledGenerator(baseLogger.With("component", "images"))

	var committer ports.Committer
	if cfg.GitHub.Token != "" && cfg.GitHub.Repository != "" {
		committer = gitremote.New(
			cfg.GitHub.APIBaseURL,
			cfg.GitHub.Token,
			cfg.GitHub.Repository,
			"",
			nil,
			baseLogger.With("component", "committer"),
		)
	}

	var (
		history      *storage.PostgresHistory
		historyStore ports.HistoryStore
	)
	if cfg.Database.DSN != "" {
		h, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("history store unavailable, continuing without it", "error", err)
		} else {
			history = h
			historyStore = h
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Discovery:    disc,
		Synthesizer:  synthesizer,
		Detector:     detector,
		Publisher:    publisher,
		Images:       imageStub,
		History:      historyStore,
		Committer:    committer,
		Logger:       baseLogger.With("component", "pipeline"),
		Topics:       cfg.Topics,
		Languages:    cfg.Languages,
		MinWordCount: cfg.Quality.MinWordCount,
	})

	return &Application{cfg: cfg, pipeline: pipeline, history: history, logger: baseLogger}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	return a.pipeline.Run(ctx)
}

// Close releases held resources.
func (a *Application) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("closing history store", "error", err)
		}
	}
}

func newsProviders(cfg config.Config, logger *slog.Logger) []ports.NewsSearcher {
	var providers []ports.NewsSearcher
	if cfg.Search.BraveAPIKey != "" {
		providers = append(providers, search.NewBraveClient(cfg.Search.BraveAPIKey, nil))
	}
	if cfg.Search.NewsAPIKey != "" {
		providers = append(providers, search.NewNewsAPIClient(cfg.Search.NewsAPIKey, nil))
	}
	// keyless fallback of last resort
	providers = append(providers, search.NewDuckDuckGoClient(nil))

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info("news provider chain ready", "providers", names)
	return providers
}

func completer(cfg config.Config) ports.Completer {
	if cfg.Generation.Provider == "anthropic" {
		return textgen.NewAnthropicClient(cfg.Generation.APIKey, cfg.Generation.Model)
	}
	return textgen.NewOpenAIClient(cfg.Generation.APIKey, cfg.Generation.Endpoint, cfg.Generation.Model)
}
