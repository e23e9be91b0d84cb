package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "CONTENTFORGE_CONFIG"
	braveAPIKeyEnv      = "BRAVE_SEARCH_API_KEY"
	newsAPIKeyEnv       = "NEWSAPI_API_KEY"
	generationKeyEnv    = "GENERATION_API_KEY"
	chutesKeyEnv        = "CHUTES_LLM_API_KEY"
	anthropicKeyEnv     = "ANTHROPIC_API_KEY"
	generationModelEnv  = "GENERATION_MODEL"
	githubTokenEnv      = "GITHUB_TOKEN"
	githubRepositoryEnv = "GITHUB_REPOSITORY"
	databaseDSNEnv      = "DATABASE_DSN"
	contentDirEnv       = "CONTENT_DIR"
	opsDirEnv           = "OPS_DIR"
	minWordCountEnv     = "MIN_WORD_COUNT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Search     SearchConfig     `yaml:"search"`
	Generation GenerationConfig `yaml:"generation"`
	GitHub     GitHubConfig     `yaml:"github"`
	Content    ContentConfig    `yaml:"content"`
	Quality    QualityConfig    `yaml:"quality"`
	Database   DatabaseConfig   `yaml:"database"`
	Topics     []string         `yaml:"topics"`
	Languages  []string         `yaml:"languages"`
}

// LoggingConfig controls the console handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig holds credentials for the news providers.
type SearchConfig struct {
	BraveAPIKey string `yaml:"braveApiKey"`
	NewsAPIKey  string `yaml:"newsApiKey"`
	MaxResults  int    `yaml:"maxResults"`
	FreshnessH  int    `yaml:"freshnessHours"`
}

// GenerationConfig defines how to contact the text-generation provider.
type GenerationConfig struct {
	Provider string `yaml:"provider"` // "openai" (Chutes-compatible) or "anthropic"
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// GitHubConfig wires the remote commit target.
type GitHubConfig struct {
	Token      string `yaml:"token"`
	Repository string `yaml:"repository"` // owner/name
	APIBaseURL string `yaml:"apiBaseUrl"`
}

// ContentConfig describes the on-disk content trees.
type ContentConfig struct {
	PostsDir string `yaml:"postsDir"`
	OpsDir   string `yaml:"opsDir"`
}

// QualityConfig holds the indexability thresholds.
type QualityConfig struct {
	MinWordCount int `yaml:"minWordCount"`
}

// DatabaseConfig describes the optional publish-history store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports missing required credentials. It runs before any network
// activity; a failure here is a fatal, immediate exit for the caller.
func (c Config) Validate() error {
	if c.Generation.APIKey == "" {
		return errors.New("generation api key is required (GENERATION_API_KEY or CHUTES_LLM_API_KEY)")
	}
	if len(c.Languages) == 0 {
		return errors.New("at least one target language is required")
	}
	if c.Content.PostsDir == "" || c.Content.OpsDir == "" {
		return errors.New("content and ops directories are required")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(braveAPIKeyEnv); v != "" {
		c.Search.BraveAPIKey = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Search.NewsAPIKey = v
	}
	if v := os.Getenv(generationKeyEnv); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv(chutesKeyEnv); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv(anthropicKeyEnv); v != "" && c.Generation.Provider == "anthropic" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv(generationModelEnv); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv(githubTokenEnv); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv(githubRepositoryEnv); v != "" {
		c.GitHub.Repository = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(contentDirEnv); v != "" {
		c.Content.PostsDir = v
	}
	if v := os.Getenv(opsDirEnv); v != "" {
		c.Content.OpsDir = v
	}
	if v := os.Getenv(minWordCountEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Quality.MinWordCount = n
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Search.BraveAPIKey != "" {
		base.Search.BraveAPIKey = override.Search.BraveAPIKey
	}
	if override.Search.NewsAPIKey != "" {
		base.Search.NewsAPIKey = override.Search.NewsAPIKey
	}
	if override.Search.MaxResults > 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.FreshnessH > 0 {
		base.Search.FreshnessH = override.Search.FreshnessH
	}

	if override.Generation.Provider != "" {
		base.Generation.Provider = override.Generation.Provider
	}
	if override.Generation.Endpoint != "" {
		base.Generation.Endpoint = override.Generation.Endpoint
	}
	if override.Generation.Model != "" {
		base.Generation.Model = override.Generation.Model
	}
	if override.Generation.APIKey != "" {
		base.Generation.APIKey = override.Generation.APIKey
	}

	if override.GitHub.Token != "" {
		base.GitHub.Token = override.GitHub.Token
	}
	if override.GitHub.Repository != "" {
		base.GitHub.Repository = override.GitHub.Repository
	}
	if override.GitHub.APIBaseURL != "" {
		base.GitHub.APIBaseURL = override.GitHub.APIBaseURL
	}

	if override.Content.PostsDir != "" {
		base.Content.PostsDir = override.Content.PostsDir
	}
	if override.Content.OpsDir != "" {
		base.Content.OpsDir = override.Content.OpsDir
	}

	if override.Quality.MinWordCount > 0 {
		base.Quality.MinWordCount = override.Quality.MinWordCount
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if len(override.Topics) > 0 {
		base.Topics = override.Topics
	}
	if len(override.Languages) > 0 {
		base.Languages = override.Languages
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			MaxResults: 5,
			FreshnessH: 24,
		},
		Generation: GenerationConfig{
			Provider: "openai",
			Endpoint: "https://llm.chutes.ai/v1",
			Model:    "deepseek-ai/DeepSeek-R1-Distill-Llama-70B",
		},
		GitHub: GitHubConfig{
			APIBaseURL: "https://api.github.com",
		},
		Content: ContentConfig{
			PostsDir: "src/content/posts",
			OpsDir:   "src/content/ops",
		},
		Quality: QualityConfig{MinWordCount: 300},
		Topics: []string{
			"India iGaming news",
			"Cricket betting updates",
			"Online casino regulation India",
			"IPL betting news",
			"Indian sports betting",
		},
		Languages: []string{"en", "hi", "zh"},
	}
}
