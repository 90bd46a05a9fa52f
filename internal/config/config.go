// Package config loads and validates the application configuration from
// environment variables (with optional .env file support).
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	TranslatorHTTP   = "http"
	TranslatorOpenAI = "openai"
)

type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"8080"`

	// Languages is the comma-separated set the session translates between.
	Languages      string `env:"LANGUAGES" default:"de,en,fr,es"`
	SourceLanguage string `env:"SOURCE_LANGUAGE" default:"de"`

	Translator        string  `env:"TRANSLATOR" default:"http"`
	TranslateEndpoint string  `env:"TRANSLATE_ENDPOINT" default:"https://libretranslate.com/translate"`
	TranslateRPS      float64 `env:"TRANSLATE_RPS" default:"5"`
	TranslateBurst    int     `env:"TRANSLATE_BURST" default:"8"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// RecognizerURL is the websocket endpoint of the speech recognizer
	// bridge. Empty disables ingest; speech can still be fed over the API.
	RecognizerURL string `env:"RECOGNIZER_URL"`

	// LexiconPath points to an optional TOML overlay for the built-in
	// dictionaries.
	LexiconPath string `env:"LEXICON_PATH"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	MaxOverlayClients int `env:"MAX_OVERLAY_CLIENTS" default:"50"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LanguageList returns the configured languages as a slice.
func (c *Config) LanguageList() []string {
	parts := strings.Split(c.Languages, ",")
	languages := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}

func validate(cfg *Config) error {
	languages := cfg.LanguageList()
	if len(languages) < 2 {
		return fmt.Errorf("LANGUAGES must list at least two languages, got %q", cfg.Languages)
	}

	found := false
	for _, lang := range languages {
		if lang == cfg.SourceLanguage {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("SOURCE_LANGUAGE %q must be one of LANGUAGES %q", cfg.SourceLanguage, cfg.Languages)
	}

	switch cfg.Translator {
	case TranslatorHTTP:
		if cfg.TranslateEndpoint == "" {
			return fmt.Errorf("TRANSLATE_ENDPOINT is required for the http translator")
		}
	case TranslatorOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai translator")
		}
	default:
		return fmt.Errorf("TRANSLATOR must be %q or %q, got %q", TranslatorHTTP, TranslatorOpenAI, cfg.Translator)
	}

	if cfg.TranslateRPS <= 0 {
		return fmt.Errorf("TRANSLATE_RPS must be positive")
	}
	if cfg.MaxOverlayClients <= 0 {
		return fmt.Errorf("MAX_OVERLAY_CLIENTS must be positive")
	}

	return nil
}
