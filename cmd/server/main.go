package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhemmerl/lingopulse/internal/broadcast"
	"github.com/jhemmerl/lingopulse/internal/config"
	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/ingest"
	"github.com/jhemmerl/lingopulse/internal/lexicon"
	"github.com/jhemmerl/lingopulse/internal/particles"
	"github.com/jhemmerl/lingopulse/internal/platform/logging"
	"github.com/jhemmerl/lingopulse/internal/scanner"
	"github.com/jhemmerl/lingopulse/internal/server"
	"github.com/jhemmerl/lingopulse/internal/session"
	"github.com/jhemmerl/lingopulse/internal/translate"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupLexicon(cfg *config.Config) *lexicon.Lexicon {
	if cfg.LexiconPath == "" {
		return lexicon.Default()
	}

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		slog.Error("Failed to load lexicon overlay", "path", cfg.LexiconPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded lexicon overlay", "path", cfg.LexiconPath)
	return lex
}

func setupTranslator(cfg *config.Config) domain.Translator {
	var provider domain.Translator
	switch cfg.Translator {
	case config.TranslatorOpenAI:
		p, err := translate.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			slog.Error("Failed to create OpenAI translator", "error", err)
			os.Exit(1)
		}
		provider = p
	default:
		provider = translate.NewHTTPProvider(cfg.TranslateEndpoint)
	}

	return translate.WithRateLimit(translate.WithBreaker(provider), cfg.TranslateRPS, cfg.TranslateBurst)
}

func runGracefulShutdown(srv *server.Server, stopIngest context.CancelFunc, engine *session.Engine, dispatcher *translate.Dispatcher, pool *particles.Pool, hub *broadcast.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		stopIngest()
		engine.Stop()
		dispatcher.Stop()
		pool.Stop()
		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	lex := setupLexicon(cfg)
	translator := setupTranslator(cfg)

	hub := broadcast.NewHub(cfg.MaxOverlayClients)
	pool := particles.NewPool(clock, hub)
	dispatcher := translate.NewDispatcher(clock, translator, hub, cfg.LanguageList(), cfg.SourceLanguage)
	engine := session.NewEngine(scanner.New(lex), pool, dispatcher, hub, cfg.SourceLanguage)

	ingestCtx, stopIngest := context.WithCancel(context.Background())
	defer stopIngest()
	if cfg.RecognizerURL != "" {
		client := ingest.NewClient(cfg.RecognizerURL, engine)
		go client.Run(ingestCtx)
		slog.Info("Recognizer ingest enabled", "url", cfg.RecognizerURL)
	}

	srv, err := server.NewServer(cfg, engine, hub)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, stopIngest, engine, dispatcher, pool, hub)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
