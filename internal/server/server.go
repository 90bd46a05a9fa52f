package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jhemmerl/lingopulse/internal/config"
	"github.com/jhemmerl/lingopulse/internal/domain"
	apperrors "github.com/jhemmerl/lingopulse/internal/errors"
	"github.com/jhemmerl/lingopulse/internal/session"
)

// sessionService is the slice of the session engine the HTTP layer needs.
type sessionService interface {
	HandleSpeech(res domain.SpeechResult)
	SetLanguage(source string)
	Reset()
	Snapshot() session.Snapshot
}

// overlayHub is the slice of the broadcast hub the HTTP layer needs.
type overlayHub interface {
	Register(conn *websocket.Conn) error
	Unregister(conn *websocket.Conn)
	ClientCount() int
}

type Server struct {
	echo            *echo.Echo
	config          *config.Config
	engine          sessionService
	hub             overlayHub
	overlayTemplate *template.Template
	startTime       time.Time
}

func NewServer(cfg *config.Config, engine sessionService, hub overlayHub) (*Server, error) {
	// Parse templates once at startup
	overlayTmpl, err := template.ParseFiles("web/templates/overlay.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:            e,
		config:          cfg,
		engine:          engine,
		hub:             hub,
		overlayTemplate: overlayTmpl,
		startTime:       time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
