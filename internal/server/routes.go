package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Root - redirect to overlay
	s.echo.GET("/", func(c echo.Context) error {
		return c.Redirect(302, "/overlay")
	})

	// Caption API (speech results in, session control)
	s.echo.POST("/api/speech", s.handleSpeech)
	s.echo.POST("/api/language", s.handleSetLanguage)
	s.echo.POST("/api/reset", s.handleReset)
	s.echo.GET("/api/state", s.handleState)

	// Public routes (overlay and WebSocket)
	s.echo.GET("/overlay", s.handleOverlay)
	s.echo.GET("/ws/overlay", s.handleWebSocket)
}
