package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jhemmerl/lingopulse/internal/platform/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":          "ready",
		"overlay_clients": s.hub.ClientCount(),
		"version":         version.Get(),
	})
}
