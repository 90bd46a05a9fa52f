package server

import (
	"fmt"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jhemmerl/lingopulse/internal/domain"
	apperrors "github.com/jhemmerl/lingopulse/internal/errors"
	"github.com/jhemmerl/lingopulse/internal/session"
)

type speechRequest struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

type languageRequest struct {
	Language string `json:"language"`
}

type stateResponse struct {
	session.Snapshot
	Languages []string `json:"languages"`
}

// handleSpeech feeds a recognizer result into the session engine. This is the
// manual alternative to the websocket recognizer bridge, useful for testing an
// overlay without a microphone.
func (s *Server) handleSpeech(c echo.Context) error {
	var req speechRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body").WithContext("cause", err.Error())
	}

	s.engine.HandleSpeech(domain.SpeechResult{Text: req.Text, Final: req.Final})

	if err := c.JSON(202, map[string]string{"status": "accepted"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSetLanguage(c echo.Context) error {
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body").WithContext("cause", err.Error())
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		return apperrors.ValidationError("language must not be empty")
	}

	configured := s.config.LanguageList()
	if !slices.Contains(configured, language) {
		return apperrors.ValidationError("language is not configured").
			WithContext("language", language).
			WithContext("configured", strings.Join(configured, ","))
	}

	s.engine.SetLanguage(language)

	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleReset(c echo.Context) error {
	s.engine.Reset()

	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleState(c echo.Context) error {
	resp := stateResponse{
		Snapshot:  s.engine.Snapshot(),
		Languages: s.config.LanguageList(),
	}
	return c.JSON(200, resp)
}
