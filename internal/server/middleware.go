package server

import (
	"github.com/labstack/echo/v4"

	"github.com/jhemmerl/lingopulse/internal/platform/correlation"
)

// correlationMiddleware attaches a fresh correlation ID to every request so
// log lines emitted downstream can be tied back to it.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
