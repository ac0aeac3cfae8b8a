package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

const sessionKey = "session"

// Session takes one snapshot of the session per request and stores it in the
// echo context, so guards and handlers of the same request agree on it.
func Session(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionKey, sessions.Current())
			return next(c)
		}
	}
}

// SessionFrom returns the snapshot stored by Session, or the anonymous
// session when the middleware did not run.
func SessionFrom(c echo.Context) domain.Session {
	s, _ := c.Get(sessionKey).(domain.Session)
	return s
}
