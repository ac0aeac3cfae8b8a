package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/api/metrics"
	"github.com/99minutos/ebanking-console/internal/core/guard"
)

// Guard admits the request when check allows the session snapshot and
// otherwise redirects to the target the guard chose.
func Guard(check guard.Check) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := check(SessionFrom(c))
			if !d.Allow {
				metrics.GuardDenialsTotal.WithLabelValues(d.Redirect).Inc()
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			return next(c)
		}
	}
}
