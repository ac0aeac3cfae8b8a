package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/api/middleware"
	"github.com/99minutos/ebanking-console/internal/core/controller"
)

// ScreenSource yields the screens built for the current session.
type ScreenSource interface {
	Current() *controller.Set
}

// currentSet returns the screens of the session the request was admitted
// with. A set built for another session means a transition raced the
// request; the caller should retry.
func currentSet(c echo.Context, src ScreenSource) (*controller.Set, error) {
	set := src.Current()
	s := middleware.SessionFrom(c)
	if set == nil || !s.Authenticated() || set.Session.Token != s.Token {
		return nil, echo.NewHTTPError(http.StatusConflict, "session changed, please retry")
	}
	return set, nil
}

// respond runs action, when given, and answers with the screen snapshot.
func respond[S any](c echo.Context, action func(context.Context) error, snapshot func(context.Context) (S, error)) error {
	ctx := c.Request().Context()
	if action != nil {
		if err := action(ctx); err != nil {
			return err
		}
	}
	state, err := snapshot(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
