package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// PasswordHandler serves the change-password screen, open to every role.
type PasswordHandler struct {
	screens ScreenSource
}

func NewPasswordHandler(screens ScreenSource) *PasswordHandler {
	return &PasswordHandler{screens: screens}
}

func (h *PasswordHandler) Form(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	return respond(c, nil, set.ChangePassword.Snapshot)
}

func (h *PasswordHandler) Submit(c echo.Context) error {
	set, err := currentSet(c, h.screens)
	if err != nil {
		return err
	}
	var req domain.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return respond(c, func(ctx context.Context) error {
		return set.ChangePassword.Submit(ctx, req)
	}, set.ChangePassword.Snapshot)
}
