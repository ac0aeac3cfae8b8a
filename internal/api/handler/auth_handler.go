package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ebanking-console/internal/api/metrics"
	"github.com/99minutos/ebanking-console/internal/api/middleware"
	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/guard"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/service"
)

type AuthHandler struct {
	sessions ports.SessionManager
}

func NewAuthHandler(sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginResponse struct {
	Session  domain.SessionInfo `json:"session"`
	Redirect string             `json:"redirect"`
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email,omitempty"`
	Roles         []string   `json:"roles,omitempty"`
	Home          string     `json:"home"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Login authenticates against the backend and persists the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req domain.Credentials
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	info, err := h.sessions.Login(c.Request().Context(), req)
	if err != nil {
		f := domain.Classify(err)
		status := http.StatusBadGateway
		if f.Kind == domain.KindAuthorization || f.Kind == domain.KindValidation {
			status = http.StatusUnauthorized
		}
		return echo.NewHTTPError(status, controller.LoginMessages.For(err)).SetInternal(err)
	}
	metrics.SessionTransitionsTotal.WithLabelValues("login").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Session:  info,
		Redirect: guard.Home(h.sessions.Current()),
	})
}

// Logout clears the session. It succeeds for anonymous users too.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.SessionTransitionsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, map[string]string{"redirect": guard.LoginPath})
}

// Session describes the session the request was admitted with.
func (h *AuthHandler) Session(c echo.Context) error {
	s := middleware.SessionFrom(c)
	resp := sessionResponse{Authenticated: s.Authenticated(), Home: guard.Home(s)}
	if s.Authenticated() {
		resp.Username = s.User.Username
		resp.Email = s.User.Email
		resp.Roles = s.User.Roles.Authorities()
		if exp, ok := service.TokenExpiry(s.Token); ok {
			exp = exp.UTC()
			resp.ExpiresAt = &exp
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Dashboard sends a signed-in user to the home of their highest role.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	return c.Redirect(http.StatusFound, guard.Home(middleware.SessionFrom(c)))
}

// Fallback answers unmatched paths with a redirect to the login screen.
func (h *AuthHandler) Fallback(c echo.Context) error {
	return c.Redirect(http.StatusFound, guard.LoginPath)
}
