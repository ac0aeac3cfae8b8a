package gateway

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type Auth struct{ c *Client }

var _ ports.AuthGateway = (*Auth)(nil)

func NewAuth(c *Client) *Auth { return &Auth{c: c} }

func (g *Auth) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	if err := g.c.post(ctx, "auth.Login", versioned, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Auth) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error) {
	var out domain.ChangePasswordResponse
	if err := g.c.put(ctx, "auth.ChangePassword", unversioned, "/user/change-password", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
