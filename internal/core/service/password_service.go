package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// PasswordService changes the password of the signed-in user.
type PasswordService struct {
	sessions ports.SessionReader
	auth     ports.AuthGateway
	log      zerolog.Logger
}

func NewPasswordService(sessions ports.SessionReader, auth ports.AuthGateway, log zerolog.Logger) *PasswordService {
	return &PasswordService{sessions: sessions, auth: auth, log: log}
}

// Change validates req locally before sending it.
func (s *PasswordService) Change(ctx context.Context, req domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error) {
	sess := s.sessions.Current()
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if err := form.Validate(req); err != nil {
		return nil, err
	}
	resp, err := s.auth.ChangePassword(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", sess.Username()).Msg("password changed")
	return resp, nil
}
