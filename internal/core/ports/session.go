package ports

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// SessionReader exposes the current session snapshot.
type SessionReader interface {
	Current() domain.Session
}

// SessionManager is the full session lifecycle.
type SessionManager interface {
	SessionReader
	Restore(ctx context.Context) error
	Login(ctx context.Context, creds domain.Credentials) (domain.SessionInfo, error)
	Logout(ctx context.Context) error
	Subscribe(fn func(domain.Session)) (unsubscribe func())
}
