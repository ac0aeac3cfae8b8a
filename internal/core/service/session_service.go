package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type subscriber struct {
	id int
	fn func(domain.Session)
}

// SessionStore is the single owner of the process-wide session. Every
// transition replaces the whole session value and then notifies subscribers
// synchronously, in subscription order.
type SessionStore struct {
	store ports.CredentialStore
	auth  ports.AuthGateway
	log   zerolog.Logger

	current atomic.Pointer[domain.Session]

	mu     sync.Mutex // serialises transitions and emissions
	subs   []subscriber
	nextID int
}

var _ ports.SessionManager = (*SessionStore)(nil)

func NewSessionStore(store ports.CredentialStore, auth ports.AuthGateway, log zerolog.Logger) *SessionStore {
	s := &SessionStore{
		store: store,
		auth:  auth,
		log:   log.With().Str("component", "session").Logger(),
	}
	s.current.Store(&domain.Session{})
	return s
}

// Current returns the current session snapshot.
func (s *SessionStore) Current() domain.Session {
	return *s.current.Load()
}

func (s *SessionStore) CurrentUser() *domain.User  { return s.Current().User }
func (s *SessionStore) Token() string              { return s.Current().Token }
func (s *SessionStore) Authenticated() bool        { return s.Current().Authenticated() }
func (s *SessionStore) HasRole(r domain.Role) bool { return s.Current().HasRole(r) }
func (s *SessionStore) IsAdmin() bool              { return s.HasRole(domain.RoleAdmin) }
func (s *SessionStore) IsAgent() bool              { return s.HasRole(domain.RoleAgent) }
func (s *SessionStore) IsClient() bool             { return s.HasRole(domain.RoleClient) }

// Subscribe registers fn for every future transition. fn runs while the
// transition is in progress and must not start another one or subscribe.
func (s *SessionStore) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Restore loads the persisted credentials. A corrupt or half-present record
// is removed and leaves the session anonymous without an error; only a store
// that cannot be read returns one.
func (s *SessionStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.readPersisted(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptSession):
		s.log.Warn().Err(err).Msg("discarding persisted session")
		if delErr := s.store.Delete(ctx, ports.TokenKey, ports.UserKey); delErr != nil {
			s.log.Error().Err(delErr).Msg("failed to clear persisted session")
		}
		next = &domain.Session{}
		err = nil
	case err != nil:
		next = &domain.Session{}
		err = fmt.Errorf("restore session: %w", err)
	}

	s.swap(next)
	if next.Authenticated() {
		s.log.Info().Str("username", next.Username()).Msg("session restored")
	}
	return err
}

func (s *SessionStore) readPersisted(ctx context.Context) (*domain.Session, error) {
	token, tokenErr := s.store.Get(ctx, ports.TokenKey)
	rawUser, userErr := s.store.Get(ctx, ports.UserKey)

	tokenMissing := errors.Is(tokenErr, domain.ErrCredentialNotFound)
	userMissing := errors.Is(userErr, domain.ErrCredentialNotFound)
	if tokenErr != nil && !tokenMissing {
		return nil, tokenErr
	}
	if userErr != nil && !userMissing {
		return nil, userErr
	}

	switch {
	case tokenMissing && userMissing:
		return &domain.Session{}, nil
	case tokenMissing || token == "":
		return nil, fmt.Errorf("%w: user without token", domain.ErrCorruptSession)
	case userMissing:
		return nil, fmt.Errorf("%w: token without user", domain.ErrCorruptSession)
	}

	user, err := domain.DecodeUser(rawUser)
	if err != nil {
		return nil, err
	}
	next := &domain.Session{User: user, Token: token}
	if exp, ok := TokenExpiry(token); ok {
		next.ExpiresAt = exp
	}
	return next, nil
}

// Login authenticates against the backend and persists the new session.
// On any failure the current session is left untouched.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) (domain.SessionInfo, error) {
	if err := form.Validate(creds); err != nil {
		return domain.SessionInfo{}, err
	}

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.log.Warn().Err(err).Str("username", creds.Username).Msg("login failed")
		return domain.SessionInfo{}, err
	}
	if resp.Token == "" {
		return domain.SessionInfo{}, fmt.Errorf("login: %w: empty token", domain.ErrDecode)
	}

	user := resp.User()
	rawUser, err := domain.EncodeUser(user)
	if err != nil {
		return domain.SessionInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, resp.Token, rawUser); err != nil {
		return domain.SessionInfo{}, err
	}

	next := &domain.Session{User: user, Token: resp.Token}
	if exp, ok := TokenExpiry(resp.Token); ok {
		next.ExpiresAt = exp
	}
	s.swap(next)

	s.log.Info().
		Str("username", user.Username).
		Strs("roles", user.Roles.Authorities()).
		Msg("logged in")

	return domain.SessionInfo{
		User:      *user,
		TokenType: resp.TokenType,
		ExpiresIn: resp.ExpiresIn,
		ExpiresAt: next.ExpiresAt,
	}, nil
}

func (s *SessionStore) persist(ctx context.Context, token, rawUser string) error {
	err := s.store.Set(ctx, ports.TokenKey, token)
	if err == nil {
		err = s.store.Set(ctx, ports.UserKey, rawUser)
	}
	if err == nil {
		return nil
	}
	if delErr := s.store.Delete(ctx, ports.TokenKey, ports.UserKey); delErr != nil {
		s.log.Error().Err(delErr).Msg("failed to roll back partial session write")
	}
	return fmt.Errorf("persist session: %w", err)
}

// Logout clears the persisted credentials and the session. Logging out of an
// anonymous session is allowed and still notifies subscribers.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	err := s.store.Delete(ctx, ports.TokenKey, ports.UserKey)
	s.swap(&domain.Session{})

	if prev.Authenticated() {
		s.log.Info().Str("username", prev.Username()).Msg("logged out")
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// swap publishes next and notifies subscribers. Callers hold s.mu.
func (s *SessionStore) swap(next *domain.Session) {
	s.current.Store(next)
	snapshot := *next
	for _, sub := range s.subs {
		sub.fn(snapshot)
	}
}
