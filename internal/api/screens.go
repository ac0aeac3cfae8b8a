package api

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/api/metrics"
	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// Screens holds the screen set of the current session. Every session
// transition builds a fresh set and closes the previous one, which stops its
// pollers and pending toasts.
type Screens struct {
	ctx      context.Context
	sessions ports.SessionReader
	build    func(domain.Session) *controller.Set
	log      zerolog.Logger

	mu          sync.Mutex
	set         *controller.Set
	unsubscribe func()
}

// NewScreens builds the set for the current session and follows later
// transitions. Background work of the sets is bound to ctx.
func NewScreens(ctx context.Context, sessions ports.SessionManager, build func(domain.Session) *controller.Set, log zerolog.Logger) *Screens {
	s := &Screens{
		ctx:      ctx,
		sessions: sessions,
		build:    build,
		log:      log.With().Str("component", "screens").Logger(),
	}
	s.unsubscribe = sessions.Subscribe(func(domain.Session) { s.refresh() })
	s.refresh()
	return s
}

// refresh always reads the latest session, so late or repeated emissions
// converge on the same set.
func (s *Screens) refresh() {
	session := s.sessions.Current()

	s.mu.Lock()
	if s.set != nil && s.set.Session.Token == session.Token && s.set.Session.User == session.User {
		s.mu.Unlock()
		return
	}
	old := s.set
	next := s.build(session)
	s.set = next
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	metrics.ScreensActive.Set(float64(next.Len()))
	s.log.Debug().Str("username", session.Username()).Int("screens", next.Len()).Msg("screens rebuilt")

	go func() {
		if err := next.Start(s.ctx); err != nil {
			s.log.Debug().Err(err).Msg("screens not started")
		}
	}()
}

// Current returns the set of the current session.
func (s *Screens) Current() *controller.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Close stops following the session and closes the current set.
func (s *Screens) Close() {
	s.unsubscribe()
	s.mu.Lock()
	set := s.set
	s.set = nil
	s.mu.Unlock()
	if set != nil {
		set.Close()
	}
	metrics.ScreensActive.Set(0)
}
