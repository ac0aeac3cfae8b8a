// Package controller holds the per-screen state machines of the console.
//
// Screen state is owned by a single event loop: gateway calls run on the
// calling goroutine and their results are applied on the loop in arrival
// order. When two requests for the same resource overlap, the response that
// arrives last wins even if it belongs to the older request.
package controller

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

// ErrBusy is returned when an action is started while the same action is
// still submitting.
var ErrBusy = errors.New("action already in progress")

// Phase is the lifecycle of a screen's data. The zero value is PhaseIdle.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

var phaseNames = [...]string{"idle", "loading", "ready", "error"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ActionPhase is the lifecycle of a modal action. The zero value is
// ActionIdle.
type ActionPhase uint8

const (
	ActionIdle ActionPhase = iota
	ActionSubmitting
	ActionSuccess
	ActionError
)

var actionPhaseNames = [...]string{"idle", "submitting", "success", "error"}

func (a ActionPhase) String() string {
	if int(a) < len(actionPhaseNames) {
		return actionPhaseNames[a]
	}
	return "ActionPhase(" + strconv.Itoa(int(a)) + ")"
}

func (a ActionPhase) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Load tracks one fetched resource.
type Load struct {
	Phase Phase  `json:"phase"`
	Error string `json:"error,omitempty"`
}

func (l *Load) begin() { *l = Load{Phase: PhaseLoading} }
func (l *Load) ready() { *l = Load{Phase: PhaseReady} }
func (l *Load) fail(msg string) {
	*l = Load{Phase: PhaseError, Error: msg}
}

// Loading reports whether a fetch is in flight.
func (l Load) Loading() bool { return l.Phase == PhaseLoading }

// Action tracks one modal action.
type Action struct {
	Phase   ActionPhase `json:"phase"`
	Message string      `json:"message,omitempty"`
}

func (a *Action) begin() bool {
	if a.Phase == ActionSubmitting {
		return false
	}
	*a = Action{Phase: ActionSubmitting}
	return true
}
func (a *Action) succeed(msg string) { *a = Action{Phase: ActionSuccess, Message: msg} }
func (a *Action) fail(msg string)    { *a = Action{Phase: ActionError, Message: msg} }
func (a *Action) reset()             { *a = Action{Phase: ActionIdle} }

// Timing holds the screen timing policies.
type Timing struct {
	ShortToast       time.Duration
	LongToast        time.Duration
	BannerToast      time.Duration
	NotificationPoll time.Duration
	ChartRetry       Retry
	BellSize         int
	FallbackFee      float64
}

// DefaultTiming mirrors the console defaults.
func DefaultTiming() Timing {
	return Timing{
		ShortToast:       2 * time.Second,
		LongToast:        3 * time.Second,
		BannerToast:      5 * time.Second,
		NotificationPoll: 30 * time.Second,
		ChartRetry:       Retry{Attempts: 5, Step: 200 * time.Millisecond},
		BellSize:         5,
		FallbackFee:      view.DefaultFeePercentage,
	}
}

// Env is what every screen needs besides its gateways.
type Env struct {
	Loop   ports.EventLoop
	Log    zerolog.Logger
	Timing Timing
	Now    func() time.Time
	// OnPoll observes every notification poll.
	OnPoll func(error)
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// screen is embedded by every controller.
type screen struct {
	name   string
	loop   ports.EventLoop
	sched  *Scheduler
	log    zerolog.Logger
	timing Timing
	env    Env

	// ctx bounds background work started by timers; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
}

func newScreen(name string, env Env) screen {
	ctx, cancel := context.WithCancel(context.Background())
	return screen{
		name:   name,
		loop:   env.Loop,
		sched:  NewScheduler(env.Loop),
		log:    env.Log.With().Str("screen", name).Logger(),
		timing: env.Timing,
		env:    env,
		ctx:    ctx,
		cancel: cancel,
	}
}

// update runs fn on the loop unless the screen was closed.
func (s *screen) update(ctx context.Context, fn func()) error {
	return s.loop.Call(ctx, func() {
		if s.sched.Closed() {
			return
		}
		fn()
	})
}

// read runs fn on the loop to take a consistent snapshot.
func (s *screen) read(ctx context.Context, fn func()) error {
	return s.loop.Call(ctx, fn)
}

// background starts fn off the loop with the screen lifetime context.
// Used from timer callbacks, which run on the loop and must not block it.
func (s *screen) background(fn func(ctx context.Context)) {
	go fn(s.ctx)
}

// failed logs a failed gateway call.
func (s *screen) failed(op string, err error) {
	s.log.Warn().Err(err).Str("op", op).Msg("screen action failed")
}

// Close cancels timers, pollers and background reloads.
func (s *screen) Close() {
	s.sched.Close()
	s.cancel()
}

// Name identifies the screen in logs.
func (s *screen) Name() string { return s.name }

// begin moves a into submitting on the loop, or returns ErrBusy.
func (s *screen) begin(ctx context.Context, a *Action) error {
	var busy bool
	if err := s.update(ctx, func() { busy = !a.begin() }); err != nil {
		return err
	}
	if busy {
		return ErrBusy
	}
	return nil
}
