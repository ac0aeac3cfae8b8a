package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

const channelBuffer = 256

// ErrStopped is returned by Call once the loop has shut down.
var ErrStopped = errors.New("event loop stopped")

// Loop is the single logical thread that owns all screen state. Functions
// posted to it run one at a time, in posting order, on one goroutine.
// A function running on the loop must not Call the loop.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	stop  sync.Once
	log   zerolog.Logger
}

// NewLoop creates a loop. Nothing runs until Start.
func NewLoop(log zerolog.Logger) *Loop {
	return &Loop{
		tasks: make(chan func(), channelBuffer),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Start launches the loop goroutine. It stops when ctx is cancelled.
func (l *Loop) Start(ctx context.Context) {
	go l.run(ctx)
}

// Post enqueues fn. Functions posted after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Call runs fn on the loop and waits for it.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	case l.tasks <- task:
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the loop has stopped.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) run(ctx context.Context) {
	defer l.stop.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			l.execute(fn)
		}
	}
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("event loop task panicked")
		}
	}()
	fn()
}
