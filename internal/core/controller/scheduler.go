package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// ErrGaveUp is reported by a bounded retry that ran out of attempts.
var ErrGaveUp = errors.New("gave up after maximum attempts")

// Retry is a bounded retry policy. Attempt n (zero based) runs Step*(n+1)
// after the previous one.
type Retry struct {
	Attempts int
	Step     time.Duration
}

// Delay returns the wait before attempt n.
func (r Retry) Delay(n int) time.Duration {
	return r.Step * time.Duration(n+1)
}

// Scheduler owns the timers of one screen. Callbacks run on the event loop
// and never after Close or after their cancel func returned.
type Scheduler struct {
	loop ports.EventLoop

	mu     sync.Mutex
	next   int
	active map[int]func()
	closed bool
}

func NewScheduler(loop ports.EventLoop) *Scheduler {
	return &Scheduler{loop: loop, active: make(map[int]func())}
}

// take removes id and reports whether it was still live.
func (s *Scheduler) take(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	delete(s.active, id)
	return ok
}

func (s *Scheduler) live(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	return ok
}

func (s *Scheduler) cancel(id int) {
	s.mu.Lock()
	stop, ok := s.active[id]
	delete(s.active, id)
	s.mu.Unlock()
	if ok {
		stop()
	}
}

// After runs fn on the loop once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	s.next++
	id := s.next
	timer := time.AfterFunc(d, func() {
		s.loop.Post(func() {
			if s.take(id) {
				fn()
			}
		})
	})
	s.active[id] = func() { timer.Stop() }
	return func() { s.cancel(id) }
}

// Every runs fn on the loop every d until cancelled.
func (s *Scheduler) Every(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	s.next++
	id := s.next
	done := make(chan struct{})
	s.active[id] = func() { close(done) }
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.loop.Post(func() {
					if s.live(id) {
						fn()
					}
				})
			}
		}
	}()
	return func() { s.cancel(id) }
}

// Retry calls try on the loop following policy until it returns true, then
// reports nil to done. After policy.Attempts failed tries done receives
// ErrGaveUp. done is not called when the retry is cancelled.
func (s *Scheduler) Retry(policy Retry, try func() bool, done func(error)) (cancel func()) {
	var (
		mu      sync.Mutex
		current func()
		stopped bool
	)
	var attempt func(n int)
	attempt = func(n int) {
		if n >= policy.Attempts {
			done(ErrGaveUp)
			return
		}
		c := s.After(policy.Delay(n), func() {
			if try() {
				done(nil)
				return
			}
			attempt(n + 1)
		})
		mu.Lock()
		if stopped {
			mu.Unlock()
			c()
			return
		}
		current = c
		mu.Unlock()
	}
	attempt(0)
	return func() {
		mu.Lock()
		stopped = true
		c := current
		mu.Unlock()
		if c != nil {
			c()
		}
	}
}

// Close cancels every pending callback. Later scheduling is a no-op.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	stops := make([]func(), 0, len(s.active))
	for id, stop := range s.active {
		stops = append(stops, stop)
		delete(s.active, id)
	}
	s.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
}

// Closed reports whether Close was called.
func (s *Scheduler) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Pending reports the number of live timers and pollers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
