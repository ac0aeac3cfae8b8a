package ports

import "context"

// EventLoop runs functions one at a time on a single goroutine, in the order
// they were posted.
type EventLoop interface {
	// Post enqueues fn without waiting for it to run.
	Post(fn func())
	// Call runs fn on the loop and waits for it to finish.
	Call(ctx context.Context, fn func()) error
}
