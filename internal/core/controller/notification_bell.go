package controller

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

type NotificationBellState struct {
	List   Load               `json:"list"`
	Open   bool               `json:"open"`
	Unread int                `json:"unread"`
	Recent []NotificationItem `json:"recent"`
	Action Action             `json:"action"`
}

// NotificationBell is the navbar badge. Once started it refreshes the list
// every poll interval until closed.
type NotificationBell struct {
	screen
	inbox    inbox
	open     bool
	stopPoll func()
}

func NewNotificationBell(client ports.ClientGateway, env Env) *NotificationBell {
	b := &NotificationBell{screen: newScreen("notification_bell", env)}
	b.inbox = inbox{s: &b.screen, client: client}
	return b
}

// Start loads the list once and then polls it. Calling Start again is a
// no-op.
func (b *NotificationBell) Start(ctx context.Context) error {
	var started bool
	if err := b.update(ctx, func() {
		if b.stopPoll != nil {
			started = true
			return
		}
		b.stopPoll = b.sched.Every(b.timing.NotificationPoll, func() {
			b.background(func(ctx context.Context) { _ = b.poll(ctx) })
		})
	}); err != nil || started {
		return err
	}
	return b.poll(ctx)
}

// Refresh reloads the list immediately.
func (b *NotificationBell) Refresh(ctx context.Context) error {
	return b.poll(ctx)
}

func (b *NotificationBell) poll(ctx context.Context) error {
	fetchErr, err := b.inbox.load(ctx)
	if err != nil {
		return err
	}
	if b.env.OnPoll != nil {
		b.env.OnPoll(fetchErr)
	}
	return nil
}

func (b *NotificationBell) Toggle(ctx context.Context) error {
	return b.update(ctx, func() { b.open = !b.open })
}

func (b *NotificationBell) MarkRead(ctx context.Context, notificationID string) error {
	return b.inbox.markRead(ctx, notificationID)
}

func (b *NotificationBell) MarkAllRead(ctx context.Context) error {
	return b.inbox.markAllRead(ctx)
}

// Polling reports whether the poller is running.
func (b *NotificationBell) Polling(ctx context.Context) (bool, error) {
	var on bool
	err := b.read(ctx, func() { on = b.stopPoll != nil && !b.sched.Closed() })
	return on, err
}

func (b *NotificationBell) Snapshot(ctx context.Context) (NotificationBellState, error) {
	var out NotificationBellState
	now := b.env.now()
	err := b.read(ctx, func() {
		out = NotificationBellState{
			List:   b.inbox.list,
			Open:   b.open,
			Unread: view.UnreadCount(b.inbox.all),
			Recent: items(view.Latest(b.inbox.all, b.timing.BellSize), now),
			Action: b.inbox.action,
		}
	})
	return out, err
}
