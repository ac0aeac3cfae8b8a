package controller

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

// markAllConcurrency bounds the parallel mark-read calls of "mark all read".
const markAllConcurrency = 4

var (
	loadNotificationsMessages  = fallback("Failed to load notifications. Please try again.")
	updateNotificationMessages = fallback("Failed to update notification. Please try again.")
	deleteNotificationMessages = fallback("Failed to delete notification. Please try again.")
)

// NotificationItem is a notification with its display labels.
type NotificationItem struct {
	domain.Notification
	Age           string `json:"age"`
	PriorityLabel string `json:"priorityLabel"`
}

func items(ns []domain.Notification, now time.Time) []NotificationItem {
	out := make([]NotificationItem, len(ns))
	for i, n := range ns {
		out[i] = NotificationItem{
			Notification:  n,
			Age:           view.TimeAgo(n.CreatedDate.Time, now),
			PriorityLabel: view.PriorityLabel(n.Priority),
		}
	}
	return out
}

// inbox is the notification list shared by the page and the bell. Fields are
// loop-owned; the methods without a loop-only note block on gateway calls.
type inbox struct {
	s      *screen
	client ports.ClientGateway

	list   Load
	all    []domain.Notification
	action Action
}

// load refreshes the list. fetchErr is the gateway outcome, already turned
// into list state; err is set only when the loop could not be reached.
func (b *inbox) load(ctx context.Context) (fetchErr, err error) {
	if err := b.s.update(ctx, b.list.begin); err != nil {
		return nil, err
	}
	ns, err := b.client.Notifications(ctx)
	if err != nil {
		b.s.failed("load notifications", err)
	}
	uerr := b.s.update(ctx, func() {
		if err != nil {
			b.list.fail(loadNotificationsMessages.For(err))
			return
		}
		b.all = view.SortNewestFirst(ns)
		b.list.ready()
	})
	return err, uerr
}

// markRead marks one notification read. Already-read notifications are left
// alone.
func (b *inbox) markRead(ctx context.Context, notificationID string) error {
	var unread bool
	if err := b.s.read(ctx, func() {
		i := slices.IndexFunc(b.all, func(n domain.Notification) bool { return n.NotificationID == notificationID })
		unread = i >= 0 && !b.all[i].IsRead
	}); err != nil || !unread {
		return err
	}
	updated, err := b.client.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		b.s.failed("mark notification read", err)
	}
	return b.s.update(ctx, func() {
		if err != nil {
			b.action.fail(updateNotificationMessages.For(err))
			return
		}
		b.all = view.Replace(b.all, notificationID, *updated)
	})
}

// markAllRead issues one mark-read call per unread notification. Each
// success is applied as it arrives; the first failure is reported.
func (b *inbox) markAllRead(ctx context.Context) error {
	var ids []string
	if err := b.s.read(ctx, func() {
		for _, n := range b.all {
			if !n.IsRead {
				ids = append(ids, n.NotificationID)
			}
		}
	}); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(markAllConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			updated, err := b.client.MarkNotificationRead(ctx, id)
			if err != nil {
				b.s.failed("mark notification read", err)
				return err
			}
			return b.s.update(ctx, func() { b.all = view.Replace(b.all, id, *updated) })
		})
	}
	err := g.Wait()
	return b.s.update(ctx, func() {
		if err != nil {
			b.action.fail(updateNotificationMessages.For(err))
		}
	})
}

func (b *inbox) remove(ctx context.Context, notificationID string) error {
	if _, err := b.client.DeleteNotification(ctx, notificationID); err != nil {
		b.s.failed("delete notification", err)
		return b.s.update(ctx, func() { b.action.fail(deleteNotificationMessages.For(err)) })
	}
	return b.s.update(ctx, func() { b.all = view.Remove(b.all, notificationID) })
}
