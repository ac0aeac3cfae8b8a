package controller

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

type NotificationsState struct {
	List   Load               `json:"list"`
	Filter view.ReadFilter    `json:"filter"`
	Type   string             `json:"type"`
	Types  []string           `json:"types"`
	Items  []NotificationItem `json:"items"`
	Total  int                `json:"total"`
	Unread int                `json:"unread"`
	Action Action             `json:"action"`
}

// Notifications is the full notification page with read-state and type
// filters.
type Notifications struct {
	screen
	inbox  inbox
	filter view.ReadFilter
	typ    string
}

func NewNotifications(client ports.ClientGateway, env Env) *Notifications {
	n := &Notifications{screen: newScreen("notifications", env), filter: view.FilterAll, typ: view.AllTypes}
	n.inbox = inbox{s: &n.screen, client: client}
	return n
}

func (n *Notifications) Load(ctx context.Context) error {
	_, err := n.inbox.load(ctx)
	return err
}

// SetFilter changes the read-state and type filters. An empty type shows
// every type.
func (n *Notifications) SetFilter(ctx context.Context, read view.ReadFilter, typ string) error {
	if typ == "" {
		typ = view.AllTypes
	}
	return n.update(ctx, func() { n.filter, n.typ = read, typ })
}

func (n *Notifications) MarkRead(ctx context.Context, notificationID string) error {
	return n.inbox.markRead(ctx, notificationID)
}

func (n *Notifications) MarkAllRead(ctx context.Context) error {
	return n.inbox.markAllRead(ctx)
}

func (n *Notifications) Delete(ctx context.Context, notificationID string) error {
	return n.inbox.remove(ctx, notificationID)
}

func (n *Notifications) Snapshot(ctx context.Context) (NotificationsState, error) {
	var out NotificationsState
	now := n.env.now()
	err := n.read(ctx, func() {
		out = NotificationsState{
			List:   n.inbox.list,
			Filter: n.filter,
			Type:   n.typ,
			Types:  append([]string{view.AllTypes}, domain.NotificationTypes...),
			Items:  items(view.Filter(n.inbox.all, n.filter, n.typ), now),
			Total:  len(n.inbox.all),
			Unread: view.UnreadCount(n.inbox.all),
			Action: n.inbox.action,
		}
	})
	return out, err
}
