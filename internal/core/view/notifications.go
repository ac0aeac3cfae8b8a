package view

import (
	"fmt"
	"slices"
	"time"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// ReadFilter selects notifications by read state.
type ReadFilter string

const (
	FilterAll    ReadFilter = "all"
	FilterUnread ReadFilter = "unread"
	FilterRead   ReadFilter = "read"
)

// AllTypes disables the type predicate.
const AllTypes = "all"

// ParseReadFilter maps unknown values to FilterAll.
func ParseReadFilter(s string) ReadFilter {
	switch ReadFilter(s) {
	case FilterUnread, FilterRead:
		return ReadFilter(s)
	default:
		return FilterAll
	}
}

// SortNewestFirst returns a copy of ns ordered by creation time, newest first.
// Notifications created at the same instant keep their relative order.
func SortNewestFirst(ns []domain.Notification) []domain.Notification {
	out := slices.Clone(ns)
	slices.SortStableFunc(out, func(a, b domain.Notification) int {
		return b.CreatedDate.Compare(a.CreatedDate.Time)
	})
	return out
}

// Filter keeps the notifications matching both the read filter and the type.
// An empty type or AllTypes matches every type.
func Filter(ns []domain.Notification, read ReadFilter, typ string) []domain.Notification {
	out := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		switch read {
		case FilterUnread:
			if n.IsRead {
				continue
			}
		case FilterRead:
			if !n.IsRead {
				continue
			}
		}
		if typ != "" && typ != AllTypes && n.Type != typ {
			continue
		}
		out = append(out, n)
	}
	return out
}

// UnreadCount counts notifications not yet read.
func UnreadCount(ns []domain.Notification) int {
	count := 0
	for _, n := range ns {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Latest returns the n newest notifications.
func Latest(ns []domain.Notification, n int) []domain.Notification {
	sorted := SortNewestFirst(ns)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Replace swaps the first notification with the given notification ID for
// updated. An updated record without a notification ID keeps the old one.
func Replace(ns []domain.Notification, notificationID string, updated domain.Notification) []domain.Notification {
	out := slices.Clone(ns)
	i := slices.IndexFunc(out, func(n domain.Notification) bool { return n.NotificationID == notificationID })
	if i < 0 {
		return out
	}
	if updated.NotificationID == "" {
		updated.NotificationID = notificationID
	}
	out[i] = updated
	return out
}

// Remove drops the notification with the given notification ID.
func Remove(ns []domain.Notification, notificationID string) []domain.Notification {
	return slices.DeleteFunc(slices.Clone(ns), func(n domain.Notification) bool {
		return n.NotificationID == notificationID
	})
}

// TimeAgo renders the age of t relative to now.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// PriorityLabel is the badge text of a priority.
func PriorityLabel(priority string) string {
	switch priority {
	case domain.PriorityUrgent:
		return "Urgent"
	case domain.PriorityHigh:
		return "High"
	case domain.PriorityLow:
		return "Low"
	default:
		return "Normal"
	}
}
