package domain

// Notification types.
const (
	NotificationTransaction = "TRANSACTION"
	NotificationAccount     = "ACCOUNT"
	NotificationSecurity    = "SECURITY"
	NotificationSystem      = "SYSTEM"
	NotificationPromotion   = "PROMOTION"
)

// NotificationTypes lists every notification type.
var NotificationTypes = []string{
	NotificationTransaction,
	NotificationAccount,
	NotificationSecurity,
	NotificationSystem,
	NotificationPromotion,
}

// Notification priorities.
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification is a message addressed to a client.
type Notification struct {
	ID             int64     `json:"id"`
	NotificationID string    `json:"notificationId"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	IsRead         bool      `json:"isRead"`
	ReadDate       Timestamp `json:"readDate"`
	CreatedDate    Timestamp `json:"createdDate"`
	ExpiresDate    Timestamp `json:"expiresDate"`
	ActionURL      *string   `json:"actionUrl"`
	ActionLabel    *string   `json:"actionLabel"`
}

type NotificationDeleteResponse struct {
	NotificationID string `json:"notificationId"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"`
}
