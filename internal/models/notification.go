package models

import "time"

type NotificationType string

const (
	NotificationReminder    NotificationType = "reminder"
	NotificationAlert       NotificationType = "alert"
	NotificationAchievement NotificationType = "achievement"
	NotificationInfo        NotificationType = "info"
)

// Icon returns a terminal glyph for the notification type
func (t NotificationType) Icon() string {
	switch t {
	case NotificationReminder:
		return "⏰"
	case NotificationAlert:
		return "⚠"
	case NotificationAchievement:
		return "✓"
	default:
		return "ℹ"
	}
}

type Notification struct {
	ID        string           `json:"_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
