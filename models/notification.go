package models

import "github.com/octabyte/skillswap-client/enums"

type Notification struct {
	ID        string                 `json:"_id"`
	Type      enums.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	CreatedAt Timestamp              `json:"created_at"`
	Data      map[string]interface{} `json:"data"`
}

type NewNotification struct {
	UserID  string                 `json:"user_id" validate:"required"`
	Type    enums.NotificationType `json:"type" validate:"required"`
	Title   string                 `json:"title" validate:"required"`
	Message string                 `json:"message" validate:"required"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

type NotificationPreferences struct {
	EmailNotifications bool `json:"email_notifications"`
	SessionReminders   bool `json:"session_reminders"`
	NewRequests        bool `json:"new_requests"`
}
