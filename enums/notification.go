package enums

type NotificationType string

const (
	NotificationSessionReminder NotificationType = "session_reminder"
	NotificationNewRequest      NotificationType = "new_request"
	NotificationRequestAccepted NotificationType = "request_accepted"
	NotificationBadgeEarned     NotificationType = "badge_earned"
)
