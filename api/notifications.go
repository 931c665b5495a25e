package api

import (
	"context"
	"net/http"

	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
)

const notificationsPath = "/api/notifications"

type Notifications struct {
	t Transport
}

func NewNotifications(t Transport) *Notifications {
	return &Notifications{t: t}
}

func (n *Notifications) ForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var notifications []models.Notification
	err := get(ctx, n.t, path(notificationsPath, "user", userID), nil, "notifications", &notifications)
	return notifications, err
}

func (n *Notifications) MarkRead(ctx context.Context, notificationID string) error {
	if err := requireID("notification id", notificationID); err != nil {
		return err
	}
	return call(ctx, n.t, gateway.Request{Method: http.MethodPut, Path: path(notificationsPath, notificationID, "read")}, "", nil)
}

// MarkAllRead returns the server's summary message.
func (n *Notifications) MarkAllRead(ctx context.Context) (string, error) {
	var message string
	err := call(ctx, n.t, gateway.Request{Method: http.MethodPut, Path: path(notificationsPath, "mark-all-read")}, "message", &message)
	return message, err
}

func (n *Notifications) Send(ctx context.Context, notification models.NewNotification) (string, error) {
	if err := validateRequest(notification); err != nil {
		return "", err
	}
	var id string
	err := call(ctx, n.t, gateway.Request{Method: http.MethodPost, Path: path(notificationsPath, "send"), Body: notification}, "notification_id", &id)
	return id, err
}

func (n *Notifications) UpdatePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) (models.NotificationPreferences, error) {
	var out models.NotificationPreferences
	if err := requireID("user id", userID); err != nil {
		return out, err
	}
	body := map[string]models.NotificationPreferences{"notification_preferences": prefs}
	err := call(ctx, n.t, gateway.Request{Method: http.MethodPut, Path: path(notificationsPath, "preferences", userID), Body: body}, "preferences", &out)
	return out, err
}
