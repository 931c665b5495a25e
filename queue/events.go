package queue

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/enums"
	"github.com/octabyte/skillswap-client/session"
	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

const (
	SessionChangedEvent   = "session.changed"
	defaultPublishTimeout = 5 * time.Second
)

// SessionEvent is the message body published for every session transition.
type SessionEvent struct {
	Type       string                 `json:"type"`
	From       enums.AuthState        `json:"from"`
	To         enums.AuthState        `json:"to"`
	Reason     enums.TransitionReason `json:"reason"`
	UserID     string                 `json:"user_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// SessionEventPublisher forwards session transitions to a Publisher. It is a
// session.Observer; publish failures are logged and never reach the manager.
type SessionEventPublisher struct {
	publisher Publisher
	timeout   time.Duration
	now       func() time.Time
}

var _ session.Observer = (*SessionEventPublisher)(nil)

func NewSessionEventPublisher(publisher Publisher) *SessionEventPublisher {
	return &SessionEventPublisher{
		publisher: publisher,
		timeout:   defaultPublishTimeout,
		now:       time.Now,
	}
}

func (p *SessionEventPublisher) SessionChanged(ctx context.Context, change session.Change) {
	event := SessionEvent{
		Type:       SessionChangedEvent,
		From:       change.From,
		To:         change.To,
		Reason:     change.Reason,
		UserID:     change.User.ID(),
		OccurredAt: p.now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.LogError("failed to encode session event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, body); err != nil {
		logger.LogWarn("failed to publish session event",
			zap.String("reason", string(change.Reason)),
			zap.String("to", string(change.To)),
			zap.Error(err),
		)
	}
}

func (p *SessionEventPublisher) Close() error {
	return p.publisher.Close()
}
