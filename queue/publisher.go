package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/octabyte/skillswap-client/otel"
	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultContentType = "application/json"

type Publisher interface {
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// Channel is the part of *amqp.Channel a publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type publisher struct {
	ch     Channel
	config PublishConfig
}

func NewPublisher(ch Channel, config PublishConfig) Publisher {
	if config.ContentType == "" {
		config.ContentType = defaultContentType
	}
	return &publisher{ch, config}
}

// Publish sends body to the configured exchange and routing key. The trace
// context of ctx travels in the message headers.
func (p *publisher) Publish(ctx context.Context, body []byte) error {
	headers := amqp.Table{}
	for k, v := range otel.InjectTraceHeaders(ctx, nil) {
		headers[k] = v
	}

	message := amqp.Publishing{
		Headers:      headers,
		ContentType:  p.config.ContentType,
		DeliveryMode: p.config.DeliveryMode,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	return p.ch.PublishWithContext(ctx, p.config.Exchange, p.config.RoutingKey, false, false, message)
}

func (p *publisher) Close() error {
	return p.ch.Close()
}
