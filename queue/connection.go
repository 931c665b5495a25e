package queue

import (
	apperrors "github.com/octabyte/skillswap-client/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection dials the broker, opens a channel and declares the
// configured queue.
func NewConnection(config ConnectionConfig) (*Connection, error) {
	if err := config.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, "invalid amqp config")
	}

	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, apperrors.Wrapf(err, "dial amqp")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, apperrors.Wrapf(err, "open amqp channel")
	}

	if q := config.QueueConfig; q != nil {
		if _, err = ch.QueueDeclare(q.Name, q.Durable, q.AutoDelete, q.Exclusive, q.NoWait, q.declareArgs()); err != nil {
			_ = conn.Close()
			return nil, apperrors.Wrapf(err, "declare queue %s", q.Name)
		}
	}

	return &Connection{conn, ch}, nil
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
