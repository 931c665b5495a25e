package queue

import "github.com/go-playground/validator/v10"

type ConnectionConfig struct {
	// URI is the AMQP URI, credentials included.
	URI string `validate:"required,url"`
	// QueueConfig, when set, is declared on connect.
	QueueConfig *Config
}

func (c ConnectionConfig) Validate() error {
	return validator.New().Struct(c)
}

type Config struct {
	Name       string
	Type       QueueType
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	// Args are passed to QueueDeclare as is, e.g. x-message-ttl or
	// x-max-length. x-queue-type is filled from Type.
	Args map[string]interface{}
}

func (c *Config) declareArgs() map[string]interface{} {
	args := make(map[string]interface{}, len(c.Args)+1)
	for k, v := range c.Args {
		args[k] = v
	}
	if c.Type != "" {
		args["x-queue-type"] = string(c.Type)
	}
	return args
}

type PublishConfig struct {
	Exchange   string
	RoutingKey string
	// ContentType defaults to application/json.
	ContentType string
	// DeliveryMode is amqp.Transient (1) or amqp.Persistent (2).
	DeliveryMode uint8
}

// See https://www.rabbitmq.com/tutorials/amqp-concepts-tutorial.html
