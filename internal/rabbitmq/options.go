package rabbitmq

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type ExchangeType string

const (
	ExchangeFanout ExchangeType = "fanout"
	ExchangeTopic  ExchangeType = "topic"
	ExchangeDirect ExchangeType = "direct"
)

// SubscribeOptions describes one durable subscription: the exchange and
// queue are declared durable and bound under BindingKey before consuming
// starts. Handler is invoked once per delivery, sequentially.
type SubscribeOptions struct {
	Exchange     string
	ExchangeType ExchangeType
	QueueName    string
	ConsumerTag  string
	BindingKey   string
	Handler      func(ctx context.Context, d amqp091.Delivery)
}
