package rabbitmq

import (
	"context"
	"fmt"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/rabbitmq/amqp091-go"
)

// Client manages one connection and one channel to the broker and runs
// durable subscriptions over them. Messages are handed to the handler one
// at a time; the handler owns acknowledgment.
type Client struct {
	*connectionManager
}

func NewClient(logger logs.Logger, url string) (*Client, error) {
	manager, err := newConnectionManager(logger, url)
	if err != nil {
		return nil, err
	}
	return &Client{connectionManager: manager}, nil
}

// Subscribe declares the topology from opts and consumes until ctx is
// cancelled. On connection loss it reconnects with backoff and resumes
// consuming; unacknowledged messages are redelivered by the broker.
func (c *Client) Subscribe(ctx context.Context, opts SubscribeOptions) error {
	for {
		if err := c.setupSubscription(opts); err != nil {
			return fmt.Errorf("failed to setup subscription: %w", err)
		}

		msgs, err := c.channel.Consume(
			opts.QueueName,
			opts.ConsumerTag,
			false,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to start consuming: %w", err)
		}

		c.logger.Info("consumer subscribed", "consumerTag", opts.ConsumerTag, "queue", opts.QueueName)

		err = c.consumeMessages(ctx, opts.ConsumerTag, msgs, opts.Handler)

		if ctx.Err() != nil {
			c.logger.Info("context cancelled, stopping consumer", "consumerTag", opts.ConsumerTag)
			return ctx.Err()
		}

		c.logger.Warn("consumer connection lost, attempting to reconnect...", "consumerTag", opts.ConsumerTag, "error", err)

		if err := c.reconnect(ctx); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}

		c.logger.Info("resubscribing consumer after reconnection", "consumerTag", opts.ConsumerTag)
	}
}

func (c *Client) setupSubscription(opts SubscribeOptions) error {
	// One unacknowledged message at a time keeps processing strictly
	// sequential within the consumer.
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	dlxName := opts.Exchange + ".dlx"
	dlqName := opts.QueueName + ".dlq"

	if err := c.channel.ExchangeDeclare(dlxName, string(ExchangeTopic), true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLX %s: %w", dlxName, err)
	}

	if _, err := c.channel.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ %s: %w", dlqName, err)
	}

	if err := c.channel.QueueBind(dlqName, "#", dlxName, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ to DLX: %w", err)
	}

	if err := c.channel.ExchangeDeclare(opts.Exchange, string(opts.ExchangeType), true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", opts.Exchange, err)
	}

	args := amqp091.Table{"x-dead-letter-exchange": dlxName}
	if _, err := c.channel.QueueDeclare(opts.QueueName, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", opts.QueueName, err)
	}

	if err := c.channel.QueueBind(opts.QueueName, opts.BindingKey, opts.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to exchange: %w", err)
	}

	return nil
}

func (c *Client) consumeMessages(ctx context.Context, consumerTag string, msgs <-chan amqp091.Delivery, handler func(ctx context.Context, d amqp091.Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("rabbitmq channel closed for consumer %s", consumerTag)
			}
			handler(ctx, d)
		}
	}
}
