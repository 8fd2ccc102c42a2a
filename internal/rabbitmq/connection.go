package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/rabbitmq/amqp091-go"
)

type connectionManager struct {
	logger     logs.Logger
	url        string
	connection *amqp091.Connection
	channel    *amqp091.Channel
}

func newConnectionManager(logger logs.Logger, url string) (*connectionManager, error) {
	manager := &connectionManager{
		logger: logger,
		url:    url,
	}

	if err := manager.connect(); err != nil {
		return nil, err
	}

	return manager, nil
}

func (cm *connectionManager) connect() error {
	conn, err := amqp091.Dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	cm.connection = conn
	cm.channel = ch
	cm.logger.Info("connected to RabbitMQ")
	return nil
}

func (cm *connectionManager) reconnect(ctx context.Context) error {
	backoff := 1 * time.Second
	maxBackoff := 30 * time.Second
	maxAttempts := 10

	for attempts := 1; attempts <= maxAttempts; attempts++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			cm.logger.Info("attempting to reconnect to RabbitMQ", "attempt", attempts, "backoff", backoff)

			if err := cm.connect(); err != nil {
				cm.logger.Error("failed to reconnect", "error", err, "attempt", attempts)

				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
				continue
			}

			cm.logger.Info("successfully reconnected to RabbitMQ")
			return nil
		}
	}

	return fmt.Errorf("max reconnection attempts reached: %d", maxAttempts)
}

func (cm *connectionManager) Close() {
	if cm.channel != nil {
		cm.channel.Close()
	}
	if cm.connection != nil {
		cm.connection.Close()
	}
	cm.logger.Info("rabbitmq connection manager closed")
}

// Ping reports whether the broker connection is still open. Used by the
// readiness endpoint.
func (cm *connectionManager) Ping() error {
	if cm.connection == nil || cm.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}
