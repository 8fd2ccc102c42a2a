package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/barcode"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/email"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/rabbitmq"
	"github.com/rabbitmq/amqp091-go"
)

type Subscriber interface {
	Subscribe(ctx context.Context, opts rabbitmq.SubscribeOptions) error
}

// TicketPurchasedConsumer subscribes to the EMAILS queue and sends one
// confirmation email per ticket purchase event.
//
// Acknowledgment policy: malformed bodies, incomplete events and invalid
// ticket ids are dead-lettered (redelivery cannot fix them); transient
// send failures are requeued; everything else, including an API-level
// delivery rejection, is acked.
type TicketPurchasedConsumer struct {
	logger     logs.Logger
	sender     email.Sender
	subscriber Subscriber
}

func NewTicketPurchasedConsumer(logger logs.Logger, sender email.Sender, subscriber Subscriber) *TicketPurchasedConsumer {
	return &TicketPurchasedConsumer{
		logger:     logger,
		sender:     sender,
		subscriber: subscriber,
	}
}

func (c *TicketPurchasedConsumer) Start(ctx context.Context) error {
	unixTimeStr := strconv.FormatInt(time.Now().Unix(), 10)

	return c.subscriber.Subscribe(ctx, rabbitmq.SubscribeOptions{
		Exchange:     events.TicketExchangeName,
		ExchangeType: rabbitmq.ExchangeTopic,
		QueueName:    events.TicketEmailQueueName,
		ConsumerTag:  events.TicketEmailConsumerTag + "_" + unixTimeStr,
		BindingKey:   events.TicketEmailRoutingKey,
		Handler:      c.handleTicketPurchasedEvent,
	})
}

func (c *TicketPurchasedConsumer) handleTicketPurchasedEvent(ctx context.Context, d amqp091.Delivery) {
	var event events.TicketPurchasedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("failed to unmarshal ticket purchase event", "error", err)
		d.Nack(false, false)
		return
	}

	if err := event.Validate(); err != nil {
		c.logger.Error("incomplete ticket purchase event", "error", err, "ticketId", event.TicketID)
		d.Nack(false, false)
		return
	}

	if err := c.sender.Send(ctx, event); err != nil {
		if errors.Is(err, barcode.ErrInvalidTicketID) {
			c.logger.Error("failed to render ticket barcode", "error", err, "ticketId", event.TicketID)
			d.Nack(false, false)
			return
		}
		c.logger.Error("failed to send ticket email", "error", err, "ticketId", event.TicketID, "toEmail", event.ToEmail)
		d.Nack(false, true)
		return
	}

	c.logger.Info(
		"successfully processed ticket purchase event",
		"ticketId", event.TicketID,
		"ticketName", event.TicketName,
		"toEmail", event.ToEmail,
	)
	d.Ack(false)
}
