package email

import (
	"context"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events"
)

// Sender delivers one ticket confirmation email for an event. A non-nil
// error means the attempt may be retried; rejections the backend reports
// as final are logged and swallowed by the implementation.
type Sender interface {
	Send(ctx context.Context, event events.TicketPurchasedEvent) error
}

// Deliverer is the EmailJS transport used by EmailJSSender.
type Deliverer interface {
	Deliver(ctx context.Context, payload *Payload) (Outcome, error)
}

// EmailJSSender is the default backend: it builds the templated payload and
// hands it to the EmailJS API.
type EmailJSSender struct {
	builder   *PayloadBuilder
	deliverer Deliverer
}

func NewEmailJSSender(builder *PayloadBuilder, deliverer Deliverer) *EmailJSSender {
	return &EmailJSSender{
		builder:   builder,
		deliverer: deliverer,
	}
}

// Send builds and delivers the payload. An API-level rejection returns nil:
// EmailJS has accepted and refused the request, so redelivering the message
// would produce the same answer.
func (s *EmailJSSender) Send(ctx context.Context, event events.TicketPurchasedEvent) error {
	payload, err := s.builder.Build(event)
	if err != nil {
		return err
	}

	if _, err := s.deliverer.Deliver(ctx, payload); err != nil {
		return err
	}
	return nil
}
