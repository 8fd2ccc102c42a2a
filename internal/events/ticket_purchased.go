package events

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Broker topology for ticket purchase notifications. The purchase
	// service publishes to the topic exchange with the EMAILS routing key.
	TicketExchangeName     = "exchange"
	TicketEmailQueueName   = "EMAILS"
	TicketEmailRoutingKey  = "EMAILS"
	TicketEmailConsumerTag = "email_ticket_purchased_consumer"
)

var ErrInvalidEvent = errors.New("invalid ticket purchase event")

// TicketPurchasedEvent is the message body published when a user completes
// a ticket purchase.
type TicketPurchasedEvent struct {
	UserName    string `json:"user_name"`
	TicketName  string `json:"ticket_name"`
	TicketPrice string `json:"ticket_price"`
	TicketID    string `json:"ticket_id"`
	ToEmail     string `json:"to_email"`
}

// Validate checks that every field required to render and address the
// confirmation email is present.
func (e *TicketPurchasedEvent) Validate() error {
	var missing []string

	if e.UserName == "" {
		missing = append(missing, "user_name")
	}
	if e.TicketName == "" {
		missing = append(missing, "ticket_name")
	}
	if e.TicketPrice == "" {
		missing = append(missing, "ticket_price")
	}
	if e.TicketID == "" {
		missing = append(missing, "ticket_id")
	}
	if e.ToEmail == "" {
		missing = append(missing, "to_email")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing fields %s", ErrInvalidEvent, strings.Join(missing, ", "))
	}
	return nil
}
