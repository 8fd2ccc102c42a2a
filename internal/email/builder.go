package email

import (
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/barcode"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/config"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events"
)

// PayloadBuilder assembles EmailJS payloads from ticket purchase events.
// It performs no network I/O.
type PayloadBuilder struct {
	cfg config.EmailJSConfig
}

func NewPayloadBuilder(cfg config.EmailJSConfig) *PayloadBuilder {
	return &PayloadBuilder{cfg: cfg}
}

// Build renders the barcode for the event's ticket id and wraps the event
// fields with the static EmailJS credentials. A failed render propagates
// unchanged; no partial payload is returned.
func (b *PayloadBuilder) Build(event events.TicketPurchasedEvent) (*Payload, error) {
	attachment, err := barcode.RenderDataURI(event.TicketID)
	if err != nil {
		return nil, err
	}

	return &Payload{
		ServiceID:   b.cfg.ServiceID,
		TemplateID:  b.cfg.TemplateID,
		UserID:      b.cfg.PublicKey,
		AccessToken: b.cfg.PrivateKey,
		TemplateParams: TemplateParams{
			UserName:    event.UserName,
			TicketName:  event.TicketName,
			TicketPrice: event.TicketPrice,
			TicketID:    event.TicketID,
			Attachment:  attachment,
			ToEmail:     event.ToEmail,
		},
	}, nil
}
