package email

import (
	"context"
	"fmt"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/barcode"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/config"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events"
	"gopkg.in/gomail.v2"
)

// SMTPSender is the alternate delivery backend: it renders the same
// template fields as an HTML body with the barcode embedded inline and
// sends it over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPSender{
		dialer: dialer,
		from:   cfg.FromEmail,
	}
}

func (s *SMTPSender) Send(_ context.Context, event events.TicketPurchasedEvent) error {
	attachment, err := barcode.RenderDataURI(event.TicketID)
	if err != nil {
		return err
	}

	m := gomail.NewMessage(func(m *gomail.Message) {
		m.SetHeader("From", s.from)
		m.SetHeader("To", event.ToEmail)
		m.SetHeader("Subject", "Your ticket: "+event.TicketName)
		m.SetBody("text/html", ticketBodyHTML(event, attachment))
	})

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket email over SMTP: %w", err)
	}
	return nil
}

func ticketBodyHTML(event events.TicketPurchasedEvent, attachment string) string {
	body := "<p>Dear " + event.UserName + ",</p>"
	body += "<p>Thank you for your purchase. Here are your ticket details:</p>"
	body += "<ul>"
	body += "<li>Ticket: " + event.TicketName + "</li>"
	body += "<li>Price: " + event.TicketPrice + "</li>"
	body += "<li>Ticket ID: " + event.TicketID + "</li>"
	body += "</ul>"
	body += fmt.Sprintf("<p><img src=%q alt=\"ticket barcode\"/></p>", attachment)
	body += "<p>See you at the event!</p>"
	return body
}
