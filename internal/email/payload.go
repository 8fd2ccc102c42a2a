package email

// TemplateParams carries the per-event fields substituted into the EmailJS
// template, including the barcode image as an inline data URI.
type TemplateParams struct {
	UserName    string `json:"user_name"`
	TicketName  string `json:"ticket_name"`
	TicketPrice string `json:"ticket_price"`
	TicketID    string `json:"ticket_id"`
	Attachment  string `json:"attachment"`
	ToEmail     string `json:"to_email"`
}

// Payload is the request body for the EmailJS send endpoint. The credential
// fields are static configuration; TemplateParams is built fresh per event.
type Payload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken"`
	TemplateParams TemplateParams `json:"template_params"`
}
