package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
)

const deliveryTimeout = 10 * time.Second

// Outcome reports the EmailJS API's verdict on one delivery attempt. A
// non-200 status is a rejection, not an error: it is logged and the
// message pipeline carries on.
type Outcome struct {
	Delivered  bool
	StatusCode int
	Body       string
}

// EmailJSClient posts payloads to the EmailJS send endpoint.
type EmailJSClient struct {
	logger     logs.Logger
	httpClient *http.Client
	endpoint   string
}

func NewEmailJSClient(logger logs.Logger, endpoint string) *EmailJSClient {
	return &EmailJSClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout: deliveryTimeout,
		},
		endpoint: endpoint,
	}
}

// Deliver issues one synchronous POST of the payload. The returned error is
// non-nil only for transport-level failures; an application-level rejection
// is reported through the Outcome.
func (c *EmailJSClient) Deliver(ctx context.Context, payload *Payload) (Outcome, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("email request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read email response: %w", err)
	}

	outcome := Outcome{
		Delivered:  res.StatusCode == http.StatusOK,
		StatusCode: res.StatusCode,
		Body:       string(resBody),
	}

	if outcome.Delivered {
		c.logger.Info("email delivered", "toEmail", payload.TemplateParams.ToEmail, "ticketId", payload.TemplateParams.TicketID)
	} else {
		c.logger.Error("email delivery rejected", "status", outcome.StatusCode, "body", outcome.Body, "toEmail", payload.TemplateParams.ToEmail)
	}

	return outcome, nil
}
