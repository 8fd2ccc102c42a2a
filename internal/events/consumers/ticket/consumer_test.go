package ticket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/barcode"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/config"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/email"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/events"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/logs"
	"github.com/Sports-Club-Management-Platform/email-microservive/internal/rabbitmq"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const validEventJSON = `{
	"user_name": "Jane Doe",
	"ticket_name": "Final",
	"ticket_price": "150",
	"ticket_id": "789109876543",
	"to_email": "jane@example.com"
}`

type MockSubscriber struct {
	mock.Mock
}

func (m *MockSubscriber) Subscribe(ctx context.Context, opts rabbitmq.SubscribeOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, event events.TicketPurchasedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeAcknowledger records the ack/nack decision made for a delivery.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func deliveryWithBody(body string) (amqp091.Delivery, *fakeAcknowledger) {
	ack := &fakeAcknowledger{}
	return amqp091.Delivery{Acknowledger: ack, Body: []byte(body)}, ack
}

func TestStart(t *testing.T) {
	logger := logs.New("ERROR")
	mockSender := new(MockSender)
	mockSubscriber := new(MockSubscriber)

	consumer := NewTicketPurchasedConsumer(logger, mockSender, mockSubscriber)

	t.Run("SubscribesWithTicketTopology", func(t *testing.T) {
		mockSubscriber.On("Subscribe", mock.Anything, mock.MatchedBy(func(opts rabbitmq.SubscribeOptions) bool {
			return opts.Exchange == "exchange" &&
				opts.ExchangeType == rabbitmq.ExchangeTopic &&
				opts.QueueName == "EMAILS" &&
				opts.BindingKey == "EMAILS" &&
				opts.Handler != nil
		})).Return(nil).Once()

		err := consumer.Start(context.Background())

		assert.NoError(t, err)
		mockSubscriber.AssertExpectations(t)
	})

	t.Run("SubscribeError", func(t *testing.T) {
		expectedErr := errors.New("subscribe failed")
		mockSubscriber.On("Subscribe", mock.Anything, mock.Anything).Return(expectedErr).Once()

		err := consumer.Start(context.Background())

		assert.Equal(t, expectedErr, err)
		mockSubscriber.AssertExpectations(t)
	})
}

func TestHandleTicketPurchasedEvent(t *testing.T) {
	logger := logs.New("ERROR")

	t.Run("SuccessAcks", func(t *testing.T) {
		mockSender := new(MockSender)
		consumer := NewTicketPurchasedConsumer(logger, mockSender, new(MockSubscriber))

		mockSender.On("Send", mock.Anything, mock.MatchedBy(func(e events.TicketPurchasedEvent) bool {
			return e.TicketID == "789109876543" && e.ToEmail == "jane@example.com"
		})).Return(nil).Once()

		d, ack := deliveryWithBody(validEventJSON)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		mockSender.AssertExpectations(t)
	})

	t.Run("InvalidJSONDeadLetters", func(t *testing.T) {
		mockSender := new(MockSender)
		consumer := NewTicketPurchasedConsumer(logger, mockSender, new(MockSubscriber))

		d, ack := deliveryWithBody(`{invalid json}`)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		mockSender.AssertNotCalled(t, "Send")
	})

	t.Run("IncompleteEventDeadLetters", func(t *testing.T) {
		mockSender := new(MockSender)
		consumer := NewTicketPurchasedConsumer(logger, mockSender, new(MockSubscriber))

		d, ack := deliveryWithBody(`{"user_name": "Jane Doe"}`)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		mockSender.AssertNotCalled(t, "Send")
	})

	t.Run("RenderErrorDeadLetters", func(t *testing.T) {
		mockSender := new(MockSender)
		consumer := NewTicketPurchasedConsumer(logger, mockSender, new(MockSubscriber))

		renderErr := barcode.ErrInvalidTicketID
		mockSender.On("Send", mock.Anything, mock.Anything).Return(renderErr).Once()

		d, ack := deliveryWithBody(validEventJSON)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		mockSender.AssertExpectations(t)
	})

	t.Run("DeliveryRejectedStillAcks", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Bad Request"))
		}))
		defer srv.Close()

		builder := email.NewPayloadBuilder(config.EmailJSConfig{
			ServiceID:  "service_abc",
			TemplateID: "template_xyz",
			PublicKey:  "pub_key",
			PrivateKey: "priv_key",
		})
		sender := email.NewEmailJSSender(builder, email.NewEmailJSClient(logger, srv.URL))
		consumer := NewTicketPurchasedConsumer(logger, sender, new(MockSubscriber))

		d, ack := deliveryWithBody(validEventJSON)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("TransientSendErrorRequeues", func(t *testing.T) {
		mockSender := new(MockSender)
		consumer := NewTicketPurchasedConsumer(logger, mockSender, new(MockSubscriber))

		mockSender.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		d, ack := deliveryWithBody(validEventJSON)
		consumer.handleTicketPurchasedEvent(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
		mockSender.AssertExpectations(t)
	})
}
