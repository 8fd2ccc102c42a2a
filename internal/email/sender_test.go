package email

import (
	"context"
	"errors"
	"testing"

	"github.com/Sports-Club-Management-Platform/email-microservive/internal/barcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, payload *Payload) (Outcome, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(Outcome), args.Error(1)
}

func TestEmailJSSenderSend(t *testing.T) {
	mockDeliverer := new(MockDeliverer)
	sender := NewEmailJSSender(NewPayloadBuilder(testEmailJSConfig), mockDeliverer)

	mockDeliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(p *Payload) bool {
		return p.TemplateParams.TicketID == testEvent.TicketID &&
			p.TemplateParams.ToEmail == testEvent.ToEmail
	})).Return(Outcome{Delivered: true, StatusCode: 200}, nil).Once()

	err := sender.Send(context.Background(), testEvent)

	require.NoError(t, err)
	mockDeliverer.AssertExpectations(t)
}

func TestEmailJSSenderSendRejectedIsNotAnError(t *testing.T) {
	mockDeliverer := new(MockDeliverer)
	sender := NewEmailJSSender(NewPayloadBuilder(testEmailJSConfig), mockDeliverer)

	rejected := Outcome{Delivered: false, StatusCode: 400, Body: "Bad Request"}
	mockDeliverer.On("Deliver", mock.Anything, mock.Anything).Return(rejected, nil).Once()

	err := sender.Send(context.Background(), testEvent)

	require.NoError(t, err)
	mockDeliverer.AssertExpectations(t)
}

func TestEmailJSSenderSendTransportError(t *testing.T) {
	mockDeliverer := new(MockDeliverer)
	sender := NewEmailJSSender(NewPayloadBuilder(testEmailJSConfig), mockDeliverer)

	transportErr := errors.New("connection refused")
	mockDeliverer.On("Deliver", mock.Anything, mock.Anything).Return(Outcome{}, transportErr).Once()

	err := sender.Send(context.Background(), testEvent)

	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	mockDeliverer.AssertExpectations(t)
}

func TestEmailJSSenderSendRenderError(t *testing.T) {
	mockDeliverer := new(MockDeliverer)
	sender := NewEmailJSSender(NewPayloadBuilder(testEmailJSConfig), mockDeliverer)

	event := testEvent
	event.TicketID = "12"

	err := sender.Send(context.Background(), event)

	require.Error(t, err)
	assert.ErrorIs(t, err, barcode.ErrInvalidTicketID)
	mockDeliverer.AssertNotCalled(t, "Deliver")
}
