package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/gateway"
	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/usecase"
)

// stubGatewayClient returns canned gateway records so handler tests can
// drive electronic payments without HTTP.
type stubGatewayClient struct{}

func (stubGatewayClient) FindCustomerByEmail(ctx context.Context, email string) (*gateway.Customer, error) {
	return &gateway.Customer{ID: "cus_1", Email: email}, nil
}

func (stubGatewayClient) CreateCustomer(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error) {
	return &gateway.Customer{ID: "cus_1", Email: req.Email}, nil
}

func (stubGatewayClient) CreateCharge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.Charge, error) {
	return &gateway.Charge{ID: "pay_1", Status: gateway.ChargeStatusConfirmed, BillingType: req.BillingType}, nil
}

func (stubGatewayClient) GetCharge(ctx context.Context, chargeID string) (*gateway.Charge, error) {
	return &gateway.Charge{ID: chargeID, Status: gateway.ChargeStatusConfirmed}, nil
}

func (stubGatewayClient) GetPixQRCode(ctx context.Context, chargeID string) (*gateway.PixQRCode, error) {
	return &gateway.PixQRCode{Payload: "copy-paste"}, nil
}

func (stubGatewayClient) RefundCharge(ctx context.Context, chargeID string, description string) (*gateway.Refund, error) {
	return &gateway.Refund{ID: "ref_1", Value: "25.00"}, nil
}

func newPaymentTestHandler(repo *stubPaymentRepository) *PaymentHandler {
	logger := zap.NewNop()
	service := usecase.NewPaymentService(repo, nil, stubGatewayClient{}, usecase.NewRefundValidator(), logger)
	return NewPaymentHandler(service, logger)
}

func performCreate(handler *PaymentHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/pagamentos", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := handler.CreatePayment(e.NewContext(req, rec))
	if err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func cardPaymentBody(number, expiry, cvv string) string {
	return fmt.Sprintf(`{
		"payment": {
			"order_id": 1,
			"method": "CREDIT_CARD",
			"amount": 99.90,
			"card": {"holder_name": "MARIA SILVA", "number": %q, "expiry": %q, "cvv": %q}
		},
		"customer": {"name": "Maria Silva", "email": "maria@example.com"}
	}`, number, expiry, cvv)
}

func TestPaymentHandler_CreatePayment_Cash(t *testing.T) {
	repo := &stubPaymentRepository{}
	handler := newPaymentTestHandler(repo)

	rec := performCreate(handler, `{
		"payment": {"order_id": 3, "method": "CASH", "amount": 50.00},
		"customer": {"name": "Maria Silva", "email": "maria@example.com"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.payment)
	assert.Equal(t, model.StatusPending, repo.payment.Status)
}

func TestPaymentHandler_CreatePayment_CardFormatValidation(t *testing.T) {
	cases := []struct {
		name   string
		number string
		expiry string
		cvv    string
	}{
		{"card number too short", "4111", "12/28", "123"},
		{"card number with letters", "4111a11111111111", "12/28", "123"},
		{"expiry without slash", "4111111111111111", "1228", "123"},
		{"expiry with impossible month", "4111111111111111", "13/28", "123"},
		{"cvv too short", "4111111111111111", "12/28", "12"},
		{"cvv with letters", "4111111111111111", "12/28", "12a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newPaymentTestHandler(&stubPaymentRepository{})
			rec := performCreate(handler, cardPaymentBody(tc.number, tc.expiry, tc.cvv))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("well-formed card is accepted", func(t *testing.T) {
		handler := newPaymentTestHandler(&stubPaymentRepository{})
		rec := performCreate(handler, cardPaymentBody("4111111111111111", "12/28", "123"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPaymentHandler_CreatePayment_MalformedBody(t *testing.T) {
	handler := newPaymentTestHandler(&stubPaymentRepository{})

	rec := performCreate(handler, `{"payment": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
