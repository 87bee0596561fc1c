package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/usecase"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

// stubPaymentRepository backs handler tests with a single in-memory payment.
type stubPaymentRepository struct {
	payment *model.Payment
}

func (s *stubPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	s.payment = payment
	return nil
}

func (s *stubPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.payment == nil || s.payment.OrderID != orderID {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "payment not found", nil)
	}
	return s.payment, nil
}

func (s *stubPaymentRepository) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error) {
	if s.payment == nil || s.payment.GatewayPaymentID == nil || *s.payment.GatewayPaymentID != gatewayPaymentID {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "payment not found", nil)
	}
	return s.payment, nil
}

func (s *stubPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	s.payment = payment
	return nil
}

func (s *stubPaymentRepository) UpdateByGatewayPaymentIDInTx(ctx context.Context, gatewayPaymentID string, fn func(payment *model.Payment) error) (*model.Payment, error) {
	payment, err := s.GetByGatewayPaymentID(ctx, gatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if err := fn(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *stubPaymentRepository) UpdateByOrderIDInTx(ctx context.Context, orderID int64, fn func(payment *model.Payment) error) (*model.Payment, error) {
	payment, err := s.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyPaymentConfirmed(ctx context.Context, orderID int64, gatewayPaymentID string) {
}

func newWebhookTestHandler(repo *stubPaymentRepository, secret string) *WebhookHandler {
	logger := zap.NewNop()
	service := usecase.NewWebhookService(repo, nil, noopNotifier{}, secret, logger)
	return NewWebhookHandler(service, logger)
}

func performWebhook(handler *WebhookHandler, token, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/pagamentos/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("asaas-access-token", token)
	}
	rec := httptest.NewRecorder()

	err := handler.HandleWebhook(e.NewContext(req, rec))
	if err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func TestWebhookHandler_InvalidToken(t *testing.T) {
	handler := newWebhookTestHandler(&stubPaymentRepository{}, "whsec_test")

	rec := performWebhook(handler, "wrong", `{"event":"PAYMENT_RECEIVED"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performWebhook(handler, "", `{"event":"PAYMENT_RECEIVED"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookHandler_UnconfiguredSecretRejects(t *testing.T) {
	handler := newWebhookTestHandler(&stubPaymentRepository{}, "")

	rec := performWebhook(handler, "", `{"event":"PAYMENT_RECEIVED"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookHandler_ReceivedEventMarksPaid(t *testing.T) {
	chargeID := "pay_1"
	repo := &stubPaymentRepository{payment: &model.Payment{
		OrderID:          5,
		Method:           model.MethodPix,
		Status:           model.StatusAuthorized,
		Amount:           decimal.NewFromFloat(25.00),
		GatewayPaymentID: &chargeID,
	}}
	handler := newWebhookTestHandler(repo, "whsec_test")

	// value arrives as a JSON number, matching the gateway's wire shape.
	body := `{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_1","status":"RECEIVED","value":25.5}}`
	rec := performWebhook(handler, "whsec_test", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"processed"}`, rec.Body.String())
	assert.Equal(t, model.StatusPaid, repo.payment.Status)
}

func TestWebhookHandler_UnknownChargeReturnsNotFound(t *testing.T) {
	handler := newWebhookTestHandler(&stubPaymentRepository{}, "whsec_test")

	body := `{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_missing"}}`
	rec := performWebhook(handler, "whsec_test", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookHandler_UnrecognizedEventIsAccepted(t *testing.T) {
	repo := &stubPaymentRepository{}
	handler := newWebhookTestHandler(repo, "whsec_test")

	body := `{"event":"PAYMENT_UPDATED","payment":{"id":"pay_1"}}`
	rec := performWebhook(handler, "whsec_test", body)

	assert.Equal(t, http.StatusOK, rec.Code)
}
