package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/config"
	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/domain/notification"
)

const (
	defaultTimeout = 5 * time.Second

	confirmedPath = "/api/pedidos/pagamento-confirmado"
)

type paymentConfirmedNotification struct {
	OrderID          int64               `json:"pedidoId"`
	PaymentStatus    model.PaymentStatus `json:"statusPagamento"`
	GatewayPaymentID string              `json:"asaasPaymentId"`
}

// OrderNotifier notifies the order-management system over HTTP.
type OrderNotifier struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

// NewOrderNotifier creates an HTTP order notifier.
func NewOrderNotifier(cfg *config.OrderServiceConfig, logger *zap.Logger) notification.OrderNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OrderNotifier{
		baseURL:    cfg.URL,
		serviceKey: cfg.ServiceKey,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NotifyPaymentConfirmed posts a payment-confirmed notification. The call is
// one-way: every failure is logged and swallowed so it can never block the
// reconciliation path that triggered it.
func (n *OrderNotifier) NotifyPaymentConfirmed(ctx context.Context, orderID int64, gatewayPaymentID string) {
	notificationID := uuid.NewString()

	payload, err := json.Marshal(paymentConfirmedNotification{
		OrderID:          orderID,
		PaymentStatus:    model.StatusPaid,
		GatewayPaymentID: gatewayPaymentID,
	})
	if err != nil {
		n.logger.Warn("failed to encode order notification",
			zap.String("notification_id", notificationID),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+confirmedPath, bytes.NewBuffer(payload))
	if err != nil {
		n.logger.Warn("failed to build order notification request",
			zap.String("notification_id", notificationID),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Service-Key", n.serviceKey)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("failed to notify order service of confirmed payment",
			zap.String("notification_id", notificationID),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Warn("order service rejected payment notification",
			zap.String("notification_id", notificationID),
			zap.Int64("order_id", orderID),
			zap.Int("status_code", resp.StatusCode))
		return
	}

	n.logger.Info("order service notified of confirmed payment",
		zap.String("notification_id", notificationID),
		zap.Int64("order_id", orderID),
		zap.String("charge_id", gatewayPaymentID))
}
