package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/domain/notification"
	"github.com/siseg/payment-service/internal/domain/repository"
)

// WebhookService applies asynchronous gateway status notifications to local
// payment state.
type WebhookService struct {
	payments repository.PaymentRepository
	cache    repository.CacheRepository
	notifier notification.OrderNotifier
	secret   string
	logger   *zap.Logger
}

// NewWebhookService creates the webhook service. cache may be nil.
func NewWebhookService(
	payments repository.PaymentRepository,
	cache repository.CacheRepository,
	notifier notification.OrderNotifier,
	secret string,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		payments: payments,
		cache:    cache,
		notifier: notifier,
		secret:   secret,
		logger:   logger,
	}
}

// ValidateAccessToken compares the inbound shared secret against the
// configured one. An unset secret rejects every delivery.
func (s *WebhookService) ValidateAccessToken(token string) bool {
	if s.secret == "" {
		s.logger.Warn("webhook secret not configured, rejecting delivery")
		return false
	}
	return token != "" && token == s.secret
}

// ProcessEvent applies one webhook event. Unrecognized or malformed events
// are a silent no-op. An event referencing a charge no payment owns fails
// with NOT_FOUND so the data inconsistency surfaces to the caller.
func (s *WebhookService) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	if !event.Recognized() {
		s.logger.Debug("ignoring unrecognized webhook event")
		return nil
	}

	chargeID := event.Payment.ID
	confirmed := false
	refused := false

	updated, err := s.payments.UpdateByGatewayPaymentIDInTx(ctx, chargeID, func(payment *model.Payment) error {
		// REFUNDED is terminal; a late status event must not resurrect it.
		if payment.Status == model.StatusRefunded {
			s.logger.Warn("ignoring webhook event for refunded payment",
				zap.Int64("order_id", payment.OrderID),
				zap.String("charge_id", chargeID),
			)
			return nil
		}

		switch event.Event {
		case model.EventPaymentReceived, model.EventPaymentConfirmed:
			payment.Status = model.StatusPaid
			payment.UpdatedAt = time.Now()
			confirmed = true
		case model.EventPaymentRefused:
			payment.Status = model.StatusRefused
			payment.UpdatedAt = time.Now()
			refused = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache(ctx, updated.OrderID)

	if confirmed {
		s.logger.Info("payment confirmed via webhook",
			zap.Int64("order_id", updated.OrderID),
			zap.String("charge_id", chargeID),
			zap.String("event", event.Event),
		)
		// Best-effort: the order system is notified without blocking the
		// webhook response.
		go s.notifier.NotifyPaymentConfirmed(context.WithoutCancel(ctx), updated.OrderID, chargeID)
	}

	if refused {
		s.logger.Warn("payment refused via webhook",
			zap.Int64("order_id", updated.OrderID),
			zap.String("charge_id", chargeID),
		)
	}

	return nil
}

func (s *WebhookService) invalidateCache(ctx context.Context, orderID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, orderID); err != nil {
		s.logger.Warn("payment cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}
