package usecase

import (
	"github.com/siseg/payment-service/internal/domain/model"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

// RefundValidator checks whether a payment may be refunded. Checks run in
// order and each failure carries a distinct error code so callers can tell
// an idempotent retry from a genuinely invalid request.
type RefundValidator struct{}

// NewRefundValidator creates a refund validator.
func NewRefundValidator() *RefundValidator {
	return &RefundValidator{}
}

// ValidateRefundable returns nil when the payment can be refunded.
func (v *RefundValidator) ValidateRefundable(payment *model.Payment) error {
	if payment == nil {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "payment reference is required", nil)
	}

	if payment.Status == model.StatusRefunded {
		return apperrors.NewAppError(apperrors.ErrAlreadyRefunded, "payment was already refunded", nil)
	}

	if payment.Status != model.StatusPaid && payment.Status != model.StatusAuthorized {
		return apperrors.NewAppError(apperrors.ErrInvalidState, "only PAID or AUTHORIZED payments may be refunded", nil)
	}

	if payment.Method.Electronic() && payment.GatewayPaymentID == nil {
		return apperrors.NewAppError(apperrors.ErrInvalidState, "electronic payment missing gateway reference", nil)
	}

	return nil
}
