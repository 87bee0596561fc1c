package repository

import (
	"context"

	"github.com/siseg/payment-service/internal/domain/model"
)

// PaymentRepository persists payments. Lookups that find nothing return a
// NOT_FOUND application error.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error)
	GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error

	// UpdateInTx runs fn against a row-locked load of the payment owning
	// gatewayPaymentID inside a transaction, then persists the mutated
	// payment. Used by the webhook and refund paths so concurrent
	// deliveries for the same charge serialize instead of interleaving.
	UpdateByGatewayPaymentIDInTx(ctx context.Context, gatewayPaymentID string, fn func(payment *model.Payment) error) (*model.Payment, error)

	// UpdateByOrderIDInTx is the order-id keyed variant of the locked
	// read-modify-write.
	UpdateByOrderIDInTx(ctx context.Context, orderID int64, fn func(payment *model.Payment) error) (*model.Payment, error)
}
