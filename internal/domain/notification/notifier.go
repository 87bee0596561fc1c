package notification

import "context"

// OrderNotifier informs the order-management system that a payment was
// confirmed. The call is one-way and best-effort: implementations log
// failures and never return them to the reconciliation path.
type OrderNotifier interface {
	NotifyPaymentConfirmed(ctx context.Context, orderID int64, gatewayPaymentID string)
}
