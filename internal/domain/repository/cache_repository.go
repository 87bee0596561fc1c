package repository

import (
	"context"

	"github.com/siseg/payment-service/internal/domain/model"
)

// CacheRepository is an advisory read cache for payments keyed by order id.
// A nil payment and nil error means a cache miss; errors are logged by the
// caller and never block the primary path.
type CacheRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error)
	Set(ctx context.Context, payment *model.Payment) error
	Invalidate(ctx context.Context, orderID int64) error
}
