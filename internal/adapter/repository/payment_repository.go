package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/siseg/payment-service/internal/domain/model"
	domainRepo "github.com/siseg/payment-service/internal/domain/repository"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a GORM-backed payment repository.
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if err != nil {
		r.logger.Error("failed to create payment",
			zap.Int64("order_id", payment.OrderID),
			zap.Error(err))
		return apperrors.NewAppError(apperrors.ErrInternal, "failed to create payment", err)
	}
	return nil
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		return nil, r.lookupError(err, "order", orderID)
	}

	return &payment, nil
}

func (r *paymentRepository) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("gateway_payment_id = ?", gatewayPaymentID).
		First(&payment).Error
	if err != nil {
		return nil, r.lookupError(err, "charge", gatewayPaymentID)
	}

	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	err := r.db.WithContext(ctx).Save(payment).Error
	if err != nil {
		r.logger.Error("failed to update payment",
			zap.Int64("order_id", payment.OrderID),
			zap.Error(err))
		return apperrors.NewAppError(apperrors.ErrInternal, "failed to update payment", err)
	}
	return nil
}

func (r *paymentRepository) UpdateByGatewayPaymentIDInTx(ctx context.Context, gatewayPaymentID string, fn func(payment *model.Payment) error) (*model.Payment, error) {
	return r.updateInTx(ctx, "gateway_payment_id = ?", gatewayPaymentID, fn)
}

func (r *paymentRepository) UpdateByOrderIDInTx(ctx context.Context, orderID int64, fn func(payment *model.Payment) error) (*model.Payment, error) {
	return r.updateInTx(ctx, "order_id = ?", orderID, fn)
}

// updateInTx loads the payment under a row lock, applies fn, and persists
// the result within one transaction. Concurrent callers for the same row
// serialize on the lock, so fn always sees a consistent snapshot.
func (r *paymentRepository) updateInTx(ctx context.Context, query string, arg interface{}, fn func(payment *model.Payment) error) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(query, arg).
			First(&payment).Error
		if err != nil {
			return r.lookupError(err, "payment", arg)
		}

		if err := fn(&payment); err != nil {
			return err
		}

		if err := tx.Save(&payment).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrInternal, "failed to update payment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) lookupError(err error, kind string, key interface{}) error {
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewAppError(apperrors.ErrNotFound, "payment not found", err)
	}
	r.logger.Error("payment lookup failed",
		zap.String("kind", kind),
		zap.Any("key", key),
		zap.Error(err))
	return apperrors.NewAppError(apperrors.ErrInternal, "failed to load payment", err)
}
