package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/siseg/payment-service/internal/domain/gateway"
	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/domain/repository"
	apperrors "github.com/siseg/payment-service/pkg/errors"
)

// defaultRefundDescription is sent to the gateway when the caller supplies
// no refund motive.
const defaultRefundDescription = "Refund of cancelled order"

// CreatePaymentInput carries everything needed to create a payment for an
// order. Card is required iff Method is CREDIT_CARD; RemoteIP feeds the
// gateway's card fraud signaling and is otherwise unused.
type CreatePaymentInput struct {
	OrderID   int64
	Method    model.PaymentMethod
	Amount    decimal.Decimal
	ChangeDue *decimal.Decimal
	Customer  *model.CustomerProfile
	Card      *model.CardDetails
	RemoteIP  string
}

// PaymentService owns the payment lifecycle: creation through the gateway,
// read-time status synchronization, and refund execution.
type PaymentService struct {
	payments  repository.PaymentRepository
	cache     repository.CacheRepository
	gateway   gateway.Client
	validator *RefundValidator
	logger    *zap.Logger
}

// NewPaymentService creates the payment service. cache may be nil to run
// without the read cache.
func NewPaymentService(
	payments repository.PaymentRepository,
	cache repository.CacheRepository,
	gatewayClient gateway.Client,
	validator *RefundValidator,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		cache:     cache,
		gateway:   gatewayClient,
		validator: validator,
		logger:    logger,
	}
}

// CreatePayment creates a payment for an order and drives the method's
// gateway flow. Nothing is persisted when a gateway call fails, so creation
// is all-or-nothing from the caller's point of view.
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*model.Payment, error) {
	if err := s.validateCreateInput(ctx, input); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		OrderID:   input.OrderID,
		Method:    input.Method,
		Status:    model.StatusPending,
		Amount:    input.Amount,
		ChangeDue: input.ChangeDue,
	}

	switch input.Method {
	case model.MethodPix:
		if err := s.processPixPayment(ctx, payment, input.Customer); err != nil {
			return nil, err
		}
	case model.MethodCreditCard:
		if err := s.processCardPayment(ctx, payment, input); err != nil {
			return nil, err
		}
	case model.MethodCash:
		// No gateway interaction; the payment settles in person.
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.cachePayment(ctx, payment)

	s.logger.Info("payment created",
		zap.Int64("order_id", payment.OrderID),
		zap.String("method", string(payment.Method)),
		zap.String("status", string(payment.Status)),
	)
	return payment, nil
}

func (s *PaymentService) validateCreateInput(ctx context.Context, input *CreatePaymentInput) error {
	if input == nil {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "payment request is required", nil)
	}
	if input.OrderID <= 0 {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "order id must be positive", nil)
	}
	if !input.Method.IsValid() {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "unknown payment method", nil)
	}
	if !input.Amount.IsPositive() {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "amount must be positive", nil)
	}
	if input.Method == model.MethodCreditCard && input.Card == nil {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "card details are required for credit card payments", nil)
	}
	if input.Method.Electronic() && input.Customer == nil {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "customer profile is required for electronic payments", nil)
	}

	if existing, err := s.payments.GetByOrderID(ctx, input.OrderID); err == nil && existing != nil {
		return apperrors.NewAppError(apperrors.ErrInvalidRequest, "order already has a payment", nil)
	}

	return nil
}

func (s *PaymentService) processPixPayment(ctx context.Context, payment *model.Payment, customer *model.CustomerProfile) error {
	customerID, err := s.resolveCustomer(ctx, customer)
	if err != nil {
		return err
	}

	req := gateway.NewChargeRequest(payment.OrderID, payment.Amount, model.MethodPix, customerID, nil, nil, "", time.Now())
	charge, err := s.gateway.CreateCharge(ctx, req)
	if err != nil {
		return apperrors.Wrap(err, "failed to create PIX charge")
	}

	payment.GatewayPaymentID = &charge.ID
	payment.GatewayCustomerID = &customerID
	payment.Status = model.StatusAuthorized

	// The charge already exists at the gateway, so a QR fetch failure must
	// not fail the creation.
	s.attachPixQRCode(ctx, payment, charge.ID)

	return nil
}

// attachPixQRCode is advisory: failures are logged and swallowed.
func (s *PaymentService) attachPixQRCode(ctx context.Context, payment *model.Payment, chargeID string) {
	qr, err := s.gateway.GetPixQRCode(ctx, chargeID)
	if err != nil {
		apperrors.LogError(s.logger, err, "failed to fetch PIX QR code",
			zap.String("charge_id", chargeID),
			zap.Int64("order_id", payment.OrderID),
		)
		return
	}
	if qr == nil {
		return
	}

	payment.QRCodePayload = &qr.Payload
	payment.QRCodeImage = &qr.EncodedImage
}

func (s *PaymentService) processCardPayment(ctx context.Context, payment *model.Payment, input *CreatePaymentInput) error {
	customerID, err := s.resolveCustomer(ctx, input.Customer)
	if err != nil {
		return err
	}

	req := gateway.NewChargeRequest(payment.OrderID, payment.Amount, model.MethodCreditCard, customerID, input.Card, input.Customer, input.RemoteIP, time.Now())
	charge, err := s.gateway.CreateCharge(ctx, req)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credit card charge")
	}

	payment.GatewayPaymentID = &charge.ID
	payment.GatewayCustomerID = &customerID

	// Only a gateway-confirmed charge counts as authorized funds; anything
	// else stays pending until a webhook or sync settles it.
	if charge.Status == gateway.ChargeStatusConfirmed {
		payment.Status = model.StatusAuthorized
	} else {
		payment.Status = model.StatusPending
	}

	return nil
}

// resolveCustomer finds an existing gateway customer by email or creates
// one. Idempotent for a given email.
func (s *PaymentService) resolveCustomer(ctx context.Context, profile *model.CustomerProfile) (string, error) {
	existing, err := s.gateway.FindCustomerByEmail(ctx, profile.Email)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to look up gateway customer")
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := s.gateway.CreateCustomer(ctx, gateway.NewCustomerRequest(profile))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create gateway customer")
	}
	return created.ID, nil
}

// GetPaymentByOrder returns the payment for an order. For PIX payments that
// are still in flight it first reconciles local status against the gateway;
// sync failures are logged and the last-known local state is returned.
func (s *PaymentService) GetPaymentByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if cached := s.cachedPayment(ctx, orderID); cached != nil && !needsSync(cached) {
		return cached, nil
	}

	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if needsSync(payment) {
		s.syncWithGateway(ctx, payment)
	}

	s.cachePayment(ctx, payment)
	return payment, nil
}

// needsSync reports whether a payment's local status may lag the gateway.
func needsSync(p *model.Payment) bool {
	return p.Method == model.MethodPix &&
		p.Status != model.StatusPaid &&
		p.Status != model.StatusRefunded &&
		p.GatewayPaymentID != nil
}

// syncWithGateway is a read-side effect: it never surfaces errors.
func (s *PaymentService) syncWithGateway(ctx context.Context, payment *model.Payment) {
	charge, err := s.gateway.GetCharge(ctx, *payment.GatewayPaymentID)
	if err != nil {
		apperrors.LogError(s.logger, err, "failed to sync payment status with gateway",
			zap.Int64("order_id", payment.OrderID),
			zap.String("charge_id", *payment.GatewayPaymentID),
		)
		return
	}
	if charge == nil || charge.Status == "" {
		return
	}

	var next model.PaymentStatus
	switch charge.Status {
	case gateway.ChargeStatusConfirmed, gateway.ChargeStatusReceived:
		next = model.StatusPaid
	case gateway.ChargeStatusRefused, gateway.ChargeStatusOverdue:
		next = model.StatusRefused
	default:
		return
	}

	if next == payment.Status {
		return
	}

	payment.Status = next
	payment.UpdatedAt = time.Now()

	if err := s.payments.Update(ctx, payment); err != nil {
		apperrors.LogError(s.logger, err, "failed to persist synced payment status",
			zap.Int64("order_id", payment.OrderID),
		)
		return
	}

	s.invalidateCache(ctx, payment.OrderID)
	s.logger.Info("payment status synced from gateway",
		zap.Int64("order_id", payment.OrderID),
		zap.String("charge_id", *payment.GatewayPaymentID),
		zap.String("status", string(next)),
	)
}

// RefundPayment validates and executes a refund for the order's payment.
// The locked read-modify-write serializes concurrent refund attempts; the
// loser of the race sees REFUNDED and fails with ALREADY_REFUNDED.
func (s *PaymentService) RefundPayment(ctx context.Context, orderID int64, motive string) (*model.Payment, error) {
	updated, err := s.payments.UpdateByOrderIDInTx(ctx, orderID, func(payment *model.Payment) error {
		if err := s.validator.ValidateRefundable(payment); err != nil {
			return err
		}

		if payment.Method == model.MethodCash {
			return s.refundCash(payment)
		}
		return s.refundElectronic(ctx, payment, motive)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, orderID)

	s.logger.Info("refund processed",
		zap.Int64("order_id", orderID),
		zap.String("refunded_amount", updated.RefundedAmount.String()),
	)
	return updated, nil
}

func (s *PaymentService) refundCash(payment *model.Payment) error {
	now := time.Now()
	amount := payment.Amount

	payment.Status = model.StatusRefunded
	payment.RefundedAmount = &amount
	payment.RefundedAt = &now
	payment.UpdatedAt = now
	return nil
}

func (s *PaymentService) refundElectronic(ctx context.Context, payment *model.Payment, motive string) error {
	description := motive
	if description == "" {
		description = defaultRefundDescription
	}

	refund, err := s.gateway.RefundCharge(ctx, *payment.GatewayPaymentID, description)
	if err != nil {
		return apperrors.Wrap(err, "failed to refund charge at gateway")
	}

	refundedAmount, err := decimal.NewFromString(refund.Value.String())
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrGateway, "gateway reported a malformed refund value", err)
	}

	now := time.Now()
	payment.Status = model.StatusRefunded
	payment.RefundedAmount = &refundedAmount
	payment.RefundedAt = &now
	payment.GatewayRefundID = &refund.ID
	payment.UpdatedAt = now
	return nil
}

// Cache helpers. The cache is advisory: every failure is logged and
// ignored.

func (s *PaymentService) cachedPayment(ctx context.Context, orderID int64) *model.Payment {
	if s.cache == nil {
		return nil
	}
	payment, err := s.cache.GetByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Warn("payment cache read failed", zap.Int64("order_id", orderID), zap.Error(err))
		return nil
	}
	return payment
}

func (s *PaymentService) cachePayment(ctx context.Context, payment *model.Payment) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, payment); err != nil {
		s.logger.Warn("payment cache write failed", zap.Int64("order_id", payment.OrderID), zap.Error(err))
	}
}

func (s *PaymentService) invalidateCache(ctx context.Context, orderID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, orderID); err != nil {
		s.logger.Warn("payment cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}
