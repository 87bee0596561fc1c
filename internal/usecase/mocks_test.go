package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/siseg/payment-service/internal/domain/gateway"
	"github.com/siseg/payment-service/internal/domain/model"
)

// MockPaymentRepository is a mock implementation of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// UpdateByGatewayPaymentIDInTx mimics the locked read-modify-write: the
// configured payment is handed to fn and returned when fn succeeds.
func (m *MockPaymentRepository) UpdateByGatewayPaymentIDInTx(ctx context.Context, gatewayPaymentID string, fn func(payment *model.Payment) error) (*model.Payment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	payment := args.Get(0).(*model.Payment)
	if err := fn(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (m *MockPaymentRepository) UpdateByOrderIDInTx(ctx context.Context, orderID int64, fn func(payment *model.Payment) error) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	payment := args.Get(0).(*model.Payment)
	if err := fn(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// MockGatewayClient is a mock implementation of gateway.Client
type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) FindCustomerByEmail(ctx context.Context, email string) (*gateway.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Customer), args.Error(1)
}

func (m *MockGatewayClient) CreateCustomer(ctx context.Context, req *gateway.CustomerRequest) (*gateway.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Customer), args.Error(1)
}

func (m *MockGatewayClient) CreateCharge(ctx context.Context, req *gateway.ChargeRequest) (*gateway.Charge, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Charge), args.Error(1)
}

func (m *MockGatewayClient) GetCharge(ctx context.Context, chargeID string) (*gateway.Charge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Charge), args.Error(1)
}

func (m *MockGatewayClient) GetPixQRCode(ctx context.Context, chargeID string) (*gateway.PixQRCode, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PixQRCode), args.Error(1)
}

func (m *MockGatewayClient) RefundCharge(ctx context.Context, chargeID string, description string) (*gateway.Refund, error) {
	args := m.Called(ctx, chargeID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Refund), args.Error(1)
}

// fakeNotifier records confirmed-payment notifications on a channel so
// tests can wait for the asynchronous call.
type fakeNotifier struct {
	calls chan notifyCall
}

type notifyCall struct {
	orderID  int64
	chargeID string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan notifyCall, 4)}
}

func (f *fakeNotifier) NotifyPaymentConfirmed(ctx context.Context, orderID int64, gatewayPaymentID string) {
	f.calls <- notifyCall{orderID: orderID, chargeID: gatewayPaymentID}
}

// await returns the next recorded notification, or false on timeout.
func (f *fakeNotifier) await(d time.Duration) (notifyCall, bool) {
	select {
	case call := <-f.calls:
		return call, true
	case <-time.After(d):
		return notifyCall{}, false
	}
}
