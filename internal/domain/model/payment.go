package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	MethodPix        PaymentMethod = "PIX"
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodCash       PaymentMethod = "CASH"
)

// Scan implements sql.Scanner interface
func (m *PaymentMethod) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	}
	return nil
}

// Value implements driver.Valuer interface
func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodPix, MethodCreditCard, MethodCash:
		return true
	}
	return false
}

// Electronic reports whether the method settles through the gateway.
func (m PaymentMethod) Electronic() bool {
	return m != MethodCash
}

// PaymentStatus is the local lifecycle state of a payment. REFUNDED is
// terminal; no transition ever leaves it.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusAuthorized PaymentStatus = "AUTHORIZED"
	StatusPaid       PaymentStatus = "PAID"
	StatusRefused    PaymentStatus = "REFUSED"
	StatusRefunded   PaymentStatus = "REFUNDED"
)

// Scan implements sql.Scanner interface
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		*s = StatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Payment is the record reconciled against the gateway. One payment exists
// per order.
type Payment struct {
	ID                int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64            `gorm:"column:order_id;uniqueIndex;not null" json:"order_id"`
	Method            PaymentMethod    `gorm:"size:20;not null" json:"method"`
	Status            PaymentStatus    `gorm:"size:20;not null" json:"status"`
	Amount            decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"amount"`
	ChangeDue         *decimal.Decimal `gorm:"column:change_due;type:decimal(10,2)" json:"change_due,omitempty"`
	QRCodePayload     *string          `gorm:"column:qr_code_payload;type:text" json:"qr_code_payload,omitempty"`
	QRCodeImage       *string          `gorm:"column:qr_code_image;type:text" json:"qr_code_image,omitempty"`
	GatewayPaymentID  *string          `gorm:"column:gateway_payment_id;size:100;index" json:"gateway_payment_id,omitempty"`
	GatewayCustomerID *string          `gorm:"column:gateway_customer_id;size:100" json:"gateway_customer_id,omitempty"`
	RefundedAmount    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"refunded_amount,omitempty"`
	RefundedAt        *time.Time       `json:"refunded_at,omitempty"`
	GatewayRefundID   *string          `gorm:"column:gateway_refund_id;size:100" json:"gateway_refund_id,omitempty"`
	CreatedAt         time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
