package gateway

import (
	"context"
	"encoding/json"
)

// Billing types accepted by the gateway.
const (
	BillingTypePix        = "PIX"
	BillingTypeCreditCard = "CREDIT_CARD"
)

// Gateway-side charge statuses the engine maps to local state.
const (
	ChargeStatusConfirmed = "CONFIRMED"
	ChargeStatusReceived  = "RECEIVED"
	ChargeStatusRefused   = "REFUSED"
	ChargeStatusOverdue   = "OVERDUE"
)

// Client talks to the Asaas payment gateway. Implementations translate
// transport failures and non-success responses into GATEWAY_ERROR
// application errors; no business logic lives here.
type Client interface {
	// FindCustomerByEmail returns the customer matching email, or nil when
	// the directory has no match.
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)

	// CreateCustomer registers a customer and returns the created record.
	CreateCustomer(ctx context.Context, req *CustomerRequest) (*Customer, error)

	// CreateCharge creates a payment charge (PIX or credit card).
	CreateCharge(ctx context.Context, req *ChargeRequest) (*Charge, error)

	// GetCharge fetches the current gateway state of a charge.
	GetCharge(ctx context.Context, chargeID string) (*Charge, error)

	// GetPixQRCode fetches the PIX QR code for a charge.
	GetPixQRCode(ctx context.Context, chargeID string) (*PixQRCode, error)

	// RefundCharge refunds a charge, optionally with a description.
	RefundCharge(ctx context.Context, chargeID string, description string) (*Refund, error)
}

// Customer is a gateway customer record.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CustomerRequest creates a gateway customer.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	CpfCnpj string `json:"cpfCnpj,omitempty"`
}

// CreditCard carries raw card data for a charge request. Never persisted.
type CreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

// CreditCardHolderInfo is the cardholder profile the gateway requires for
// card charges.
type CreditCardHolderInfo struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	CpfCnpj           string `json:"cpfCnpj,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	AddressNumber     string `json:"addressNumber,omitempty"`
	AddressComplement string `json:"addressComplement,omitempty"`
	Phone             string `json:"phone,omitempty"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
}

// ChargeRequest creates a charge at the gateway.
type ChargeRequest struct {
	Customer             string                `json:"customer"`
	BillingType          string                `json:"billingType"`
	Value                string                `json:"value"`
	DueDate              string                `json:"dueDate"`
	Description          string                `json:"description"`
	ExternalReference    string                `json:"externalReference"`
	CreditCard           *CreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *CreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
	RemoteIP             string                `json:"remoteIp,omitempty"`
}

// Charge is the gateway's view of a payment charge. Value is a json.Number
// because the gateway emits monetary amounts as JSON numbers.
type Charge struct {
	ID                string      `json:"id"`
	Customer          string      `json:"customer"`
	BillingType       string      `json:"billingType"`
	Value             json.Number `json:"value"`
	Status            string      `json:"status"`
	DueDate           string      `json:"dueDate"`
	Description       string      `json:"description"`
	ExternalReference string      `json:"externalReference"`
	PixTransaction    string      `json:"pixTransaction,omitempty"`
	PixQrCode         string      `json:"pixQrCode,omitempty"`
	PixQrCodeImage    string      `json:"pixQrCodeImage,omitempty"`
}

// PixQRCode is the scannable payload for a PIX charge.
type PixQRCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
	Description    string `json:"description"`
}

// Refund is the gateway's record of a processed refund. Value carries the
// same JSON-number encoding as Charge.Value.
type Refund struct {
	ID                    string      `json:"id"`
	Payment               string      `json:"payment"`
	Value                 json.Number `json:"value"`
	Status                string      `json:"status"`
	TransactionReceiptURL string      `json:"transactionReceiptUrl"`
	DateCreated           string      `json:"dateCreated"`
	Description           string      `json:"description"`
}
