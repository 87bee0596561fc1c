package http

import (
	"github.com/shopspring/decimal"

	"github.com/siseg/payment-service/internal/domain/model"
	"github.com/siseg/payment-service/internal/usecase"
)

// CreatePaymentRequest is the inbound payload for payment creation: the
// payment itself plus the buyer profile forwarded to the gateway.
type CreatePaymentRequest struct {
	Payment  PaymentRequest  `json:"payment" validate:"required"`
	Customer CustomerRequest `json:"customer" validate:"required"`
}

type PaymentRequest struct {
	OrderID   int64               `json:"order_id" validate:"required,gt=0"`
	Method    model.PaymentMethod `json:"method" validate:"required,oneof=PIX CREDIT_CARD CASH"`
	Amount    decimal.Decimal     `json:"amount" validate:"required"`
	ChangeDue *decimal.Decimal    `json:"change_due,omitempty"`
	Card      *CardRequest        `json:"card,omitempty"`
}

// CardRequest mirrors what the gateway accepts: 13-19 digit numbers, an
// MM/YY expiry and a 3-4 digit CVV.
type CardRequest struct {
	HolderName string `json:"holder_name" validate:"required"`
	Number     string `json:"number" validate:"required,number,min=13,max=19"`
	Expiry     string `json:"expiry" validate:"required,datetime=01/06"`
	CVV        string `json:"cvv" validate:"required,number,min=3,max=4"`
}

type CustomerRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone,omitempty"`
	TaxID             string `json:"tax_id,omitempty"`
	PostalCode        string `json:"postal_code,omitempty"`
	AddressNumber     string `json:"address_number,omitempty"`
	AddressComplement string `json:"address_complement,omitempty"`
}

// RefundRequest carries the optional refund motive.
type RefundRequest struct {
	Motive string `json:"motive,omitempty"`
}

func (r *CreatePaymentRequest) toInput(remoteIP string) *usecase.CreatePaymentInput {
	input := &usecase.CreatePaymentInput{
		OrderID:   r.Payment.OrderID,
		Method:    r.Payment.Method,
		Amount:    r.Payment.Amount,
		ChangeDue: r.Payment.ChangeDue,
		RemoteIP:  remoteIP,
		Customer: &model.CustomerProfile{
			Name:              r.Customer.Name,
			Email:             r.Customer.Email,
			Phone:             r.Customer.Phone,
			TaxID:             r.Customer.TaxID,
			PostalCode:        r.Customer.PostalCode,
			AddressNumber:     r.Customer.AddressNumber,
			AddressComplement: r.Customer.AddressComplement,
		},
	}

	if r.Payment.Card != nil {
		input.Card = &model.CardDetails{
			HolderName: r.Payment.Card.HolderName,
			Number:     r.Payment.Card.Number,
			Expiry:     r.Payment.Card.Expiry,
			CVV:        r.Payment.Card.CVV,
		}
	}

	return input
}
