package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siseg/payment-service/internal/domain/model"
)

const (
	// defaultTaxID is charged against when the customer supplied no tax id;
	// the gateway rejects card charges without one.
	defaultTaxID = "24971563792"

	dueDateDays    = 1
	dueDateLayout  = "2006-01-02"
	expiryYearBase = "20"
)

// NewCustomerRequest maps a customer profile onto a gateway create-customer
// request. Phone numbers are reduced to digits; a missing tax id falls back
// to the default.
func NewCustomerRequest(profile *model.CustomerProfile) *CustomerRequest {
	return &CustomerRequest{
		Name:    profile.Name,
		Email:   profile.Email,
		Phone:   digitsOnly(profile.Phone),
		CpfCnpj: taxIDOrDefault(profile.TaxID),
	}
}

// NewChargeRequest maps domain inputs onto a gateway charge-creation
// request. The due date is one day after now, the description references
// the order, and the order id doubles as the external reference. Card
// fields are attached only for CREDIT_CARD charges.
func NewChargeRequest(orderID int64, amount decimal.Decimal, method model.PaymentMethod, customerID string, card *model.CardDetails, profile *model.CustomerProfile, remoteIP string, now time.Time) *ChargeRequest {
	req := &ChargeRequest{
		Customer:          customerID,
		BillingType:       BillingTypePix,
		Value:             amount.String(),
		DueDate:           now.AddDate(0, 0, dueDateDays).Format(dueDateLayout),
		Description:       fmt.Sprintf("Order #%d", orderID),
		ExternalReference: fmt.Sprintf("%d", orderID),
	}

	if method == model.MethodCreditCard && card != nil {
		req.BillingType = BillingTypeCreditCard
		req.CreditCard = newCreditCard(card)
		if profile != nil {
			req.CreditCardHolderInfo = newCardHolderInfo(profile)
		}
		if remoteIP != "" {
			req.RemoteIP = remoteIP
		}
	}

	return req
}

func newCreditCard(card *model.CardDetails) *CreditCard {
	month, year := splitExpiry(card.Expiry)
	return &CreditCard{
		HolderName:  card.HolderName,
		Number:      card.Number,
		ExpiryMonth: month,
		ExpiryYear:  year,
		CCV:         card.CVV,
	}
}

func newCardHolderInfo(profile *model.CustomerProfile) *CreditCardHolderInfo {
	phone := digitsOnly(profile.Phone)
	return &CreditCardHolderInfo{
		Name:              profile.Name,
		Email:             profile.Email,
		CpfCnpj:           taxIDOrDefault(profile.TaxID),
		PostalCode:        digitsOnly(profile.PostalCode),
		AddressNumber:     profile.AddressNumber,
		AddressComplement: profile.AddressComplement,
		Phone:             phone,
		MobilePhone:       phone,
	}
}

// splitExpiry breaks a "MM/YY" expiry into gateway month and four-digit
// year fields.
func splitExpiry(expiry string) (month, year string) {
	parts := strings.SplitN(expiry, "/", 2)
	month = parts[0]
	if len(parts) == 2 {
		year = expiryYearBase + parts[1]
	}
	return month, year
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func taxIDOrDefault(taxID string) string {
	if taxID == "" {
		return defaultTaxID
	}
	return taxID
}
