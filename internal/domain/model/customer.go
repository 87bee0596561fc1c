package model

// CustomerProfile is the buyer profile supplied at payment creation. It is
// forwarded to the gateway for customer resolution and card holder info and
// is never persisted locally.
type CustomerProfile struct {
	Name              string
	Email             string
	Phone             string
	TaxID             string
	PostalCode        string
	AddressNumber     string
	AddressComplement string
}

// CardDetails is raw credit card input, required for CREDIT_CARD payments.
// Expiry uses the "MM/YY" form. Never persisted, never logged.
type CardDetails struct {
	HolderName string
	Number     string
	Expiry     string
	CVV        string
}
