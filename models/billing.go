package models

// CreditPack is one of the fixed purchasable top-ups. Pack identifiers and
// credit amounts are fixed by the product; prices live in the billing
// provider's catalogue and are referenced by PriceID.
type CreditPack struct {
	// ID is the stable product identifier ("pack_3" or "pack_8").
	ID string `json:"id"`

	// Credits is the number of credits granted when the pack is paid.
	Credits int64 `json:"credits"`

	// PriceID is the billing provider's price identifier for the pack.
	PriceID string `json:"-"`
}

// Fixed pack identifiers. Purchases reference these ids; the webhook grants
// the mapped credit amount.
const (
	CreditPack3 = "pack_3"
	CreditPack8 = "pack_8"
)

// CheckoutSession is returned to the client after a checkout session has been
// created with the billing provider. The client opens URL in a browser to
// complete the payment.
type CheckoutSession struct {
	// URL is the hosted payment page for the session.
	URL string `json:"checkout_url"`

	// PackID is the credit pack the session was created for.
	PackID string `json:"pack_id"`
}
