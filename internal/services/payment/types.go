package payment

import "github.com/shopspring/decimal"

// TopupInitiation is returned from InitiateTopup; the caller redirects
// the user to CheckoutURL and later reconciles by PaymentReference.
type TopupInitiation struct {
	PaymentReference     string          `json:"payment_reference"`
	CheckoutURL          string          `json:"checkout_url"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
}

// VerifyAndCreditResult reports the outcome of one reconciliation
// attempt. Credited is true whenever the wallet holds the money,
// including on replays where no new mutation occurred.
type VerifyAndCreditResult struct {
	Success       bool            `json:"success"`
	Credited      bool            `json:"credited"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID uint            `json:"transaction_id"`
	Message       string          `json:"message"`
}
