package monnify

import "github.com/shopspring/decimal"

// Gateway-reported payment statuses.
const (
	StatusPaid      = "PAID"
	StatusPending   = "PENDING"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
)

// InitTransactionParams is the input for starting a checkout.
type InitTransactionParams struct {
	Amount             decimal.Decimal
	CustomerName       string
	CustomerEmail      string
	PaymentReference   string
	PaymentDescription string
}

type authResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"` // seconds
	} `json:"responseBody"`
}

// InitTransactionResult is the gateway's answer to a checkout init.
type InitTransactionResult struct {
	TransactionReference string
	CheckoutURL          string
}

type initTxResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		TransactionReference string `json:"transactionReference"`
		PaymentReference     string `json:"paymentReference"`
		CheckoutURL          string `json:"checkoutUrl"`
	} `json:"responseBody"`
}

// TransactionStatus is the gateway's current view of a payment.
type TransactionStatus struct {
	PaymentStatus string
	AmountPaid    decimal.Decimal
}

type txStatusResponse struct {
	RequestSuccessful bool   `json:"requestSuccessful"`
	ResponseMessage   string `json:"responseMessage"`
	ResponseBody      struct {
		PaymentStatus string          `json:"paymentStatus"`
		AmountPaid    decimal.Decimal `json:"amountPaid"`
	} `json:"responseBody"`
}
