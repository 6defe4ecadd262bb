package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment intent statuses. INITIATED -> PENDING -> PAID is the success
// path; any non-terminal status may move to FAILED. PAID and FAILED
// are terminal and are never overwritten.
const (
	PaymentStatusInitiated = "INITIATED"
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusFailed    = "FAILED"
)

// PaymentIntent records one wallet top-up attempt and its
// reconciliation status with the external gateway.
type PaymentIntent struct {
	ID                   uint            `gorm:"primarykey" json:"id"`
	UserID               uint            `gorm:"index;not null" json:"user_id"`
	Provider             string          `gorm:"not null;default:'MONNIFY'" json:"provider"`
	Amount               decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Currency             string          `gorm:"default:'NGN'" json:"currency"`
	PaymentReference     string          `gorm:"uniqueIndex;not null" json:"payment_reference"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	CheckoutURL          string          `json:"checkout_url,omitempty"`
	Status               string          `gorm:"not null;default:'INITIATED'" json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// IsTerminal reports whether the intent can no longer change status.
func (p *PaymentIntent) IsTerminal() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed
}
