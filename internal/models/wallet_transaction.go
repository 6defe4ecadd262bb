package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeCredit = "CREDIT"
	TransactionTypeDebit  = "DEBIT"
)

// Transaction statuses
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// WalletTransaction is an immutable ledger entry for one
// balance-affecting event. Reference is the caller-supplied
// idempotency key: the unique index on it is what guarantees an
// economic event lands at most once, no matter how often the caller
// retries.
type WalletTransaction struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	WalletID  uint            `gorm:"index;not null" json:"wallet_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Type      string          `gorm:"not null" json:"type"`
	Status    string          `gorm:"not null;default:'PENDING'" json:"status"`
	Reference string          `gorm:"uniqueIndex;not null" json:"reference"`
	Narration string          `json:"narration,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
