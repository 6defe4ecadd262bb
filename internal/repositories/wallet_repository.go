package repositories

import (
	"context"
	"errors"

	"aileana/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateReference is returned when a ledger entry with the
	// same idempotency reference already exists. The unique index on
	// wallet_transactions.reference is the final backstop against two
	// concurrent callers racing past the in-transaction existence
	// check.
	ErrDuplicateReference = errors.New("transaction reference already exists")
)

// WalletRepository defines the wallet and ledger persistence contract.
//
// GetByUserIDForUpdate takes a row-level exclusive lock and is only
// meaningful inside ExecuteInTransaction; the lock covers the
// read-validate-write sequence against concurrent debits.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	UpdateBalance(wallet *models.Wallet) error

	CreateTransaction(entry *models.WalletTransaction) error
	GetTransactionByReference(reference string) (*models.WalletTransaction, error)
	GetTransactionHistory(ctx context.Context, walletID uint, limit int) ([]models.WalletTransaction, error)

	// ExecuteInTransaction runs fn against a repository bound to one
	// store transaction: either everything fn does commits or none of
	// it does.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
