package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service is the wallet ledger engine interface.
type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference, narration string) (*models.Wallet, *models.WalletTransaction, error)
	Debit(ctx context.Context, userID uint, amount decimal.Decimal, reference, narration string) (*models.Wallet, *models.WalletTransaction, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit int) ([]models.WalletTransaction, error)
}

// Cache is the subset of the redis cache the wallet service uses.
type Cache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}

type service struct {
	repo  repositories.WalletRepository
	cache Cache
}

// NewService creates the wallet ledger engine. cache may be nil.
func NewService(repo repositories.WalletRepository, cache Cache) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			log.Printf("failed to cache wallet for user %d: %v", userID, err)
		}
	}
	return wallet, nil
}

func (s *service) CreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{UserID: userID}
	if err := s.repo.Create(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

func (s *service) Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference, narration string) (*models.Wallet, *models.WalletTransaction, error) {
	return s.apply(ctx, userID, amount, reference, narration, models.TransactionTypeCredit)
}

func (s *service) Debit(ctx context.Context, userID uint, amount decimal.Decimal, reference, narration string) (*models.Wallet, *models.WalletTransaction, error) {
	return s.apply(ctx, userID, amount, reference, narration, models.TransactionTypeDebit)
}

// apply performs one idempotent ledger mutation. A replay (same
// reference) returns the original entry and the current wallet state
// without touching the balance; that is a success, never an error.
func (s *service) apply(ctx context.Context, userID uint, amount decimal.Decimal, reference, narration, txType string) (*models.Wallet, *models.WalletTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil, domainerrors.ErrInvalidInput.WithMessage("reference is required")
	}
	if amount.Sign() <= 0 {
		return nil, nil, domainerrors.ErrInvalidInput.WithMessage("amount must be greater than zero")
	}

	var (
		wallet *models.Wallet
		entry  *models.WalletTransaction
	)

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		existing, err := tx.GetTransactionByReference(reference)
		if err == nil {
			// Replay: return the original outcome unchanged.
			w, err := tx.GetByUserID(userID)
			if err != nil {
				if errors.Is(err, repositories.ErrWalletNotFound) {
					return domainerrors.ErrWalletNotFound
				}
				return err
			}
			wallet, entry = w, existing
			return nil
		}
		if !errors.Is(err, repositories.ErrTransactionNotFound) {
			return err
		}

		w, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return domainerrors.ErrWalletNotFound
			}
			return err
		}

		switch txType {
		case models.TransactionTypeDebit:
			if w.Balance.LessThan(amount) {
				return domainerrors.ErrInsufficientBalance
			}
			w.Balance = w.Balance.Sub(amount)
		case models.TransactionTypeCredit:
			w.Balance = w.Balance.Add(amount)
		default:
			return domainerrors.ErrInvalidInput.WithMessage("unknown transaction type")
		}

		if err := tx.UpdateBalance(w); err != nil {
			return err
		}

		e := &models.WalletTransaction{
			WalletID:  w.ID,
			Amount:    amount,
			Type:      txType,
			Status:    models.TransactionStatusSuccess,
			Reference: reference,
			Narration: narration,
		}
		if err := tx.CreateTransaction(e); err != nil {
			// A concurrent caller inserted the same reference after
			// our existence check; roll back and resolve as a replay.
			return err
		}

		wallet, entry = w, e
		return nil
	})

	if errors.Is(err, repositories.ErrDuplicateReference) {
		return s.resolveReplay(userID, reference)
	}
	if err != nil {
		var domainErr *domainerrors.DomainError
		if errors.As(err, &domainErr) {
			return nil, nil, domainErr
		}
		return nil, nil, fmt.Errorf("wallet %s failed: %w", strings.ToLower(txType), err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
			log.Printf("failed to invalidate wallet cache for user %d: %v", userID, err)
		}
	}
	return wallet, entry, nil
}

// resolveReplay loads the outcome recorded by whichever caller won the
// race on the unique reference index.
func (s *service) resolveReplay(userID uint, reference string) (*models.Wallet, *models.WalletTransaction, error) {
	entry, err := s.repo.GetTransactionByReference(reference)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve replayed reference %s: %w", reference, err)
	}
	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, nil, domainerrors.ErrWalletNotFound
		}
		return nil, nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, entry, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit int) ([]models.WalletTransaction, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := s.repo.GetTransactionHistory(ctx, wallet.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return entries, nil
}
