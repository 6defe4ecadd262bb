// Package payment implements the payment reconciliation engine: it
// owns the PaymentIntent lifecycle and turns a gateway-reported
// status into at most one wallet credit.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aileana/internal/config"
	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"
	"aileana/internal/services/payment/monnify"
	"aileana/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway is the adapter contract the engine consumes. Both calls are
// idempotent from the adapter's perspective and safe to retry.
type Gateway interface {
	InitTransaction(ctx context.Context, params monnify.InitTransactionParams) (*monnify.InitTransactionResult, error)
	GetTransactionStatus(ctx context.Context, paymentReference string) (*monnify.TransactionStatus, error)
}

// Service is the payment reconciliation engine interface.
type Service interface {
	InitiateTopup(ctx context.Context, userID uint, amount decimal.Decimal) (*TopupInitiation, error)
	VerifyAndCredit(ctx context.Context, paymentReference string) (*VerifyAndCreditResult, error)
}

type service struct {
	repo    repositories.PaymentRepository
	users   repositories.UserRepository
	wallets wallet.Service
	gateway Gateway
	mode    string
}

// NewService creates the reconciliation engine. In offline mode the
// gateway may be nil; it is never called.
func NewService(repo repositories.PaymentRepository, users repositories.UserRepository, wallets wallet.Service, gateway Gateway, mode string) Service {
	if repo == nil {
		panic("payment repository is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	if mode != config.PaymentsModeOffline && gateway == nil {
		panic("gateway is required in live mode")
	}
	return &service{
		repo:    repo,
		users:   users,
		wallets: wallets,
		gateway: gateway,
		mode:    mode,
	}
}

// newPaymentReference builds a globally unique, externally visible
// top-up reference.
func newPaymentReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("AIL-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *service) InitiateTopup(ctx context.Context, userID uint, amount decimal.Decimal) (*TopupInitiation, error) {
	if amount.Sign() <= 0 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("amount must be greater than zero")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	intent := &models.PaymentIntent{
		UserID:           userID,
		Provider:         "MONNIFY",
		Amount:           amount,
		Currency:         "NGN",
		PaymentReference: newPaymentReference(),
		Status:           models.PaymentStatusInitiated,
	}
	if err := s.repo.CreateIntent(intent); err != nil {
		return nil, err
	}

	if s.mode == config.PaymentsModeOffline {
		// No live gateway: hand back a synthetic checkout URL and
		// leave the intent for later reconciliation.
		return &TopupInitiation{
			PaymentReference: intent.PaymentReference,
			CheckoutURL:      "https://offline.monnify/checkout/" + intent.PaymentReference,
			Amount:           amount,
		}, nil
	}

	result, err := s.gateway.InitTransaction(ctx, monnify.InitTransactionParams{
		Amount:             amount,
		CustomerName:       user.DisplayName(),
		CustomerEmail:      user.Email,
		PaymentReference:   intent.PaymentReference,
		PaymentDescription: "Wallet Top-up",
	})
	if err != nil {
		if _, terr := s.repo.TransitionIntent(intent.ID, models.PaymentStatusInitiated, models.PaymentStatusFailed); terr != nil {
			log.Printf("failed to mark intent %s failed: %v", intent.PaymentReference, terr)
		}
		return nil, domainerrors.ErrGatewayFailure.WithMessage(err.Error())
	}

	intent.GatewayTransactionID = result.TransactionReference
	intent.CheckoutURL = result.CheckoutURL
	intent.Status = models.PaymentStatusPending
	if err := s.repo.UpdateIntent(intent); err != nil {
		return nil, err
	}

	return &TopupInitiation{
		PaymentReference:     intent.PaymentReference,
		CheckoutURL:          result.CheckoutURL,
		GatewayTransactionID: result.TransactionReference,
		Amount:               amount,
	}, nil
}

// VerifyAndCredit reconciles one payment intent against the gateway.
// It is invoked from the user-triggered poll and from the webhook, in
// any order, any number of times, with the same outcome: the wallet
// is credited exactly once and the intent ends PAID.
func (s *service) VerifyAndCredit(ctx context.Context, paymentReference string) (*VerifyAndCreditResult, error) {
	intent, err := s.repo.GetIntentByReference(paymentReference)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentIntentNotFound) {
			return nil, domainerrors.ErrPaymentIntentNotFound
		}
		return nil, err
	}

	if intent.Status == models.PaymentStatusPaid {
		return &VerifyAndCreditResult{
			Success:       true,
			Credited:      true,
			Amount:        intent.Amount,
			TransactionID: intent.ID,
			Message:       "payment already verified and wallet credited",
		}, nil
	}

	gatewayStatus := monnify.StatusPaid
	if s.mode != config.PaymentsModeOffline {
		status, err := s.gateway.GetTransactionStatus(ctx, paymentReference)
		if err != nil {
			return nil, domainerrors.ErrGatewayFailure.WithMessage(err.Error())
		}
		gatewayStatus = status.PaymentStatus
	}

	if gatewayStatus == monnify.StatusPaid {
		return s.creditIntent(ctx, intent)
	}

	// Not paid: settle the intent per the gateway's verdict. Unknown
	// statuses stay PENDING so a later verify can resolve them.
	switch gatewayStatus {
	case monnify.StatusFailed, monnify.StatusCancelled, monnify.StatusExpired:
		if _, err := s.repo.TransitionIntent(intent.ID, intent.Status, models.PaymentStatusFailed); err != nil {
			return nil, err
		}
	case monnify.StatusPending:
		if intent.Status == models.PaymentStatusInitiated {
			if _, err := s.repo.TransitionIntent(intent.ID, intent.Status, models.PaymentStatusPending); err != nil {
				return nil, err
			}
		}
	}

	return &VerifyAndCreditResult{
		Success:       false,
		Credited:      false,
		Amount:        intent.Amount,
		TransactionID: intent.ID,
		Message:       fmt.Sprintf("payment is %s", gatewayStatus),
	}, nil
}

// creditIntent applies the wallet credit and only then marks the
// intent PAID. A crash between the two steps leaves a non-PAID intent
// whose credit reference already exists; the next verify replays the
// credit idempotently and completes the marking. The reverse order
// could leave a PAID intent with no money behind it.
func (s *service) creditIntent(ctx context.Context, intent *models.PaymentIntent) (*VerifyAndCreditResult, error) {
	reference := "TOPUP:" + intent.PaymentReference
	_, _, err := s.wallets.Credit(ctx, intent.UserID, intent.Amount, reference, "Wallet top-up via Monnify")
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet for intent %s: %w", intent.PaymentReference, err)
	}

	updated, err := s.repo.TransitionIntent(intent.ID, intent.Status, models.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}

	message := "wallet credited successfully"
	if !updated {
		// Either a concurrent verify finished first (the credit above
		// was a replay) or the intent had already been settled as
		// FAILED before the gateway reported PAID. The money is
		// correct in both cases; the caller gets told the record
		// disagrees instead of burying it in a server log.
		log.Printf("intent %s not transitioned to PAID: already finalized", intent.PaymentReference)
		message = "wallet credited; payment intent was already finalized and keeps its recorded status"
	}

	return &VerifyAndCreditResult{
		Success:       true,
		Credited:      true,
		Amount:        intent.Amount,
		TransactionID: intent.ID,
		Message:       message,
	}, nil
}
