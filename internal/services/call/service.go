// Package call implements the call billing state machine. It owns
// CallSession status transitions and, on call termination, converts
// wall-clock duration into an idempotent wallet debit.
package call

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"
	"aileana/internal/services/wallet"

	"github.com/shopspring/decimal"
)

// Service is the call billing state machine interface.
type Service interface {
	InitiateCall(ctx context.Context, callerID, receiverID uint) (*InitiateCallResult, error)
	UpdateStatus(ctx context.Context, callID uint, newStatus models.CallStatus, actingUserID uint) (*models.CallSession, error)
	GetCallByID(ctx context.Context, callID, userID uint) (*models.CallSession, error)
	GetCallHistory(ctx context.Context, userID uint) ([]models.CallSession, error)
}

// SignalingData is the placeholder offer returned on initiation;
// actual media negotiation happens outside this system.
type SignalingData struct {
	CallID uint   `json:"call_id"`
	Type   string `json:"type"`
	SDP    string `json:"sdp"`
}

// InitiateCallResult bundles the created session with its signaling
// payload.
type InitiateCallResult struct {
	Call      *models.CallSession `json:"call"`
	Signaling SignalingData       `json:"signaling_data"`
}

const historyLimit = 50

type service struct {
	repo          repositories.CallRepository
	users         repositories.UserRepository
	wallets       wallet.Service
	ratePerMinute decimal.Decimal

	// now is swapped in tests to simulate call duration.
	now func() time.Time
}

// NewService creates the call billing state machine. ratePerMinute
// must be positive.
func NewService(repo repositories.CallRepository, users repositories.UserRepository, wallets wallet.Service, ratePerMinute decimal.Decimal) Service {
	if repo == nil {
		panic("call repository is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	if ratePerMinute.Sign() <= 0 {
		panic("call rate per minute must be positive")
	}
	return &service{
		repo:          repo,
		users:         users,
		wallets:       wallets,
		ratePerMinute: ratePerMinute,
		now:           time.Now,
	}
}

func (s *service) InitiateCall(ctx context.Context, callerID, receiverID uint) (*InitiateCallResult, error) {
	if callerID == receiverID {
		return nil, domainerrors.ErrInvalidInput.WithMessage("cannot call yourself")
	}

	if _, err := s.users.GetByID(receiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WithMessage("receiver not found")
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}

	// Affordability check for one billed minute. This is not a hold:
	// concurrent spending can still make the final charge fail, which
	// the ENDED transition handles by reclassifying the call.
	callerWallet, err := s.wallets.GetWallet(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if callerWallet.Balance.LessThan(s.ratePerMinute) {
		return nil, domainerrors.ErrInsufficientBalance.WithMessage("insufficient balance to initiate call")
	}

	session := &models.CallSession{
		CallerID: callerID,
		CalleeID: receiverID,
		Status:   models.CallStatusInitiated,
	}
	if err := s.repo.Create(session); err != nil {
		return nil, err
	}

	return &InitiateCallResult{
		Call: session,
		Signaling: SignalingData{
			CallID: session.ID,
			Type:   "offer",
			SDP:    "mock-sdp-offer-data",
		},
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, callID uint, newStatus models.CallStatus, actingUserID uint) (*models.CallSession, error) {
	if !newStatus.Valid() {
		return nil, domainerrors.ErrInvalidInput.WithMessage("unknown call status")
	}

	session, err := s.repo.GetByID(callID)
	if err != nil {
		if errors.Is(err, repositories.ErrCallNotFound) {
			return nil, domainerrors.ErrCallNotFound
		}
		return nil, err
	}

	if !session.IsParty(actingUserID) {
		return nil, domainerrors.ErrForbidden.WithMessage("you are not part of this call")
	}

	if !CanTransition(session.Status, newStatus) {
		return nil, domainerrors.ErrInvalidTransition.WithMessage(
			fmt.Sprintf("invalid status transition: %s -> %s", session.Status, newStatus))
	}

	previous := session.Status
	now := s.now()
	session.Status = newStatus

	// Timestamps are set at most once.
	if newStatus == models.CallStatusRinging && session.StartedAt == nil {
		session.StartedAt = &now
	}
	if newStatus == models.CallStatusAccepted {
		if session.AcceptedAt == nil {
			session.AcceptedAt = &now
		}
		if session.StartedAt == nil {
			session.StartedAt = &now
		}
	}
	if (newStatus == models.CallStatusEnded || newStatus == models.CallStatusFailed) && session.EndedAt == nil {
		session.EndedAt = &now
	}

	// Charge the caller when the call ends with a known start time.
	// The reference makes the debit idempotent: re-ending the same
	// call or retrying the charge never bills twice. A failed charge
	// reclassifies the call as FAILED rather than leaving an ENDED
	// call with no money behind it.
	if newStatus == models.CallStatusEnded && session.StartedAt != nil {
		cost := s.costForDuration(now.Sub(*session.StartedAt))
		reference := fmt.Sprintf("CALL-%d", session.ID)
		if _, _, err := s.wallets.Debit(ctx, session.CallerID, cost, reference, "Wallet debit (call charge)"); err != nil {
			log.Printf("call %d charge failed, marking FAILED: %v", session.ID, err)
			session.Status = models.CallStatusFailed
		}
	}

	updated, err := s.repo.TransitionCall(session, previous)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race to a concurrent transition. Any debit above
		// was reference-idempotent, so at most one charge exists.
		return nil, domainerrors.ErrInvalidTransition.WithMessage(
			fmt.Sprintf("call already left status %s", previous))
	}

	return session, nil
}

// costForDuration converts elapsed call time into money: whole
// minutes rounded up, minimum one billed minute, times the per-minute
// rate.
func (s *service) costForDuration(elapsed time.Duration) decimal.Decimal {
	if elapsed < 0 {
		elapsed = 0
	}
	secs := int64(elapsed / time.Second)
	minutes := (secs + 59) / 60
	if minutes < 1 {
		minutes = 1
	}
	return s.ratePerMinute.Mul(decimal.NewFromInt(minutes))
}

func (s *service) GetCallByID(ctx context.Context, callID, userID uint) (*models.CallSession, error) {
	session, err := s.repo.GetByID(callID)
	if err != nil {
		if errors.Is(err, repositories.ErrCallNotFound) {
			return nil, domainerrors.ErrCallNotFound
		}
		return nil, err
	}
	if !session.IsParty(userID) {
		return nil, domainerrors.ErrForbidden.WithMessage("you are not authorized to view this call")
	}
	return session, nil
}

func (s *service) GetCallHistory(ctx context.Context, userID uint) ([]models.CallSession, error) {
	return s.repo.ListByUser(ctx, userID, historyLimit)
}
