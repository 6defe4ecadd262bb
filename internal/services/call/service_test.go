package call

import (
	"context"
	"fmt"
	"testing"
	"time"

	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCallRepo struct {
	calls  map[uint]*models.CallSession
	nextID uint
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{calls: make(map[uint]*models.CallSession)}
}

func (f *fakeCallRepo) Create(call *models.CallSession) error {
	f.nextID++
	call.ID = f.nextID
	cp := *call
	f.calls[call.ID] = &cp
	return nil
}

func (f *fakeCallRepo) GetByID(id uint) (*models.CallSession, error) {
	call, ok := f.calls[id]
	if !ok {
		return nil, repositories.ErrCallNotFound
	}
	cp := *call
	return &cp, nil
}

func (f *fakeCallRepo) ListByUser(_ context.Context, userID uint, limit int) ([]models.CallSession, error) {
	var out []models.CallSession
	for _, c := range f.calls {
		if (c.CallerID == userID || c.CalleeID == userID) && len(out) < limit {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCallRepo) TransitionCall(call *models.CallSession, expectedFrom models.CallStatus) (bool, error) {
	stored, ok := f.calls[call.ID]
	if !ok || stored.Status != expectedFrom {
		return false, nil
	}
	cp := *call
	f.calls[call.ID] = &cp
	return true, nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error { return nil }
func (f *fakeUserRepo) Update(user *models.User) error { return nil }
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

// fakeWalletService enforces the real ledger contract: balances never
// go negative and a reference is only ever applied once.
type fakeWalletService struct {
	balances map[uint]decimal.Decimal
	debits   map[string]decimal.Decimal
}

func newFakeWalletService() *fakeWalletService {
	return &fakeWalletService{
		balances: make(map[uint]decimal.Decimal),
		debits:   make(map[string]decimal.Decimal),
	}
}

func (f *fakeWalletService) GetWallet(_ context.Context, userID uint) (*models.Wallet, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return nil, domainerrors.ErrWalletNotFound
	}
	return &models.Wallet{UserID: userID, Balance: balance}, nil
}

func (f *fakeWalletService) CreateWallet(_ context.Context, userID uint) (*models.Wallet, error) {
	f.balances[userID] = decimal.Zero
	return &models.Wallet{UserID: userID}, nil
}

func (f *fakeWalletService) Credit(_ context.Context, userID uint, amount decimal.Decimal, reference, _ string) (*models.Wallet, *models.WalletTransaction, error) {
	f.balances[userID] = f.balances[userID].Add(amount)
	return &models.Wallet{UserID: userID, Balance: f.balances[userID]}, nil, nil
}

func (f *fakeWalletService) Debit(_ context.Context, userID uint, amount decimal.Decimal, reference, _ string) (*models.Wallet, *models.WalletTransaction, error) {
	if prior, exists := f.debits[reference]; exists {
		// Idempotent replay: no second charge.
		return &models.Wallet{UserID: userID, Balance: f.balances[userID]},
			&models.WalletTransaction{Reference: reference, Amount: prior}, nil
	}
	if f.balances[userID].LessThan(amount) {
		return nil, nil, domainerrors.ErrInsufficientBalance
	}
	f.balances[userID] = f.balances[userID].Sub(amount)
	f.debits[reference] = amount
	return &models.Wallet{UserID: userID, Balance: f.balances[userID]},
		&models.WalletTransaction{Reference: reference, Amount: amount}, nil
}

func (f *fakeWalletService) GetTransactionHistory(context.Context, uint, int) ([]models.WalletTransaction, error) {
	return nil, nil
}

func newTestService(t *testing.T, rate int64, balances map[uint]int64) (*service, *fakeCallRepo, *fakeWalletService) {
	t.Helper()
	repo := newFakeCallRepo()
	wallets := newFakeWalletService()
	for userID, balance := range balances {
		wallets.balances[userID] = decimal.NewFromInt(balance)
	}
	users := &fakeUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Email: "caller@example.com"},
		2: {ID: 2, Email: "callee@example.com"},
	}}
	svc := NewService(repo, users, wallets, decimal.NewFromInt(rate)).(*service)
	return svc, repo, wallets
}

func TestInitiateCall_Validation(t *testing.T) {
	svc, _, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	_, err := svc.InitiateCall(ctx, 1, 1)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = svc.InitiateCall(ctx, 1, 99)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestInitiateCall_RequiresOneMinuteBalance(t *testing.T) {
	svc, _, _ := newTestService(t, 50, map[uint]int64{1: 49, 2: 0})

	_, err := svc.InitiateCall(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
}

func TestInitiateCall_CreatesSession(t *testing.T) {
	svc, repo, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})

	result, err := svc.InitiateCall(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusInitiated, result.Call.Status)
	assert.Equal(t, "offer", result.Signaling.Type)
	assert.Equal(t, result.Call.ID, result.Signaling.CallID)
	assert.Len(t, repo.calls, 1)
}

func TestUpdateStatus_FullCallBillsRoundedMinutes(t *testing.T) {
	// Balance 100, rate 50/min, 90 seconds of call time: two billed
	// minutes, a 100 debit, and an empty wallet.
	svc, _, wallets := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	result, err := svc.InitiateCall(ctx, 1, 2)
	require.NoError(t, err)
	callID := result.Call.ID

	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusRinging, 2)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusAccepted, 2)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(90 * time.Second) }
	session, err := svc.UpdateStatus(ctx, callID, models.CallStatusEnded, 1)
	require.NoError(t, err)

	assert.Equal(t, models.CallStatusEnded, session.Status)
	assert.NotNil(t, session.EndedAt)
	reference := fmt.Sprintf("CALL-%d", callID)
	assert.True(t, wallets.debits[reference].Equal(decimal.NewFromInt(100)), "90s at 50/min must bill two minutes")
	assert.True(t, wallets.balances[1].IsZero())
}

func TestUpdateStatus_BillingFailureReclassifiesCall(t *testing.T) {
	// Caller can afford one minute at initiation but not the final
	// charge; the call must end FAILED with the balance untouched.
	svc, _, wallets := newTestService(t, 50, map[uint]int64{1: 50, 2: 0})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	result, err := svc.InitiateCall(ctx, 1, 2)
	require.NoError(t, err)
	callID := result.Call.ID

	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusRinging, 2)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusAccepted, 2)
	require.NoError(t, err)

	// 90s costs 100 but only 50 is available.
	svc.now = func() time.Time { return base.Add(90 * time.Second) }
	session, err := svc.UpdateStatus(ctx, callID, models.CallStatusEnded, 1)
	require.NoError(t, err, "billing failure is absorbed, not propagated")

	assert.Equal(t, models.CallStatusFailed, session.Status)
	assert.True(t, wallets.balances[1].Equal(decimal.NewFromInt(50)), "failed charge must not move money")
	assert.Empty(t, wallets.debits)
}

func TestUpdateStatus_NoDoubleChargeOnRepeatedEnd(t *testing.T) {
	svc, _, wallets := newTestService(t, 50, map[uint]int64{1: 500, 2: 0})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	result, err := svc.InitiateCall(ctx, 1, 2)
	require.NoError(t, err)
	callID := result.Call.ID

	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusRinging, 2)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(30 * time.Second) }
	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusEnded, 1)
	require.NoError(t, err)

	// Retry of the same end must not bill again.
	_, err = svc.UpdateStatus(ctx, callID, models.CallStatusEnded, 1)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	assert.Len(t, wallets.debits, 1)
	assert.True(t, wallets.balances[1].Equal(decimal.NewFromInt(450)))
}

func TestUpdateStatus_TransitionGuards(t *testing.T) {
	svc, repo, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusEnded})

	for _, target := range []models.CallStatus{
		models.CallStatusInitiated, models.CallStatusRinging,
		models.CallStatusAccepted, models.CallStatusEnded, models.CallStatusFailed,
	} {
		_, err := svc.UpdateStatus(ctx, 1, target, 1)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition, "ENDED must be terminal (-> %s)", target)
	}
}

func TestUpdateStatus_Authorization(t *testing.T) {
	svc, repo, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusInitiated})

	_, err := svc.UpdateStatus(ctx, 1, models.CallStatusRinging, 3)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, 99, models.CallStatusRinging, 1)
	assert.ErrorIs(t, err, domainerrors.ErrCallNotFound)
}

func TestUpdateStatus_EndWithoutStartIsFree(t *testing.T) {
	svc, repo, wallets := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusInitiated})

	session, err := svc.UpdateStatus(ctx, 1, models.CallStatusEnded, 1)
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusEnded, session.Status)
	assert.Empty(t, wallets.debits, "a call that never started must not be billed")
}

func TestUpdateStatus_AcceptedBackfillsStartedAt(t *testing.T) {
	svc, repo, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	// Straight INITIATED -> RINGING sets startedAt.
	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusInitiated})
	session, err := svc.UpdateStatus(ctx, 1, models.CallStatusRinging, 2)
	require.NoError(t, err)
	assert.NotNil(t, session.StartedAt)

	// RINGING seeded without startedAt: ACCEPTED backfills it.
	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusRinging})
	session, err = svc.UpdateStatus(ctx, 2, models.CallStatusAccepted, 2)
	require.NoError(t, err)
	assert.NotNil(t, session.StartedAt)
	assert.NotNil(t, session.AcceptedAt)
}

func TestCanTransition_Table(t *testing.T) {
	assert.True(t, CanTransition(models.CallStatusInitiated, models.CallStatusRinging))
	assert.True(t, CanTransition(models.CallStatusRinging, models.CallStatusAccepted))
	assert.True(t, CanTransition(models.CallStatusAccepted, models.CallStatusEnded))
	assert.False(t, CanTransition(models.CallStatusInitiated, models.CallStatusAccepted))
	assert.False(t, CanTransition(models.CallStatusAccepted, models.CallStatusRinging))
	assert.False(t, CanTransition(models.CallStatusEnded, models.CallStatusRinging))
	assert.False(t, CanTransition(models.CallStatusFailed, models.CallStatusEnded))
}

func TestGetCallByID_PartiesOnly(t *testing.T) {
	svc, repo, _ := newTestService(t, 50, map[uint]int64{1: 100, 2: 0})
	ctx := context.Background()

	repo.Create(&models.CallSession{CallerID: 1, CalleeID: 2, Status: models.CallStatusInitiated})

	_, err := svc.GetCallByID(ctx, 1, 1)
	assert.NoError(t, err)
	_, err = svc.GetCallByID(ctx, 1, 3)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
