package user

import (
	"context"
	"testing"

	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

type fakeWalletService struct {
	created []uint
}

func (f *fakeWalletService) GetWallet(context.Context, uint) (*models.Wallet, error) {
	return nil, domainerrors.ErrWalletNotFound
}

func (f *fakeWalletService) CreateWallet(_ context.Context, userID uint) (*models.Wallet, error) {
	f.created = append(f.created, userID)
	return &models.Wallet{UserID: userID}, nil
}

func (f *fakeWalletService) Credit(context.Context, uint, decimal.Decimal, string, string) (*models.Wallet, *models.WalletTransaction, error) {
	return nil, nil, nil
}

func (f *fakeWalletService) Debit(context.Context, uint, decimal.Decimal, string, string) (*models.Wallet, *models.WalletTransaction, error) {
	return nil, nil, nil
}

func (f *fakeWalletService) GetTransactionHistory(context.Context, uint, int) ([]models.WalletTransaction, error) {
	return nil, nil
}

func TestRegister_ProvisionsWallet(t *testing.T) {
	repo := newFakeUserRepo()
	wallets := &fakeWalletService{}
	svc := NewService(repo, wallets)

	created, err := svc.Register(context.Background(), &RegisterInput{
		Email:     "Ada@Example.com",
		Password:  "password123",
		FirstName: "Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", created.Email, "email must be normalized")
	assert.Equal(t, []uint{created.ID}, wallets.created)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	assert.NotEqual(t, "password123", created.Password)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeWalletService{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Password: "password123"}},
		{"malformed email", RegisterInput{Email: "not-an-email", Password: "password123"}},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.input)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeWalletService{})
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Email: "ada@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
