package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainerrors "aileana/internal/errors"
	"aileana/internal/models"
	"aileana/internal/repositories"
	"aileana/internal/services/wallet"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Service interface {
	Register(ctx context.Context, input *RegisterInput) (*models.User, error)
	GetByID(id uint) (*models.User, error)
}

type service struct {
	repo    repositories.UserRepository
	wallets wallet.Service
}

// NewService creates the user account service. Registration provisions
// the user's wallet, so a wallet service is required.
func NewService(repo repositories.UserRepository, wallets wallet.Service) Service {
	if repo == nil {
		panic("user repository is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	return &service{repo: repo, wallets: wallets}
}

func (s *service) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.ErrInvalidInput.WithMessage("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, domainerrors.ErrInvalidInput.WithMessage("password must be at least 8 characters")
	}

	if existing, _ := s.repo.GetByEmail(email); existing != nil {
		return nil, domainerrors.ErrInvalidInput.WithMessage("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Every account gets a zero-balance wallet at registration.
	if _, err := s.wallets.CreateWallet(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to provision wallet for user %d: %w", user.ID, err)
	}

	return user, nil
}

func (s *service) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
