package repositories

import (
	"context"
	"errors"

	"aileana/internal/models"
)

var ErrCallNotFound = errors.New("call not found")

// CallRepository defines the call session persistence contract.
type CallRepository interface {
	Create(call *models.CallSession) error
	GetByID(id uint) (*models.CallSession, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.CallSession, error)

	// TransitionCall persists the session's new state only if the
	// stored status still equals expectedFrom. It reports whether the
	// row was updated; false means a concurrent transition won.
	TransitionCall(call *models.CallSession, expectedFrom models.CallStatus) (bool, error)
}
