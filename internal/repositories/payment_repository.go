package repositories

import (
	"errors"

	"aileana/internal/models"
)

var ErrPaymentIntentNotFound = errors.New("payment intent not found")

// PaymentRepository defines the payment intent persistence contract.
type PaymentRepository interface {
	CreateIntent(intent *models.PaymentIntent) error
	GetIntentByReference(paymentReference string) (*models.PaymentIntent, error)
	UpdateIntent(intent *models.PaymentIntent) error

	// TransitionIntent moves the intent to the given status only if
	// its current status still matches expectedFrom. It reports
	// whether the row was updated; false means a concurrent caller
	// got there first. Terminal statuses are never overwritten.
	TransitionIntent(id uint, expectedFrom, to string) (bool, error)
}
