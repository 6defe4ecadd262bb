package repositories

import (
	"errors"
	"fmt"

	"aileana/internal/models"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateIntent(intent *models.PaymentIntent) error {
	if err := r.db.Create(intent).Error; err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetIntentByReference(paymentReference string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.Where("payment_reference = ?", paymentReference).First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentIntentNotFound
		}
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return &intent, nil
}

func (r *paymentRepository) UpdateIntent(intent *models.PaymentIntent) error {
	if err := r.db.Save(intent).Error; err != nil {
		return fmt.Errorf("failed to update payment intent: %w", err)
	}
	return nil
}

func (r *paymentRepository) TransitionIntent(id uint, expectedFrom, to string) (bool, error) {
	// The status guard in the WHERE clause makes the transition an
	// atomic compare-and-set; terminal states stay terminal even
	// under concurrent verifies and webhooks.
	result := r.db.Model(&models.PaymentIntent{}).
		Where("id = ? AND status = ?", id, expectedFrom).
		Where("status NOT IN ?", []string{models.PaymentStatusPaid, models.PaymentStatusFailed}).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition payment intent: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
