package repositories

import (
	"context"
	"errors"
	"fmt"

	"aileana/internal/models"

	"gorm.io/gorm"
)

type callRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) Create(call *models.CallSession) error {
	if err := r.db.Create(call).Error; err != nil {
		return fmt.Errorf("failed to create call session: %w", err)
	}
	return nil
}

func (r *callRepository) GetByID(id uint) (*models.CallSession, error) {
	var call models.CallSession
	if err := r.db.First(&call, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to get call session: %w", err)
	}
	return &call, nil
}

func (r *callRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.CallSession, error) {
	var calls []models.CallSession
	err := r.db.WithContext(ctx).
		Where("caller_id = ? OR callee_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&calls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list call sessions: %w", err)
	}
	return calls, nil
}

func (r *callRepository) TransitionCall(call *models.CallSession, expectedFrom models.CallStatus) (bool, error) {
	// Guarded write: losing a race to another transition leaves the
	// row untouched and reports false, so a session can never be
	// moved out of a terminal state.
	result := r.db.Model(&models.CallSession{}).
		Where("id = ? AND status = ?", call.ID, expectedFrom).
		Updates(map[string]interface{}{
			"status":      call.Status,
			"started_at":  call.StartedAt,
			"accepted_at": call.AcceptedAt,
			"ended_at":    call.EndedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition call session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
