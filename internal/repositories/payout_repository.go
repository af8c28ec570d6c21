package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) Open(ctx context.Context, workerID string, amount int64) (*model.Payout, error) {
	payout := &model.Payout{
		ID:        uuid.NewString(),
		WorkerID:  workerID,
		Amount:    amount,
		Status:    constants.PayoutLocked,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(payout).Error; err != nil {
		return nil, err
	}
	return payout, nil
}

// Resolve closes the worker's open payout. Only a payout still in the locked
// state can be resolved, so an outcome is applied at most once.
func (r *PayoutRepository) Resolve(
	ctx context.Context,
	workerID string,
	amount int64,
	status constants.PayoutStatus,
	signature string,
) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Payout{}).
		Where("worker_id = ? AND amount = ? AND status = ?", workerID, amount, constants.PayoutLocked).
		Updates(map[string]interface{}{
			"status":      status,
			"signature":   signature,
			"resolved_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoActiveLock
	}
	return nil
}

func (r *PayoutRepository) ListByWorker(ctx context.Context, workerID string) ([]model.Payout, error) {
	var payouts []model.Payout
	err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Order("created_at desc").Find(&payouts).Error
	return payouts, err
}
