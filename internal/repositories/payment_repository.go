package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Record claims a payment reference. The reference is the primary key, so a
// reference can fund or renew exactly once.
func (r *PaymentRepository) Record(ctx context.Context, payment *model.Payment) error {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Create(payment).Error
	if isDuplicate(err) {
		return apperrors.ErrPaymentAlreadyUsed
	}
	return err
}

func (r *PaymentRepository) Exists(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).Where("reference = ?", reference).Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepository) ListByTask(ctx context.Context, taskID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at asc").Find(&payments).Error
	return payments, err
}
