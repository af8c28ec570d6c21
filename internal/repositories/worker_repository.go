package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

// WorkerRepository mutates balances only through conditional updates. Every
// method states the balance it expects in its WHERE clause and reports
// RowsAffected == 0 as "not in that state"; callers classify why.
type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// FindOrCreate returns the worker for address, creating it on first sight.
// A concurrent insert for the same address loses on the unique index and
// reads the winner's row.
func (r *WorkerRepository) FindOrCreate(ctx context.Context, address string) (*model.Worker, error) {
	worker, err := r.FindByAddress(ctx, address)
	if err == nil {
		return worker, nil
	}
	if !errors.Is(err, apperrors.ErrWorkerNotFound) {
		return nil, err
	}

	worker = &model.Worker{ID: uuid.NewString(), Address: address}
	if err := r.db.WithContext(ctx).Create(worker).Error; err != nil {
		if isDuplicate(err) {
			return r.FindByAddress(ctx, address)
		}
		return nil, err
	}
	return worker, nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	if err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (r *WorkerRepository) FindByAddress(ctx context.Context, address string) (*model.Worker, error) {
	var worker model.Worker
	if err := r.db.WithContext(ctx).First(&worker, "address = ?", address).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, err
	}
	return &worker, nil
}

// Credit adds to pending earnings while no payout lock is held.
func (r *WorkerRepository) Credit(ctx context.Context, id string, amount int64) (bool, error) {
	return r.update(ctx,
		map[string]interface{}{"pending_amount": gorm.Expr("pending_amount + ?", amount)},
		"id = ? AND locked_amount = 0", id,
	)
}

// Lock moves exactly the pending balance into the locked balance.
func (r *WorkerRepository) Lock(ctx context.Context, id string, amount int64) (bool, error) {
	return r.update(ctx,
		map[string]interface{}{"pending_amount": 0, "locked_amount": amount},
		"id = ? AND locked_amount = 0 AND pending_amount = ?", id, amount,
	)
}

func (r *WorkerRepository) Settle(ctx context.Context, id string, amount int64) (bool, error) {
	return r.update(ctx,
		map[string]interface{}{"locked_amount": 0},
		"id = ? AND locked_amount > 0 AND locked_amount = ?", id, amount,
	)
}

func (r *WorkerRepository) Restore(ctx context.Context, id string, amount int64) (bool, error) {
	return r.update(ctx,
		map[string]interface{}{"pending_amount": gorm.Expr("pending_amount + ?", amount), "locked_amount": 0},
		"id = ? AND locked_amount > 0 AND locked_amount = ?", id, amount,
	)
}

func (r *WorkerRepository) update(ctx context.Context, values map[string]interface{}, query string, args ...interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Worker{}).Where(query, args...).Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
