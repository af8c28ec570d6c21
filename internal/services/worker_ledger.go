package services

import (
	"context"

	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
	repository "review-pool.com/review-pool/internal/repositories"
)

// WorkerLedger moves earnings between pending and locked. A worker is either
// AVAILABLE (locked == 0) or LOCKED (pending == 0, locked > 0); every
// transition is a single conditional update, and a failed update is
// classified by re-reading the row in the same transaction.
type WorkerLedger struct{}

func NewWorkerLedger() *WorkerLedger {
	return &WorkerLedger{}
}

// Accrue credits earnings. It is refused while a payout is locked so the
// locked amount stays the only balance in flight.
func (l *WorkerLedger) Accrue(ctx context.Context, st *repository.Store, workerID string, amount int64) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}

	ok, err := st.Workers.Credit(ctx, workerID, amount)
	if err != nil || ok {
		return err
	}

	if _, err := st.Workers.FindByID(ctx, workerID); err != nil {
		return err
	}
	return apperrors.ErrPayoutInProgress
}

// Lock reserves the whole pending balance for an external payout. amount
// must equal the pending balance.
func (l *WorkerLedger) Lock(ctx context.Context, st *repository.Store, workerID string, amount int64) (*model.Worker, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	ok, err := st.Workers.Lock(ctx, workerID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		worker, err := st.Workers.FindByID(ctx, workerID)
		if err != nil {
			return nil, err
		}
		if worker.Locked() {
			return nil, apperrors.ErrLockAlreadyActive
		}
		return nil, apperrors.ErrInsufficientPending
	}

	if _, err := st.Payouts.Open(ctx, workerID, amount); err != nil {
		return nil, err
	}

	return st.Workers.FindByID(ctx, workerID)
}

// Settle finalizes a lock after the payout was confirmed on chain.
func (l *WorkerLedger) Settle(ctx context.Context, st *repository.Store, workerID string, amount int64, signature string) (*model.Worker, error) {
	if err := l.release(ctx, st, workerID, amount, st.Workers.Settle); err != nil {
		return nil, err
	}
	if err := st.Payouts.Resolve(ctx, workerID, amount, constants.PayoutSettled, signature); err != nil {
		return nil, err
	}
	return st.Workers.FindByID(ctx, workerID)
}

// Rollback returns the locked amount to pending after a failed payout.
func (l *WorkerLedger) Rollback(ctx context.Context, st *repository.Store, workerID string, amount int64, signature string) (*model.Worker, error) {
	if err := l.release(ctx, st, workerID, amount, st.Workers.Restore); err != nil {
		return nil, err
	}
	if err := st.Payouts.Resolve(ctx, workerID, amount, constants.PayoutRolledBack, signature); err != nil {
		return nil, err
	}
	return st.Workers.FindByID(ctx, workerID)
}

func (l *WorkerLedger) release(
	ctx context.Context,
	st *repository.Store,
	workerID string,
	amount int64,
	apply func(ctx context.Context, id string, amount int64) (bool, error),
) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}

	ok, err := apply(ctx, workerID, amount)
	if err != nil || ok {
		return err
	}

	worker, err := st.Workers.FindByID(ctx, workerID)
	if err != nil {
		return err
	}
	if !worker.Locked() {
		return apperrors.ErrNoActiveLock
	}
	return apperrors.ErrLockAmountMismatch
}
