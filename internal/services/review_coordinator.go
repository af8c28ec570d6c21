package services

import (
	"context"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
	repository "review-pool.com/review-pool/internal/repositories"
)

// ReviewCoordinator hands out review slots. A submission, the slot it
// consumes and the worker's credit are written in one transaction, and the
// (task, worker) unique index decides which of two racing submissions from
// the same worker wins.
type ReviewCoordinator struct {
	unitPrice int64
	workers   *WorkerLedger
}

func NewReviewCoordinator(unitPrice int64, workers *WorkerLedger) *ReviewCoordinator {
	return &ReviewCoordinator{unitPrice: unitPrice, workers: workers}
}

// Submit must run inside a transaction; st is the transaction's store.
func (c *ReviewCoordinator) Submit(
	ctx context.Context,
	st *repository.Store,
	taskID string,
	workerID string,
	optionID string,
) (*model.Submission, error) {
	if _, err := st.Tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}
	option, err := st.Tasks.FindOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if option.TaskID != taskID {
		return nil, apperrors.ErrOptionNotInTask
	}

	submission, err := st.Submissions.Create(ctx, taskID, workerID, optionID)
	if err != nil {
		return nil, err
	}

	if err := st.Tasks.ConsumeSlot(ctx, taskID); err != nil {
		return nil, err
	}

	if err := c.workers.Accrue(ctx, st, workerID, c.unitPrice); err != nil {
		return nil, err
	}

	return submission, nil
}
