package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
	"review-pool.com/review-pool/internal/payments"
	repository "review-pool.com/review-pool/internal/repositories"
)

// TaskDraft is a task as the requester describes it, before it is paid for.
type TaskDraft struct {
	RequesterID string
	Title       string
	Options     []string
}

// TaskLedger turns verified payments into review slots.
type TaskLedger struct {
	unitPrice int64
}

func NewTaskLedger(unitPrice int64) *TaskLedger {
	return &TaskLedger{unitPrice: unitPrice}
}

func (l *TaskLedger) UnitPrice() int64 {
	return l.unitPrice
}

// Fund creates the task, its options and its slots in the caller's
// transaction, and claims the payment reference so it cannot fund twice.
func (l *TaskLedger) Fund(
	ctx context.Context,
	st *repository.Store,
	draft TaskDraft,
	payment payments.VerifiedPayment,
) (*model.Task, error) {
	if len(draft.Options) < constants.MinOptions {
		return nil, apperrors.ErrTooFewOptions
	}
	if len(draft.Options) > constants.MaxOptions {
		return nil, apperrors.ErrTooManyOptions
	}

	slots, err := l.slots(payment.Amount)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = constants.DefaultTaskTitle
	}

	task := &model.Task{
		ID:             uuid.NewString(),
		RequesterID:    draft.RequesterID,
		Title:          title,
		PaymentRef:     payment.Reference,
		TotalAmount:    payment.Amount,
		TotalSlots:     slots,
		RemainingSlots: slots,
	}

	if err := st.Payments.Record(ctx, &model.Payment{
		Reference: payment.Reference,
		TaskID:    task.ID,
		Kind:      constants.PaymentFund,
		Sender:    payment.Sender,
		Amount:    payment.Amount,
		Slots:     slots,
	}); err != nil {
		return nil, err
	}

	if err := st.Tasks.CreateTask(ctx, task, draft.Options); err != nil {
		return nil, err
	}

	return task, nil
}

// Renew adds the slots a verified payment buys to an existing task owned by
// requesterID. A remainder below one unit price is not credited.
func (l *TaskLedger) Renew(
	ctx context.Context,
	st *repository.Store,
	requesterID string,
	taskID string,
	payment payments.VerifiedPayment,
) (*model.Task, error) {
	task, err := st.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.RequesterID != requesterID {
		return nil, apperrors.ErrNotTaskOwner
	}

	slots, err := l.slots(payment.Amount)
	if err != nil {
		return nil, err
	}

	if err := st.Payments.Record(ctx, &model.Payment{
		Reference: payment.Reference,
		TaskID:    task.ID,
		Kind:      constants.PaymentRenew,
		Sender:    payment.Sender,
		Amount:    payment.Amount,
		Slots:     slots,
	}); err != nil {
		return nil, err
	}

	if err := st.Tasks.AddSlots(ctx, task.ID, slots, payment.Amount); err != nil {
		return nil, err
	}

	return st.Tasks.FindByID(ctx, task.ID)
}

func (l *TaskLedger) slots(amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	slots := payments.SlotsFor(amount, l.unitPrice)
	if slots < 1 {
		return 0, apperrors.ErrInsufficientFunds
	}
	return slots, nil
}
