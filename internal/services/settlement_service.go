package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"review-pool.com/review-pool/internal/constants"
	apperrors "review-pool.com/review-pool/internal/errors"
	"review-pool.com/review-pool/internal/metrics"
	model "review-pool.com/review-pool/internal/models"
	"review-pool.com/review-pool/internal/payments"
	repository "review-pool.com/review-pool/internal/repositories"
)

type FundTaskRequest struct {
	RequesterAddress string
	PaymentRef       string
	Amount           int64
	Title            string
	Options          []string
}

type RenewTaskRequest struct {
	RequesterAddress string
	TaskID           string
	PaymentRef       string
	Amount           int64
}

type ConfirmPayoutRequest struct {
	WorkerAddress string
	Amount        int64
	Outcome       constants.PayoutOutcome
	Signature     string
}

type TaskView struct {
	Task    *model.Task
	Tallies []model.OptionTally
}

// SettlementService is the only entry point that mutates settlement state.
// Each event runs in its own transaction; payment verification happens
// before the transaction opens so no transaction waits on the chain.
type SettlementService struct {
	store    *repository.Store
	verifier *payments.Verifier
	tasks    *TaskLedger
	reviews  *ReviewCoordinator
	workers  *WorkerLedger
	treasury string
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

func NewSettlementService(
	store *repository.Store,
	verifier *payments.Verifier,
	treasury string,
	unitPrice int64,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *SettlementService {
	workers := NewWorkerLedger()
	return &SettlementService{
		store:    store,
		verifier: verifier,
		tasks:    NewTaskLedger(unitPrice),
		reviews:  NewReviewCoordinator(unitPrice, workers),
		workers:  workers,
		treasury: treasury,
		metrics:  m,
		log:      log,
	}
}

func (s *SettlementService) UnitPrice() int64 {
	return s.tasks.UnitPrice()
}

func (s *SettlementService) EnsureRequester(ctx context.Context, address string) (*model.User, error) {
	if err := payments.ValidateAddress(address); err != nil {
		return nil, err
	}
	user, err := s.store.Users.FindOrCreate(ctx, address)
	if err != nil {
		return nil, s.fail("ensure_requester", logrus.Fields{"address": address}, err)
	}
	return user, nil
}

func (s *SettlementService) EnsureWorker(ctx context.Context, address string) (*model.Worker, error) {
	if err := payments.ValidateAddress(address); err != nil {
		return nil, err
	}
	worker, err := s.store.Workers.FindOrCreate(ctx, address)
	if err != nil {
		return nil, s.fail("ensure_worker", logrus.Fields{"address": address}, err)
	}
	return worker, nil
}

func (s *SettlementService) FundTask(ctx context.Context, req FundTaskRequest) (*model.Task, error) {
	fields := logrus.Fields{"requester": req.RequesterAddress, "payment_ref": req.PaymentRef}

	task, err := s.fundTask(ctx, req)
	if err != nil {
		s.metrics.Funding(string(constants.PaymentFund), apperrors.CodeOf(err))
		return nil, s.fail("fund_task", fields, err)
	}

	s.metrics.Funding(string(constants.PaymentFund), "ok")
	s.log.WithFields(fields).WithFields(logrus.Fields{
		"task_id": task.ID,
		"slots":   task.RemainingSlots,
	}).Info("task funded")
	return task, nil
}

func (s *SettlementService) fundTask(ctx context.Context, req FundTaskRequest) (*model.Task, error) {
	requester, err := s.store.Users.FindByAddress(ctx, req.RequesterAddress)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnused(ctx, req.PaymentRef); err != nil {
		return nil, err
	}

	payment, err := s.verify(ctx, req.PaymentRef, requester.Address, req.Amount)
	if err != nil {
		return nil, err
	}

	var task *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err = s.tasks.Fund(ctx, tx, TaskDraft{
			RequesterID: requester.ID,
			Title:       req.Title,
			Options:     req.Options,
		}, payment)
		return err
	})
	return task, err
}

func (s *SettlementService) RenewTask(ctx context.Context, req RenewTaskRequest) (*model.Task, error) {
	fields := logrus.Fields{"requester": req.RequesterAddress, "task_id": req.TaskID, "payment_ref": req.PaymentRef}

	task, err := s.renewTask(ctx, req)
	if err != nil {
		s.metrics.Funding(string(constants.PaymentRenew), apperrors.CodeOf(err))
		return nil, s.fail("renew_task", fields, err)
	}

	s.metrics.Funding(string(constants.PaymentRenew), "ok")
	s.log.WithFields(fields).WithField("slots", task.RemainingSlots).Info("task renewed")
	return task, nil
}

func (s *SettlementService) renewTask(ctx context.Context, req RenewTaskRequest) (*model.Task, error) {
	requester, err := s.store.Users.FindByAddress(ctx, req.RequesterAddress)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnused(ctx, req.PaymentRef); err != nil {
		return nil, err
	}

	payment, err := s.verify(ctx, req.PaymentRef, requester.Address, req.Amount)
	if err != nil {
		return nil, err
	}

	var task *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err = s.tasks.Renew(ctx, tx, requester.ID, req.TaskID, payment)
		return err
	})
	return task, err
}

func (s *SettlementService) SubmitReview(ctx context.Context, workerAddress, taskID, optionID string) (*model.Submission, error) {
	fields := logrus.Fields{"worker": workerAddress, "task_id": taskID, "option_id": optionID}

	worker, err := s.store.Workers.FindByAddress(ctx, workerAddress)
	if err != nil {
		s.metrics.Submission(apperrors.CodeOf(err))
		return nil, s.fail("submit_review", fields, err)
	}

	var submission *model.Submission
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		submission, err = s.reviews.Submit(ctx, tx, taskID, worker.ID, optionID)
		return err
	})
	if err != nil {
		s.metrics.Submission(apperrors.CodeOf(err))
		return nil, s.fail("submit_review", fields, err)
	}

	s.metrics.Submission("ok")
	s.log.WithFields(fields).WithField("submission_id", submission.ID).Info("review submitted")
	return submission, nil
}

func (s *SettlementService) RequestPayoutLock(ctx context.Context, workerAddress string, amount int64) (*model.Worker, error) {
	fields := logrus.Fields{"worker": workerAddress, "amount": amount}

	worker, err := s.store.Workers.FindByAddress(ctx, workerAddress)
	if err == nil {
		err = s.store.Transaction(ctx, func(tx *repository.Store) error {
			worker, err = s.workers.Lock(ctx, tx, worker.ID, amount)
			return err
		})
	}
	if err != nil {
		s.metrics.Payout("lock", apperrors.CodeOf(err))
		return nil, s.fail("request_payout_lock", fields, err)
	}

	s.metrics.Payout("lock", "ok")
	s.log.WithFields(fields).Info("payout locked")
	return worker, nil
}

func (s *SettlementService) ConfirmPayout(ctx context.Context, req ConfirmPayoutRequest) (*model.Worker, error) {
	fields := logrus.Fields{"worker": req.WorkerAddress, "amount": req.Amount, "outcome": req.Outcome}
	stage := string(req.Outcome)

	worker, err := s.store.Workers.FindByAddress(ctx, req.WorkerAddress)
	if err == nil {
		err = s.store.Transaction(ctx, func(tx *repository.Store) error {
			switch req.Outcome {
			case constants.OutcomeSettled:
				worker, err = s.workers.Settle(ctx, tx, worker.ID, req.Amount, req.Signature)
			case constants.OutcomeFailed:
				worker, err = s.workers.Rollback(ctx, tx, worker.ID, req.Amount, req.Signature)
			default:
				err = apperrors.ErrInvalidPayoutOutcome
			}
			return err
		})
	}
	if err != nil {
		s.metrics.Payout(stage, apperrors.CodeOf(err))
		return nil, s.fail("confirm_payout", fields, err)
	}

	s.metrics.Payout(stage, "ok")
	s.log.WithFields(fields).Info("payout resolved")
	return worker, nil
}

// GetTask returns a task with its per-option counts. Only the requester who
// funded it can read it; anyone else gets TaskNotFound.
func (s *SettlementService) GetTask(ctx context.Context, requesterAddress, id string) (*TaskView, error) {
	fields := logrus.Fields{"requester": requesterAddress, "task_id": id}

	requester, err := s.store.Users.FindByAddress(ctx, requesterAddress)
	if err != nil {
		return nil, s.fail("get_task", fields, err)
	}
	task, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get_task", fields, err)
	}
	if task.RequesterID != requester.ID {
		return nil, s.fail("get_task", fields, apperrors.ErrTaskNotFound)
	}

	tallies, err := s.store.Submissions.TallyByTask(ctx, id)
	if err != nil {
		return nil, s.fail("get_task", fields, err)
	}
	return &TaskView{Task: task, Tallies: tallies}, nil
}

// ListRequesterTasks returns the requester's tasks and the submission
// counts of all of them.
func (s *SettlementService) ListRequesterTasks(ctx context.Context, address string, finishedOnly bool) ([]model.Task, []model.OptionTally, error) {
	fields := logrus.Fields{"requester": address}

	requester, err := s.store.Users.FindByAddress(ctx, address)
	if err != nil {
		return nil, nil, s.fail("list_requester_tasks", fields, err)
	}
	tasks, err := s.store.Tasks.ListByRequester(ctx, requester.ID, finishedOnly)
	if err != nil {
		return nil, nil, s.fail("list_requester_tasks", fields, err)
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	tallies, err := s.store.Submissions.TallyByTasks(ctx, ids)
	if err != nil {
		return nil, nil, s.fail("list_requester_tasks", fields, err)
	}
	return tasks, tallies, nil
}

func (s *SettlementService) ListOpenTasks(ctx context.Context, workerAddress string, limit int) ([]model.Task, error) {
	worker, err := s.store.Workers.FindByAddress(ctx, workerAddress)
	if err != nil {
		return nil, s.fail("list_open_tasks", logrus.Fields{"worker": workerAddress}, err)
	}
	tasks, err := s.store.Tasks.ListOpenForWorker(ctx, worker.ID, limit)
	if err != nil {
		return nil, s.fail("list_open_tasks", logrus.Fields{"worker": workerAddress}, err)
	}
	return tasks, nil
}

func (s *SettlementService) GetWorker(ctx context.Context, address string) (*model.Worker, error) {
	worker, err := s.store.Workers.FindByAddress(ctx, address)
	if err != nil {
		return nil, s.fail("get_worker", logrus.Fields{"worker": address}, err)
	}
	return worker, nil
}

// ensureUnused skips the chain lookup for references we already consumed.
// The unique key on the payment row is what actually enforces it.
func (s *SettlementService) ensureUnused(ctx context.Context, reference string) error {
	used, err := s.store.Payments.Exists(ctx, reference)
	if err != nil {
		return err
	}
	if used {
		return apperrors.ErrPaymentAlreadyUsed
	}
	return nil
}

func (s *SettlementService) verify(ctx context.Context, reference, sender string, amount int64) (payments.VerifiedPayment, error) {
	payment, err := s.verifier.Verify(ctx, reference, sender, s.treasury, amount)
	if err != nil && apperrors.KindOf(err) == apperrors.KindExternalVerification {
		s.metrics.VerificationFailure(apperrors.CodeOf(err))
	}
	return payment, err
}

// fail keeps the error's kind, turns anything untyped into an internal error
// and logs it at a level matching its kind.
func (s *SettlementService) fail(event string, fields logrus.Fields, err error) error {
	err = apperrors.Internal(err)
	entry := s.log.WithFields(fields).WithFields(logrus.Fields{
		"event": event,
		"kind":  apperrors.KindOf(err),
		"code":  apperrors.CodeOf(err),
	})

	if apperrors.KindOf(err) == apperrors.KindInternal {
		entry.WithError(err).Error("settlement event failed")
	} else {
		entry.Info("settlement event rejected")
	}
	return err
}
