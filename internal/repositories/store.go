package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db          *gorm.DB
	Tasks       *TaskRepository
	Submissions *SubmissionRepository
	Workers     *WorkerRepository
	Users       *UserRepository
	Payments    *PaymentRepository
	Payouts     *PayoutRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Tasks:       NewTaskRepository(db),
		Submissions: NewSubmissionRepository(db),
		Workers:     NewWorkerRepository(db),
		Users:       NewUserRepository(db),
		Payments:    NewPaymentRepository(db),
		Payouts:     NewPayoutRepository(db),
	}
}

// Transaction runs fn against a store bound to a single transaction. Any
// error returned by fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
