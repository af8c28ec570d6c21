package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask inserts the task together with its options. Option positions
// are assigned 1..n in the given order.
func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task, references []string) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	task.Options = make([]model.Option, 0, len(references))
	for i, ref := range references {
		task.Options = append(task.Options, model.Option{
			ID:        uuid.NewString(),
			TaskID:    task.ID,
			Position:  i + 1,
			Reference: ref,
		})
	}

	err := r.db.WithContext(ctx).Create(task).Error
	if isDuplicate(err) {
		return apperrors.ErrPaymentAlreadyUsed
	}
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&task, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindOption(ctx context.Context, id string) (*model.Option, error) {
	var option model.Option
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrOptionNotFound
		}
		return nil, err
	}
	return &option, nil
}

func (r *TaskRepository) ListByRequester(ctx context.Context, requesterID string, finishedOnly bool) ([]model.Task, error) {
	var tasks []model.Task
	query := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("requester_id = ?", requesterID)
	if finishedOnly {
		query = query.Where("remaining_slots = 0")
	}
	err := query.Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

// ListOpenForWorker returns tasks that still have slots and that the worker
// has not reviewed yet.
func (r *TaskRepository) ListOpenForWorker(ctx context.Context, workerID string, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	db := r.db.WithContext(ctx)
	reviewed := db.Model(&model.Submission{}).Select("task_id").Where("worker_id = ?", workerID)

	var tasks []model.Task
	err := db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("remaining_slots > 0").
		Where("id NOT IN (?)", reviewed).
		Order("created_at asc").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// ConsumeSlot takes one slot only if one is left. The check and the
// decrement are the same statement, so concurrent callers cannot drive the
// counter below zero.
func (r *TaskRepository) ConsumeSlot(ctx context.Context, taskID string) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND remaining_slots > 0", taskID).
		Updates(map[string]interface{}{
			"remaining_slots": gorm.Expr("remaining_slots - 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoSlotsRemaining
	}
	return nil
}

func (r *TaskRepository) AddSlots(ctx context.Context, taskID string, slots, amount int64) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"remaining_slots": gorm.Expr("remaining_slots + ?", slots),
			"total_slots":     gorm.Expr("total_slots + ?", slots),
			"total_amount":    gorm.Expr("total_amount + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
