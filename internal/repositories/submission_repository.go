package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create relies on the (task_id, worker_id) unique index to reject a second
// submission, whichever caller gets there first.
func (r *SubmissionRepository) Create(ctx context.Context, taskID, workerID, optionID string) (*model.Submission, error) {
	submission := &model.Submission{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		WorkerID:  workerID,
		OptionID:  optionID,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, err
	}
	return submission, nil
}

func (r *SubmissionRepository) CountByTask(ctx context.Context, taskID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountByTaskAndWorker(ctx context.Context, taskID, workerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("task_id = ? AND worker_id = ?", taskID, workerID).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) TallyByTask(ctx context.Context, taskID string) ([]model.OptionTally, error) {
	return r.TallyByTasks(ctx, []string{taskID})
}

// TallyByTasks counts submissions per option for every given task in one
// query. Options without submissions are absent from the result.
func (r *SubmissionRepository) TallyByTasks(ctx context.Context, taskIDs []string) ([]model.OptionTally, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	var tallies []model.OptionTally
	err := r.db.WithContext(ctx).Model(&model.Submission{}).
		Select("task_id, option_id, COUNT(*) AS count").
		Where("task_id IN ?", taskIDs).
		Group("task_id, option_id").
		Scan(&tallies).Error
	return tallies, err
}
