package model

import "time"

// Submission is one consumed slot. The composite unique index on
// (task_id, worker_id) is what rejects a second review by the same worker.
type Submission struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;uniqueIndex:idx_submission_task_worker" json:"task_id"`
	WorkerID  string    `gorm:"size:36;not null;uniqueIndex:idx_submission_task_worker;index" json:"worker_id"`
	OptionID  string    `gorm:"size:36;not null;index" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}
