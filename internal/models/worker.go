package model

import "time"

type Worker struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Address       string    `gorm:"size:64;not null;uniqueIndex" json:"address"`
	PendingAmount int64     `gorm:"not null;default:0" json:"pending_amount"`
	LockedAmount  int64     `gorm:"not null;default:0" json:"locked_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (w *Worker) Locked() bool {
	return w.LockedAmount != 0
}
