package model

import (
	"time"

	"review-pool.com/review-pool/internal/constants"
)

// Payment records every on-chain reference that funded or renewed a task.
type Payment struct {
	Reference string                `gorm:"primaryKey;size:128" json:"reference"`
	TaskID    string                `gorm:"size:36;not null;index" json:"task_id"`
	Kind      constants.PaymentKind `gorm:"type:varchar(10);not null" json:"kind"`
	Sender    string                `gorm:"size:64;not null" json:"sender"`
	Amount    int64                 `gorm:"not null" json:"amount"`
	Slots     int64                 `gorm:"not null" json:"slots"`
	CreatedAt time.Time             `json:"created_at"`
}

type Payout struct {
	ID         string                 `gorm:"primaryKey;size:36" json:"id"`
	WorkerID   string                 `gorm:"size:36;not null;index" json:"worker_id"`
	Amount     int64                  `gorm:"not null" json:"amount"`
	Status     constants.PayoutStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Signature  string                 `gorm:"size:128" json:"signature,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ResolvedAt *time.Time             `json:"resolved_at,omitempty"`
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{&User{}, &Worker{}, &Task{}, &Option{}, &Submission{}, &Payment{}, &Payout{}}
}
