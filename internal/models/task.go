package model

import "time"

type Task struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	RequesterID    string    `gorm:"size:36;not null;index" json:"requester_id"`
	Title          string    `gorm:"not null" json:"title"`
	PaymentRef     string    `gorm:"size:128;not null;uniqueIndex" json:"payment_ref"`
	TotalAmount    int64     `gorm:"not null" json:"total_amount"`
	TotalSlots     int64     `gorm:"not null" json:"total_slots"`
	RemainingSlots int64     `gorm:"not null;index" json:"remaining_slots"`
	Options        []Option  `gorm:"foreignKey:TaskID" json:"options"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (t *Task) Open() bool {
	return t.RemainingSlots > 0
}

type Option struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string `gorm:"size:36;not null;uniqueIndex:idx_option_task_position" json:"task_id"`
	Position  int    `gorm:"not null;uniqueIndex:idx_option_task_position" json:"position"`
	Reference string `gorm:"not null" json:"reference"`
}

// OptionTally is the number of submissions an option received.
type OptionTally struct {
	TaskID   string `json:"task_id"`
	OptionID string `json:"option_id"`
	Count    int64  `json:"count"`
}
