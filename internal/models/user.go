package model

import "time"

// User is a requester: the wallet that funds tasks.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Address   string    `gorm:"size:64;not null;uniqueIndex" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
